package performance

import (
	"PerfDash/entity"
	"PerfDash/internal/lib/api/cont"
	"PerfDash/internal/lib/api/response"
	"PerfDash/internal/lib/sl"
	"fmt"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"log/slog"
	"net/http"
)

func Refresh(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mod := sl.Module("http.handlers.performance")

		logger := log.With(
			mod,
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		if handler == nil {
			logger.Error("performance service not available")
			render.Status(r, http.StatusServiceUnavailable)
			render.JSON(w, r, response.Error("Performance service not available"))
			return
		}

		username := ""
		if user, err := cont.GetUser(r.Context()); err == nil {
			username = user.Username
		}
		logger = logger.With(slog.String("user", username))

		run, err := handler.Refresh(r.Context(), entity.TriggerManual, username)
		if err != nil {
			logger.Error("manual refresh", sl.Err(err))
			render.Status(r, errorStatus(err))
			render.JSON(w, r, response.Error(fmt.Sprintf("Refresh failed: %v", err)))
			return
		}

		logger.With(slog.String("run", run.ID)).Info("manual refresh")
		render.JSON(w, r, response.Ok(run))
	}
}
