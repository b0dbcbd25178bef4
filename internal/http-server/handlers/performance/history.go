package performance

import (
	"PerfDash/internal/lib/api/response"
	"PerfDash/internal/lib/sl"
	"fmt"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"log/slog"
	"net/http"
	"strconv"
)

func History(log *slog.Logger, handler Core) http.HandlerFunc {
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

		limit := 0
		if value := r.URL.Query().Get("limit"); value != "" {
			n, err := strconv.Atoi(value)
			if err != nil || n < 0 {
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, response.Error(fmt.Sprintf("Invalid limit %q", value)))
				return
			}
			limit = n
		}

		runs, err := handler.History(limit)
		if err != nil {
			logger.Error("performance history", sl.Err(err))
			render.Status(r, errorStatus(err))
			render.JSON(w, r, response.Error(fmt.Sprintf("History not available: %v", err)))
			return
		}

		logger.Debug("performance history", slog.Int("count", len(runs)))
		render.JSON(w, r, response.Ok(runs))
	}
}
