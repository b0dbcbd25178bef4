package performance

import (
	"PerfDash/internal/lib/api/response"
	"PerfDash/internal/lib/sl"
	"fmt"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"log/slog"
	"net/http"
)

func GetPerformance(log *slog.Logger, handler Core) http.HandlerFunc {
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

		var req ScopeRequest
		if err := req.Bind(r); err != nil {
			logger.Debug("bad scope", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error(fmt.Sprintf("Invalid scope: %v", err)))
			return
		}
		scope := req.Scope()
		logger = logger.With(slog.String("scope", scope.String()))

		report, err := handler.Performance(scope)
		if err != nil {
			logger.Error("build report", sl.Err(err))
			render.Status(r, errorStatus(err))
			render.JSON(w, r, response.Error(fmt.Sprintf("Report not available: %v", err)))
			return
		}

		logger.With(
			slog.Int("alerts", len(report.Alerts)),
			slog.Int("risk", len(report.Risk)),
		).Debug("performance report")
		render.JSON(w, r, response.Ok(report))
	}
}
