package performance

import (
	"PerfDash/internal/lib/api/response"
	"PerfDash/internal/lib/sl"
	engine "PerfDash/internal/performance"
	"fmt"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"log/slog"
	"net/http"
	"strconv"
)

func Export(log *slog.Logger, handler Core) http.HandlerFunc {
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

		data, filename, err := handler.ExportCSV(scope)
		if err != nil {
			logger.Error("export csv", sl.Err(err))
			render.Status(r, errorStatus(err))
			render.JSON(w, r, response.Error(fmt.Sprintf("Export not available: %v", err)))
			return
		}

		w.Header().Set("Content-Type", engine.ContentTypeCSV)
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		w.Header().Set("Content-Length", strconv.Itoa(len(data)))
		w.WriteHeader(http.StatusOK)
		if _, err = w.Write(data); err != nil {
			logger.Error("write csv", sl.Err(err))
			return
		}

		logger.With(
			slog.String("scope", scope.String()),
			slog.String("file", filename),
		).Debug("performance exported")
	}
}
