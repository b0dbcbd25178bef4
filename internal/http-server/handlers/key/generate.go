package key

import (
	"PerfDash/entity"
	"PerfDash/internal/lib/api/cont"
	"PerfDash/internal/lib/api/response"
	"PerfDash/internal/lib/sl"
	"PerfDash/internal/lib/validate"
	"fmt"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"log/slog"
	"net/http"
)

type Core interface {
	GenerateApiKey(username string) (string, error)
}

type Request struct {
	Username string `json:"username" validate:"required,min=2,max=64"`
}

func (req *Request) Bind(_ *http.Request) error {
	return validate.Struct(req)
}

func Generate(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mod := sl.Module("http.handlers.key")

		logger := log.With(
			mod,
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		if handler == nil {
			logger.Error("key service not available")
			render.Status(r, http.StatusServiceUnavailable)
			render.JSON(w, r, response.Error("Key service not available"))
			return
		}

		user, err := cont.GetUser(r.Context())
		if err != nil || user.Username != entity.AdminUser {
			render.Status(r, http.StatusForbidden)
			render.JSON(w, r, response.Error("Forbidden"))
			return
		}

		var req Request
		if err = render.Bind(r, &req); err != nil {
			logger.Debug("bad request", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error(fmt.Sprintf("Invalid request: %v", err)))
			return
		}

		key, err := handler.GenerateApiKey(req.Username)
		if err != nil {
			logger.Error("generate api key", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error(fmt.Sprintf("Failed to generate key: %v", err)))
			return
		}

		logger.With(
			slog.String("username", req.Username),
			sl.Secret("key", key),
		).Info("api key issued")
		render.JSON(w, r, response.Ok(map[string]string{
			"username": req.Username,
			"key":      key,
		}))
	}
}
