package timeout

import (
	"PerfDash/internal/lib/api/response"
	"context"
	"errors"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"net/http"
	"time"
)

// Timeout bounds the request context. A handler that runs past the deadline
// without writing a response gets a 504.
func Timeout(seconds int) func(next http.Handler) http.Handler {
	limit := time.Duration(seconds) * time.Second

	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), limit)
			defer cancel()

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			r = r.WithContext(ctx)
			next.ServeHTTP(ww, r)

			if errors.Is(ctx.Err(), context.DeadlineExceeded) && ww.Status() == 0 {
				render.Status(r, http.StatusGatewayTimeout)
				render.JSON(ww, r, response.Error("Request timed out"))
			}
		}
		return http.HandlerFunc(fn)
	}
}
