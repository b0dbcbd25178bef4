package api

import (
	"PerfDash/internal/config"
	"PerfDash/internal/http-server/handlers/errors"
	"PerfDash/internal/http-server/handlers/key"
	"PerfDash/internal/http-server/handlers/performance"
	"PerfDash/internal/http-server/middleware/authenticate"
	"PerfDash/internal/http-server/middleware/timeout"
	"PerfDash/internal/lib/sl"
	"PerfDash/internal/ws"
	"fmt"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"log/slog"
	"net"
	"net/http"
)

type Server struct {
	conf       *config.Config
	httpServer *http.Server
	log        *slog.Logger
}

type Handler interface {
	authenticate.Authenticate
	ws.Authenticator
	performance.Core
	key.Core
}

// NewRouter mounts the API. The websocket endpoint authenticates with the
// token query parameter and stays outside the timeout and header auth.
func NewRouter(conf *config.Config, log *slog.Logger, handler Handler, hub *ws.Hub) http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)

	router.NotFound(errors.NotFound(log))
	router.MethodNotAllowed(errors.NotAllowed(log))

	router.Route("/api/v1", func(v1 chi.Router) {
		v1.Get("/ws", func(w http.ResponseWriter, r *http.Request) {
			ws.ServeWs(hub, handler, log, w, r)
		})

		v1.Group(func(r chi.Router) {
			r.Use(timeout.Timeout(conf.Listen.Timeout))
			r.Use(render.SetContentType(render.ContentTypeJSON))
			r.Use(authenticate.New(log, handler))

			r.Route("/performance", func(r chi.Router) {
				r.Get("/", performance.GetPerformance(log, handler))
				r.Get("/export", performance.Export(log, handler))
				r.Post("/refresh", performance.Refresh(log, handler))
				r.Get("/history", performance.History(log, handler))
			})
			r.Route("/key", func(r chi.Router) {
				r.Post("/new", key.Generate(log, handler))
			})
		})
	})

	return router
}

func New(conf *config.Config, log *slog.Logger, handler Handler, hub *ws.Hub) error {

	server := Server{
		conf: conf,
		log:  log.With(sl.Module("api.server")),
	}

	httpLog := slog.NewLogLogger(log.Handler(), slog.LevelError)
	server.httpServer = &http.Server{
		Handler:  NewRouter(conf, log, handler, hub),
		ErrorLog: httpLog,
	}

	serverAddress := fmt.Sprintf("%s:%s", conf.Listen.BindIP, conf.Listen.Port)
	listener, err := net.Listen("tcp", serverAddress)
	if err != nil {
		return err
	}

	server.log.Info("starting api server", slog.String("address", serverAddress))

	return server.httpServer.Serve(listener)
}
