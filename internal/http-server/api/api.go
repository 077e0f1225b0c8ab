package api

import (
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"ImpressionsBot/internal/config"
	"ImpressionsBot/internal/http-server/handlers/conversation"
	"ImpressionsBot/internal/http-server/handlers/errors"
	"ImpressionsBot/internal/http-server/handlers/health"
	"ImpressionsBot/internal/http-server/handlers/order"
	"ImpressionsBot/internal/http-server/middleware/authenticate"
	"ImpressionsBot/internal/lib/sl"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Server struct {
	conf       *config.Config
	httpServer *http.Server
	log        *slog.Logger
}

type Handler interface {
	authenticate.Authenticate
	conversation.Core
	order.Core
}

func New(conf *config.Config, log *slog.Logger, handler Handler) error {

	server := Server{
		conf: conf,
		log:  log.With(sl.Module("api.server")),
	}

	httpLog := slog.NewLogLogger(log.Handler(), slog.LevelError)
	server.httpServer = &http.Server{
		Handler:           NewRouter(log, handler),
		ErrorLog:          httpLog,
		ReadHeaderTimeout: 5 * time.Second,
	}

	serverAddress := fmt.Sprintf("%s:%s", conf.Listen.BindIP, conf.Listen.Port)
	listener, err := net.Listen("tcp", serverAddress)
	if err != nil {
		return err
	}

	server.log.Info("starting api server", slog.String("address", serverAddress))

	return server.httpServer.Serve(listener)
}

// NewRouter mounts the admin API. Health and metrics are open, the rest needs a bearer key.
func NewRouter(log *slog.Logger, handler Handler) http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.Timeout(30 * time.Second))
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	router.Use(render.SetContentType(render.ContentTypeJSON))

	router.NotFound(errors.NotFound(log))
	router.MethodNotAllowed(errors.NotAllowed(log))

	router.Get("/metrics", promhttp.Handler().ServeHTTP)

	router.Route("/api/v1", func(v1 chi.Router) {
		v1.Get("/health", health.Health())

		v1.Group(func(r chi.Router) {
			r.Use(authenticate.New(log, handler))

			r.Route("/conversation/{chat_id}", func(r chi.Router) {
				r.Get("/", conversation.GetConversation(log, handler))
				r.Post("/reset", conversation.ResetConversation(log, handler))
			})
			r.Route("/order/{number}", func(r chi.Router) {
				r.Get("/screenshot", order.Screenshot(log, handler))
			})
		})
	})

	return router
}
