package rest

import (
	"context"
	"net/http"
	core_port "real-estate-system/internal/core/port"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// ServerConfig - параметры HTTP-сервера.
type ServerConfig struct {
	Port               string
	CORSAllowedOrigins []string
	RateLimitRPS       float64
	RateLimitBurst     int
}

type Server struct {
	httpServer *http.Server
	logger     core_port.LoggerPort
}

// NewRouter собирает роутер со всеми middleware и маршрутами.
func NewRouter(cfg ServerConfig,
	searchHandler *SearchHandler,
	developersHandler *DevelopersHandler,
	baseLogger core_port.LoggerPort) http.Handler {

	r := chi.NewRouter()

	r.Use(middleware.RealIP, LoggerMiddleware(baseLogger), middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", traceIDHeader},
		ExposedHeaders:   []string{traceIDHeader},
		AllowCredentials: false,
		MaxAge:           300, // 5 минут
	}))

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/healthz", Healthz)
		r.Get("/developers", developersHandler.ListDevelopers)

		r.Group(func(r chi.Router) {
			r.Use(RateLimitMiddleware(cfg.RateLimitRPS, cfg.RateLimitBurst))

			r.Post("/search", searchHandler.Search)
			r.Get("/search/resolve", searchHandler.ResolveFromQuery)
			r.Post("/search/resolve", searchHandler.Resolve)
			r.Post("/search/sort", searchHandler.ApplySort)
		})
	})

	return r
}

func NewServer(cfg ServerConfig,
	searchHandler *SearchHandler,
	developersHandler *DevelopersHandler,
	baseLogger core_port.LoggerPort) *Server {

	return &Server{
		httpServer: &http.Server{
			Addr:              ":" + cfg.Port,
			Handler:           NewRouter(cfg, searchHandler, developersHandler, baseLogger),
			ReadHeaderTimeout: 10 * time.Second,
		},
		logger: baseLogger,
	}
}

func (s *Server) Start() error {
	s.logger.Info("Starting REST server", core_port.Fields{"address": s.httpServer.Addr})
	return s.httpServer.ListenAndServe()
}

func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping REST server...", nil)
	return s.httpServer.Shutdown(ctx)
}
