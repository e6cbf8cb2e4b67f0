package rest

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	core_port "real-estate-system/storefront/internal/core/port"
)

// ServerConfig — сетевые параметры mock API.
type ServerConfig struct {
	Port               string
	CORSAllowedOrigins []string
	RateLimitRPS       float64
	RateLimitBurst     int
}

// Server - REST сервер mock API.
type Server struct {
	httpServer *http.Server
	logger     core_port.LoggerPort
}

// NewRouter собирает маршруты. Один и тот же набор доступен под /api/mock и /api.
func NewRouter(cfg ServerConfig, handlers *MockAPIHandler, baseLogger core_port.LoggerPort, registry *prometheus.Registry) http.Handler {
	r := chi.NewRouter()

	var registerer prometheus.Registerer
	if registry != nil {
		registerer = registry
	}
	metrics := newServerMetrics(registerer)

	// PeerAddr должен стоять до RealIP
	r.Use(PeerAddr, middleware.RealIP, LoggerMiddleware(baseLogger), Recoverer)
	r.Use(metrics.middleware)

	origins := cfg.CORSAllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Trace-ID"},
		ExposedHeaders: []string{"X-Trace-ID"},
		MaxAge:         300,
	}))

	r.Get("/health", handlers.Health)
	if registry != nil {
		r.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	var limiter *RateLimiter
	if cfg.RateLimitRPS > 0 {
		limiter = NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	}

	api := func(r chi.Router) {
		if limiter != nil {
			r.Use(limiter.Handler)
		}

		r.Get("/health", handlers.Health)

		r.Route("/properties", func(r chi.Router) {
			r.Get("/", handlers.ListProperties)
			r.Post("/", handlers.CreateProperty)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", handlers.GetProperty)
				r.Put("/", handlers.UpdateProperty)
				r.Delete("/", handlers.DeleteProperty)

				r.Get("/images", handlers.ListImages)
				r.Post("/images", handlers.CreateImage)
				r.Get("/images/{imageId}", handlers.GetImage)
				r.Put("/images/{imageId}", handlers.UpdateImage)
				r.Delete("/images/{imageId}", handlers.DeleteImage)

				r.Get("/traces", handlers.ListTraces)
				r.Post("/traces", handlers.CreateTrace)
				r.Get("/traces/{traceId}", handlers.GetTrace)
				r.Put("/traces/{traceId}", handlers.UpdateTrace)
				r.Delete("/traces/{traceId}", handlers.DeleteTrace)
			})
		})

		r.Route("/owners", func(r chi.Router) {
			r.Get("/", handlers.ListOwners)
			r.Post("/", handlers.CreateOwner)
			r.Get("/{id}", handlers.GetOwner)
			r.Put("/{id}", handlers.UpdateOwner)
			r.Delete("/{id}", handlers.DeleteOwner)
		})
	}
	r.Route("/api/mock", api)
	r.Route("/api", api)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		WriteJSONError(w, http.StatusNotFound, "Not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		WriteJSONError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	return r
}

// NewServer создает новый экземпляр сервера.
func NewServer(cfg ServerConfig, handlers *MockAPIHandler, baseLogger core_port.LoggerPort, registry *prometheus.Registry) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              ":" + cfg.Port,
			Handler:           NewRouter(cfg, handlers, baseLogger, registry),
			ReadHeaderTimeout: 10 * time.Second,
		},
		logger: baseLogger,
	}
}

// Start запускает HTTP-сервер.
func (s *Server) Start() error {
	s.logger.Info("Starting mock API server", core_port.Fields{"address": s.httpServer.Addr})
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		s.logger.Error("Could not start server", err, nil)
		return fmt.Errorf("could not start server: %w", err)
	}
	return nil
}

// Stop корректно останавливает сервер.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping mock API server...", nil)
	return s.httpServer.Shutdown(ctx)
}
