package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	"github.com/gosuda/shelf/internal/auth"
	"github.com/gosuda/shelf/internal/config"
	"github.com/gosuda/shelf/internal/server/middleware"
	"github.com/gosuda/shelf/internal/store/postgres"
	redisstore "github.com/gosuda/shelf/internal/store/redis"
)

// Server is the HTTP server that wires all application routes and middleware.
type Server struct {
	router     chi.Router
	httpServer *http.Server
	store      *postgres.Store
	auth       *auth.Service
	tokenCache *redisstore.TokenCache // nil when Redis is not configured
	cfg        *config.Config
}

// New creates a Server with all routes wired. tokenCache may be nil; token
// resolution then always goes to postgres.
func New(ctx context.Context, cfg *config.Config, store *postgres.Store, authSvc *auth.Service, tokenCache *redisstore.TokenCache) *Server {
	router := chi.NewRouter()

	// Global middleware stack.
	router.Use(chimw.RequestID)
	router.Use(chimw.RealIP)
	router.Use(chimw.Logger)
	router.Use(chimw.Recoverer)
	router.Use(cors.New(cors.Options{
		AllowedOrigins:   cfg.Server.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}).Handler)

	s := &Server{
		router:     router,
		store:      store,
		auth:       authSvc,
		tokenCache: tokenCache,
		cfg:        cfg,
		httpServer: &http.Server{
			Addr:         cfg.Server.Addr,
			Handler:      router,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
		},
	}

	// The optional cache is threaded as an interface; a typed-nil pointer
	// must become an untyped nil so the middleware's nil check holds.
	var cache middleware.TokenCache
	if tokenCache != nil {
		cache = tokenCache
	}

	// Mount API routes on /api/v1 with two sub-groups:
	// 1. Unauthenticated group for registration and token issuance.
	// 2. Authenticated group gated by bearer-token resolution.
	router.Route("/api/v1", func(r chi.Router) {
		// Unauthenticated tenant routes (create, token).
		r.Group(func(r chi.Router) {
			r.Use(middleware.RateLimitByIP(ctx, 10, 20))

			publicConfig := huma.DefaultConfig("Shelf Public API", "1.0.0")
			publicConfig.Servers = []*huma.Server{
				{URL: "/api/v1"},
			}
			publicAPI := humachi.New(r, publicConfig)
			registerPublicRoutes(publicAPI, authSvc)
		})

		// Authenticated routes (profile, items).
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(authSvc, store.Tenants(), cache))
			r.Use(middleware.RateLimit(ctx, 100, 200))

			apiConfig := huma.DefaultConfig("Shelf API", "1.0.0")
			apiConfig.Servers = []*huma.Server{
				{URL: "/api/v1"},
			}
			api := humachi.New(r, apiConfig)
			registerProtectedRoutes(api, store, authSvc)
		})
	})

	// Health check (unauthenticated).
	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	return s
}

// Start begins listening for HTTP requests.
func (s *Server) Start(_ context.Context) error {
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server.Start: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}
