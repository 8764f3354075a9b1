package server

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/pageza/recipp/backend/config"
	"github.com/pageza/recipp/backend/internal/api"
	"github.com/pageza/recipp/backend/internal/middleware"
	"github.com/pageza/recipp/backend/internal/router"
	"github.com/pageza/recipp/backend/internal/service"
)

const (
	readTimeout     = 10 * time.Second
	writeTimeout    = 30 * time.Second
	idleTimeout     = 120 * time.Second
	shutdownTimeout = 10 * time.Second
)

// Options carries the optional collaborators built by the caller.
type Options struct {
	// Counters backs the rate limiter; nil keeps counters in memory.
	Counters middleware.CounterStore
	// Presigner signs image object keys; nil serves absolute image URLs only.
	Presigner service.Presigner
	// Seeds is shared with startup seeding so runs stay serialized.
	Seeds *service.SeedReconciler
}

// Server represents the HTTP server
type Server struct {
	router *gin.Engine
	http   *http.Server
	db     *gorm.DB
}

// New wires services, handlers and routes for cfg.
func New(cfg *config.Config, db *gorm.DB, opts Options) *Server {
	gin.SetMode(cfg.Environment.GinMode())

	counters := opts.Counters
	if counters == nil {
		counters = middleware.NewMemoryStore()
	}
	seeds := opts.Seeds
	if seeds == nil {
		seeds = service.NewSeedReconciler(db)
	}

	recipes := service.NewRecipeService(db)
	images := service.NewImageService(recipes, opts.Presigner)

	deps := router.Dependencies{
		DB:      db,
		Recipes: api.NewRecipeHandler(recipes, images),
		Search:  api.NewSearchHandler(recipes, cfg.RecipeAmount),
		Limiter: middleware.NewRateLimiter(counters, middleware.RateLimitConfig{
			Window:    cfg.RateLimitWindow,
			Limit:     cfg.RateLimitMax,
			KeyPrefix: "ratelimit",
		}),
	}
	if cfg.AdminEnabled() {
		deps.Admin = api.NewAdminHandler(seeds, cfg.SeedFile)
		deps.Tokens = service.NewAuthService(cfg.JWTSecret)
	} else {
		log.Println("JWT_SECRET not set, admin routes disabled")
	}

	r := router.SetupRouter(cfg, deps)

	return &Server{
		router: r,
		db:     db,
		http: &http.Server{
			Addr:         cfg.Addr(),
			Handler:      r,
			ReadTimeout:  readTimeout,
			WriteTimeout: writeTimeout,
			IdleTimeout:  idleTimeout,
		},
	}
}

// Handler returns the configured router.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves HTTP until Shutdown is called.
func (s *Server) Start() error {
	log.Printf("Server listening on %s", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()
	return s.http.Shutdown(ctx)
}
