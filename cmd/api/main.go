package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/pageza/recipp/backend/config"
	"github.com/pageza/recipp/backend/internal/database"
	"github.com/pageza/recipp/backend/internal/middleware"
	"github.com/pageza/recipp/backend/internal/server"
	"github.com/pageza/recipp/backend/internal/service"
)

func main() {
	// Initialize configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer func() {
		if err := database.Close(db); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	if err := database.RunMigrations(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	seeds := service.NewSeedReconciler(db)
	if cfg.SeedOnStart {
		if _, err := seeds.SyncFile(context.Background(), cfg.SeedFile); err != nil {
			log.Fatalf("Failed to seed database from %s: %v", cfg.SeedFile, err)
		}
	}

	opts := server.Options{Seeds: seeds}

	if cfg.RedisURL != "" {
		redisClient, err := database.NewRedisClient(cfg)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisClient.Close()
		opts.Counters = middleware.NewRedisStore(redisClient)
	} else {
		log.Println("REDIS_URL not set, rate limit counters kept in memory")
	}

	s3Config, err := config.NewS3Config(context.Background(), cfg)
	switch {
	case errors.Is(err, config.ErrStorageDisabled):
		log.Println("S3_BUCKET_NAME not set, only absolute image URLs are served")
	case err != nil:
		log.Fatalf("Failed to configure image storage: %v", err)
	default:
		opts.Presigner = s3Config
	}

	// Create and start server
	srv := server.New(cfg, db, opts)

	// Channel to listen for errors coming from the server
	errChan := make(chan error, 1)

	go func() {
		log.Println("Starting server...")
		errChan <- srv.Start()
	}()

	// Channel to listen for an interrupt or terminate signal from the OS
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Block until we receive a signal or error
	select {
	case err := <-errChan:
		if err != nil {
			log.Printf("Server error: %v", err)
			return
		}
	case sig := <-quit:
		log.Printf("Received signal: %v", sig)
	}

	log.Println("Shutting down server...")
	if err := srv.Shutdown(context.Background()); err != nil {
		log.Printf("Server shutdown error: %v", err)
		return
	}
	log.Println("Server stopped")
}
