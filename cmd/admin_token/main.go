package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/pageza/recipp/backend/config"
	"github.com/pageza/recipp/backend/internal/service"
)

func main() {
	subject := flag.String("subject", "admin", "Token subject")
	ttl := flag.Duration("ttl", time.Hour, "Token lifetime")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if !cfg.AdminEnabled() {
		log.Fatal("JWT_SECRET is not set")
	}

	token, err := service.NewAuthService(cfg.JWTSecret).GenerateAdminToken(*subject, *ttl)
	if err != nil {
		log.Fatalf("Failed to generate token: %v", err)
	}
	fmt.Println(token)
}
