package main

import (
	"flag"
	"fmt"
	"log/slog"
	"moviehub/pkg/config"
	"moviehub/pkg/jwt"
	"os"
	"time"
)

func main() {
	var (
		subject string
		ttl     time.Duration
	)
	flag.StringVar(&subject, "sub", "admin", "Token subject")
	flag.DurationVar(&ttl, "ttl", time.Hour, "Token lifetime")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("load config failed", "error", err)
		os.Exit(1)
	}

	provider, err := jwt.NewJWTProvider(cfg.Auth.JWTSecret, ttl)
	if err != nil {
		slog.Error("AUTH_JWT_SECRET is required", "error", err)
		os.Exit(1)
	}

	token, err := provider.GenerateAdminToken(subject)
	if err != nil {
		slog.Error("sign token failed", "error", err)
		os.Exit(1)
	}
	fmt.Println(token)
}
