// Package main is the entry point for the dashboard server. It reads
// configuration from the environment, bootstraps the first admin account
// when the database is empty, and starts the HTTP server.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/fillemon10/filip-sjolander/internal/auth"
	"github.com/fillemon10/filip-sjolander/internal/model"
	"github.com/fillemon10/filip-sjolander/internal/server"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	port := 8080
	if portStr := os.Getenv("PORT"); portStr != "" {
		var err error
		port, err = strconv.Atoi(portStr)
		if err != nil {
			logger.Error("invalid PORT value", slog.String("value", portStr))
			os.Exit(1)
		}
	}

	templateDir, _ := filepath.Abs("web/templates")
	staticDir, _ := filepath.Abs("web/static")

	dbPath := "data/dashboard.db"
	if envDB := os.Getenv("DB_PATH"); envDB != "" {
		dbPath = envDB
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		logger.Error("failed to create database directory",
			slog.String("dir", filepath.Dir(dbPath)),
			slog.String("error", err.Error()),
		)
		os.Exit(1)
	}

	// JWT_SECRET must be a long random string, e.g. openssl rand -hex 32.
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		logger.Error("JWT_SECRET not set")
		os.Exit(1)
	}

	githubClientID := os.Getenv("GITHUB_CLIENT_ID")
	githubClientSecret := os.Getenv("GITHUB_CLIENT_SECRET")
	githubCallbackURL := os.Getenv("GITHUB_CALLBACK_URL")
	if githubCallbackURL == "" {
		githubCallbackURL = fmt.Sprintf("http://localhost:%d/auth/github/callback", port)
	}

	cacheTTL := durationEnv(logger, "CACHE_TTL", 5*time.Minute)
	dbTimeout := durationEnv(logger, "DB_TIMEOUT", 5*time.Second)

	cfg := server.Config{
		Port:               port,
		TemplateDir:        templateDir,
		StaticDir:          staticDir,
		DBPath:             dbPath,
		JWTSecret:          jwtSecret,
		GitHubClientID:     githubClientID,
		GitHubClientSecret: githubClientSecret,
		GitHubCallbackURL:  githubCallbackURL,
		CacheTTL:           cacheTTL,
		DBTimeout:          dbTimeout,
	}

	srv, err := server.New(cfg, logger)
	if err != nil {
		logger.Error("failed to create server", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := bootstrapAdmin(srv, logger); err != nil {
		logger.Error("failed to bootstrap admin user", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := srv.Start(); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// bootstrapAdmin creates the first account from ADMIN_EMAIL and
// ADMIN_PASSWORD when the users table is empty. Without it a fresh
// database has no way to sign in (GitHub sign-in maps to existing users
// only, it never creates them).
func bootstrapAdmin(srv *server.Server, logger *slog.Logger) error {
	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db := srv.DB()
	count, err := db.CountUsers(ctx)
	if err != nil {
		return fmt.Errorf("counting users: %w", err)
	}
	if count > 0 {
		return nil
	}

	hash, err := auth.NewPasswordService().Hash(password)
	if err != nil {
		return fmt.Errorf("hashing admin password: %w", err)
	}

	user := &model.User{
		Name:         "Admin",
		Email:        email,
		PasswordHash: hash,
	}
	if err := db.CreateUser(ctx, user); err != nil {
		return fmt.Errorf("creating admin user: %w", err)
	}

	logger.Info("bootstrapped admin user", slog.String("email", email))
	return nil
}

// durationEnv parses an optional duration variable like "30s" or "10m".
func durationEnv(logger *slog.Logger, name string, fallback time.Duration) time.Duration {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		logger.Error("invalid duration value",
			slog.String("var", name),
			slog.String("value", raw),
		)
		os.Exit(1)
	}
	return d
}
