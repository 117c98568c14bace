// Package server assembles the router, middleware and handlers, and runs
// the HTTP server with graceful shutdown. It is the composition root:
// every dependency chain is wired here, nothing else constructs layers.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/fillemon10/filip-sjolander/internal/action"
	"github.com/fillemon10/filip-sjolander/internal/auth"
	"github.com/fillemon10/filip-sjolander/internal/handler"
	"github.com/fillemon10/filip-sjolander/internal/middleware"
	sqliteRepo "github.com/fillemon10/filip-sjolander/internal/repository/sqlite"
	"github.com/fillemon10/filip-sjolander/internal/webcache"
)

// Config holds server configuration, loaded from the environment by main.
type Config struct {
	Port        int
	TemplateDir string
	StaticDir   string
	DBPath      string

	// JWTSecret signs session tokens. Required.
	JWTSecret string

	// GitHub OAuth app credentials. When ClientID is empty the OAuth
	// routes are not registered and only credential sign-in works.
	GitHubClientID     string
	GitHubClientSecret string
	GitHubCallbackURL  string

	// CacheTTL bounds how stale a cached listing page may get when an
	// invalidation is missed (e.g. a write from outside this process).
	CacheTTL time.Duration

	// DBTimeout bounds each persistence statement issued by the actions.
	DBTimeout time.Duration
}

// Server owns the router and the resources that need closing on shutdown.
type Server struct {
	router *chi.Mux
	config Config
	logger *slog.Logger
	db     *sqliteRepo.DB
}

// contextSessions adapts auth's request-context session storage to the
// action layer's Sessions interface.
type contextSessions struct{}

func (contextSessions) Current(ctx context.Context) *auth.Session {
	return auth.SessionFromContext(ctx)
}

// New opens the database and wires every handler into the router.
func New(cfg Config, logger *slog.Logger) (*Server, error) {
	db, err := sqliteRepo.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		db:     db,
	}

	if err := s.setupRoutes(); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting up routes: %w", err)
	}

	return s, nil
}

func (s *Server) setupRoutes() error {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))

	fileServer := http.FileServer(http.Dir(s.config.StaticDir))
	s.router.Handle("/static/*", http.StripPrefix("/static/", fileServer))

	renderer, err := handler.NewRenderer(s.config.TemplateDir, s.logger)
	if err != nil {
		return err
	}

	tokens, err := auth.NewTokenService(s.config.JWTSecret)
	if err != nil {
		return fmt.Errorf("creating token service: %w", err)
	}
	passwords := auth.NewPasswordService()
	credentials := auth.NewCredentialsProvider(s.db, passwords, tokens, s.logger)

	// Listing pages are cached per full URL; any successful action on an
	// entity invalidates every cached variant of its listing route.
	cache := webcache.New(s.config.CacheTTL, s.logger)
	cache.Register(action.DashboardPath, action.InvoicesPath, action.PortfolioPath)

	actions := action.New(action.Deps{
		Invoices:  s.db,
		Portfolio: s.db,
		Users:     s.db,
		Cache:     cache,
		Sessions:  contextSessions{},
		SignIn:    credentials,
		Timeout:   s.config.DBTimeout,
		Logger:    s.logger,
	})

	login := handler.NewLoginHandler(actions, renderer, s.logger)
	dashboard := handler.NewDashboardHandler(s.db, s.db, renderer, s.logger)
	invoices := handler.NewInvoiceHandler(actions, s.db, s.db, renderer, s.logger)
	portfolio := handler.NewPortfolioHandler(actions, s.db, renderer, s.logger)

	// Public routes.
	s.router.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, action.DashboardPath, http.StatusSeeOther)
	})
	s.router.Get("/login", login.HandleLoginPage)
	s.router.Post("/login", login.HandleLogin)
	s.router.Post("/logout", login.HandleLogout)

	if s.config.GitHubClientID != "" {
		github := auth.NewGitHubProvider(
			s.config.GitHubClientID,
			s.config.GitHubClientSecret,
			s.config.GitHubCallbackURL,
		)
		oauth := handler.NewOAuthHandler(github, tokens, s.db, renderer, s.logger)
		s.router.Get("/auth/github/login", oauth.HandleGitHubLogin)
		s.router.Get("/auth/github/callback", oauth.HandleGitHubCallback)
	} else {
		s.logger.Warn("GitHub OAuth not configured, only credential sign-in available")
	}

	// Dashboard routes: session required, listing pages cached.
	s.router.Route("/dashboard", func(r chi.Router) {
		r.Use(auth.RequireAuth(tokens))
		r.Use(cache.Middleware)

		r.Get("/", dashboard.HandleDashboard)

		r.Route("/invoices", func(r chi.Router) {
			r.Get("/", invoices.HandleList)
			r.Get("/create", invoices.HandleNewForm)
			r.Post("/create", invoices.HandleCreate)
			r.Get("/{id}/edit", invoices.HandleEditForm)
			r.Post("/{id}/edit", invoices.HandleUpdate)
			r.Post("/{id}/delete", invoices.HandleDelete)
		})

		r.Route("/portfolio", func(r chi.Router) {
			r.Get("/", portfolio.HandleList)
			r.Get("/create", portfolio.HandleNewForm)
			r.Post("/create", portfolio.HandleCreate)
			r.Get("/{id}/edit", portfolio.HandleEditForm)
			r.Post("/{id}/edit", portfolio.HandleUpdate)
			r.Post("/{id}/delete", portfolio.HandleDelete)
		})
	})

	s.router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		renderer.NotFound(w)
	})

	return nil
}

// Start runs the server until SIGINT/SIGTERM, then shuts down gracefully:
// stop accepting connections, drain in-flight requests, close the
// database so the WAL is flushed.
func (s *Server) Start() error {
	defer s.db.Close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Port),
			slog.String("database", s.config.DBPath),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	s.logger.Info("server stopped")
	return nil
}

// DB exposes the database for startup tasks (admin bootstrap, seeding).
func (s *Server) DB() *sqliteRepo.DB {
	return s.db
}
