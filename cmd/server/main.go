package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/wanderlust/web/internal/config"
	"github.com/wanderlust/web/internal/database"
	"github.com/wanderlust/web/internal/handler"
	"github.com/wanderlust/web/internal/middleware"
	"github.com/wanderlust/web/internal/repository"
	"github.com/wanderlust/web/internal/service"
	"github.com/wanderlust/web/internal/session"
	"github.com/wanderlust/web/internal/upload"
	"github.com/wanderlust/web/web"
)

func main() {
	// Initialize structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Local .env is optional
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Verbose logging for local development
	if cfg.IsDevelopment() {
		slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	// Initialize database connection
	db := database.NewSurrealDB(database.Config{
		Host:      cfg.Database.Host,
		Port:      cfg.Database.Port,
		User:      cfg.Database.User,
		Password:  cfg.Database.Password,
		Namespace: cfg.Database.Namespace,
		Database:  cfg.Database.Database,
	})

	ctx := context.Background()
	if err := db.Connect(ctx); err != nil {
		slog.Error("failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()

	slog.Info("connected to database",
		slog.String("host", cfg.Database.Host),
		slog.String("database", cfg.Database.Database),
	)

	// Initialize session cookies and upload storage
	sessions := session.NewManager(session.Config{
		Secret:     cfg.Session.Secret,
		CookieName: cfg.Session.CookieName,
		MaxAge:     cfg.Session.MaxAge,
		Secure:     cfg.Session.Secure,
	})

	uploads, err := upload.NewDiskStore(cfg.Upload.Dir, cfg.Upload.BasePath)
	if err != nil {
		slog.Error("failed to initialize upload store", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	listingRepo := repository.NewListingRepository(db)
	reviewRepo := repository.NewReviewRepository(db)

	// Initialize services
	authService := service.NewAuthService(service.AuthServiceConfig{
		UserRepo: userRepo,
	})
	listingService := service.NewListingService(service.ListingServiceConfig{
		ListingRepo: listingRepo,
	})
	reviewService := service.NewReviewService(service.ReviewServiceConfig{
		ReviewRepo:  reviewRepo,
		ListingRepo: listingRepo,
	})

	// Initialize the template renderer
	renderer, err := handler.NewRenderer()
	if err != nil {
		slog.Error("failed to parse templates", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService, sessions, renderer)
	listingHandler := handler.NewListingHandler(listingService, sessions, uploads, renderer)
	reviewHandler := handler.NewReviewHandler(reviewService, sessions, renderer)

	// Create router and register routes
	mux := http.NewServeMux()

	// Health check endpoint
	mux.HandleFunc("GET /health", handler.Health(db))

	// Static assets and uploaded images
	mux.Handle("GET /static/", http.FileServerFS(web.FS))
	mux.Handle("GET "+cfg.Upload.BasePath+"/",
		http.StripPrefix(cfg.Upload.BasePath+"/", http.FileServer(http.Dir(uploads.Dir()))))

	// Home
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/listings", http.StatusFound)
	})

	requireLogin := middleware.RequireLogin(sessions)

	// Auth pages
	mux.HandleFunc("GET /signup", authHandler.SignupForm)
	mux.HandleFunc("POST /signup", authHandler.Signup)
	mux.HandleFunc("GET /login", authHandler.LoginForm)
	mux.HandleFunc("POST /login", authHandler.Login)
	mux.Handle("GET /logout", requireLogin(http.HandlerFunc(authHandler.Logout)))

	// Listing pages
	mux.HandleFunc("GET /listings", listingHandler.Index)
	mux.Handle("GET /listings/new", requireLogin(http.HandlerFunc(listingHandler.New)))
	mux.Handle("POST /listings", requireLogin(http.HandlerFunc(listingHandler.Create)))
	mux.HandleFunc("GET /listings/{id}", listingHandler.Show)
	mux.Handle("GET /listings/{id}/edit", requireLogin(http.HandlerFunc(listingHandler.Edit)))
	mux.Handle("PUT /listings/{id}", requireLogin(http.HandlerFunc(listingHandler.Update)))
	mux.Handle("DELETE /listings/{id}", requireLogin(http.HandlerFunc(listingHandler.Delete)))

	// Review endpoints (nested under listings)
	mux.Handle("POST /listings/{id}/reviews", requireLogin(http.HandlerFunc(reviewHandler.Create)))
	mux.Handle("DELETE /listings/{id}/reviews/{reviewID}", requireLogin(http.HandlerFunc(reviewHandler.Delete)))

	// Apply global middleware. MethodOverride must run before routing so
	// form posts with _method=PUT|DELETE hit the right pattern, and
	// WithUser before RequireLogin so the user ID is in context.
	wrapped := middleware.Chain(
		mux,
		middleware.RequestID,
		middleware.Logger,
		middleware.Recovery,
		middleware.Compress,
		middleware.MethodOverride,
		middleware.WithUser(sessions),
	)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      wrapped,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in goroutine
	go func() {
		slog.Info("starting server",
			slog.String("port", cfg.Server.Port),
			slog.String("env", cfg.Server.Env),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", slog.String("error", err.Error()))
	}

	slog.Info("server exited")
}
