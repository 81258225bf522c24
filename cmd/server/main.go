package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/forgo/eventboard/internal/config"
	"github.com/forgo/eventboard/internal/database"
	"github.com/forgo/eventboard/internal/handler"
	"github.com/forgo/eventboard/internal/middleware"
	"github.com/forgo/eventboard/internal/notify"
	"github.com/forgo/eventboard/internal/repository"
	"github.com/forgo/eventboard/internal/service"
	"github.com/forgo/eventboard/migrations"
	"github.com/forgo/eventboard/pkg/jwt"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))
	slog.SetDefault(logger)

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
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

	if err := database.Migrate(ctx, db, migrations.FS); err != nil {
		slog.Error("failed to apply schema", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Change notifications are optional
	var publisher notify.Publisher = notify.Nop{}
	if cfg.UseRedis() {
		redisPublisher, err := notify.NewRedisPublisher(ctx, notify.RedisOptions{
			URL:     cfg.Notify.RedisURL,
			Channel: cfg.Notify.Channel,
		})
		if err != nil {
			slog.Error("failed to connect to redis", slog.String("error", err.Error()))
			os.Exit(1)
		}
		publisher = redisPublisher
		slog.Info("publishing change notifications", slog.String("channel", redisPublisher.Channel()))
	}
	defer func() { _ = publisher.Close() }()

	// Initialize JWT service
	jwtService, err := jwt.NewService(jwt.Config{
		Secret:         cfg.JWT.Secret,
		Issuer:         cfg.JWT.Issuer,
		ExpirationMins: cfg.JWT.ExpirationMins,
	})
	if err != nil {
		slog.Error("failed to initialize JWT service", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize repositories
	eventRepo := repository.NewEventRepository(db)
	userRepo := repository.NewUserRepository(db)

	// Initialize services
	tokenService := service.NewTokenService(jwtService)
	eventService := service.NewEventService(eventRepo, userRepo, publisher)

	// Routes
	router := handler.NewRouter(handler.RouterConfig{
		Events:           handler.NewEventHandler(eventService),
		Health:           handler.NewHealthHandler(db),
		Auth:             middleware.Auth(tokenService),
		ProtectMutations: cfg.Events.ProtectMutations,
		StaticDir:        cfg.Server.StaticDir,
	})

	// Apply global middleware
	globals := []middleware.Middleware{
		middleware.RequestID,
		middleware.Logger,
		middleware.Recovery,
		middleware.CORS(cfg.Server.AllowedOrigins),
	}
	if cfg.RateLimit.RPS > 0 {
		rateLimiter := middleware.NewRateLimiter(middleware.RateLimitConfig{
			RPS:   cfg.RateLimit.RPS,
			Burst: cfg.RateLimit.Burst,
		})
		globals = append(globals, middleware.RateLimit(rateLimiter))
	}
	wrapped := middleware.Chain(router, globals...)

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
			slog.Bool("protect_mutations", cfg.Events.ProtectMutations),
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
