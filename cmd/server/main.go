package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"blog_cms/internal/config"
	"blog_cms/internal/imaging"
	"blog_cms/internal/publisher"
	"blog_cms/internal/server"
	"blog_cms/internal/service"
	"blog_cms/internal/storage/disk"
	"blog_cms/internal/storage/postgres"
	"blog_cms/internal/token"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	logger := setupLogger("info")

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger = setupLogger(cfg.LogLevel)

	if cfg.Auth.JWTSecret == "" {
		logger.Error("auth.jwt_secret must be set")
		os.Exit(1)
	}

	db, err := sqlx.Connect("postgres", cfg.Database.DSN())
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Error("failed to ping database", "error", err)
		os.Exit(1)
	}
	logger.Info("connected to database")

	var events service.EventPublisher
	if cfg.Events.Enabled {
		rabbitMQ, err := publisher.NewRabbitMQ(publisher.Config{
			URL:        cfg.Events.URL,
			Exchange:   cfg.Events.Exchange,
			RoutingKey: cfg.Events.RoutingKey,
			QueueName:  cfg.Events.QueueName,
		}, logger)
		if err != nil {
			logger.Error("failed to connect to rabbitmq", "error", err)
			os.Exit(1)
		}
		defer rabbitMQ.Close()
		events = rabbitMQ
	}

	articleStore := postgres.NewArticleStore(db)
	principalStore := postgres.NewPrincipalStore(db)
	fileStore := postgres.NewFileStore(db)
	txManager := postgres.NewTransactionManager(db)

	blobStore, err := disk.NewBlobStore(cfg.Server.UploadDir, cfg.Server.BaseURL+"/uploads")
	if err != nil {
		logger.Error("failed to prepare upload directory", "error", err)
		os.Exit(1)
	}

	issuer := token.NewIssuer(token.Config{
		Secret: cfg.Auth.JWTSecret,
		TTL:    cfg.Auth.TokenTTL,
	})
	processor := imaging.NewProcessor(cfg.Content.MaxImageWidth, cfg.Content.ImageQuality)

	contentService := service.NewContentService(articleStore, txManager, events, logger, cfg.Content)
	authService := service.NewAuthService(principalStore, issuer, logger, cfg.Auth)
	uploadService := service.NewUploadService(fileStore, blobStore, processor, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := authService.EnsureBootstrapPrincipal(ctx); err != nil {
		logger.Error("failed to bootstrap principal", "error", err)
		os.Exit(1)
	}

	e := server.New(contentService, authService, uploadService, logger, cfg.Server)

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := e.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown error", "error", err)
		}
	}()

	logger.Info("starting blog server", "addr", cfg.Server.Addr)

	if err := e.Start(cfg.Server.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

func setupLogger(level string) *slog.Logger {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: logLevel}
	handler := slog.NewJSONHandler(os.Stdout, opts)
	return slog.New(handler)
}
