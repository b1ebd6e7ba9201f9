package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"

	"reportsvc/internal/config"
	"reportsvc/internal/handler"
	"reportsvc/internal/middleware"
	"reportsvc/internal/repository/postgres"
	"reportsvc/internal/server"
	"reportsvc/internal/service"

	"github.com/joho/godotenv"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	if err := run(); err != nil {
		// the configured logger and its file are closed by now
		slog.New(slog.NewJSONHandler(os.Stderr, nil)).Error("server exited", "error", err)
		os.Exit(1)
	}
}

// run owns every deferred cleanup so they all fire before main exits.
func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	// Setup structured logging
	logger, logCloser, err := config.NewLogger(cfg)
	if err != nil {
		return fmt.Errorf("setup logging: %w", err)
	}
	defer logCloser.Close()
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"table_prefix", cfg.TablePrefix,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Create pgx connection pool
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("create connection pool: %w", err)
	}
	defer pool.Close()

	logger.Info("database connected",
		"max_conns", pool.Config().MaxConns,
		"min_conns", pool.Config().MinConns,
	)

	// Create table names and make sure the tables exist
	tables := postgres.NewTableNames(cfg.TablePrefix)
	if err := postgres.EnsureSchema(ctx, pool, tables); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}

	// Create repositories
	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	}
	projectRepo := postgres.NewProjectRepository(repoConfig)
	reportRepo := postgres.NewReportRepository(repoConfig)
	txManager := postgres.NewTransactionManager(repoConfig)

	// Create services
	validator := service.NewResourceValidator(projectRepo)
	projectService := service.NewProjectService(projectRepo, reportRepo, txManager, logger)
	reportService := service.NewReportService(reportRepo, validator, logger)

	logger.Info("services initialized")

	trusted, err := middleware.ParseTrustedProxies(cfg.TrustedProxies)
	if err != nil {
		return fmt.Errorf("parse trusted proxies: %w", err)
	}

	router := server.NewRouter(server.Dependencies{
		AuthToken:      cfg.AuthToken,
		CORSOrigins:    cfg.CORSOrigins,
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,
		TrustedProxies: trusted,
		Logger:         logger,
		ProjectHandler: handler.NewProjectHandler(projectService, logger),
		ReportHandler:  handler.NewReportHandler(reportService, logger),
		HealthHandler:  handler.NewHealthHandler(pool, logger),
	})

	srv := server.New(cfg.Port, router)
	ln, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", srv.Addr, err)
	}

	if err := server.Run(ctx, srv, ln, cfg.ShutdownTimeout, logger); err != nil {
		return fmt.Errorf("serve: %w", err)
	}
	logger.Info("server stopped")
	return nil
}
