package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "tempmon_dashboard/docs"
	"tempmon_dashboard/internal/apiclient"
	"tempmon_dashboard/internal/handlers"
	"tempmon_dashboard/internal/logger"
	"tempmon_dashboard/internal/observability"
	"tempmon_dashboard/internal/render"
	"tempmon_dashboard/internal/repository"
	"tempmon_dashboard/internal/repository/db"
	"tempmon_dashboard/internal/server"
	"tempmon_dashboard/internal/service"
)

const shutdownTimeout = 10 * time.Second

// @title        Temperature Monitoring Dashboard
// @version      1.0
// @description  Server-rendered dashboard in front of the temperature monitoring REST API.
// @BasePath     /
func main() {
	cfg, err := loadConfig()
	if err != nil {
		logger.Get(logger.InfoLevel).Fatalw("error reading config", "err", err)
	}

	log := logger.Init(cfg.LogLevel, cfg.LogFormat)
	defer func() { _ = log.Sync() }()

	conn, err := openDB(cfg, log)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err)
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil {
			log.Errorw("failed to close sqlite", "err", cerr)
		}
	}()

	metrics := observability.NewMetrics()
	api := apiclient.New(apiclient.Config{
		BaseURL:      cfg.API.BaseURL,
		AdminBaseURL: cfg.API.AdminBaseURL,
		HealthURL:    cfg.API.HealthURL,
		Token:        cfg.API.Token,
		Timeout:      cfg.API.Timeout,
	}, nil, metrics)

	repos := repository.NewRepository(conn)
	services, err := service.NewService(repos, api, service.Config{
		SessionSecret: cfg.Session.Secret,
		SessionTTL:    cfg.Session.TTL,
		BannerTimeout: cfg.Dashboard.BannerTimeout,
		ViewIdleTTL:   cfg.Dashboard.ViewIdleTTL,
	}, metrics, log)
	if err != nil {
		log.Fatalw("failed to build services", "err", err)
	}

	renderer, err := render.New()
	if err != nil {
		log.Fatalw("failed to parse templates", "err", err)
	}
	apiHandler := handlers.NewHandler(services, renderer, metrics, handlers.Config{
		RefreshInterval: cfg.Dashboard.RefreshInterval,
		Thresholds:      cfg.Dashboard.Thresholds,
		SessionTTL:      cfg.Session.TTL,
		CookieSecure:    cfg.Session.CookieSecure,
	}, log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go services.Janitor.Run(ctx, cfg.Dashboard.SweepInterval)

	srv := &server.Server{}
	runHTTPServer(srv, cfg.Port, apiHandler, log)

	waitForShutdown(cancel, srv, log)
}

func openDB(cfg *appConfig, log *logger.Logger) (*sql.DB, error) {
	path := cfg.DB.Path
	if path == "" {
		log.Infow("db.path not set in config; using default file", "default", "tempmon.db")
		path = "tempmon.db"
	}
	return db.InitDB(path)
}

func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		if port == "" {
			port = "8080"
		}
		log.Infow("http_server_starting", "port", port)
		if err := srv.Run(port, handler.InitRoutes()); err != nil {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(cancel context.CancelFunc, srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	cancel()

	ctx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "err", err)
	}
}
