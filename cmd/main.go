package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"
	"time"

	"campaign_forum/internal/config"
	"campaign_forum/internal/handlers"
	"campaign_forum/internal/logger"
	"campaign_forum/internal/repository"
	"campaign_forum/internal/repository/db"
	"campaign_forum/internal/server"
	"campaign_forum/internal/service"
)

const shutdownTimeout = 10 * time.Second

// @title                       Campaign Forum API
// @version                     1.0
// @description                 JSON endpoints of the campaign forum.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	// load configs/config.yml plus FORUM_* overrides
	cfg, err := config.Load("configs", "config")
	if err != nil {
		logger.Get(logger.InfoLevel).Fatalw("error reading config", "err", err)
	}

	// init logger
	log := logger.Get(cfg.LogLevel)

	// open DB
	conn, err := openDB(cfg, log)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err)
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil {
			log.Errorw("failed to close sqlite", "err", cerr)
		}
	}()

	// wire dependencies
	repos := repository.NewRepository(conn)
	services := service.NewService(repos, service.AuthConfig{
		SigningKey:  cfg.Auth.SigningKey,
		TokenTTL:    cfg.Auth.TokenTTL,
		RememberTTL: cfg.Auth.RememberTTL,
	}, log)
	webHandler := handlers.NewHandler(services, log.Named("http"),
		handlers.WithSessionCookie(cfg.Session.CookieName, cfg.Session.Secure),
		handlers.WithFeedInterval(cfg.FeedInterval),
	)

	// start HTTP server
	srv := &server.Server{}
	runHTTPServer(srv, cfg.Port, webHandler, log)

	// graceful shutdown
	waitForShutdown(srv, log)
}

func openDB(cfg *config.Config, log *logger.Logger) (*sql.DB, error) {
	log.Infow("opening sqlite", "path", cfg.DBPath)
	return db.InitDB(cfg.DBPath)
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		log.Infow("http server listening", "port", port)
		if err := srv.Run(port, handler.InitRoutes()); err != nil {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// allow in-flight requests to complete
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "err", err)
	}
}
