package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/akinalp/quickchat/config"
	"github.com/akinalp/quickchat/database"
	"github.com/akinalp/quickchat/pkg/logger"
	"github.com/akinalp/quickchat/ws"
)

const shutdownTimeout = 10 * time.Second

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP and WebSocket server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			log, err := logger.New(cfg.Log)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg, log)
		},
	}
}

// openStore opens the database and builds the repositories on it.
func openStore(cfg *config.Config, log *slog.Logger) (*database.DB, *Repositories, error) {
	db, err := database.New(cfg.Database.Path, database.Migrations(), log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	return db, initRepositories(db.Conn), nil
}

// serve runs the server until ctx is cancelled, then shuts down in order:
// stop accepting requests, close live connections, let in-flight
// deliveries finish, close the database.
func serve(ctx context.Context, cfg *config.Config, log *slog.Logger) error {
	db, repos, err := openStore(cfg, log)
	if err != nil {
		return err
	}
	defer db.Close()

	hub := ws.NewHub(log)

	svcs, err := initServices(repos, hub, cfg, log)
	if err != nil {
		return err
	}
	defer svcs.Close()

	h := initHandlers(svcs, repos, hub, cfg, log)

	srv := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           initRoutes(h, cfg.Upload.Dir, cfg.Server.AllowedOrigins),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info("server listening",
			"addr", cfg.Server.Addr(),
			"translation_provider", cfg.Translation.Provider)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
	}

	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	// Hijacked WebSocket connections are not tracked by srv.Shutdown.
	hub.Shutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("forced shutdown", "error", err)
		return err
	}

	log.Info("server stopped gracefully")
	return nil
}
