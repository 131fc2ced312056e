package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/01moynul/inventory-dashboard/internal/config"
	"github.com/01moynul/inventory-dashboard/internal/database"
	"github.com/01moynul/inventory-dashboard/internal/handlers"
	"github.com/01moynul/inventory-dashboard/internal/logging"
	"github.com/01moynul/inventory-dashboard/internal/routes"
	"github.com/01moynul/inventory-dashboard/internal/storage"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "inventory api: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// 0. --- Load Environment Variables (.env) ---
	cfg, warnings, err := config.Load()
	if err != nil {
		return err
	}

	// 1. --- Logger ---
	log, err := logging.New(cfg.LogMode)
	if err != nil {
		return err
	}
	defer log.Sync()
	for _, w := range warnings {
		log.Warn(w)
	}
	if cfg.LogMode == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. --- Storage ---
	store, err := openStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Error("failed to close store", zap.Error(err))
		}
	}()

	// --- Router Setup ---
	app := handlers.New(store, log)
	router := routes.SetupRouter(app, routes.Options{
		AllowedOrigin: cfg.CORSAllowedOrigin,
		Logger:        log,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// --- Start Server ---
	serveErr := make(chan error, 1)
	go func() {
		log.Info("starting inventory API server", zap.String("addr", srv.Addr), zap.String("storage", cfg.StorageBackend))
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	// --- Graceful Shutdown ---
	log.Info("shutting down", zap.Duration("timeout", cfg.ShutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func openStore(ctx context.Context, cfg *config.Config, log *zap.Logger) (storage.Store, error) {
	if cfg.StorageBackend == config.BackendMemory {
		log.Warn("using in-memory storage; data will not survive a restart")
		return storage.NewMemoryStore(), nil
	}

	db, err := database.OpenDBWithDSN(ctx, cfg.DSN, cfg.Pool)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return storage.NewSQLStore(db), nil
}
