package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jwebster45206/chronicle/internal/config"
	"github.com/jwebster45206/chronicle/internal/handlers"
	"github.com/jwebster45206/chronicle/internal/logger"
	"github.com/jwebster45206/chronicle/internal/middleware"
	"github.com/jwebster45206/chronicle/internal/storage"
	"github.com/jwebster45206/chronicle/pkg/analysis"
	"github.com/jwebster45206/chronicle/pkg/era"
	"github.com/jwebster45206/chronicle/pkg/narration"
	pkgstorage "github.com/jwebster45206/chronicle/pkg/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	log := logger.Setup(cfg)

	log.Info("Starting Chronicle API",
		"port", cfg.Port,
		"environment", cfg.Environment,
		"data_dir", cfg.DataDir,
		"storage", cfg.StorageDriver,
		"session_ttl", cfg.SessionTTL)

	store, err := openStorage(cfg, log)
	if err != nil {
		log.Error("Failed to create storage", "error", err)
		os.Exit(1)
	}

	storageCtx, storageCancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer storageCancel()
	if err := store.WaitForConnection(storageCtx, 30, 2*time.Second); err != nil {
		log.Error("Failed to connect to storage", "error", err)
		os.Exit(1)
	}

	eras, err := store.ListEras(storageCtx)
	if err != nil {
		log.Error("Failed to load eras", "error", err)
		os.Exit(1)
	}
	if problems := era.Validate(eras); len(problems) > 0 {
		log.Warn("Era data has problems", "problems", problems)
	}
	log.Info("Eras loaded", "count", len(eras))

	seed := rand.Uint64()
	if cfg.NarrationSeed != nil {
		seed = *cfg.NarrationSeed
	}
	builder := narration.NewBuilder(narration.NewLockedRand(seed))
	processor := analysis.NewProcessor(analysis.DefaultConfig())

	mux := http.NewServeMux()

	healthHandler := handlers.NewHealthHandler(store, log)
	mux.Handle("/health", healthHandler)

	erasHandler := handlers.NewErasHandler(store, era.DefaultDescriber, processor, builder, log).
		AllowOrigins(cfg.CORSOrigins...)
	mux.Handle("/v1/eras", erasHandler)
	mux.Handle("/v1/eras/", erasHandler)

	sessionHandler := handlers.NewSessionHandler(store, era.DefaultDescriber, log)
	mux.Handle("/v1/sessions", sessionHandler)
	mux.Handle("/v1/sessions/", sessionHandler)

	limiter := middleware.NewRateLimiter(cfg.RateLimit, cfg.RateBurst)
	handler := middleware.Logger(middleware.CORS(cfg.CORSOrigins)(middleware.RateLimit(limiter)(mux)))
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("Server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	if cfg.WatchEras {
		g.Go(func() error {
			if err := store.WatchEras(gCtx); err != nil {
				// Without a watcher eras are read from disk on every request.
				log.Warn("Era file watcher stopped", "error", err)
			}
			return nil
		})
	}
	g.Go(func() error {
		<-gCtx.Done()
		log.Info("Server is shutting down...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("Server stopped with error", "error", err)
	}

	if err := store.Close(); err != nil {
		log.Error("Error closing storage connection", "error", err)
	}

	log.Info("Server exited")
}

// apiStorage is the storage the API runs on, plus its startup and
// background hooks.
type apiStorage interface {
	pkgstorage.Storage
	WaitForConnection(ctx context.Context, maxRetries int, retryDelay time.Duration) error
	WatchEras(ctx context.Context) error
}

func openStorage(cfg *config.Config, log *slog.Logger) (apiStorage, error) {
	if cfg.StorageDriver == "sqlite" {
		return storage.NewSQLiteStorage(cfg.SQLitePath, cfg.DataDir, cfg.SessionTTL, log)
	}
	return storage.NewRedisStorage(cfg.RedisURL, cfg.DataDir, cfg.SessionTTL, log)
}
