// cmd/workersglobe/main.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"workersglobe/internal/admin"
	"workersglobe/internal/api"
	"workersglobe/internal/auth"
	"workersglobe/internal/jobs"
	"workersglobe/internal/common/config"
	"workersglobe/internal/common/logger"
	"workersglobe/internal/common/observability"
	"workersglobe/internal/language"
	"workersglobe/internal/notifications"
	"workersglobe/internal/storage"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fallback := logger.New("info", "console")
		fallback.Fatal("config load failed", zap.Error(err))
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()

	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting workersglobe client daemon...",
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// --- Init Redis-backed state store with retry ---
	var store *storage.RedisStore
	err = retryWithBackoff(func() error {
		var err error
		store, err = storage.NewRedis(cfg.Storage.Redis)
		if err != nil {
			return err
		}
		return store.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Redis connection")

	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	defer store.Close()
	zapLog.Info("Redis connected successfully")

	// --- Wire API client and session ---
	client := api.NewClient(cfg.API, log, api.WithObservability(obs))

	session := auth.NewService(client, store, log)
	client.SetTokenSource(session)
	client.SetUnauthorizedHandler(session.HandleUnauthorized)

	langs := language.NewService(store, log)
	langs.Load(ctx)
	zapLog.Info("Language preference loaded", zap.String("language", langs.Current()))

	if err := session.Restore(ctx); err != nil {
		zapLog.Fatal("session restore failed", zap.Error(err))
	}

	// --- Notification feed poller ---
	feed := notifications.NewService(client, log, config.GetDuration(cfg.Notifications.RefreshDelay))
	poller := notifications.NewPoller(feed, log, config.GetDuration(cfg.Notifications.PollInterval), func() bool {
		return session.Token() != ""
	})
	go poller.Run(ctx)

	// --- Domain service clients ---
	_ = jobs.NewService(client, log, session, feed)
	_ = admin.NewService(client, store, cfg.Admin, log)

	zapLog.Info("All service clients initialized")

	// --- Health & Metrics Server ---
	if cfg.Metrics.Enabled {
		go func() {
			http.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusOK)
				json.NewEncoder(w).Encode(map[string]string{
					"status": "healthy",
					"time":   time.Now().Format(time.RFC3339),
				})
			})
			http.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				if err := store.Ping(r.Context()); err != nil {
					w.WriteHeader(http.StatusServiceUnavailable)
					json.NewEncoder(w).Encode(map[string]string{
						"status": "not ready",
						"error":  err.Error(),
					})
					return
				}
				w.WriteHeader(http.StatusOK)
				json.NewEncoder(w).Encode(map[string]string{
					"status": "ready",
					"time":   time.Now().Format(time.RFC3339),
				})
			})
			http.Handle("/metrics", promhttp.Handler())
			zapLog.Info("Health/Metrics server listening", zap.String("address", cfg.Metrics.Address))
			if err := http.ListenAndServe(cfg.Metrics.Address, nil); err != nil {
				zapLog.Error("Health/Metrics server failed", zap.Error(err))
			}
		}()
	}

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	_ = shutdownCtx

	zapLog.Info("workersglobe stopped gracefully")
}
