// cmd/matching-service/main.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"placement-matching/internal/common/config"
	"placement-matching/internal/common/database"
	"placement-matching/internal/common/logger"
	"placement-matching/internal/common/observability"
	"placement-matching/internal/matching"
	"placement-matching/internal/store/elastic"
	"placement-matching/internal/store/postgres"
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
			delay *= 2 // Exponential backoff
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()

	// Wrap zap logger with our logger interface
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting matching service...",
		zap.String("name", cfg.App.Name),
		zap.String("version", cfg.App.Version),
		zap.String("jobSource", cfg.Matching.JobSource),
	)

	obs := observability.New("matching-service")
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Init PostgreSQL with retry ---
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		// Test the connection with context
		return pg.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "PostgreSQL connection")

	if err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	defer pg.Close()
	zapLog.Info("PostgreSQL connected successfully")

	// --- Init Redis with retry ---
	var redisClient *database.RedisClient
	err = retryWithBackoff(func() error {
		var err error
		redisClient, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return err
		}
		// Test the connection with context
		return redisClient.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Redis connection")

	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	defer redisClient.Close()
	zapLog.Info("Redis connected successfully")

	// --- Init Stores ---
	cacheTTL := time.Duration(cfg.Matching.ProfileCacheTTL) * time.Second
	profileStore := postgres.NewProfileStore(pg.DB, redisClient.Client, cacheTTL, log)

	var jobStore matching.JobStore
	switch cfg.Matching.JobSource {
	case "elasticsearch":
		// --- Init Elasticsearch with retry ---
		var esClient *database.ElasticsearchClient
		err = retryWithBackoff(func() error {
			var err error
			esClient, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
			if err != nil {
				return err
			}
			// Test the connection
			return esClient.Ping()
		}, 15, 2*time.Second, zapLog, "Elasticsearch connection")

		if err != nil {
			zapLog.Fatal("elasticsearch failed after retries", zap.Error(err))
		}
		zapLog.Info("Elasticsearch connected successfully")

		jobStore = elastic.NewJobStore(esClient.Client, cfg.Database.Elasticsearch.JobIndex, log)
	default:
		jobStore = postgres.NewJobStore(pg.DB, log)
	}

	engine := matching.NewEngine(profileStore, jobStore, log)
	zapLog.Info("Matching engine initialized")

	// --- Statistics Snapshot Loop ---
	snapshotCtx, stopSnapshots := context.WithCancel(ctx)
	defer stopSnapshots()
	if cfg.Matching.SnapshotInterval > 0 {
		interval := time.Duration(cfg.Matching.SnapshotInterval) * time.Second
		go runSnapshotLoop(snapshotCtx, engine, obs, log, interval)
		zapLog.Info("Statistics snapshot loop started", zap.Duration("interval", interval))
	}

	// --- Health & Metrics Server ---
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
			status := "ready"
			code := http.StatusOK
			if err := pg.Ping(r.Context()); err != nil {
				status = "not ready"
				code = http.StatusServiceUnavailable
			}
			w.WriteHeader(code)
			json.NewEncoder(w).Encode(map[string]string{
				"status": status,
				"time":   time.Now().Format(time.RFC3339),
			})
		})
		http.Handle("/metrics", promhttp.Handler())
		zapLog.Info("Health/Metrics server listening", zap.String("address", cfg.Admin.Address))
		if err := http.ListenAndServe(cfg.Admin.Address, nil); err != nil {
			zapLog.Error("Health/Metrics server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping matching service...")
	stopSnapshots()

	zapLog.Info("Matching service stopped gracefully")
}

// runSnapshotLoop periodically computes population statistics so operators
// get a fresh snapshot in the logs and metrics without querying the engine.
func runSnapshotLoop(ctx context.Context, engine *matching.Engine, obs *observability.Observability, log logger.Logger, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			start := time.Now()
			stats, err := engine.Statistics(ctx)
			if err != nil {
				obs.RecordSnapshot(ctx, "error")
				obs.RecordSnapshotDuration(ctx, time.Since(start), "error")
				log.Error("statistics snapshot failed", map[string]interface{}{
					"error": err,
				})
				continue
			}

			obs.RecordSnapshot(ctx, "ok")
			obs.RecordSnapshotDuration(ctx, time.Since(start), "ok")
			log.Info("statistics snapshot", map[string]interface{}{
				"totalUsers":        stats.TotalUsers,
				"totalJobs":         stats.TotalJobs,
				"averageMatchScore": stats.AverageMatchScore,
			})
		}
	}
}
