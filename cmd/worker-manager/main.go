// cmd/worker-manager/main.go
package main

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"pathway-workers/internal/common/aws"
	"pathway-workers/internal/common/camunda"
	"pathway-workers/internal/common/config"
	"pathway-workers/internal/common/database"
	"pathway-workers/internal/common/logger"
	"pathway-workers/internal/common/observability"
	"pathway-workers/internal/common/validation"
	"pathway-workers/internal/models"
	"pathway-workers/internal/store"
	"pathway-workers/pkg/registry"

	cps "pathway-workers/internal/workers/pathway/calculate-pathway-score"
	msp "pathway-workers/internal/workers/pathway/manage-saved-pathways"
	rp "pathway-workers/internal/workers/pathway/recommend-pathways"
	srs "pathway-workers/internal/workers/pathway/send-recommendation-summary"
	uaw "pathway-workers/internal/workers/pathway/update-algorithm-weights"
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
	bootLog := logger.New("info", "console")

	cfg, err := config.Load()
	if err != nil {
		bootLog.Fatal("config load failed", zap.Error(err))
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format,
		zap.String("service", cfg.App.Name),
		zap.String("version", cfg.App.Version),
	)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting worker manager...", zap.String("environment", cfg.App.Environment))

	obs, err := observability.New(cfg.App.Name)
	if err != nil {
		zapLog.Fatal("observability init failed", zap.Error(err))
	}
	defer obs.Shutdown(context.Background())

	ctx := context.Background()

	// --- Zeebe ---
	var zeebe *camunda.Client
	err = retryWithBackoff(func() error {
		var err error
		zeebe, err = camunda.NewClientWithConfig(&camunda.ClientConfig{
			GatewayAddress:         cfg.Camunda.BrokerAddress,
			UsePlaintextConnection: true,
			RequestTimeout:         config.GetDuration(cfg.Camunda.RequestTimeout),
		})
		return err
	}, 10, 2*time.Second, zapLog, "Zeebe client initialization")
	if err != nil {
		zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
	}
	zapLog.Info("Zeebe client connected successfully")

	// --- PostgreSQL ---
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		return pg.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "PostgreSQL connection")
	if err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	defer pg.Close()
	zapLog.Info("PostgreSQL connected successfully")

	pgStore := store.NewPostgresStore(pg.DB)
	if err := pgStore.Migrate(ctx); err != nil {
		zapLog.Fatal("schema migration failed", zap.Error(err))
	}

	// --- Redis ---
	redis := database.NewRedis(cfg.Database.Redis)
	err = retryWithBackoff(func() error {
		return redis.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Redis connection")
	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	defer redis.Close()
	zapLog.Info("Redis connected successfully")

	cache := store.NewCache(redis.Client, cfg.Scoring.ProfileTTL(), cfg.Scoring.WeightsTTL())

	// --- Pathway catalog ---
	var catalog store.Catalog = pgStore
	if models.CatalogSource(cfg.Scoring.CatalogSource) == models.CatalogSourceElasticsearch {
		var esClient *database.ElasticsearchClient
		err = retryWithBackoff(func() error {
			var err error
			esClient, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
			if err != nil {
				return err
			}
			return esClient.Ping(ctx)
		}, 15, 2*time.Second, zapLog, "Elasticsearch connection")
		if err != nil {
			zapLog.Fatal("elasticsearch failed after retries", zap.Error(err))
		}
		catalog = store.NewSearchStore(esClient.Client, cfg.Database.Elasticsearch.PathwayIndex,
			cfg.Database.Elasticsearch.MaxCatalogHits)
		zapLog.Info("Elasticsearch connected successfully",
			zap.String("index", cfg.Database.Elasticsearch.PathwayIndex))
	}

	// --- Activity registry ---
	var validator *validation.Validator
	if cfg.Registry.Path != "" {
		reg, err := registry.LoadRegistry(cfg.Registry.Path)
		if err != nil {
			zapLog.Fatal("activity registry load failed", zap.Error(err))
		}
		if validator, err = validation.NewValidator(reg); err != nil {
			zapLog.Fatal("activity registry schemas invalid", zap.Error(err))
		}
		zapLog.Info("Activity registry loaded", zap.Int("activities", len(reg.Activities)))
	}

	// --- Notification clients ---
	summaryDeps := srs.Dependencies{Store: pgStore, Validator: validator, Logger: log}
	if config.IsWorkerEnabled(cfg, srs.TaskType) && (cfg.Notifications.Email.Enabled || cfg.Notifications.SMS.Enabled) {
		awsCfg, err := aws.LoadConfig(ctx, cfg.Notifications.AWS.Region)
		if err != nil {
			zapLog.Fatal("aws config load failed", zap.Error(err))
		}
		if cfg.Notifications.Email.Enabled {
			summaryDeps.Email = aws.NewSESClient(awsCfg, cfg.Notifications.Email.FromEmail)
		}
		if cfg.Notifications.SMS.Enabled {
			summaryDeps.SMS = aws.NewSNSClient(awsCfg, cfg.Notifications.SMS.SenderID)
		}
	}

	// --- Workers ---
	zc := zeebe.GetClient()
	var workers []worker.JobWorker
	start := func(taskType string, handler camunda.JobHandler) {
		if jw := camunda.StartWorker(zc, taskType, config.GetWorkerConfig(cfg, taskType), handler, obs, log); jw != nil {
			workers = append(workers, jw)
		}
	}

	start(rp.TaskType, rp.NewHandler(rp.LoadConfig(cfg), rp.Dependencies{
		Store:         pgStore,
		Catalog:       catalog,
		Resolver:      pgStore,
		Cache:         cache,
		Validator:     validator,
		Observability: obs,
		Logger:        log,
	}).Handle)

	start(cps.TaskType, cps.NewHandler(cps.LoadConfig(cfg), cps.Dependencies{
		Store:     pgStore,
		Catalog:   catalog,
		Resolver:  pgStore,
		Cache:     cache,
		Validator: validator,
		Logger:    log,
	}).Handle)

	start(msp.TaskType, msp.NewHandler(msp.LoadConfig(cfg), msp.Dependencies{
		Store:     pgStore,
		Catalog:   catalog,
		Validator: validator,
		Logger:    log,
	}).Handle)

	start(uaw.TaskType, uaw.NewHandler(uaw.LoadConfig(cfg), uaw.Dependencies{
		Store:     pgStore,
		Cache:     cache,
		Validator: validator,
		Logger:    log,
	}).Handle)

	start(srs.TaskType, srs.NewHandler(srs.LoadConfig(cfg), summaryDeps).Handle)

	zapLog.Info("Workers registered", zap.Int("running", len(workers)))

	// --- Health & Metrics Server ---
	http.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeStatus(w, http.StatusOK, "healthy", nil)
	})
	http.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		checkCtx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		checks := map[string]string{"postgres": "ok", "redis": "ok", "zeebe": "ok"}
		status, code := "ready", http.StatusOK
		for name, check := range map[string]func(context.Context) error{
			"postgres": pg.Ping,
			"redis":    redis.Ping,
			"zeebe":    zeebe.HealthCheck,
		} {
			if err := check(checkCtx); err != nil {
				checks[name] = err.Error()
				status, code = "not_ready", http.StatusServiceUnavailable
			}
		}
		writeStatus(w, code, status, checks)
	})
	http.Handle("/metrics", promhttp.Handler())

	addr := cfg.Server.Address
	if addr == "" {
		addr = ":8080"
	}
	srv := &http.Server{Addr: addr, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		zapLog.Info("Health/Metrics server listening", zap.String("address", addr))
		if err := srv.ListenAndServe(); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			zapLog.Error("Health/Metrics server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping workers...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, jw := range workers {
		jw.Close()
		jw.AwaitClose()
	}
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error stopping health server", zap.Error(err))
	}
	if err := zeebe.Close(); err != nil {
		zapLog.Error("Error closing Zeebe client", zap.Error(err))
	}

	zapLog.Info("Worker manager stopped gracefully")
}

func writeStatus(w http.ResponseWriter, code int, status string, checks map[string]string) {
	body := map[string]interface{}{
		"status": status,
		"time":   time.Now().Format(time.RFC3339),
	}
	if checks != nil {
		body["checks"] = checks
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(body)
}
