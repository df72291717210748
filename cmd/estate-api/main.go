// cmd/estate-api/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"estate-match-backend/internal/catalog"
	"estate-match-backend/internal/catalog/configstore"
	awsclients "estate-match-backend/internal/common/aws"
	"estate-match-backend/internal/common/config"
	"estate-match-backend/internal/common/database"
	commonhttp "estate-match-backend/internal/common/http"
	"estate-match-backend/internal/common/logger"
	"estate-match-backend/internal/httpapi"
	"estate-match-backend/internal/inquiry"
	"estate-match-backend/internal/match"
	"estate-match-backend/internal/sheets"
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

	zapLog.Info("Starting estate API...",
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)

	ctx := context.Background()

	// --- Init PostgreSQL with retry ---
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

	// --- Init Redis with retry ---
	var redisClient *database.RedisClient
	err = retryWithBackoff(func() error {
		var err error
		redisClient, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return err
		}
		return redisClient.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Redis connection")

	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	defer redisClient.Close()
	zapLog.Info("Redis connected successfully")

	// --- Init Elasticsearch (optional) ---
	var searchIndex *catalog.SearchIndex
	if cfg.Database.Elasticsearch.Enabled {
		var esClient *database.ElasticsearchClient
		err = retryWithBackoff(func() error {
			var err error
			esClient, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
			if err != nil {
				return err
			}
			return esClient.Ping()
		}, 15, 2*time.Second, zapLog, "Elasticsearch connection")

		if err != nil {
			zapLog.Fatal("elasticsearch failed after retries", zap.Error(err))
		}
		searchIndex = catalog.NewSearchIndex(esClient, cfg.Database.Elasticsearch.Index, log)
		zapLog.Info("Elasticsearch connected successfully")
	}

	// --- Init AWS notification clients (optional) ---
	var sesClient *awsclients.SESClient
	var snsClient *awsclients.SNSClient
	if cfg.Notifications.Email.Enabled {
		sesClient, err = awsclients.NewSESClient(ctx, cfg.Notifications.AWS.Region)
		if err != nil {
			zapLog.Fatal("ses client failed", zap.Error(err))
		}
	}
	if cfg.Notifications.SMS.Enabled {
		snsClient, err = awsclients.NewSNSClient(ctx, cfg.Notifications.AWS.Region)
		if err != nil {
			zapLog.Fatal("sns client failed", zap.Error(err))
		}
	}

	// --- Init Kafka lead stream (optional) ---
	var events *inquiry.EventPublisher
	if cfg.Kafka.Enabled {
		events = inquiry.NewEventPublisher(cfg.Kafka.Broker, cfg.Kafka.LeadsTopic, log)
		defer events.Close()
		zapLog.Info("Kafka lead stream enabled", zap.String("topic", cfg.Kafka.LeadsTopic))
	}

	// --- Wire the catalog pipeline ---
	store := configstore.New(pg, log)
	fetcher := sheets.NewFetcher(
		store,
		commonhttp.NewClient(config.GetDuration(cfg.Sheets.FetchTimeout)),
		config.GetDuration(cfg.Sheets.FetchTimeout),
		log,
	)

	repo := catalog.NewRepository()
	cache := catalog.NewSnapshotCache(redisClient, config.GetDuration(cfg.Sheets.CacheTTL), log)
	refresher := catalog.NewRefresher(fetcher, repo, cache, searchIndex, config.GetDuration(cfg.Sheets.RefreshInterval), log)

	refresher.WarmFromCache(ctx)

	refreshCtx, stopRefresher := context.WithCancel(ctx)
	go refresher.Run(refreshCtx)

	// --- Wire the inquiry pipeline ---
	limiter := inquiry.NewRateLimiter(
		redisClient,
		config.GetDuration(cfg.Inquiries.RateLimitWindow),
		cfg.Inquiries.RateLimitMax,
		log,
	)
	notifier := inquiry.NewNotifier(sesClient, snsClient, cfg.Notifications, log)
	inquiries := inquiry.NewService(inquiry.NewStore(pg, log), limiter, notifier, events, log)

	// --- Wire the match engine ---
	engine := match.NewEngine(match.WeightsFromConfig(cfg.Scoring), log)

	// --- HTTP server ---
	handlers := httpapi.NewHandlers(
		repo,
		searchIndex,
		refresher,
		cache,
		store,
		engine,
		inquiries,
		cfg.Server.AdminToken,
		log,
	)

	router := mux.NewRouter()
	handlers.RegisterRoutes(router)

	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		zapLog.Info("HTTP server listening", zap.String("address", cfg.Server.Address))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping...")
	stopRefresher()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("HTTP server shutdown failed", zap.Error(err))
	}

	zapLog.Info("Estate API stopped gracefully")
}
