package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	httpAdapter "github.com/iho/gcashledger/internal/adapter/http"
	"github.com/iho/gcashledger/internal/adapter/http/handler"
	"github.com/iho/gcashledger/internal/adapter/http/middleware"
	postgresRepo "github.com/iho/gcashledger/internal/adapter/repository/postgres"
	"github.com/iho/gcashledger/internal/infrastructure/postgres/generated"
	redisRepo "github.com/iho/gcashledger/internal/adapter/repository/redis"
	"github.com/iho/gcashledger/internal/infrastructure/auth"
	"github.com/iho/gcashledger/internal/infrastructure/config"
	"github.com/iho/gcashledger/internal/infrastructure/eventpublisher"
	"github.com/iho/gcashledger/internal/infrastructure/export"
	"github.com/iho/gcashledger/internal/infrastructure/logger"
	"github.com/iho/gcashledger/internal/infrastructure/metrics"
	"github.com/iho/gcashledger/internal/infrastructure/postgres"
	"github.com/iho/gcashledger/internal/infrastructure/redis"
	"github.com/iho/gcashledger/internal/usecase"
)

const limiterCleanupInterval = time.Minute

// version is stamped at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat, Version: version})
	logger.SetGlobal(appLogger)

	if err := run(cfg, appLogger); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}
	log.Info().Msg("server stopped")
}

func run(cfg *config.Config, appLogger zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.AutoMigrate {
		if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
		log.Info().Str("path", cfg.MigrationsPath).Msg("migrations applied")
	}

	// Connect to PostgreSQL
	pool, err := postgres.NewPoolWithConfig(ctx, postgres.PoolConfig{
		DatabaseURL:    cfg.DatabaseURL,
		MaxConns:       cfg.DatabaseMaxConns,
		MinConns:       cfg.DatabaseMinConns,
		ConnectTimeout: cfg.DatabaseTimeout,
		StartupWait:    cfg.DatabaseStartupWait,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to postgres: %w", err)
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	// Connect to Redis
	redisClient, err := redis.NewClientWithConfig(ctx, redis.ClientConfig{
		URL:         cfg.RedisURL,
		PoolSize:    cfg.RedisPoolSize,
		StartupWait: cfg.RedisStartupWait,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to redis: %w", err)
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	m := metrics.New()

	// Repositories
	txManager := postgresRepo.NewTxManager(pool, cfg.DatabaseLockTimeout)
	ownerRepo := postgresRepo.NewOwnerRepository(pool)
	entryRepo := postgresRepo.NewLedgerEntryRepository(pool)
	historyRepo := postgresRepo.NewBalanceHistoryRepository(pool)
	profitRepo := postgresRepo.NewProfitRepository(pool)
	categoryRepo := postgresRepo.NewCategoryRepository(pool)
	analyticsRepo := postgresRepo.NewAnalyticsRepository(pool)
	reportRepo := postgresRepo.NewReportRepository(pool)
	outboxRepo := outboxRepository(cfg, pool)
	cache := redisRepo.NewCache(redisClient)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)
	idGen := postgresRepo.NewULIDGenerator()
	retrier := postgresRepo.NewRetrier().WithMetrics(m)

	// Use cases
	ownerUC := usecase.NewOwnerUseCase(txManager, ownerRepo, historyRepo, profitRepo, outboxRepo, cache, idGen, m)
	txUC := usecase.NewTransactionUseCase(txManager, ownerRepo, entryRepo, historyRepo, profitRepo, categoryRepo,
		outboxRepo, cache, retrier, idGen, m)
	queryUC := usecase.NewQueryUseCase(ownerRepo, entryRepo, historyRepo, profitRepo, analyticsRepo,
		usecase.WithBalanceCache(cache, cfg.BalanceCacheTTL),
		usecase.WithLowBalanceThresholds(cfg.LowBalanceElectronic, cfg.LowBalanceCash),
		usecase.WithQueryMetrics(m),
	)
	reportUC := usecase.NewReportUseCase(ownerRepo, entryRepo, analyticsRepo, reportRepo, reportRenderers(), idGen, m)
	reconcileUC := usecase.NewReconciliationUseCase(ownerRepo, profitRepo, analyticsRepo)
	categoryUC := usecase.NewCategoryUseCase(ownerRepo, categoryRepo, idGen)

	var (
		tokens   handler.TokenIssuer
		verifier middleware.TokenVerifier
	)
	if cfg.AuthEnabled {
		jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiration)
		tokens, verifier = jwtManager, jwtManager
		log.Info().Dur("expiration", cfg.JWTExpiration).Msg("jwt authentication enabled")
	}

	rateLimiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst).WithMetrics(m)
	go cleanupLimiters(ctx, rateLimiter, limiterCleanupInterval)

	// Outbox relay
	if cfg.OutboxEnabled {
		publisher, closePublisher, err := newPublisher(cfg, appLogger)
		if err != nil {
			return err
		}
		defer closePublisher()

		relay := eventpublisher.NewEventPublisher(eventpublisher.Config{
			OutboxRepo: outboxRepo,
			Publisher:  publisher,
			Metrics:    m,
			Logger:     &appLogger,
			BatchSize:  cfg.OutboxBatchSize,
			Interval:   cfg.OutboxPollInterval,
			Retention:  cfg.OutboxRetention,
		})
		go func() {
			if err := relay.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.Error().Err(err).Msg("event publisher stopped")
			}
		}()
	}

	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		OwnerHandler:       handler.NewOwnerHandler(ownerUC, tokens),
		TransactionHandler: handler.NewTransactionHandler(txUC, queryUC),
		BalanceHandler:     handler.NewBalanceHandler(queryUC),
		CategoryHandler:    handler.NewCategoryHandler(categoryUC),
		ReportHandler:      handler.NewReportHandler(reportUC, reconcileUC),
		HealthHandler:      handler.NewHealthHandler(pool, redisClient),
		Owners:             ownerUC,
		TokenVerifier:      verifier,
		IdempotencyStore:   idempotencyStore,
		IdempotencyTTL:     cfg.IdempotencyTTL,
		RateLimiter:        rateLimiter,
		Metrics:            m,
		Logger:             &appLogger,
	})

	server := newHTTPServer(cfg, router)

	serverErr := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			return err
		}
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	return nil
}

func newHTTPServer(cfg *config.Config, h http.Handler) *http.Server {
	return &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      h,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}
}

func outboxRepository(cfg *config.Config, db generated.DBTX) usecase.OutboxRepository {
	if !cfg.OutboxEnabled {
		return postgresRepo.NewNullOutboxRepository()
	}
	return postgresRepo.NewOutboxRepository(db)
}

func reportRenderers() map[string]usecase.ReportRenderer {
	return map[string]usecase.ReportRenderer{
		"pdf":  export.NewPDFRenderer(),
		"xlsx": export.NewXLSXRenderer(),
	}
}

// newPublisher picks Kafka when brokers are configured and the log otherwise.
func newPublisher(cfg *config.Config, appLogger zerolog.Logger) (eventpublisher.Publisher, func(), error) {
	if len(cfg.KafkaBrokers) == 0 {
		log.Info().Msg("no kafka brokers configured, events go to the log")
		return eventpublisher.NewLogPublisher(appLogger), func() {}, nil
	}

	kp, err := eventpublisher.NewKafkaPublisher(eventpublisher.KafkaConfig{
		Brokers: cfg.KafkaBrokers,
		Topic:   cfg.KafkaTopic,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create kafka publisher: %w", err)
	}
	log.Info().Strs("brokers", cfg.KafkaBrokers).Str("topic", cfg.KafkaTopic).Msg("publishing events to kafka")

	return kp, func() {
		if err := kp.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to close kafka writer")
		}
	}, nil
}

func cleanupLimiters(ctx context.Context, rl *middleware.RateLimiter, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := rl.CleanupLimiters(10 * every); n > 0 {
				log.Debug().Int("removed", n).Msg("pruned idle rate limiters")
			}
		}
	}
}
