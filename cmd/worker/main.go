package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/arcofed/federation-api/internal/config"
	"github.com/arcofed/federation-api/internal/repository/postgres"
	"github.com/arcofed/federation-api/pkg/logger"
	"github.com/arcofed/federation-api/pkg/messaging/redis"
	"github.com/arcofed/federation-api/pkg/metrics"
	"github.com/arcofed/federation-api/pkg/worker"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	l := logger.New(cfg.Logging.Level, cfg.Logging.Pretty).Component("outbox-worker")

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	brokerLogger := l.Zerolog()
	broker, err := redis.NewRedisBroker(redis.Config{
		URL:          cfg.Redis.URL,
		MaxRetries:   3,
		RetryBackoff: 100 * time.Millisecond,
		PoolSize:     10,
		MinIdleConns: 2,
	}, &brokerLogger)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to Redis")
	}
	defer broker.Close()

	m := metrics.NewMetrics("federation", "worker")
	outboxRepo := postgres.NewOutboxRepository(db)

	processor := worker.NewOutboxProcessor(outboxRepo, broker, worker.OutboxProcessorConfig{
		BatchSize:     cfg.Outbox.BatchSize,
		PollInterval:  time.Duration(cfg.Outbox.PollIntervalSeconds) * time.Second,
		RetryAttempts: 3,
		RetryDelay:    time.Second,
		Channel:       cfg.Redis.Channel,
		Retention:     time.Duration(cfg.Outbox.RetentionHours) * time.Hour,
	}, l, m)

	ctx, cancel := context.WithCancel(context.Background())
	go processor.Start(ctx)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	l.Info("shutting down worker")
	cancel()
}
