// Package worker drains the transactional outbox to the message
// broker so config changes reach downstream consumers at least once.
package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/arcofed/federation-api/internal/model"
	"github.com/arcofed/federation-api/internal/repository"
	"github.com/arcofed/federation-api/pkg/logger"
	"github.com/arcofed/federation-api/pkg/messaging"
	"github.com/arcofed/federation-api/pkg/metrics"
)

type OutboxProcessorConfig struct {
	BatchSize     int
	PollInterval  time.Duration
	RetryAttempts int
	RetryDelay    time.Duration
	Channel       string
	Retention     time.Duration
}

func (c *OutboxProcessorConfig) normalize() {
	if c.BatchSize <= 0 {
		c.BatchSize = 50
	}
	if c.PollInterval <= 0 {
		c.PollInterval = 5 * time.Second
	}
	if c.RetryAttempts <= 0 {
		c.RetryAttempts = 3
	}
	if c.RetryDelay <= 0 {
		c.RetryDelay = time.Second
	}
	if c.Channel == "" {
		c.Channel = "config-events"
	}
}

// OutboxProcessor polls pending config-change events and publishes
// them through the broker. Processed events older than the retention
// window are purged on each cycle.
type OutboxProcessor struct {
	repo    repository.OutboxRepository
	broker  messaging.Broker
	config  OutboxProcessorConfig
	logger  *logger.Logger
	metrics *metrics.Metrics
}

func NewOutboxProcessor(
	repo repository.OutboxRepository,
	broker messaging.Broker,
	config OutboxProcessorConfig,
	log *logger.Logger,
	m *metrics.Metrics,
) *OutboxProcessor {
	config.normalize()
	return &OutboxProcessor{
		repo:    repo,
		broker:  broker,
		config:  config,
		logger:  log,
		metrics: m,
	}
}

// Start blocks until ctx is cancelled.
func (p *OutboxProcessor) Start(ctx context.Context) {
	ticker := time.NewTicker(p.config.PollInterval)
	defer ticker.Stop()

	p.logger.Info("outbox processor started",
		"channel", p.config.Channel,
		"batch_size", p.config.BatchSize)

	for {
		select {
		case <-ctx.Done():
			p.logger.Info("outbox processor stopped")
			return
		case <-ticker.C:
			if err := p.drainBatch(ctx); err != nil {
				p.logger.Error(err, "outbox batch failed")
			}
			p.purge(ctx)
		}
	}
}

func (p *OutboxProcessor) drainBatch(ctx context.Context) error {
	if p.metrics != nil {
		timer := prometheus.NewTimer(p.metrics.OutboxProcessingLatency)
		defer timer.ObserveDuration()
	}

	events, err := p.repo.GetPendingEventsWithLock(ctx, p.config.BatchSize)
	if err != nil {
		p.countDBOp("get_pending_events", "error")
		return fmt.Errorf("failed to get pending events: %w", err)
	}
	p.countDBOp("get_pending_events", "success")

	for _, event := range events {
		if err := p.publish(ctx, event); err != nil {
			p.logger.Error(err, "outbox event failed",
				"event_id", event.ID.String(),
				"event_type", event.EventType)
		}
	}
	return nil
}

// publish pushes one event with retries, then records the terminal
// status. A failed status keeps the error message for inspection.
func (p *OutboxProcessor) publish(ctx context.Context, event *model.OutboxEvent) error {
	err := retry(p.config.RetryAttempts, p.config.RetryDelay, func() error {
		return p.broker.Publish(ctx, p.config.Channel, messaging.Message{
			Type:    event.EventType,
			Payload: event.Payload,
		})
	})

	if err != nil {
		if p.metrics != nil {
			p.metrics.OutboxEventsFailed.Inc()
		}
		msg := err.Error()
		if updateErr := p.repo.UpdateStatus(ctx, event.ID, model.OutboxStatusFailed, &msg); updateErr != nil {
			p.logger.Error(updateErr, "failed to mark outbox event failed", "event_id", event.ID.String())
		}
		return err
	}

	if p.metrics != nil {
		p.metrics.OutboxEventsProcessed.Inc()
	}
	if err := p.repo.UpdateStatus(ctx, event.ID, model.OutboxStatusProcessed, nil); err != nil {
		p.logger.Error(err, "failed to mark outbox event processed", "event_id", event.ID.String())
		return err
	}
	return nil
}

func (p *OutboxProcessor) purge(ctx context.Context) {
	if p.config.Retention <= 0 {
		return
	}
	cutoff := time.Now().Add(-p.config.Retention)
	if _, err := p.repo.DeleteProcessedBefore(ctx, cutoff); err != nil {
		p.logger.Error(err, "failed to purge processed events")
	}
}

func (p *OutboxProcessor) countDBOp(op, outcome string) {
	if p.metrics != nil {
		p.metrics.DatabaseOperations.WithLabelValues(op, outcome).Inc()
	}
}

func retry(attempts int, delay time.Duration, fn func() error) error {
	var err error
	for i := 0; i < attempts; i++ {
		if err = fn(); err == nil {
			return nil
		}
		if i < attempts-1 {
			time.Sleep(delay)
		}
	}
	return err
}
