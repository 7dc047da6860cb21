// Package redis implements the messaging broker on Redis pub/sub.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/arcofed/federation-api/pkg/circuitbreaker"
	"github.com/arcofed/federation-api/pkg/messaging"
)

type Config struct {
	URL          string
	MaxRetries   int
	RetryBackoff time.Duration
	PoolSize     int
	MinIdleConns int
}

type Broker struct {
	client  *redis.Client
	breaker *circuitbreaker.CircuitBreaker
	logger  *zerolog.Logger
}

func NewRedisBroker(config Config, logger *zerolog.Logger) (messaging.Broker, error) {
	opts, err := redis.ParseURL(config.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}
	opts.MaxRetries = config.MaxRetries
	opts.MinRetryBackoff = config.RetryBackoff
	opts.PoolSize = config.PoolSize
	opts.MinIdleConns = config.MinIdleConns

	client := redis.NewClient(opts)
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &Broker{
		client: client,
		breaker: circuitbreaker.New(circuitbreaker.Settings{
			Name:             "redis-broker",
			FailureThreshold: 5,
			CoolDown:         10 * time.Second,
		}),
		logger: logger,
	}, nil
}

// Publish marshals the message and sends it through the breaker so a
// dead Redis fails fast instead of stalling the outbox loop.
func (b *Broker) Publish(ctx context.Context, channel string, message interface{}) error {
	payload, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}
	return b.breaker.Execute(func() error {
		return b.client.Publish(ctx, channel, payload).Err()
	})
}

// Subscribe streams raw payloads from a channel until ctx is done.
func (b *Broker) Subscribe(ctx context.Context, channel string) (<-chan []byte, error) {
	pubsub := b.client.Subscribe(ctx, channel)
	out := make(chan []byte, 100)

	go func() {
		defer func() {
			pubsub.Close()
			close(out)
		}()
		for {
			msg, err := pubsub.ReceiveMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				if b.logger != nil {
					b.logger.Warn().Err(err).Str("channel", channel).Msg("redis receive failed")
				}
				continue
			}
			select {
			case out <- []byte(msg.Payload):
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}

func (b *Broker) Close() error {
	return b.client.Close()
}
