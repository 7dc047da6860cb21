// Package messaging abstracts the pub/sub transport used to fan out
// configuration change events.
package messaging

import "context"

type Broker interface {
	Publish(ctx context.Context, channel string, message interface{}) error
	Subscribe(ctx context.Context, channel string) (<-chan []byte, error)
	Close() error
}

// Message is the envelope published for every outbox event.
type Message struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}
