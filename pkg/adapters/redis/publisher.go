package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aretw0/aasedit/pkg/ports"
	backend "github.com/redis/go-redis/v9"
)

// DefaultChannel is the Pub/Sub channel used when none is configured.
const DefaultChannel = "aasedit:commits"

// Publisher implements ports.CommitPublisher using Redis Pub/Sub.
type Publisher struct {
	client  *backend.Client
	channel string
}

// Option configures a Publisher.
type Option func(*Publisher)

// WithChannel sets the Pub/Sub channel.
func WithChannel(channel string) Option {
	return func(p *Publisher) {
		p.channel = channel
	}
}

// NewClient creates a Redis client for address.
func NewClient(address, password string, db int) *backend.Client {
	return backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
}

// NewPublisher creates a publisher on an existing client.
func NewPublisher(client *backend.Client, opts ...Option) *Publisher {
	p := &Publisher{
		client:  client,
		channel: DefaultChannel,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Channel returns the channel notices are published on.
func (p *Publisher) Channel() string {
	return p.channel
}

// Publish sends n, JSON encoded, to the channel.
func (p *Publisher) Publish(ctx context.Context, n ports.CommitNotice) error {
	payload, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("encode commit notice: %w", err)
	}
	if err := p.client.Publish(ctx, p.channel, payload).Err(); err != nil {
		return fmt.Errorf("redis publish: %w", err)
	}
	return nil
}

// Subscribe listens on the channel and decodes notices until ctx is done or
// the returned close func is called. Undecodable messages are skipped.
func (p *Publisher) Subscribe(ctx context.Context) (<-chan ports.CommitNotice, func() error, error) {
	sub := p.client.Subscribe(ctx, p.channel)
	// Wait for the confirmation so nothing published afterwards is missed.
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, nil, fmt.Errorf("redis subscribe: %w", err)
	}

	out := make(chan ports.CommitNotice)
	go func() {
		defer close(out)
		msgs := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				n, err := Decode(msg.Payload)
				if err != nil {
					continue
				}
				select {
				case out <- n:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, sub.Close, nil
}

// Decode parses one published payload.
func Decode(payload string) (ports.CommitNotice, error) {
	var n ports.CommitNotice
	if err := json.Unmarshal([]byte(payload), &n); err != nil {
		return ports.CommitNotice{}, fmt.Errorf("decode commit notice: %w", err)
	}
	return n, nil
}
