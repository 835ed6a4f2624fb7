package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/aretw0/aasedit/pkg/ports"
)

// Publisher implements ports.CommitPublisher in memory by fanning notices out
// to subscribers. Safe for concurrent use.
type Publisher struct {
	mu     sync.Mutex
	subs   map[int]chan ports.CommitNotice
	next   int
	buffer int
}

// NewPublisher creates a publisher whose subscriptions buffer up to buffer
// notices before Publish blocks.
func NewPublisher(buffer int) *Publisher {
	return &Publisher{
		subs:   make(map[int]chan ports.CommitNotice),
		buffer: buffer,
	}
}

// Subscribe registers a new subscriber. The returned cancel func closes the
// channel and must be called once the subscriber is done.
func (p *Publisher) Subscribe() (<-chan ports.CommitNotice, func()) {
	p.mu.Lock()
	defer p.mu.Unlock()

	id := p.next
	p.next++
	ch := make(chan ports.CommitNotice, p.buffer)
	p.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			p.mu.Lock()
			defer p.mu.Unlock()
			delete(p.subs, id)
			close(ch)
		})
	}
}

// Publish delivers a copy of n to every subscriber.
func (p *Publisher) Publish(ctx context.Context, n ports.CommitNotice) error {
	n.Document = slices.Clone(n.Document)

	p.mu.Lock()
	defer p.mu.Unlock()
	for _, ch := range p.subs {
		select {
		case ch <- n:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}
