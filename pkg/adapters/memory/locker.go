package memory

import (
	"context"
	"sync"
	"time"

	"github.com/aretw0/aasedit/pkg/ports"
)

// Locker implements ports.DistributedLocker within one process. It is the
// single-replica stand-in for the Redis locker.
type Locker struct {
	mu   sync.Mutex
	held map[string]chan struct{}
}

// NewLocker creates an empty locker.
func NewLocker() *Locker {
	return &Locker{held: make(map[string]chan struct{})}
}

// Lock waits until key is free, then holds it until unlocked or ttl passes.
func (l *Locker) Lock(ctx context.Context, key string, ttl time.Duration) (ports.UnlockFunc, error) {
	for {
		l.mu.Lock()
		busy, taken := l.held[key]
		if !taken {
			release := make(chan struct{})
			l.held[key] = release
			l.mu.Unlock()
			return l.unlocker(key, release, ttl), nil
		}
		l.mu.Unlock()

		select {
		case <-busy:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

func (l *Locker) unlocker(key string, release chan struct{}, ttl time.Duration) ports.UnlockFunc {
	var once sync.Once
	free := func() {
		once.Do(func() {
			l.mu.Lock()
			if l.held[key] == release {
				delete(l.held, key)
			}
			l.mu.Unlock()
			close(release)
		})
	}
	var timer *time.Timer
	if ttl > 0 {
		timer = time.AfterFunc(ttl, free)
	}
	return func(context.Context) error {
		if timer != nil {
			timer.Stop()
		}
		free()
		return nil
	}
}
