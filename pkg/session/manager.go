package session

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/aretw0/aasedit"
	"github.com/aretw0/aasedit/internal/logging"
	"github.com/aretw0/aasedit/pkg/domain"
	"github.com/aretw0/aasedit/pkg/ports"
	"github.com/google/uuid"
)

// DefaultLockTTL bounds how long a distributed session lock outlives a crashed holder.
const DefaultLockTTL = 30 * time.Second

// lockEntry holds the mutex and the reference count.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// Manager orchestrates session access, ensuring safe concurrent operations.
// It uses Reference Counting to garbage collect unused locks.
type Manager struct {
	mu      sync.Mutex                 // Guards editors and locks
	editors map[string]*aasedit.Editor // Open sessions
	locks   map[string]*lockEntry      // Active per-session locks

	editorOpts []aasedit.Option
	locker     ports.DistributedLocker // Optional distributed locker
	lockTTL    time.Duration
	logger     *slog.Logger
}

// Option configures the Manager.
type Option func(*Manager)

// WithLocker enables distributed locking.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(m *Manager) {
		m.locker = locker
	}
}

// WithLockTTL sets the expiry of distributed locks.
func WithLockTTL(ttl time.Duration) Option {
	return func(m *Manager) {
		m.lockTTL = ttl
	}
}

// WithLogger configures a logger for the Manager and its editors.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// WithEditorOptions sets options applied to every editor the Manager opens.
func WithEditorOptions(opts ...aasedit.Option) Option {
	return func(m *Manager) {
		m.editorOpts = append(m.editorOpts, opts...)
	}
}

// NewManager creates a new Session Manager.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		editors: make(map[string]*aasedit.Editor),
		locks:   make(map[string]*lockEntry),
		lockTTL: DefaultLockTTL,
		logger:  logging.NewNop(), // Default to no-op
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// acquire gets or creates a lock entry and increments its reference count.
// The caller MUST Lock the entry.mu, and then call release(sessionID) after unlocking.
func (m *Manager) acquire(sessionID string) *lockEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[sessionID]
	if !exists {
		entry = &lockEntry{}
		m.locks[sessionID] = entry
	}
	entry.refs++
	return entry
}

// release decrements the reference count and deletes the entry if it reaches zero.
func (m *Manager) release(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[sessionID]
	if !exists {
		return
	}
	entry.refs--
	if entry.refs <= 0 {
		delete(m.locks, sessionID)
	}
}

// Open returns the editor of sessionID, creating it when absent. An empty
// sessionID opens a new session under a generated id.
func (m *Manager) Open(ctx context.Context, sessionID string) (*aasedit.Editor, error) {
	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	var ed *aasedit.Editor
	err := m.withSessionLock(ctx, sessionID, func(context.Context) error {
		m.mu.Lock()
		defer m.mu.Unlock()

		if existing, ok := m.editors[sessionID]; ok {
			ed = existing
			return nil
		}
		opts := append(slices.Clone(m.editorOpts),
			aasedit.WithSessionID(sessionID),
			aasedit.WithLogger(m.logger),
		)
		ed = aasedit.New(opts...)
		m.editors[sessionID] = ed
		m.logger.Debug("session opened", "session_id", sessionID)
		return nil
	})
	return ed, err
}

// Get returns the editor of an open session.
func (m *Manager) Get(sessionID string) (*aasedit.Editor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ed, ok := m.editors[sessionID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrSessionNotFound, sessionID)
	}
	return ed, nil
}

// Close discards a session and its document.
func (m *Manager) Close(ctx context.Context, sessionID string) error {
	return m.withSessionLock(ctx, sessionID, func(context.Context) error {
		m.mu.Lock()
		defer m.mu.Unlock()

		if _, ok := m.editors[sessionID]; !ok {
			return fmt.Errorf("%w: %s", domain.ErrSessionNotFound, sessionID)
		}
		delete(m.editors, sessionID)
		m.logger.Debug("session closed", "session_id", sessionID)
		return nil
	})
}

// List returns the open session ids in lexical order.
func (m *Manager) List() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	ids := make([]string, 0, len(m.editors))
	for id := range m.editors {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// WithLock runs fn on the editor of sessionID while holding the session lock.
func (m *Manager) WithLock(ctx context.Context, sessionID string, fn func(context.Context, *aasedit.Editor) error) error {
	return m.withSessionLock(ctx, sessionID, func(ctx context.Context) error {
		ed, err := m.Get(sessionID)
		if err != nil {
			return err
		}
		return fn(ctx, ed)
	})
}

func (m *Manager) withSessionLock(ctx context.Context, sessionID string, fn func(context.Context) error) error {
	entry := m.acquire(sessionID)
	entry.mu.Lock()
	defer func() {
		entry.mu.Unlock()
		m.release(sessionID)
	}()

	if m.locker != nil {
		unlock, err := m.locker.Lock(ctx, sessionID, m.lockTTL)
		if err != nil {
			return fmt.Errorf("failed to acquire distributed lock: %w", err)
		}
		defer func() {
			if err := unlock(ctx); err != nil {
				m.logger.Warn("Failed to release distributed lock (will expire via TTL)",
					"session_id", sessionID,
					"err", err,
				)
			}
		}()
	}

	return fn(ctx)
}
