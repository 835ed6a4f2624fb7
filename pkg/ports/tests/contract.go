// Package tests holds reusable contract suites for ports implementations.
package tests

import (
	"context"
	"encoding/json"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aretw0/aasedit/pkg/domain"
	"github.com/aretw0/aasedit/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Receive returns the next notice delivered by the publisher under test, or
// false once ctx is done.
type Receive func(ctx context.Context) (ports.CommitNotice, bool)

// CommitPublisherContractTest verifies that a publisher delivers notices in
// order and intact. receive must observe what pub publishes.
func CommitPublisherContractTest(t *testing.T, pub ports.CommitPublisher, receive Receive) {
	t.Helper()

	notices := []ports.CommitNotice{
		{
			SessionID: "contract-1",
			Event:     domain.CommitEvent{Outcome: domain.CommitApplied, Message: "Shell added.", SelectedID: "aas:urn:aas:1", NodeCount: 8},
			Document:  json.RawMessage(`{"assetAdministrationShells":[{"modelType":"AssetAdministrationShell","id":"urn:aas:1","assetInformation":{"assetKind":"Instance"}}]}`),
		},
		{
			SessionID: "contract-1",
			Event:     domain.CommitEvent{Outcome: domain.CommitApplied, Message: "JSON loaded.", SelectedID: "environment", NodeCount: 6},
			Document:  json.RawMessage(`{}`),
		},
	}

	t.Run("Publish_InOrder", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		for _, n := range notices {
			require.NoError(t, pub.Publish(ctx, n))
		}
		for i, want := range notices {
			got, ok := receive(ctx)
			require.True(t, ok, "notice %d not delivered", i)
			assert.Equal(t, want.SessionID, got.SessionID)
			assert.Equal(t, want.Event.Outcome, got.Event.Outcome)
			assert.Equal(t, want.Event.Message, got.Event.Message)
			assert.Equal(t, want.Event.SelectedID, got.Event.SelectedID)
			assert.Equal(t, want.Event.NodeCount, got.Event.NodeCount)
			assert.JSONEq(t, string(want.Document), string(got.Document))
		}
	})

	t.Run("Publish_CanceledContext", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		// Either refusing or delivering is acceptable; the call must not hang.
		done := make(chan struct{})
		go func() {
			_ = pub.Publish(ctx, notices[0])
			close(done)
		}()
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("Publish blocked on a canceled context")
		}
		drain, stop := context.WithTimeout(context.Background(), 200*time.Millisecond)
		defer stop()
		for {
			if _, ok := receive(drain); !ok {
				break
			}
		}
	})
}

// DistributedLockerContractTest verifies mutual exclusion and release.
func DistributedLockerContractTest(t *testing.T, locker ports.DistributedLocker) {
	t.Helper()

	t.Run("Lock_Unlock", func(t *testing.T) {
		ctx := context.Background()
		unlock, err := locker.Lock(ctx, "contract-a", 5*time.Second)
		require.NoError(t, err)
		require.NoError(t, unlock(ctx))

		unlock, err = locker.Lock(ctx, "contract-a", 5*time.Second)
		require.NoError(t, err, "lock must be reusable after release")
		require.NoError(t, unlock(ctx))
	})

	t.Run("Lock_BlocksUntilContextDone", func(t *testing.T) {
		ctx := context.Background()
		unlock, err := locker.Lock(ctx, "contract-b", 5*time.Second)
		require.NoError(t, err)
		defer func() { _ = unlock(ctx) }()

		short, cancel := context.WithTimeout(ctx, 300*time.Millisecond)
		defer cancel()
		_, err = locker.Lock(short, "contract-b", 5*time.Second)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})

	t.Run("Lock_IndependentKeys", func(t *testing.T) {
		ctx := context.Background()
		a, err := locker.Lock(ctx, "contract-c", 5*time.Second)
		require.NoError(t, err)
		defer func() { _ = a(ctx) }()

		short, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		b, err := locker.Lock(short, "contract-d", 5*time.Second)
		require.NoError(t, err)
		require.NoError(t, b(ctx))
	})

	t.Run("Lock_MutualExclusion", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		var (
			inside  atomic.Int32
			overlap atomic.Bool
			wg      sync.WaitGroup
		)
		for i := 0; i < 4; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				unlock, err := locker.Lock(ctx, "contract-e", 5*time.Second)
				if err != nil {
					return
				}
				if inside.Add(1) > 1 {
					overlap.Store(true)
				}
				time.Sleep(10 * time.Millisecond)
				inside.Add(-1)
				_ = unlock(ctx)
			}()
		}
		wg.Wait()
		assert.False(t, overlap.Load(), "two holders inside the same lock")
	})
}
