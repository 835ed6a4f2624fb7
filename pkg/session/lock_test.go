package session

import (
	"context"
	"fmt"
	"testing"
)

func TestManager_LockLifecycle(t *testing.T) {
	mgr := NewManager()
	ctx := context.Background()
	count := 1000

	for i := 0; i < count; i++ {
		sid := fmt.Sprintf("session-%d", i)
		if _, err := mgr.Open(ctx, sid); err != nil {
			t.Fatal(err)
		}
		if err := mgr.Close(ctx, sid); err != nil {
			t.Fatal(err)
		}
	}

	if lockCount := len(mgr.locks); lockCount != 0 {
		t.Errorf("Memory Leak Detected: %d locks remaining in memory after Close", lockCount)
	}
	if n := len(mgr.editors); n != 0 {
		t.Errorf("%d editors remaining after Close", n)
	}
}
