package domain

import (
	"context"
	"time"
)

// CommitOutcome is the terminal state of one commit attempt.
type CommitOutcome string

// Commit attempt states. Draft and Validating are transient; every attempt
// ends Applied or Rejected.
const (
	CommitDraft      CommitOutcome = "draft"
	CommitValidating CommitOutcome = "validating"
	CommitApplied    CommitOutcome = "applied"
	CommitRejected   CommitOutcome = "rejected"
)

// CommitEvent describes a finished commit attempt.
type CommitEvent struct {
	Timestamp  time.Time     `json:"timestamp"`
	Outcome    CommitOutcome `json:"outcome"`
	Message    string        `json:"message,omitempty"`
	SelectedID string        `json:"selected_id,omitempty"`
	Duration   time.Duration `json:"duration"` // Time spent validating
	ErrorCount int           `json:"error_count,omitempty"`
	NodeCount  int           `json:"node_count,omitempty"` // Tree size after an applied commit
}

// CommitHooks defines callbacks for commit observability.
type CommitHooks struct {
	OnApplied  func(context.Context, *CommitEvent)
	OnRejected func(context.Context, *CommitEvent)
}
