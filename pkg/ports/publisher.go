package ports

import (
	"context"
	"encoding/json"

	"github.com/aretw0/aasedit/pkg/domain"
)

// CommitNotice is what an editor hands to a publisher after an applied commit.
type CommitNotice struct {
	SessionID string             `json:"sessionId,omitempty"`
	Event     domain.CommitEvent `json:"event"`
	Document  json.RawMessage    `json:"document"` // Export form, JSON encoded
}

// CommitPublisher fans applied commits out to other processes (e.g. a Redis channel).
type CommitPublisher interface {
	// Publish delivers one notice. Implementations must not retain n.Document
	// after returning unless they copy it.
	Publish(ctx context.Context, n CommitNotice) error
}
