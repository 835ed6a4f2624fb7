package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/aasedit/pkg/domain"
)

// LogHooks logs every commit attempt.
func LogHooks(logger *slog.Logger) domain.CommitHooks {
	return domain.CommitHooks{
		OnApplied: func(ctx context.Context, e *domain.CommitEvent) {
			logger.InfoContext(ctx, "commit_applied",
				"message", e.Message,
				"selected", e.SelectedID,
				"nodes", e.NodeCount,
				"duration", e.Duration,
			)
		},
		OnRejected: func(ctx context.Context, e *domain.CommitEvent) {
			logger.InfoContext(ctx, "commit_rejected",
				"reason", e.Message,
				"errors", e.ErrorCount,
				"duration", e.Duration,
			)
		},
	}
}

// Combine returns hooks calling each of hooks in order.
func Combine(hooks ...domain.CommitHooks) domain.CommitHooks {
	return domain.CommitHooks{
		OnApplied: func(ctx context.Context, e *domain.CommitEvent) {
			for _, h := range hooks {
				if h.OnApplied != nil {
					h.OnApplied(ctx, e)
				}
			}
		},
		OnRejected: func(ctx context.Context, e *domain.CommitEvent) {
			for _, h := range hooks {
				if h.OnRejected != nil {
					h.OnRejected(ctx, e)
				}
			}
		},
	}
}
