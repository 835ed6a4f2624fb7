package runtime

import (
	"fmt"

	"github.com/aretw0/aasedit/pkg/domain"
)

// NodeNotFoundError reports a tree node id absent from the current projection.
type NodeNotFoundError struct {
	ID string
}

func (e *NodeNotFoundError) Error() string {
	return fmt.Sprintf("%s: %q", domain.ErrNodeNotFound, e.ID)
}

func (e *NodeNotFoundError) Unwrap() error { return domain.ErrNodeNotFound }

// InvalidTargetError reports an operation the selected node cannot receive.
type InvalidTargetError struct {
	Operation string
	NodeID    string
	Hint      string
}

func (e *InvalidTargetError) Error() string {
	return fmt.Sprintf("%s: cannot %s on %q: %s", domain.ErrInvalidTarget, e.Operation, e.NodeID, e.Hint)
}

func (e *InvalidTargetError) Unwrap() error { return domain.ErrInvalidTarget }
