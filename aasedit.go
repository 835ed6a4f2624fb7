package aasedit

import (
	"context"
	"log/slog"
	"sync"

	"github.com/aretw0/aasedit/internal/logging"
	"github.com/aretw0/aasedit/internal/runtime"
	"github.com/aretw0/aasedit/pkg/document"
	"github.com/aretw0/aasedit/pkg/domain"
	"github.com/aretw0/aasedit/pkg/forms"
	"github.com/aretw0/aasedit/pkg/ports"
	"github.com/aretw0/aasedit/pkg/schema"
	"github.com/aretw0/aasedit/pkg/tree"
)

// Re-exported runtime types, so consumers never import internal packages.
type (
	CommitOptions = runtime.CommitOptions
	CommitResult  = runtime.CommitResult
	Toast         = runtime.Toast
)

// Editor is the high-level entry point for the aasedit library.
// It wraps the internal workspace and serializes access to it, so adapters
// may share one Editor across goroutines.
type Editor struct {
	mu sync.Mutex
	ws *runtime.Workspace

	sessionID  string
	gate       *schema.Gate
	hooks      domain.CommitHooks
	publishers []ports.CommitPublisher
	logger     *slog.Logger
}

// Option defines a functional option for configuring the Editor.
type Option func(*Editor)

// WithLogger sets a custom structured logger for the editor.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Editor) {
		e.logger = logger
	}
}

// WithGate replaces the default schema gate.
func WithGate(g *schema.Gate) Option {
	return func(e *Editor) {
		e.gate = g
	}
}

// WithCommitHooks registers observability hooks.
func WithCommitHooks(hooks domain.CommitHooks) Option {
	return func(e *Editor) {
		e.hooks = hooks
	}
}

// WithPublisher hands the export form of every applied commit to p. It may
// be given several times. Publishing is best effort: failures are logged and
// never undo a commit.
func WithPublisher(p ports.CommitPublisher) Option {
	return func(e *Editor) {
		e.publishers = append(e.publishers, p)
	}
}

// WithSessionID labels the editor's log lines and published notices.
func WithSessionID(id string) Option {
	return func(e *Editor) {
		e.sessionID = id
	}
}

// New returns an Editor holding an empty environment.
func New(opts ...Option) *Editor {
	e := &Editor{}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = logging.NewNop()
	}
	if e.sessionID != "" {
		e.logger = e.logger.With("session_id", e.sessionID)
	}

	user := e.hooks
	wsOpts := []runtime.WorkspaceOption{
		runtime.WithLogger(e.logger),
		runtime.WithCommitHooks(domain.CommitHooks{
			OnApplied: func(ctx context.Context, ev *domain.CommitEvent) {
				if user.OnApplied != nil {
					user.OnApplied(ctx, ev)
				}
				e.publish(ctx, ev)
			},
			OnRejected: user.OnRejected,
		}),
	}
	if e.gate != nil {
		wsOpts = append(wsOpts, runtime.WithGate(e.gate))
	}
	e.ws = runtime.NewWorkspace(wsOpts...)
	return e
}

// SessionID returns the id given with WithSessionID.
func (e *Editor) SessionID() string {
	return e.sessionID
}

// publish runs inside an OnApplied hook, with e.mu held by the operation.
func (e *Editor) publish(ctx context.Context, ev *domain.CommitEvent) {
	if len(e.publishers) == 0 {
		return
	}
	doc, err := document.ToExportForm(e.ws.Environment())
	if err != nil {
		e.logger.Warn("Failed to publish commit", "err", err)
		return
	}
	data, err := document.Encode(doc, document.JSON)
	if err != nil {
		e.logger.Warn("Failed to publish commit", "err", err)
		return
	}
	notice := ports.CommitNotice{SessionID: e.sessionID, Event: *ev, Document: data}
	for _, p := range e.publishers {
		if err := p.Publish(ctx, notice); err != nil {
			e.logger.Warn("Failed to publish commit", "err", err)
		}
	}
}

// Environment returns a copy of the canonical document's top level. The
// slices are fresh, so appending to them never reaches the editor; records
// are shared and must not be modified in place. Pass a derived copy to
// Commit to change the document.
func (e *Editor) Environment() *domain.Environment {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ws.Environment().Clone()
}

// Tree returns the navigation tree of the current environment.
func (e *Editor) Tree() []*tree.Node {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ws.Tree()
}

// Node returns the tree node with id.
func (e *Editor) Node(id string) (*tree.Node, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	n, ok := e.ws.Index()[id]
	return n, ok
}

// Selected returns the selected node.
func (e *Editor) Selected() *tree.Node {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ws.SelectedNode()
}

// Select changes the selection.
func (e *Editor) Select(id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ws.Select(id)
}

// Toggle flips the expanded state of a node.
func (e *Editor) Toggle(id string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ws.Toggle(id)
}

// Draft returns the editable projection of the selected node.
func (e *Editor) Draft() forms.Draft {
	e.mu.Lock()
	defer e.mu.Unlock()
	return forms.DraftFor(e.ws.SelectedNode())
}

// Validation reports the schema status of the current environment.
func (e *Editor) Validation() schema.Result {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ws.Validation()
}

// View is a consistent snapshot of the editor state.
type View struct {
	Tree       []*tree.Node  `json:"tree"`
	SelectedID string        `json:"selectedId"`
	Expanded   []string      `json:"expanded"`
	Message    string        `json:"message,omitempty"`
	Toast      *Toast        `json:"toast,omitempty"`
	Validation schema.Result `json:"validation"`
}

// View returns the current editor state in one snapshot.
func (e *Editor) View() View {
	e.mu.Lock()
	defer e.mu.Unlock()
	return View{
		Tree:       e.ws.Tree(),
		SelectedID: e.ws.SelectedID(),
		Expanded:   e.ws.Expanded(),
		Message:    e.ws.Message(),
		Toast:      e.ws.Toast(),
		Validation: e.ws.Validation(),
	}
}

// Commit validates candidate and makes it the canonical environment.
func (e *Editor) Commit(ctx context.Context, candidate *domain.Environment, opts CommitOptions) CommitResult {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ws.Commit(ctx, candidate, opts)
}

// AddShell appends a new shell and selects it.
func (e *Editor) AddShell(ctx context.Context, f forms.ShellForm) (CommitResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ws.AddShell(ctx, f)
}

// AddSubmodel appends a new submodel referenced by the selected shell.
func (e *Editor) AddSubmodel(ctx context.Context, f forms.SubmodelForm) (CommitResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ws.AddSubmodel(ctx, f)
}

// AddElement appends a new element under the selected container.
func (e *Editor) AddElement(ctx context.Context, f forms.ElementForm) (CommitResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ws.AddElement(ctx, f)
}

// ApplyEdits applies d to the selected record.
func (e *Editor) ApplyEdits(ctx context.Context, d forms.Draft) (CommitResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ws.ApplyEdits(ctx, d)
}

// Import replaces the environment with a parsed document.
func (e *Editor) Import(ctx context.Context, data []byte, enc document.Encoding) (CommitResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ws.Import(ctx, data, enc)
}

// Export encodes the export form of the environment after validating it.
func (e *Editor) Export(enc document.Encoding) ([]byte, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ws.Export(enc)
}
