package runtime

import (
	"log/slog"
	"slices"

	"github.com/aretw0/aasedit/internal/logging"
	"github.com/aretw0/aasedit/pkg/document"
	"github.com/aretw0/aasedit/pkg/domain"
	"github.com/aretw0/aasedit/pkg/schema"
	"github.com/aretw0/aasedit/pkg/tree"
)

// DefaultExpanded lists the nodes expanded in a fresh workspace.
var DefaultExpanded = []string{tree.PackageID, tree.EnvironmentID, tree.GroupShellsID, tree.GroupSubmodelsID}

// Toast is a transient notification raised by a commit.
type Toast struct {
	Message string `json:"message"`
	Tone    string `json:"tone"`
}

// Workspace holds the canonical environment and the editor state derived
// from it.
type Workspace struct {
	env      *domain.Environment
	selected string
	expanded map[string]bool
	message  string
	toast    *Toast

	gate   *schema.Gate
	hooks  domain.CommitHooks
	logger *slog.Logger

	// Derived views, rebuilt when env changes.
	viewOf     *domain.Environment
	nodes      []*tree.Node
	index      map[string]*tree.Node
	validation *schema.Result
}

// WorkspaceOption configures a Workspace.
type WorkspaceOption func(*Workspace)

// WithGate sets the schema gate. The default is schema.Default().
func WithGate(g *schema.Gate) WorkspaceOption {
	return func(w *Workspace) {
		w.gate = g
	}
}

// WithCommitHooks registers commit observers.
func WithCommitHooks(h domain.CommitHooks) WorkspaceOption {
	return func(w *Workspace) {
		w.hooks = h
	}
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) WorkspaceOption {
	return func(w *Workspace) {
		w.logger = l
	}
}

// NewWorkspace returns a workspace holding an empty environment.
func NewWorkspace(opts ...WorkspaceOption) *Workspace {
	w := &Workspace{
		env:      domain.NewEnvironment(),
		selected: tree.EnvironmentID,
		expanded: make(map[string]bool),
	}
	for _, id := range DefaultExpanded {
		w.expanded[id] = true
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.gate == nil {
		w.gate = schema.Default()
	}
	if w.logger == nil {
		w.logger = logging.NewNop()
	}
	return w
}

// Environment returns the canonical document. It is never modified in place;
// derive candidates from it and pass them to Commit.
func (w *Workspace) Environment() *domain.Environment {
	return w.env
}

func (w *Workspace) refresh() {
	if w.viewOf == w.env {
		return
	}
	w.nodes = tree.Project(w.env)
	w.index = tree.BuildIndex(w.nodes)
	w.validation = nil
	w.viewOf = w.env
}

// Tree returns the projection of the current environment.
func (w *Workspace) Tree() []*tree.Node {
	w.refresh()
	return w.nodes
}

// Index returns the id lookup over Tree().
func (w *Workspace) Index() map[string]*tree.Node {
	w.refresh()
	return w.index
}

// SelectedID returns the id of the selected node.
func (w *Workspace) SelectedID() string {
	return w.SelectedNode().ID
}

// SelectedNode returns the selected node, falling back to the environment
// node when the selection no longer exists.
func (w *Workspace) SelectedNode() *tree.Node {
	idx := w.Index()
	if n, ok := idx[w.selected]; ok {
		return n
	}
	return idx[tree.EnvironmentID]
}

// Select changes the selection and clears the inline message.
func (w *Workspace) Select(id string) error {
	if _, ok := w.Index()[id]; !ok {
		return &NodeNotFoundError{ID: id}
	}
	w.selected = id
	w.message = ""
	return nil
}

// Toggle flips the expanded state of a node and reports the new state.
func (w *Workspace) Toggle(id string) bool {
	if w.expanded[id] {
		delete(w.expanded, id)
		return false
	}
	w.expanded[id] = true
	return true
}

// Expand marks ids as expanded.
func (w *Workspace) Expand(ids ...string) {
	for _, id := range ids {
		w.expanded[id] = true
	}
}

// IsExpanded reports whether id is expanded.
func (w *Workspace) IsExpanded(id string) bool {
	return w.expanded[id]
}

// Expanded returns the expanded ids in lexical order.
func (w *Workspace) Expanded() []string {
	ids := make([]string, 0, len(w.expanded))
	for id := range w.expanded {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Message returns the standing inline message.
func (w *Workspace) Message() string {
	return w.message
}

// Toast returns the last toast raised by a commit, or nil.
func (w *Workspace) Toast() *Toast {
	return w.toast
}

// DismissToast clears the current toast.
func (w *Workspace) DismissToast() {
	w.toast = nil
}

// Validation reports the schema status of the current environment.
func (w *Workspace) Validation() schema.Result {
	w.refresh()
	if w.validation == nil {
		doc, err := document.ToExportForm(w.env)
		var res schema.Result
		if err != nil {
			res = schema.Result{Errors: []schema.ValidationError{{Message: err.Error()}}}
		} else {
			res = w.gate.Validate(doc)
		}
		w.validation = &res
	}
	return *w.validation
}
