package runtime

import (
	"context"
	"time"

	"github.com/aretw0/aasedit/pkg/document"
	"github.com/aretw0/aasedit/pkg/domain"
	"github.com/aretw0/aasedit/pkg/schema"
	"github.com/aretw0/aasedit/pkg/tree"
)

// ToneSuccess is the default toast tone.
const ToneSuccess = "success"

// CommitOptions control what an applied commit surfaces.
type CommitOptions struct {
	Message  string   // Success message, empty for none
	SelectID string   // Node to select after applying, empty to keep
	Toast    bool     // Raise Message as a toast instead of the inline message
	Tone     string   // Toast tone, defaults to ToneSuccess
	Expand   []string // Nodes to expand after applying
}

// CommitResult is the outcome of one commit attempt.
type CommitResult struct {
	Applied    bool                     `json:"applied"`
	Outcome    domain.CommitOutcome     `json:"outcome"`
	Message    string                   `json:"message,omitempty"`
	SelectedID string                   `json:"selectedId,omitempty"`
	Toast      *Toast                   `json:"toast,omitempty"`
	Errors     []schema.ValidationError `json:"errors,omitempty"`
}

// Err returns the schema violation of a rejected commit, or nil.
func (r CommitResult) Err() error {
	if r.Applied {
		return nil
	}
	return &schema.ViolationError{Errors: r.Errors}
}

// Commit validates the export form of candidate and, if it passes, makes
// candidate the canonical environment.
//
// A rejected candidate leaves Environment() reference-identical to its value
// before the call, sets the inline message to the first schema error and
// keeps the selection.
func (w *Workspace) Commit(ctx context.Context, candidate *domain.Environment, opts CommitOptions) CommitResult {
	if candidate == nil {
		return w.reject(ctx, time.Now(), []schema.ValidationError{{Message: "no candidate document"}})
	}
	doc, err := document.ToExportForm(candidate)
	if err != nil {
		return w.reject(ctx, time.Now(), []schema.ValidationError{{Message: err.Error()}})
	}
	return w.commitValidated(ctx, candidate, doc, opts)
}

// commitValidated runs the Validating step against an already computed
// export form and applies or rejects candidate.
func (w *Workspace) commitValidated(ctx context.Context, candidate *domain.Environment, exportForm map[string]any, opts CommitOptions) CommitResult {
	start := time.Now()
	res := w.gate.Validate(exportForm)
	if !res.Valid {
		return w.reject(ctx, start, res.Errors)
	}

	w.env = candidate
	w.refresh()
	w.validation = &res

	result := CommitResult{Applied: true, Outcome: domain.CommitApplied}
	if opts.Message != "" {
		if opts.Toast {
			tone := opts.Tone
			if tone == "" {
				tone = ToneSuccess
			}
			w.message = ""
			w.toast = &Toast{Message: opts.Message, Tone: tone}
			result.Toast = w.toast
		} else {
			w.message = opts.Message
		}
		result.Message = opts.Message
	}
	if opts.SelectID != "" {
		w.selected = opts.SelectID
	}
	if _, ok := w.index[w.selected]; !ok {
		w.selected = tree.EnvironmentID
	}
	w.Expand(opts.Expand...)
	result.SelectedID = w.selected

	ev := &domain.CommitEvent{
		Timestamp:  time.Now(),
		Outcome:    domain.CommitApplied,
		Message:    opts.Message,
		SelectedID: w.selected,
		Duration:   time.Since(start),
		NodeCount:  tree.Count(w.nodes),
	}
	w.logger.Debug("commit applied", "selected", w.selected, "message", opts.Message, "nodes", ev.NodeCount)
	if w.hooks.OnApplied != nil {
		w.hooks.OnApplied(ctx, ev)
	}
	return result
}

func (w *Workspace) reject(ctx context.Context, start time.Time, errs []schema.ValidationError) CommitResult {
	w.message = schema.FormatFirstError(errs)
	result := CommitResult{
		Outcome:    domain.CommitRejected,
		Message:    w.message,
		SelectedID: w.SelectedID(),
		Errors:     errs,
	}
	ev := &domain.CommitEvent{
		Timestamp:  time.Now(),
		Outcome:    domain.CommitRejected,
		Message:    w.message,
		SelectedID: result.SelectedID,
		Duration:   time.Since(start),
		ErrorCount: len(errs),
	}
	w.logger.Info("commit rejected", "reason", w.message, "errors", len(errs))
	if w.hooks.OnRejected != nil {
		w.hooks.OnRejected(ctx, ev)
	}
	return result
}
