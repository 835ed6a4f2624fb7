package runtime

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aretw0/aasedit/pkg/document"
	"github.com/aretw0/aasedit/pkg/domain"
	"github.com/aretw0/aasedit/pkg/forms"
	"github.com/aretw0/aasedit/pkg/mutation"
	"github.com/aretw0/aasedit/pkg/tree"
)

// Messages surfaced by the editing operations.
const (
	MsgShellAdded      = "Shell added."
	MsgSubmodelAdded   = "Submodel added."
	MsgElementAdded    = "Element added."
	MsgShellUpdated    = "Shell updated."
	MsgSubmodelUpdated = "Submodel updated."
	MsgElementUpdated  = "Element updated."
	MsgImported        = "JSON loaded."
	MsgInvalidInput    = "invalid input"
	MsgSelectShell     = "Select a Shell to add the Submodel to."
	MsgSelectContainer = "Select a Submodel or an element with children to add to."
	MsgSelectEditable  = "Select a Shell, Submodel or element to edit."
)

// AddShell appends the shell described by f.
func (w *Workspace) AddShell(ctx context.Context, f forms.ShellForm) (CommitResult, error) {
	shell, err := f.Build()
	if err != nil {
		return w.fail(err)
	}
	candidate := mutation.AppendShell(w.env, shell)
	res := w.Commit(ctx, candidate, CommitOptions{
		Message:  MsgShellAdded,
		SelectID: tree.ShellID(shell.ID),
		Expand:   []string{tree.ShellID(shell.ID), tree.GroupShellsID},
	})
	return res, res.Err()
}

// AddSubmodel appends the submodel described by f and references it from the
// selected shell.
func (w *Workspace) AddSubmodel(ctx context.Context, f forms.SubmodelForm) (CommitResult, error) {
	node := w.SelectedNode()
	if node.Kind != tree.KindShell {
		w.message = MsgSelectShell
		return CommitResult{Outcome: domain.CommitRejected, Message: w.message, SelectedID: node.ID},
			&InvalidTargetError{Operation: "add submodel", NodeID: node.ID, Hint: "select a shell"}
	}
	sm, err := f.Build()
	if err != nil {
		return w.fail(err)
	}
	shellID := node.Meta.ShellID
	ref := domain.BuildReference(domain.ReferenceTypeModel, domain.KeyTypeSubmodel, sm.ID)
	candidate := mutation.AppendSubmodel(w.env, shellID, sm, ref)
	res := w.Commit(ctx, candidate, CommitOptions{
		Message:  MsgSubmodelAdded,
		SelectID: tree.SubmodelID(sm.ID),
		Expand: []string{
			tree.ShellID(shellID),
			tree.ShellID(shellID) + ":submodels",
			tree.SubmodelID(sm.ID),
			tree.ElementsGroupID(sm.ID),
			tree.GroupSubmodelsID,
		},
	})
	return res, res.Err()
}

// AddElement appends the element described by f to the selected submodel or
// container element.
func (w *Workspace) AddElement(ctx context.Context, f forms.ElementForm) (CommitResult, error) {
	node := w.SelectedNode()
	if !node.HasContainer() {
		w.message = MsgSelectContainer
		return CommitResult{Outcome: domain.CommitRejected, Message: w.message, SelectedID: node.ID},
			&InvalidTargetError{Operation: "add element", NodeID: node.ID, Hint: "select a submodel or a container element"}
	}
	el, err := f.Build()
	if err != nil {
		return w.fail(err)
	}

	smID := node.Meta.SubmodelID
	var parent domain.Path
	expand := []string{tree.SubmodelID(smID), tree.ElementsGroupID(smID)}
	if node.Kind == tree.KindElement {
		parent = node.Meta.Path
		expand = []string{node.ID}
	}

	var (
		added  domain.Path
		appErr error
	)
	candidate, found := mutation.ReplaceSubmodel(w.env, smID, func(sm *domain.Submodel) *domain.Submodel {
		next, path, err := mutation.AppendAt(sm, parent, el)
		added, appErr = path, err
		return next
	})
	if !found {
		return w.fail(&NodeNotFoundError{ID: tree.SubmodelID(smID)})
	}
	if appErr != nil {
		return w.fail(appErr)
	}
	res := w.Commit(ctx, candidate, CommitOptions{
		Message:  MsgElementAdded,
		SelectID: tree.ElementID(smID, added),
		Expand:   expand,
	})
	return res, res.Err()
}

// ApplyEdits applies d to the record behind the selected node. Empty
// optional fields in d delete the corresponding attribute.
func (w *Workspace) ApplyEdits(ctx context.Context, d forms.Draft) (CommitResult, error) {
	node := w.SelectedNode()
	var (
		candidate *domain.Environment
		found     bool
		editErr   error
		msg       string
	)
	switch data := node.Data.(type) {
	case *domain.Shell:
		msg = MsgShellUpdated
		candidate, found = mutation.ReplaceShell(w.env, data.ID, func(s *domain.Shell) *domain.Shell {
			return forms.ApplyShellDraft(s, d)
		})
	case *domain.Submodel:
		msg = MsgSubmodelUpdated
		candidate, found = mutation.ReplaceSubmodel(w.env, data.ID, func(sm *domain.Submodel) *domain.Submodel {
			return forms.ApplySubmodelDraft(sm, d)
		})
	case domain.SubmodelElement:
		msg = MsgElementUpdated
		candidate, found = mutation.ReplaceSubmodel(w.env, node.Meta.SubmodelID, func(sm *domain.Submodel) *domain.Submodel {
			next, err := mutation.WriteAt(sm, node.Meta.Path, func(el domain.SubmodelElement) domain.SubmodelElement {
				return forms.ApplyElementDraft(el, d)
			})
			editErr = err
			return next
		})
	default:
		w.message = MsgSelectEditable
		return CommitResult{Outcome: domain.CommitRejected, Message: w.message, SelectedID: node.ID},
			&InvalidTargetError{Operation: "edit", NodeID: node.ID, Hint: "select a shell, submodel or element"}
	}
	if !found {
		return w.fail(&NodeNotFoundError{ID: node.ID})
	}
	if editErr != nil {
		return w.fail(editErr)
	}
	res := w.Commit(ctx, candidate, CommitOptions{Message: msg, Toast: true})
	return res, res.Err()
}

// Import replaces the environment with a parsed payload. The payload is
// normalized and its export form validated before the swap; on any failure
// the current environment is kept.
func (w *Workspace) Import(ctx context.Context, data []byte, enc document.Encoding) (CommitResult, error) {
	raw, err := document.Parse(data, enc)
	if err != nil {
		return w.failInput(err)
	}
	obj, ok := raw.(map[string]any)
	if !ok {
		return w.failInput(fmt.Errorf("%w: expected an object", domain.ErrMalformedInput))
	}
	normalized := document.NormalizeRaw(obj)
	exportForm := document.StripEmpty(normalized)

	res := w.gate.Validate(exportForm)
	if !res.Valid {
		rejected := w.reject(ctx, time.Now(), res.Errors)
		return rejected, rejected.Err()
	}
	env, err := document.Decode(normalized)
	if err != nil {
		return w.failInput(err)
	}
	// The gate sees the export form of the decoded environment, which is
	// what becomes canonical.
	committed, err := document.ToExportForm(env)
	if err != nil {
		return w.failInput(err)
	}
	out := w.commitValidated(ctx, env, committed, CommitOptions{Message: MsgImported, SelectID: tree.EnvironmentID})
	return out, out.Err()
}

// Export encodes the export form of the current environment. An invalid
// environment is refused with the first schema error.
func (w *Workspace) Export(enc document.Encoding) ([]byte, error) {
	doc, err := document.ToExportForm(w.env)
	if err != nil {
		return nil, err
	}
	if res := w.gate.Validate(doc); !res.Valid {
		w.message = res.FirstError()
		return nil, res.Err()
	}
	return document.Encode(doc, enc)
}

// fail records a pre-candidate failure as the inline message.
func (w *Workspace) fail(err error) (CommitResult, error) {
	w.message = err.Error()
	var ife *forms.IncompleteFormError
	if errors.As(err, &ife) {
		w.message = fmt.Sprintf("%s is required for %s.", ife.Field, ife.Kind)
	}
	return CommitResult{Outcome: domain.CommitRejected, Message: w.message, SelectedID: w.SelectedID()}, err
}

func (w *Workspace) failInput(err error) (CommitResult, error) {
	w.message = MsgInvalidInput
	w.logger.Debug("import failed", "err", err)
	return CommitResult{Outcome: domain.CommitRejected, Message: w.message, SelectedID: w.SelectedID()}, err
}
