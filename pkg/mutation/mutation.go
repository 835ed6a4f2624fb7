// Package mutation implements path-addressed, copy-on-write updates of
// Submodels and Environments.
//
// Every write copies only the containers on the path from the root to the
// target; all other records keep pointer identity with the input.
package mutation

import (
	"github.com/aretw0/aasedit/pkg/domain"
)

// Updater transforms the element found at the end of a path.
type Updater func(domain.SubmodelElement) domain.SubmodelElement

// ReadAt returns the element addressed by p, or false if any step misses.
// The empty path does not address an element.
func ReadAt(sm *domain.Submodel, p domain.Path) (domain.SubmodelElement, bool) {
	if sm == nil || len(p) == 0 || p[0].ContainerKey != domain.RootContainerKey {
		return nil, false
	}
	items := sm.SubmodelElements
	var current domain.SubmodelElement
	for i, step := range p {
		if i > 0 {
			key, ok := domain.ContainerKeyFor(current.Kind())
			if !ok || key != step.ContainerKey {
				return nil, false
			}
			items, _ = domain.Children(current)
		}
		if step.Index < 0 || step.Index >= len(items) || items[step.Index] == nil {
			return nil, false
		}
		current = items[step.Index]
	}
	return current, true
}

// WriteAt returns a new Submodel with the element at p replaced by fn(element).
//
// On a miss (empty path, unknown container, index out of range) the original
// submodel is returned unchanged together with a *domain.PathMissError, so a
// stale path never silently drops an edit.
func WriteAt(sm *domain.Submodel, p domain.Path, fn Updater) (*domain.Submodel, error) {
	if sm == nil {
		return sm, &domain.PathMissError{Reason: "nil submodel"}
	}
	if len(p) == 0 {
		return sm, &domain.PathMissError{Reason: "empty path"}
	}
	head := p[0]
	if head.ContainerKey != domain.RootContainerKey {
		return sm, &domain.PathMissError{Step: 0, ContainerKey: head.ContainerKey, Index: head.Index, Reason: "submodel has no such container"}
	}
	elements, err := writeList(sm.SubmodelElements, p, 0, fn)
	if err != nil {
		return sm, err
	}
	next := *sm
	next.SubmodelElements = elements
	return &next, nil
}

// writeList copies items, recurses into items[p[depth].Index] and returns the copy.
func writeList(items []domain.SubmodelElement, p domain.Path, depth int, fn Updater) ([]domain.SubmodelElement, error) {
	step := p[depth]
	if step.Index < 0 || step.Index >= len(items) || items[step.Index] == nil {
		return nil, &domain.PathMissError{Step: depth, ContainerKey: step.ContainerKey, Index: step.Index, Reason: "index out of range"}
	}
	target := items[step.Index]

	var updated domain.SubmodelElement
	if depth == len(p)-1 {
		updated = fn(target)
	} else {
		next := p[depth+1]
		key, ok := domain.ContainerKeyFor(target.Kind())
		if !ok || key != next.ContainerKey {
			return nil, &domain.PathMissError{Step: depth + 1, ContainerKey: next.ContainerKey, Index: next.Index, Reason: "element has no such container"}
		}
		children, _ := domain.Children(target)
		copied, err := writeList(children, p, depth+1, fn)
		if err != nil {
			return nil, err
		}
		updated, _ = domain.WithChildren(target, copied)
	}

	out := make([]domain.SubmodelElement, len(items))
	copy(out, items)
	out[step.Index] = updated
	return out, nil
}

// AppendAt adds el as the last child of the container at parent and returns
// the new submodel and the path of the added element. The empty parent path
// appends to the submodel's own element list.
func AppendAt(sm *domain.Submodel, parent domain.Path, el domain.SubmodelElement) (*domain.Submodel, domain.Path, error) {
	if sm == nil {
		return sm, nil, &domain.PathMissError{Reason: "nil submodel"}
	}
	if len(parent) == 0 {
		n := len(sm.SubmodelElements)
		out := make([]domain.SubmodelElement, n, n+1)
		copy(out, sm.SubmodelElements)
		next := *sm
		next.SubmodelElements = append(out, el)
		return &next, domain.Root(n), nil
	}

	target, ok := ReadAt(sm, parent)
	if !ok {
		last := parent[len(parent)-1]
		return sm, nil, &domain.PathMissError{Step: len(parent) - 1, ContainerKey: last.ContainerKey, Index: last.Index, Reason: "parent not found"}
	}
	key, ok := domain.ContainerKeyFor(target.Kind())
	if !ok {
		return sm, nil, &domain.PathMissError{Step: len(parent) - 1, Reason: "parent " + string(target.Kind()) + " holds no children"}
	}
	children, _ := domain.Children(target)
	index := len(children)

	next, err := WriteAt(sm, parent, func(cur domain.SubmodelElement) domain.SubmodelElement {
		kids, _ := domain.Children(cur)
		out := make([]domain.SubmodelElement, len(kids), len(kids)+1)
		copy(out, kids)
		updated, _ := domain.WithChildren(cur, append(out, el))
		return updated
	})
	if err != nil {
		return sm, nil, err
	}
	return next, parent.Append(key, index), nil
}
