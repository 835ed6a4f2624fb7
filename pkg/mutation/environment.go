package mutation

import "github.com/aretw0/aasedit/pkg/domain"

// ReplaceSubmodel returns a new environment where the submodel with id is
// replaced by fn(submodel). Other records keep pointer identity.
// It reports false, and returns env unchanged, when no submodel matches.
func ReplaceSubmodel(env *domain.Environment, id string, fn func(*domain.Submodel) *domain.Submodel) (*domain.Environment, bool) {
	_, i := env.FindSubmodel(id)
	if i < 0 {
		return env, false
	}
	next := env.Clone()
	next.Submodels[i] = fn(env.Submodels[i])
	return next, true
}

// ReplaceShell returns a new environment where the shell with id is replaced by fn(shell).
func ReplaceShell(env *domain.Environment, id string, fn func(*domain.Shell) *domain.Shell) (*domain.Environment, bool) {
	_, i := env.FindShell(id)
	if i < 0 {
		return env, false
	}
	next := env.Clone()
	next.Shells[i] = fn(env.Shells[i])
	return next, true
}

// AppendShell returns a new environment with s appended.
func AppendShell(env *domain.Environment, s *domain.Shell) *domain.Environment {
	next := env.Clone()
	next.Shells = append(next.Shells, s)
	return next
}

// AppendSubmodel returns a new environment with sm appended to the submodel
// list and, when owner is non-empty, a reference to it appended to that shell.
func AppendSubmodel(env *domain.Environment, owner string, sm *domain.Submodel, ref *domain.Reference) *domain.Environment {
	next := env.Clone()
	next.Submodels = append(next.Submodels, sm)
	if owner == "" || ref == nil {
		return next
	}
	for i, s := range next.Shells {
		if s.ID != owner {
			continue
		}
		shell := *s
		refs := make([]*domain.Reference, len(s.Submodels), len(s.Submodels)+1)
		copy(refs, s.Submodels)
		shell.Submodels = append(refs, ref)
		next.Shells[i] = &shell
	}
	return next
}
