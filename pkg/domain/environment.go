package domain

import "encoding/json"

// Top-level keys of an environment document.
const (
	KeyShells              = "assetAdministrationShells"
	KeySubmodels           = "submodels"
	KeyConceptDescriptions = "conceptDescriptions"
)

// Environment is the root document.
//
// In the canonical in-memory form the three sequences are always present,
// possibly empty. Unknown top-level fields are kept in Extra so they survive
// an import/export round trip.
type Environment struct {
	Shells              []*Shell         `json:"assetAdministrationShells" mapstructure:"assetAdministrationShells"`
	Submodels           []*Submodel      `json:"submodels" mapstructure:"submodels"`
	ConceptDescriptions []map[string]any `json:"conceptDescriptions" mapstructure:"conceptDescriptions"`
	Extra               map[string]any   `json:"-" mapstructure:",remain"`
}

// NewEnvironment returns an empty, fully materialized environment.
func NewEnvironment() *Environment {
	return &Environment{
		Shells:              []*Shell{},
		Submodels:           []*Submodel{},
		ConceptDescriptions: []map[string]any{},
	}
}

// Clone returns a shallow copy: new top-level slices, shared records.
// Candidates are derived from a clone so the current document is never touched.
func (e *Environment) Clone() *Environment {
	next := &Environment{
		Shells:              append([]*Shell{}, e.Shells...),
		Submodels:           append([]*Submodel{}, e.Submodels...),
		ConceptDescriptions: append([]map[string]any{}, e.ConceptDescriptions...),
	}
	if e.Extra != nil {
		next.Extra = make(map[string]any, len(e.Extra))
		for k, v := range e.Extra {
			next.Extra[k] = v
		}
	}
	return next
}

// FindShell returns the shell with the given id.
func (e *Environment) FindShell(id string) (*Shell, int) {
	for i, s := range e.Shells {
		if s.ID == id {
			return s, i
		}
	}
	return nil, -1
}

// FindSubmodel returns the submodel with the given id.
func (e *Environment) FindSubmodel(id string) (*Submodel, int) {
	for i, sm := range e.Submodels {
		if sm.ID == id {
			return sm, i
		}
	}
	return nil, -1
}

// MarshalJSON writes the canonical form: Extra keys first, then the three
// sequences, always as arrays.
func (e *Environment) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(e.Extra)+3)
	for k, v := range e.Extra {
		out[k] = v
	}
	out[KeyShells] = orEmpty(e.Shells)
	out[KeySubmodels] = orEmpty(e.Submodels)
	out[KeyConceptDescriptions] = orEmpty(e.ConceptDescriptions)
	return json.Marshal(out)
}

// AssetInformation describes the asset a Shell represents.
type AssetInformation struct {
	AssetKind     string         `json:"assetKind" mapstructure:"assetKind"`
	AssetType     string         `json:"assetType,omitempty" mapstructure:"assetType"`
	GlobalAssetID string         `json:"globalAssetId,omitempty" mapstructure:"globalAssetId"`
	Extra         map[string]any `json:"-" mapstructure:",remain"`
}

// MarshalJSON merges Extra back in.
func (a AssetInformation) MarshalJSON() ([]byte, error) {
	type alias AssetInformation
	return marshalWithExtra(alias(a), a.Extra)
}

// Shell is an Asset Administration Shell record.
// Attributes the editor does not model (description, derivedFrom, ...) are
// kept in Extra, as on every nested record.
type Shell struct {
	ID               string           `json:"id" mapstructure:"id"`
	IDShort          string           `json:"idShort,omitempty" mapstructure:"idShort"`
	AssetInformation AssetInformation `json:"assetInformation" mapstructure:"assetInformation"`
	Submodels        []*Reference     `json:"submodels" mapstructure:"submodels"`
	Extra            map[string]any   `json:"-" mapstructure:",remain"`
}

// MarshalJSON adds the modelType tag.
func (s *Shell) MarshalJSON() ([]byte, error) {
	type alias Shell
	a := alias(*s)
	a.Submodels = orEmpty(a.Submodels)
	return marshalWithExtra(struct {
		ModelType string `json:"modelType"`
		alias
	}{ModelTypeShell, a}, s.Extra)
}

// Submodel is a named collection of SubmodelElements.
type Submodel struct {
	ID               string            `json:"id" mapstructure:"id"`
	IDShort          string            `json:"idShort,omitempty" mapstructure:"idShort"`
	Kind             string            `json:"kind,omitempty" mapstructure:"kind"`
	SubmodelElements []SubmodelElement `json:"submodelElements" mapstructure:"submodelElements"`
	Extra            map[string]any    `json:"-" mapstructure:",remain"`
}

// MarshalJSON adds the modelType tag.
func (sm *Submodel) MarshalJSON() ([]byte, error) {
	type alias Submodel
	a := alias(*sm)
	a.SubmodelElements = orEmpty(a.SubmodelElements)
	return marshalWithExtra(struct {
		ModelType string `json:"modelType"`
		alias
	}{ModelTypeSubmodel, a}, sm.Extra)
}

func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
