package forms

import (
	"github.com/aretw0/aasedit/pkg/domain"
	"github.com/aretw0/aasedit/pkg/tree"
)

// Draft is the editable projection of the selected record.
// Empty optional fields delete the corresponding attribute when applied.
type Draft struct {
	ModelType string `json:"modelType,omitempty"`
	ID        string `json:"id,omitempty"`
	IDShort   string `json:"idShort,omitempty"`

	AssetKind     string `json:"assetKind,omitempty"`
	AssetType     string `json:"assetType,omitempty"`
	GlobalAssetID string `json:"globalAssetId,omitempty"`

	Kind string `json:"kind,omitempty"`

	ValueType            string `json:"valueType,omitempty"`
	Value                string `json:"value,omitempty"`
	Min                  string `json:"min,omitempty"`
	Max                  string `json:"max,omitempty"`
	ContentType          string `json:"contentType,omitempty"`
	Language             string `json:"language,omitempty"`
	Text                 string `json:"text,omitempty"`
	TypeValueListElement string `json:"typeValueListElement,omitempty"`
	ValueTypeListElement string `json:"valueTypeListElement,omitempty"`
	EntityType           string `json:"entityType,omitempty"`
}

// DraftFor returns the draft for a tree node. Nodes without editable data
// yield the zero Draft.
func DraftFor(n *tree.Node) Draft {
	if n == nil {
		return Draft{}
	}
	switch data := n.Data.(type) {
	case *domain.Shell:
		d := Draft{
			ModelType:     domain.ModelTypeShell,
			ID:            data.ID,
			IDShort:       data.IDShort,
			AssetKind:     data.AssetInformation.AssetKind,
			AssetType:     data.AssetInformation.AssetType,
			GlobalAssetID: data.AssetInformation.GlobalAssetID,
		}
		if d.AssetKind == "" {
			d.AssetKind = domain.AssetKinds[0]
		}
		return d
	case *domain.Submodel:
		d := Draft{ModelType: domain.ModelTypeSubmodel, ID: data.ID, IDShort: data.IDShort, Kind: data.Kind}
		if d.Kind == "" {
			d.Kind = domain.ModellingKinds[0]
		}
		return d
	case domain.SubmodelElement:
		return elementDraft(data)
	}
	return Draft{}
}

func elementDraft(el domain.SubmodelElement) Draft {
	d := Draft{ModelType: string(el.Kind()), IDShort: el.ShortID()}
	switch v := el.(type) {
	case *domain.Property:
		d.ValueType = orDefault(v.ValueType, domain.DataTypes[0])
		d.Value = v.Value
	case *domain.Range:
		d.ValueType = orDefault(v.ValueType, domain.DataTypes[0])
		d.Min, d.Max = v.Min, v.Max
	case *domain.File:
		d.ContentType, d.Value = v.ContentType, v.Value
	case *domain.Blob:
		d.ContentType, d.Value = v.ContentType, v.Value
	case *domain.MultiLanguageProperty:
		d.Language = "en"
		if len(v.Value) > 0 {
			d.Language = orDefault(v.Value[0].Language, "en")
			d.Text = v.Value[0].Text
		}
	case *domain.List:
		d.TypeValueListElement = orDefault(v.TypeValueListElement, string(domain.SupportedElementKinds[0]))
		d.ValueTypeListElement = v.ValueTypeListElement
	case *domain.Entity:
		d.EntityType = v.EntityType
	case *domain.ReferenceElement, *domain.RelationshipElement, *domain.Collection:
	}
	return d
}

// ApplyShellDraft returns a copy of s with the draft applied. The id is not
// editable.
func ApplyShellDraft(s *domain.Shell, d Draft) *domain.Shell {
	next := *s
	next.IDShort = d.IDShort
	next.AssetInformation.AssetKind = orDefault(d.AssetKind, domain.AssetKinds[0])
	next.AssetInformation.AssetType = d.AssetType
	next.AssetInformation.GlobalAssetID = d.GlobalAssetID
	return &next
}

// ApplySubmodelDraft returns a copy of sm with the draft applied. An empty
// kind keeps the current one.
func ApplySubmodelDraft(sm *domain.Submodel, d Draft) *domain.Submodel {
	next := *sm
	next.IDShort = d.IDShort
	if d.Kind != "" {
		next.Kind = d.Kind
	}
	return &next
}

// ApplyElementDraft returns a copy of el with the draft applied. Required
// attributes (valueType, typeValueListElement) are only ever replaced, never
// cleared; a MultiLanguageProperty value changes only when both language and
// text are given.
func ApplyElementDraft(el domain.SubmodelElement, d Draft) domain.SubmodelElement {
	switch v := el.(type) {
	case *domain.Property:
		next := *v
		next.IDShort = d.IDShort
		next.ValueType = orDefault(d.ValueType, v.ValueType)
		next.Value = d.Value
		return &next
	case *domain.Range:
		next := *v
		next.IDShort = d.IDShort
		next.ValueType = orDefault(d.ValueType, v.ValueType)
		next.Min, next.Max = d.Min, d.Max
		return &next
	case *domain.File:
		next := *v
		next.IDShort = d.IDShort
		next.ContentType, next.Value = d.ContentType, d.Value
		return &next
	case *domain.Blob:
		next := *v
		next.IDShort = d.IDShort
		next.ContentType, next.Value = d.ContentType, d.Value
		return &next
	case *domain.MultiLanguageProperty:
		next := *v
		next.IDShort = d.IDShort
		if d.Language != "" && d.Text != "" {
			next.Value = []domain.LangString{{Language: d.Language, Text: d.Text}}
		}
		return &next
	case *domain.ReferenceElement:
		next := *v
		next.IDShort = d.IDShort
		return &next
	case *domain.RelationshipElement:
		next := *v
		next.IDShort = d.IDShort
		return &next
	case *domain.Entity:
		next := *v
		next.IDShort = d.IDShort
		next.EntityType = orDefault(d.EntityType, v.EntityType)
		return &next
	case *domain.Collection:
		next := *v
		next.IDShort = d.IDShort
		return &next
	case *domain.List:
		next := *v
		next.IDShort = d.IDShort
		next.TypeValueListElement = orDefault(d.TypeValueListElement, v.TypeValueListElement)
		next.ValueTypeListElement = orDefault(d.ValueTypeListElement, v.ValueTypeListElement)
		return &next
	}
	return el
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
