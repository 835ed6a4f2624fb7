// Package forms builds new records from flat field sets and applies edits to
// existing ones.
//
// Builders reject a form that lacks a required field with an
// *IncompleteFormError before any candidate document exists.
package forms

import (
	"fmt"

	"github.com/aretw0/aasedit/pkg/document"
	"github.com/aretw0/aasedit/pkg/domain"
)

// IncompleteFormError names the missing field of a rejected form.
type IncompleteFormError struct {
	Kind  string // Record or element kind being built
	Field string
}

func (e *IncompleteFormError) Error() string {
	return fmt.Sprintf("%s is required for %s", e.Field, e.Kind)
}

func (e *IncompleteFormError) Unwrap() error { return domain.ErrIncompleteForm }

// ShellForm holds the fields of a new Asset Administration Shell.
type ShellForm struct {
	ID            string `json:"id"`
	IDShort       string `json:"idShort,omitempty"`
	AssetKind     string `json:"assetKind"`
	AssetType     string `json:"assetType,omitempty"`
	GlobalAssetID string `json:"globalAssetId,omitempty"`
}

// DefaultShellForm seeds a fresh id and the first asset kind.
func DefaultShellForm() ShellForm {
	return ShellForm{ID: document.NewURN(), AssetKind: domain.AssetKinds[0]}
}

// Build validates required fields and returns the shell.
func (f ShellForm) Build() (*domain.Shell, error) {
	if f.ID == "" {
		return nil, &IncompleteFormError{Kind: domain.ModelTypeShell, Field: "id"}
	}
	if f.AssetKind == "" {
		return nil, &IncompleteFormError{Kind: domain.ModelTypeShell, Field: "assetKind"}
	}
	return &domain.Shell{
		ID:      f.ID,
		IDShort: f.IDShort,
		AssetInformation: domain.AssetInformation{
			AssetKind:     f.AssetKind,
			AssetType:     f.AssetType,
			GlobalAssetID: f.GlobalAssetID,
		},
	}, nil
}

// SubmodelForm holds the fields of a new Submodel.
type SubmodelForm struct {
	ID      string `json:"id"`
	IDShort string `json:"idShort,omitempty"`
	Kind    string `json:"kind,omitempty"`
}

// DefaultSubmodelForm seeds a fresh id and the first modelling kind.
func DefaultSubmodelForm() SubmodelForm {
	return SubmodelForm{ID: document.NewURN(), Kind: domain.ModellingKinds[0]}
}

// Build validates required fields and returns the submodel.
func (f SubmodelForm) Build() (*domain.Submodel, error) {
	if f.ID == "" {
		return nil, &IncompleteFormError{Kind: domain.ModelTypeSubmodel, Field: "id"}
	}
	return &domain.Submodel{ID: f.ID, IDShort: f.IDShort, Kind: f.Kind}, nil
}

// ElementForm is the union of the fields any supported element kind uses.
// Build reads only the fields relevant to Type.
type ElementForm struct {
	Type    domain.ElementKind `json:"type"`
	IDShort string             `json:"idShort,omitempty"`

	ValueType string `json:"valueType,omitempty"` // Property, Range
	Value     string `json:"value,omitempty"`     // Property
	Min       string `json:"min,omitempty"`
	Max       string `json:"max,omitempty"`

	ContentType string `json:"contentType,omitempty"` // File, Blob
	FileValue   string `json:"fileValue,omitempty"`
	BlobValue   string `json:"blobValue,omitempty"`

	Language string `json:"language,omitempty"` // MultiLanguageProperty
	Text     string `json:"text,omitempty"`

	ReferenceType          string `json:"referenceType,omitempty"`
	ReferenceKeyType       string `json:"referenceKeyType,omitempty"`
	ReferenceKeyValue      string `json:"referenceKeyValue,omitempty"`
	RelationFirstKeyType   string `json:"relationFirstKeyType,omitempty"`
	RelationFirstKeyValue  string `json:"relationFirstKeyValue,omitempty"`
	RelationSecondKeyType  string `json:"relationSecondKeyType,omitempty"`
	RelationSecondKeyValue string `json:"relationSecondKeyValue,omitempty"`

	TypeValueListElement string `json:"typeValueListElement,omitempty"`
	ValueTypeListElement string `json:"valueTypeListElement,omitempty"`

	EntityType    string `json:"entityType,omitempty"`
	GlobalAssetID string `json:"globalAssetId,omitempty"`
}

// DefaultElementForm seeds every enum field with its first option.
func DefaultElementForm() ElementForm {
	return ElementForm{
		Type:                  domain.SupportedElementKinds[0],
		ValueType:             domain.DataTypes[0],
		Language:              "en",
		ReferenceType:         domain.ReferenceTypes[0],
		ReferenceKeyType:      domain.KeyTypes[0],
		RelationFirstKeyType:  domain.KeyTypes[0],
		RelationSecondKeyType: domain.KeyTypes[0],
		TypeValueListElement:  string(domain.SupportedElementKinds[0]),
		EntityType:            domain.EntityTypes[0],
	}
}

// Build returns the element described by the form.
func (f ElementForm) Build() (domain.SubmodelElement, error) {
	kind, err := domain.ParseElementKind(string(f.Type))
	if err != nil {
		return nil, err
	}
	required := func(field, value string) error {
		if value == "" {
			return &IncompleteFormError{Kind: string(kind), Field: field}
		}
		return nil
	}

	switch kind {
	case domain.KindProperty:
		if err := required("valueType", f.ValueType); err != nil {
			return nil, err
		}
		return &domain.Property{IDShort: f.IDShort, ValueType: f.ValueType, Value: f.Value}, nil
	case domain.KindRange:
		if err := required("valueType", f.ValueType); err != nil {
			return nil, err
		}
		return &domain.Range{IDShort: f.IDShort, ValueType: f.ValueType, Min: f.Min, Max: f.Max}, nil
	case domain.KindFile:
		return &domain.File{IDShort: f.IDShort, ContentType: f.ContentType, Value: f.FileValue}, nil
	case domain.KindBlob:
		return &domain.Blob{IDShort: f.IDShort, ContentType: f.ContentType, Value: f.BlobValue}, nil
	case domain.KindMultiLanguageProperty:
		el := &domain.MultiLanguageProperty{IDShort: f.IDShort}
		if f.Language != "" && f.Text != "" {
			el.Value = []domain.LangString{{Language: f.Language, Text: f.Text}}
		}
		return el, nil
	case domain.KindReferenceElement:
		return &domain.ReferenceElement{
			IDShort: f.IDShort,
			Value:   domain.BuildReference(f.ReferenceType, f.ReferenceKeyType, f.ReferenceKeyValue),
		}, nil
	case domain.KindRelationshipElement:
		return &domain.RelationshipElement{
			IDShort: f.IDShort,
			First:   domain.BuildReference(f.ReferenceType, f.RelationFirstKeyType, f.RelationFirstKeyValue),
			Second:  domain.BuildReference(f.ReferenceType, f.RelationSecondKeyType, f.RelationSecondKeyValue),
		}, nil
	case domain.KindEntity:
		return &domain.Entity{IDShort: f.IDShort, EntityType: f.EntityType, GlobalAssetID: f.GlobalAssetID}, nil
	case domain.KindCollection:
		return &domain.Collection{IDShort: f.IDShort}, nil
	case domain.KindList:
		if err := required("typeValueListElement", f.TypeValueListElement); err != nil {
			return nil, err
		}
		return &domain.List{
			IDShort:              f.IDShort,
			TypeValueListElement: f.TypeValueListElement,
			ValueTypeListElement: f.ValueTypeListElement,
		}, nil
	}
	return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedKind, kind)
}
