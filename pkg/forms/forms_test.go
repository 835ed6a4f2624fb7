package forms

import (
	"strings"
	"testing"

	"github.com/aretw0/aasedit/pkg/domain"
	"github.com/aretw0/aasedit/pkg/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShellForm_Build(t *testing.T) {
	s, err := ShellForm{ID: "urn:uuid:1", AssetKind: "Instance", GlobalAssetID: "urn:asset"}.Build()
	require.NoError(t, err)
	assert.Equal(t, "urn:uuid:1", s.ID)
	assert.Equal(t, "Instance", s.AssetInformation.AssetKind)
	assert.Equal(t, "urn:asset", s.AssetInformation.GlobalAssetID)

	_, err = ShellForm{AssetKind: "Instance"}.Build()
	assertMissing(t, err, "id")

	_, err = ShellForm{ID: "urn:uuid:1"}.Build()
	assertMissing(t, err, "assetKind")
}

func TestSubmodelForm_Build(t *testing.T) {
	sm, err := SubmodelForm{ID: "urn:sm", IDShort: "Nameplate", Kind: "Template"}.Build()
	require.NoError(t, err)
	assert.Equal(t, "Template", sm.Kind)

	_, err = SubmodelForm{}.Build()
	assertMissing(t, err, "id")
}

func TestDefaultForms(t *testing.T) {
	s := DefaultShellForm()
	assert.True(t, strings.HasPrefix(s.ID, "urn:uuid:"))
	assert.Equal(t, domain.AssetKinds[0], s.AssetKind)

	sm := DefaultSubmodelForm()
	assert.NotEqual(t, s.ID, sm.ID)
	assert.Equal(t, domain.ModellingKinds[0], sm.Kind)

	el := DefaultElementForm()
	assert.Equal(t, domain.KindBlob, el.Type)
	assert.Equal(t, "en", el.Language)
	_, err := el.Build()
	assert.NoError(t, err)
}

func TestElementForm_BuildEveryKind(t *testing.T) {
	for _, kind := range domain.SupportedElementKinds {
		t.Run(string(kind), func(t *testing.T) {
			f := DefaultElementForm()
			f.Type = kind
			f.IDShort = "Elem01"
			el, err := f.Build()
			require.NoError(t, err)
			assert.Equal(t, kind, el.Kind())
			assert.Equal(t, "Elem01", el.ShortID())
		})
	}
}

func TestElementForm_MissingValueType(t *testing.T) {
	for _, kind := range []domain.ElementKind{domain.KindProperty, domain.KindRange} {
		_, err := ElementForm{Type: kind, IDShort: "Temp"}.Build()
		assertMissing(t, err, "valueType")
		assert.Contains(t, err.Error(), "valueType")
		assert.Contains(t, err.Error(), string(kind))
	}
}

func TestElementForm_MissingListType(t *testing.T) {
	_, err := ElementForm{Type: domain.KindList}.Build()
	assertMissing(t, err, "typeValueListElement")
}

func TestElementForm_UnsupportedKind(t *testing.T) {
	_, err := ElementForm{Type: "Operation"}.Build()
	assert.ErrorIs(t, err, domain.ErrUnsupportedKind)
}

func TestElementForm_References(t *testing.T) {
	f := ElementForm{
		Type:              domain.KindReferenceElement,
		ReferenceType:     "ModelReference",
		ReferenceKeyType:  "Submodel",
		ReferenceKeyValue: "",
	}
	el, err := f.Build()
	require.NoError(t, err)
	assert.Nil(t, el.(*domain.ReferenceElement).Value, "partial reference must not be built")

	f.ReferenceKeyValue = "urn:sm"
	el, err = f.Build()
	require.NoError(t, err)
	assert.Equal(t, "urn:sm", el.(*domain.ReferenceElement).Value.Keys[0].Value)

	rel, err := ElementForm{
		Type:                  domain.KindRelationshipElement,
		ReferenceType:         "ExternalReference",
		RelationFirstKeyType:  "GlobalReference",
		RelationFirstKeyValue: "http://a",
	}.Build()
	require.NoError(t, err)
	r := rel.(*domain.RelationshipElement)
	assert.NotNil(t, r.First)
	assert.Nil(t, r.Second)
}

func TestElementForm_MultiLanguageNeedsBoth(t *testing.T) {
	el, err := ElementForm{Type: domain.KindMultiLanguageProperty, Language: "en"}.Build()
	require.NoError(t, err)
	assert.Empty(t, el.(*domain.MultiLanguageProperty).Value)

	el, err = ElementForm{Type: domain.KindMultiLanguageProperty, Language: "de", Text: "Hallo"}.Build()
	require.NoError(t, err)
	assert.Equal(t, []domain.LangString{{Language: "de", Text: "Hallo"}}, el.(*domain.MultiLanguageProperty).Value)
}

func TestElementForm_FileAndBlobValues(t *testing.T) {
	el, err := ElementForm{Type: domain.KindFile, FileValue: "/doc.pdf", BlobValue: "ignored", ContentType: "application/pdf"}.Build()
	require.NoError(t, err)
	assert.Equal(t, "/doc.pdf", el.(*domain.File).Value)

	el, err = ElementForm{Type: domain.KindBlob, FileValue: "ignored", BlobValue: "aGk="}.Build()
	require.NoError(t, err)
	assert.Equal(t, "aGk=", el.(*domain.Blob).Value)
}

func TestDraftFor(t *testing.T) {
	shell := &domain.Shell{ID: "urn:aas", IDShort: "Pump"}
	d := DraftFor(&tree.Node{Kind: tree.KindShell, Data: shell})
	assert.Equal(t, domain.ModelTypeShell, d.ModelType)
	assert.Equal(t, "Pump", d.IDShort)
	assert.Equal(t, domain.AssetKinds[0], d.AssetKind, "missing asset kind falls back to the first option")

	d = DraftFor(&tree.Node{Kind: tree.KindSubmodel, Data: &domain.Submodel{ID: "urn:sm"}})
	assert.Equal(t, domain.ModellingKinds[0], d.Kind)

	d = DraftFor(&tree.Node{Kind: tree.KindElement, Data: &domain.MultiLanguageProperty{
		IDShort: "Title",
		Value:   []domain.LangString{{Language: "pt", Text: "Bomba"}},
	}})
	assert.Equal(t, "MultiLanguageProperty", d.ModelType)
	assert.Equal(t, "pt", d.Language)
	assert.Equal(t, "Bomba", d.Text)

	assert.Equal(t, Draft{}, DraftFor(&tree.Node{Kind: tree.KindGroup}))
	assert.Equal(t, Draft{}, DraftFor(nil))
}

func TestApplyShellDraft_EmptyDeletes(t *testing.T) {
	orig := &domain.Shell{
		ID:      "urn:aas",
		IDShort: "Pump",
		AssetInformation: domain.AssetInformation{
			AssetKind:     "Type",
			AssetType:     "urn:type",
			GlobalAssetID: "urn:asset",
		},
	}
	next := ApplyShellDraft(orig, Draft{AssetKind: "Instance", GlobalAssetID: "urn:asset:2"})

	assert.Empty(t, next.IDShort)
	assert.Empty(t, next.AssetInformation.AssetType)
	assert.Equal(t, "Instance", next.AssetInformation.AssetKind)
	assert.Equal(t, "urn:asset:2", next.AssetInformation.GlobalAssetID)
	assert.Equal(t, "urn:aas", next.ID)
	assert.Equal(t, "Pump", orig.IDShort, "input must not change")
}

func TestApplySubmodelDraft(t *testing.T) {
	orig := &domain.Submodel{ID: "urn:sm", IDShort: "Old", Kind: "Template"}
	next := ApplySubmodelDraft(orig, Draft{IDShort: "New"})
	assert.Equal(t, "New", next.IDShort)
	assert.Equal(t, "Template", next.Kind)
	assert.Equal(t, "Old", orig.IDShort)
}

func TestApplyElementDraft(t *testing.T) {
	prop := &domain.Property{IDShort: "Serial", ValueType: "xs:string", Value: "A"}
	next := ApplyElementDraft(prop, Draft{IDShort: "Serial", Value: ""}).(*domain.Property)
	assert.Empty(t, next.Value)
	assert.Equal(t, "xs:string", next.ValueType, "required attribute survives an empty draft")
	assert.Equal(t, "A", prop.Value)

	rng := ApplyElementDraft(&domain.Range{ValueType: "xs:int", Min: "1"}, Draft{ValueType: "xs:long", Max: "9"}).(*domain.Range)
	assert.Equal(t, "xs:long", rng.ValueType)
	assert.Empty(t, rng.Min)
	assert.Equal(t, "9", rng.Max)

	mlp := &domain.MultiLanguageProperty{Value: []domain.LangString{{Language: "en", Text: "x"}}}
	kept := ApplyElementDraft(mlp, Draft{Language: "en"}).(*domain.MultiLanguageProperty)
	assert.Equal(t, mlp.Value, kept.Value)

	list := ApplyElementDraft(&domain.List{TypeValueListElement: "Property"}, Draft{}).(*domain.List)
	assert.Equal(t, "Property", list.TypeValueListElement)

	coll := &domain.Collection{IDShort: "Old", Value: []domain.SubmodelElement{prop}}
	renamed := ApplyElementDraft(coll, Draft{IDShort: "New"}).(*domain.Collection)
	assert.Equal(t, "New", renamed.IDShort)
	assert.Same(t, prop, renamed.Value[0])
}

func assertMissing(t *testing.T, err error, field string) {
	t.Helper()
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrIncompleteForm)
	var ife *IncompleteFormError
	require.ErrorAs(t, err, &ife)
	assert.Equal(t, field, ife.Field)
}
