package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPathKey(t *testing.T) {
	tests := []struct {
		name string
		path Path
		want string
	}{
		{"empty", Path{}, ""},
		{"root", Root(0), "submodelElements-0"},
		{"nested", Root(2).Append(ValueContainerKey, 1), "submodelElements-2.value-1"},
		{"entity", Root(0).Append(StatementsContainerKey, 10), "submodelElements-0.statements-10"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.path.Key())
		})
	}
}

func TestPathKey_Injective(t *testing.T) {
	paths := []Path{
		{},
		Root(1),
		Root(11),
		Root(1).Append(ValueContainerKey, 1),
		Root(11).Append(ValueContainerKey, 1),
		Root(1).Append(ValueContainerKey, 11),
		Root(1).Append(StatementsContainerKey, 1),
		Root(1).Append(ValueContainerKey, 1).Append(ValueContainerKey, 0),
	}
	seen := make(map[string]int)
	for i, p := range paths {
		k := p.Key()
		if prev, ok := seen[k]; ok {
			t.Fatalf("paths %d and %d share key %q", prev, i, k)
		}
		seen[k] = i
	}
}

func TestPathAppend_DoesNotAlias(t *testing.T) {
	base := make(Path, 1, 4)
	base[0] = Step{ContainerKey: RootContainerKey, Index: 0}

	a := base.Append(ValueContainerKey, 1)
	b := base.Append(ValueContainerKey, 2)

	assert.Equal(t, 1, a[1].Index)
	assert.Equal(t, 2, b[1].Index)
	assert.Len(t, base, 1)
}

func TestContainerKeyFor(t *testing.T) {
	for _, kind := range SupportedElementKinds {
		key, ok := ContainerKeyFor(kind)
		switch kind {
		case KindCollection, KindList:
			assert.True(t, ok)
			assert.Equal(t, "value", key)
		case KindEntity:
			assert.True(t, ok)
			assert.Equal(t, "statements", key)
		default:
			assert.False(t, ok, "kind %s should be a leaf", kind)
			assert.Empty(t, key)
		}
	}
}

func TestChildrenAndWithChildren(t *testing.T) {
	child := &Property{IDShort: "p", ValueType: "xs:string"}
	coll := &Collection{IDShort: "c"}

	next, ok := WithChildren(coll, []SubmodelElement{child})
	require.True(t, ok)
	assert.Nil(t, coll.Value, "original must not change")

	kids, ok := Children(next)
	require.True(t, ok)
	assert.Same(t, child, kids[0])

	_, ok = Children(child)
	assert.False(t, ok)
	same, ok := WithChildren(child, nil)
	assert.False(t, ok)
	assert.Same(t, child, same)
}

func TestBuildReference(t *testing.T) {
	assert.Nil(t, BuildReference("", "Submodel", "x"))
	assert.Nil(t, BuildReference("ModelReference", "", "x"))
	assert.Nil(t, BuildReference("ModelReference", "Submodel", ""))

	ref := BuildReference("ModelReference", "Submodel", "urn:sm:1")
	require.NotNil(t, ref)
	assert.Equal(t, "ModelReference", ref.Type)
	assert.Equal(t, []Key{{Type: "Submodel", Value: "urn:sm:1"}}, ref.Keys)

	k, ok := ref.FirstKeyOfType("Submodel")
	assert.True(t, ok)
	assert.Equal(t, "urn:sm:1", k.Value)
}

func TestParseElementKind(t *testing.T) {
	k, err := ParseElementKind("SubmodelElementList")
	require.NoError(t, err)
	assert.Equal(t, KindList, k)

	_, err = ParseElementKind("Operation")
	assert.ErrorIs(t, err, ErrUnsupportedKind)
}

func TestElementJSON_ModelType(t *testing.T) {
	for _, kind := range SupportedElementKinds {
		el, err := NewElement(kind)
		require.NoError(t, err)

		data, err := json.Marshal(el)
		require.NoError(t, err)

		var m map[string]any
		require.NoError(t, json.Unmarshal(data, &m))
		assert.Equal(t, string(kind), m["modelType"])
	}
}

func TestEnvironmentJSON_Canonical(t *testing.T) {
	env := &Environment{Extra: map[string]any{"x-origin": "import"}}
	env.Submodels = []*Submodel{{ID: "sm"}}

	data, err := json.Marshal(env)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(data, &m))
	assert.Equal(t, []any{}, m[KeyShells])
	assert.Equal(t, []any{}, m[KeyConceptDescriptions])
	assert.Equal(t, "import", m["x-origin"])

	sm := m[KeySubmodels].([]any)[0].(map[string]any)
	assert.Equal(t, "Submodel", sm["modelType"])
	assert.Equal(t, []any{}, sm["submodelElements"])
}

func TestPathMissError(t *testing.T) {
	err := error(&PathMissError{Step: 1, ContainerKey: "value", Index: 3, Reason: "index out of range"})
	assert.ErrorIs(t, err, ErrPathMiss)
	assert.Contains(t, err.Error(), "value-3")
}

func TestRecordJSON_MergesExtra(t *testing.T) {
	semantic := map[string]any{"type": "ExternalReference"}
	tests := []struct {
		name  string
		value any
		want  string
	}{
		{
			"property",
			&Property{IDShort: "p", ValueType: "xs:int", Extra: map[string]any{"semanticId": semantic}},
			`{"modelType":"Property","idShort":"p","valueType":"xs:int","semanticId":{"type":"ExternalReference"}}`,
		},
		{
			"modelled fields win",
			&Property{ValueType: "xs:int", Extra: map[string]any{"valueType": "xs:string", "modelType": "Range"}},
			`{"modelType":"Property","valueType":"xs:int"}`,
		},
		{
			"collection children keep their own extras",
			&Collection{Value: []SubmodelElement{&File{Extra: map[string]any{"category": "PARAMETER"}}}},
			`{"modelType":"SubmodelElementCollection","value":[{"modelType":"File","category":"PARAMETER"}]}`,
		},
		{
			"shell and asset information",
			&Shell{
				ID:               "urn:aas",
				AssetInformation: AssetInformation{AssetKind: "Type", Extra: map[string]any{"specificAssetIds": []any{}}},
				Extra:            map[string]any{"derivedFrom": semantic},
			},
			`{"modelType":"AssetAdministrationShell","id":"urn:aas","assetInformation":{"assetKind":"Type","specificAssetIds":[]},"submodels":[],"derivedFrom":{"type":"ExternalReference"}}`,
		},
		{
			"submodel",
			&Submodel{ID: "urn:sm", Extra: map[string]any{"description": []any{}}},
			`{"modelType":"Submodel","id":"urn:sm","submodelElements":[],"description":[]}`,
		},
		{
			"reference",
			&Reference{Type: "ModelReference", Keys: []Key{{Type: "Submodel", Value: "x"}}, Extra: map[string]any{"referredSemanticId": semantic}},
			`{"type":"ModelReference","keys":[{"type":"Submodel","value":"x"}],"referredSemanticId":{"type":"ExternalReference"}}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.value)
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(data))
		})
	}
}
