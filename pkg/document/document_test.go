package document

import (
	"strings"
	"testing"

	"github.com/aretw0/aasedit/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleJSON = `{
  "x-tool": "workbench",
  "assetAdministrationShells": [
    {
      "modelType": "AssetAdministrationShell",
      "id": "urn:aas:1",
      "idShort": "Pump",
      "description": [{"language": "en", "text": "Feed pump"}],
      "derivedFrom": {"type": "ModelReference", "keys": [{"type": "AssetAdministrationShell", "value": "urn:aas:type"}]},
      "assetInformation": {
        "assetKind": "Instance",
        "globalAssetId": "urn:asset:1",
        "specificAssetIds": [{"name": "serialNumber", "value": "A-1"}]
      },
      "submodels": [
        {"type": "ModelReference", "keys": [{"type": "Submodel", "value": "urn:sm:1"}]}
      ]
    }
  ],
  "submodels": [
    {
      "modelType": "Submodel",
      "id": "urn:sm:1",
      "idShort": "Nameplate",
      "description": [{"language": "en", "text": "Digital nameplate"}],
      "administration": {"version": "2", "revision": "0"},
      "semanticId": {"type": "ExternalReference", "keys": [{"type": "GlobalReference", "value": "urn:sem:nameplate"}]},
      "submodelElements": [
        {"modelType": "Property", "idShort": "Serial", "valueType": "xs:string", "value": "A-1",
         "semanticId": {"type": "ExternalReference", "keys": [{"type": "GlobalReference", "value": "urn:sem:serial"}]},
         "qualifiers": [{"type": "Multiplicity", "valueType": "xs:string", "value": "One"}]},
        {
          "modelType": "SubmodelElementCollection",
          "idShort": "Address",
          "value": [
            {"modelType": "MultiLanguageProperty", "idShort": "Street",
             "value": [{"language": "en", "text": "Main St"}]},
            {"modelType": "Entity", "idShort": "Site", "entityType": "SelfManagedEntity",
             "specificAssetIds": [{"name": "site", "value": "north"}],
             "statements": [{"modelType": "Range", "idShort": "Temp", "valueType": "xs:int", "min": "0", "max": "90"}]}
          ]
        },
        {"modelType": "ReferenceElement", "idShort": "Doc",
         "displayName": [{"language": "de", "text": "Dokument"}],
         "value": {"type": "ExternalReference", "keys": [{"type": "GlobalReference", "value": "http://x"}],
                   "referredSemanticId": {"type": "ExternalReference", "keys": [{"type": "GlobalReference", "value": "urn:sem:doc"}]}}}
      ]
    }
  ]
}`

func TestNormalizeRaw(t *testing.T) {
	raw := map[string]any{
		domain.KeyShells:    "not a list",
		domain.KeySubmodels: []any{map[string]any{"id": "a"}},
		"other":             1.0,
	}
	out := NormalizeRaw(raw)

	assert.Equal(t, []any{}, out[domain.KeyShells])
	assert.Len(t, out[domain.KeySubmodels], 1)
	assert.Equal(t, []any{}, out[domain.KeyConceptDescriptions])
	assert.Equal(t, 1.0, out["other"])
	assert.Equal(t, "not a list", raw[domain.KeyShells], "input must not change")
}

func TestNormalize_Typed(t *testing.T) {
	raw, err := Parse([]byte(sampleJSON), JSON)
	require.NoError(t, err)

	env, err := Normalize(raw)
	require.NoError(t, err)

	require.Len(t, env.Shells, 1)
	assert.Equal(t, "Instance", env.Shells[0].AssetInformation.AssetKind)
	k, ok := env.Shells[0].Submodels[0].FirstKeyOfType(domain.KeyTypeSubmodel)
	require.True(t, ok)
	assert.Equal(t, "urn:sm:1", k.Value)

	require.Len(t, env.Submodels, 1)
	els := env.Submodels[0].SubmodelElements
	require.Len(t, els, 3)
	assert.IsType(t, &domain.Property{}, els[0])
	assert.IsType(t, &domain.ReferenceElement{}, els[2])

	coll, ok := els[1].(*domain.Collection)
	require.True(t, ok)
	require.Len(t, coll.Value, 2)
	mlp := coll.Value[0].(*domain.MultiLanguageProperty)
	assert.Equal(t, "Main St", mlp.Value[0].Text)
	entity := coll.Value[1].(*domain.Entity)
	rng := entity.Statements[0].(*domain.Range)
	assert.Equal(t, "90", rng.Max)

	assert.Equal(t, "workbench", env.Extra["x-tool"])
	assert.NotNil(t, env.ConceptDescriptions)

	// Attributes without a typed field are kept on the record that carries them.
	assert.Contains(t, env.Shells[0].Extra, "description")
	assert.Contains(t, env.Shells[0].Extra, "derivedFrom")
	assert.NotContains(t, env.Shells[0].Extra, "modelType")
	assert.Contains(t, env.Shells[0].AssetInformation.Extra, "specificAssetIds")
	assert.Contains(t, env.Submodels[0].Extra, "semanticId")
	assert.NotContains(t, env.Submodels[0].Extra, "modelType")
	serial := els[0].(*domain.Property)
	assert.Contains(t, serial.Extra, "qualifiers")
	assert.NotContains(t, serial.Extra, "modelType")
	assert.Contains(t, entity.Extra, "specificAssetIds")
	doc := els[2].(*domain.ReferenceElement)
	assert.Contains(t, doc.Value.Extra, "referredSemanticId")
}

func TestNormalize_ExportFormMatchesInput(t *testing.T) {
	raw, err := Parse([]byte(sampleJSON), JSON)
	require.NoError(t, err)
	env, err := Normalize(raw)
	require.NoError(t, err)

	out, err := ToExportForm(env)
	require.NoError(t, err)
	// sampleJSON has no empty sequences, so nothing is stripped.
	assert.Equal(t, raw, out)
}

func TestNormalize_Malformed(t *testing.T) {
	for _, raw := range []any{nil, []any{}, "text", 3.0, true} {
		_, err := Normalize(raw)
		assert.ErrorIs(t, err, domain.ErrMalformedInput)
	}
}

func TestNormalize_UnsupportedElement(t *testing.T) {
	raw := map[string]any{
		domain.KeySubmodels: []any{map[string]any{
			"id": "sm",
			"submodelElements": []any{
				map[string]any{"modelType": "Operation", "idShort": "op"},
			},
		}},
	}
	_, err := Normalize(raw)
	assert.ErrorIs(t, err, domain.ErrMalformedInput)
	assert.Contains(t, err.Error(), "Operation")
}

func TestNormalize_EmptyObject(t *testing.T) {
	env, err := Normalize(map[string]any{})
	require.NoError(t, err)
	assert.Empty(t, env.Shells)
	assert.NotNil(t, env.Shells)
	assert.Empty(t, env.Submodels)
	assert.Nil(t, env.Extra)
}

func TestToExportForm_StripsEmpty(t *testing.T) {
	env := domain.NewEnvironment()
	env.Shells = []*domain.Shell{{ID: "urn:aas", AssetInformation: domain.AssetInformation{AssetKind: "Type"}}}
	env.Submodels = []*domain.Submodel{{ID: "urn:sm"}}

	out, err := ToExportForm(env)
	require.NoError(t, err)

	assert.NotContains(t, out, domain.KeyConceptDescriptions)
	shell := out[domain.KeyShells].([]any)[0].(map[string]any)
	assert.NotContains(t, shell, "submodels")
	assert.Equal(t, "AssetAdministrationShell", shell["modelType"])
	sm := out[domain.KeySubmodels].([]any)[0].(map[string]any)
	assert.NotContains(t, sm, "submodelElements")

	// The typed document is untouched.
	assert.NotNil(t, env.ConceptDescriptions)
}

func TestToExportForm_EmptyEnvironment(t *testing.T) {
	out, err := ToExportForm(domain.NewEnvironment())
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestStripEmpty_DoesNotMutate(t *testing.T) {
	shell := map[string]any{"id": "a", "submodels": []any{}}
	doc := map[string]any{domain.KeyShells: []any{shell}, domain.KeySubmodels: []any{}}

	out := StripEmpty(doc)
	assert.NotContains(t, out, domain.KeySubmodels)
	assert.NotContains(t, out[domain.KeyShells].([]any)[0], "submodels")

	assert.Contains(t, doc, domain.KeySubmodels)
	assert.Contains(t, shell, "submodels")
}

func TestRoundTrip_AllEncodings(t *testing.T) {
	raw, err := Parse([]byte(sampleJSON), JSON)
	require.NoError(t, err)
	env, err := Normalize(raw)
	require.NoError(t, err)
	want, err := ToExportForm(env)
	require.NoError(t, err)

	for _, enc := range Encodings {
		t.Run(string(enc), func(t *testing.T) {
			data, err := Encode(env, enc)
			require.NoError(t, err)

			back, err := Parse(data, enc)
			require.NoError(t, err)
			again, err := Normalize(back)
			require.NoError(t, err)

			got, err := ToExportForm(again)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestParse_Malformed(t *testing.T) {
	tests := []struct {
		name string
		data string
		enc  Encoding
	}{
		{"json syntax", `{"a":`, JSON},
		{"json trailing", `{} {}`, JSON},
		{"yaml syntax", "a: [1, 2", YAML},
		{"cbor garbage", "\xff\xff", CBOR},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data), tt.enc)
			assert.ErrorIs(t, err, domain.ErrMalformedInput)
		})
	}
}

func TestParse_YAMLNumbersBecomeFloats(t *testing.T) {
	raw, err := Parse([]byte("count: 3\nname: x\n"), YAML)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"count": 3.0, "name": "x"}, raw)
}

func TestEncodingFromPath(t *testing.T) {
	assert.Equal(t, YAML, EncodingFromPath("env.yml"))
	assert.Equal(t, YAML, EncodingFromPath("env.YAML"))
	assert.Equal(t, CBOR, EncodingFromPath("/tmp/env.cbor"))
	assert.Equal(t, JSON, EncodingFromPath("env.json"))
	assert.Equal(t, JSON, EncodingFromPath("env.aasx"))

	_, err := ParseEncoding("xml")
	assert.Error(t, err)
}

func TestNewURN(t *testing.T) {
	a, b := NewURN(), NewURN()
	assert.True(t, strings.HasPrefix(a, "urn:uuid:"))
	assert.Len(t, a, len("urn:uuid:")+36)
	assert.NotEqual(t, a, b)
}
