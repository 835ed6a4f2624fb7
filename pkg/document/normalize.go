package document

import (
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/aretw0/aasedit/pkg/domain"
	"github.com/mitchellh/mapstructure"
)

var topLevelSequences = []string{
	domain.KeyShells,
	domain.KeySubmodels,
	domain.KeyConceptDescriptions,
}

// NormalizeRaw returns a copy of raw where the three top-level keys are
// sequences. A missing or non-sequence value becomes an empty sequence.
// Every other key is kept as is.
func NormalizeRaw(raw map[string]any) map[string]any {
	out := make(map[string]any, len(raw)+len(topLevelSequences))
	for k, v := range raw {
		out[k] = v
	}
	for _, key := range topLevelSequences {
		if _, ok := out[key].([]any); !ok {
			out[key] = []any{}
		}
	}
	return out
}

// Normalize turns a parsed payload into the canonical typed environment.
// raw must be a JSON object; anything else fails with ErrMalformedInput.
func Normalize(raw any) (*domain.Environment, error) {
	m, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: expected an object, got %s", domain.ErrMalformedInput, describe(raw))
	}
	return Decode(NormalizeRaw(m))
}

// Decode maps a normalized generic document onto the typed records.
// Keys a record does not model land in its Extra map, at every level, so the
// export form of the result equals the export form of doc.
func Decode(doc map[string]any) (*domain.Environment, error) {
	env := &domain.Environment{}
	if err := decodeInto(doc, env); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedInput, err)
	}
	if env.Shells == nil {
		env.Shells = []*domain.Shell{}
	}
	if env.Submodels == nil {
		env.Submodels = []*domain.Submodel{}
	}
	if env.ConceptDescriptions == nil {
		env.ConceptDescriptions = []map[string]any{}
	}
	if len(env.Extra) == 0 {
		env.Extra = nil
	}
	return env, nil
}

var (
	elementType  = reflect.TypeOf((*domain.SubmodelElement)(nil)).Elem()
	shellType    = reflect.TypeOf(domain.Shell{})
	submodelType = reflect.TypeOf(domain.Submodel{})
)

func decodeInto(input, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.ComposeDecodeHookFunc(recordHook, elementHook),
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	return dec.Decode(input)
}

// elementHook resolves the SubmodelElement interface to the variant named by
// the modelType tag and decodes the object into it.
func elementHook(_ reflect.Type, to reflect.Type, data any) (any, error) {
	if to != elementType {
		return data, nil
	}
	m, ok := data.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("submodel element must be an object, got %s", describe(data))
	}
	tag, _ := m["modelType"].(string)
	kind, err := domain.ParseElementKind(tag)
	if err != nil {
		return nil, err
	}
	el, err := domain.NewElement(kind)
	if err != nil {
		return nil, err
	}
	if err := decodeInto(withoutModelType(m), el); err != nil {
		return nil, fmt.Errorf("%s %q: %w", kind, m["idShort"], err)
	}
	return el, nil
}

// recordHook keeps the modelType tag of Shells and Submodels out of Extra;
// MarshalJSON writes it back.
func recordHook(_ reflect.Type, to reflect.Type, data any) (any, error) {
	for to.Kind() == reflect.Pointer {
		to = to.Elem()
	}
	if to != shellType && to != submodelType {
		return data, nil
	}
	if m, ok := data.(map[string]any); ok {
		return withoutModelType(m), nil
	}
	return data, nil
}

func withoutModelType(m map[string]any) map[string]any {
	if _, ok := m["modelType"]; !ok {
		return m
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		if k != "modelType" {
			out[k] = v
		}
	}
	return out
}

// ToExportForm returns a generic deep copy of env with empty optional
// sequences removed. env is never modified.
func ToExportForm(env *domain.Environment) (map[string]any, error) {
	generic, err := toGeneric(env)
	if err != nil {
		return nil, err
	}
	m, ok := generic.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("export form: expected an object, got %s", describe(generic))
	}
	return StripEmpty(m), nil
}

// StripEmpty drops empty top-level sequences, empty per-shell "submodels"
// and empty per-submodel "submodelElements". The input is not modified.
func StripEmpty(doc map[string]any) map[string]any {
	out := make(map[string]any, len(doc))
	for k, v := range doc {
		out[k] = v
	}
	for _, key := range topLevelSequences {
		if isEmptySequence(out[key]) {
			delete(out, key)
		}
	}
	if shells, ok := out[domain.KeyShells].([]any); ok {
		out[domain.KeyShells] = stripEach(shells, "submodels")
	}
	if submodels, ok := out[domain.KeySubmodels].([]any); ok {
		out[domain.KeySubmodels] = stripEach(submodels, domain.RootContainerKey)
	}
	return out
}

func stripEach(items []any, key string) []any {
	next := make([]any, len(items))
	for i, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			next[i] = item
			continue
		}
		if isEmptySequence(m[key]) {
			cp := make(map[string]any, len(m))
			for k, v := range m {
				cp[k] = v
			}
			delete(cp, key)
			m = cp
		}
		next[i] = m
	}
	return next
}

func isEmptySequence(v any) bool {
	s, ok := v.([]any)
	return !ok || len(s) == 0
}

// toGeneric reduces any JSON-encodable value to the JSON data model:
// map[string]any, []any, string, float64, bool and nil.
func toGeneric(v any) (any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func describe(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case []any:
		return "array"
	case string:
		return "string"
	case bool:
		return "boolean"
	case float64, int, int64, uint64:
		return "number"
	}
	return fmt.Sprintf("%T", v)
}
