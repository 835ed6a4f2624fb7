package domain

// Key is one typed step of a Reference.
type Key struct {
	Type  string `json:"type" mapstructure:"type"`
	Value string `json:"value" mapstructure:"value"`
}

// Reference is a typed pointer to another entity, expressed as an ordered list of keys.
type Reference struct {
	Type  string         `json:"type" mapstructure:"type"`
	Keys  []Key          `json:"keys" mapstructure:"keys"`
	Extra map[string]any `json:"-" mapstructure:",remain"`
}

// MarshalJSON merges Extra back in.
func (r Reference) MarshalJSON() ([]byte, error) {
	type alias Reference
	return marshalWithExtra(alias(r), r.Extra)
}

// BuildReference creates a single-key Reference.
// It returns nil unless all three parts are non-empty, so partially specified
// references never enter a document.
func BuildReference(refType, keyType, keyValue string) *Reference {
	if refType == "" || keyType == "" || keyValue == "" {
		return nil
	}
	return &Reference{
		Type: refType,
		Keys: []Key{{Type: keyType, Value: keyValue}},
	}
}

// FirstKeyOfType returns the first key with the given type.
func (r *Reference) FirstKeyOfType(keyType string) (Key, bool) {
	if r == nil {
		return Key{}, false
	}
	for _, k := range r.Keys {
		if k.Type == keyType {
			return k, true
		}
	}
	return Key{}, false
}
