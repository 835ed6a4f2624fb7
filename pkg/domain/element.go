package domain

// SubmodelElement is a closed sum type over the supported element kinds.
// Only the variants declared in this package implement it.
type SubmodelElement interface {
	// Kind returns the modelType tag of the variant.
	Kind() ElementKind
	// ShortID returns the element's idShort, possibly empty.
	ShortID() string

	isSubmodelElement()
}

// LangString is one language/text pair of a MultiLanguageProperty.
type LangString struct {
	Language string `json:"language" mapstructure:"language"`
	Text     string `json:"text" mapstructure:"text"`
}

// Property is a single typed value.
type Property struct {
	IDShort   string         `json:"idShort,omitempty" mapstructure:"idShort"`
	ValueType string         `json:"valueType" mapstructure:"valueType"`
	Value     string         `json:"value,omitempty" mapstructure:"value"`
	Extra     map[string]any `json:"-" mapstructure:",remain"`
}

// Range is a typed min/max interval.
type Range struct {
	IDShort   string         `json:"idShort,omitempty" mapstructure:"idShort"`
	ValueType string         `json:"valueType" mapstructure:"valueType"`
	Min       string         `json:"min,omitempty" mapstructure:"min"`
	Max       string         `json:"max,omitempty" mapstructure:"max"`
	Extra     map[string]any `json:"-" mapstructure:",remain"`
}

// File points at a file by path or URL.
type File struct {
	IDShort     string         `json:"idShort,omitempty" mapstructure:"idShort"`
	ContentType string         `json:"contentType,omitempty" mapstructure:"contentType"`
	Value       string         `json:"value,omitempty" mapstructure:"value"`
	Extra       map[string]any `json:"-" mapstructure:",remain"`
}

// Blob carries inline base64 content.
type Blob struct {
	IDShort     string         `json:"idShort,omitempty" mapstructure:"idShort"`
	ContentType string         `json:"contentType,omitempty" mapstructure:"contentType"`
	Value       string         `json:"value,omitempty" mapstructure:"value"`
	Extra       map[string]any `json:"-" mapstructure:",remain"`
}

// MultiLanguageProperty holds text in several languages.
type MultiLanguageProperty struct {
	IDShort string         `json:"idShort,omitempty" mapstructure:"idShort"`
	Value   []LangString   `json:"value,omitempty" mapstructure:"value"`
	Extra   map[string]any `json:"-" mapstructure:",remain"`
}

// ReferenceElement holds a single Reference.
type ReferenceElement struct {
	IDShort string         `json:"idShort,omitempty" mapstructure:"idShort"`
	Value   *Reference     `json:"value,omitempty" mapstructure:"value"`
	Extra   map[string]any `json:"-" mapstructure:",remain"`
}

// RelationshipElement relates two referenced entities.
type RelationshipElement struct {
	IDShort string         `json:"idShort,omitempty" mapstructure:"idShort"`
	First   *Reference     `json:"first,omitempty" mapstructure:"first"`
	Second  *Reference     `json:"second,omitempty" mapstructure:"second"`
	Extra   map[string]any `json:"-" mapstructure:",remain"`
}

// Entity groups statements about a co-managed or self-managed asset.
type Entity struct {
	IDShort       string            `json:"idShort,omitempty" mapstructure:"idShort"`
	EntityType    string            `json:"entityType,omitempty" mapstructure:"entityType"`
	GlobalAssetID string            `json:"globalAssetId,omitempty" mapstructure:"globalAssetId"`
	Statements    []SubmodelElement `json:"statements,omitempty" mapstructure:"statements"`
	Extra         map[string]any    `json:"-" mapstructure:",remain"`
}

// Collection is a SubmodelElementCollection.
type Collection struct {
	IDShort string            `json:"idShort,omitempty" mapstructure:"idShort"`
	Value   []SubmodelElement `json:"value,omitempty" mapstructure:"value"`
	Extra   map[string]any    `json:"-" mapstructure:",remain"`
}

// List is a SubmodelElementList.
type List struct {
	IDShort              string            `json:"idShort,omitempty" mapstructure:"idShort"`
	TypeValueListElement string            `json:"typeValueListElement" mapstructure:"typeValueListElement"`
	ValueTypeListElement string            `json:"valueTypeListElement,omitempty" mapstructure:"valueTypeListElement"`
	Value                []SubmodelElement `json:"value,omitempty" mapstructure:"value"`
	Extra                map[string]any    `json:"-" mapstructure:",remain"`
}

func (*Property) Kind() ElementKind              { return KindProperty }
func (*Range) Kind() ElementKind                 { return KindRange }
func (*File) Kind() ElementKind                  { return KindFile }
func (*Blob) Kind() ElementKind                  { return KindBlob }
func (*MultiLanguageProperty) Kind() ElementKind { return KindMultiLanguageProperty }
func (*ReferenceElement) Kind() ElementKind      { return KindReferenceElement }
func (*RelationshipElement) Kind() ElementKind   { return KindRelationshipElement }
func (*Entity) Kind() ElementKind                { return KindEntity }
func (*Collection) Kind() ElementKind            { return KindCollection }
func (*List) Kind() ElementKind                  { return KindList }

func (e *Property) ShortID() string              { return e.IDShort }
func (e *Range) ShortID() string                 { return e.IDShort }
func (e *File) ShortID() string                  { return e.IDShort }
func (e *Blob) ShortID() string                  { return e.IDShort }
func (e *MultiLanguageProperty) ShortID() string { return e.IDShort }
func (e *ReferenceElement) ShortID() string      { return e.IDShort }
func (e *RelationshipElement) ShortID() string   { return e.IDShort }
func (e *Entity) ShortID() string                { return e.IDShort }
func (e *Collection) ShortID() string            { return e.IDShort }
func (e *List) ShortID() string                  { return e.IDShort }

func (*Property) isSubmodelElement()              {}
func (*Range) isSubmodelElement()                 {}
func (*File) isSubmodelElement()                  {}
func (*Blob) isSubmodelElement()                  {}
func (*MultiLanguageProperty) isSubmodelElement() {}
func (*ReferenceElement) isSubmodelElement()      {}
func (*RelationshipElement) isSubmodelElement()   {}
func (*Entity) isSubmodelElement()                {}
func (*Collection) isSubmodelElement()            {}
func (*List) isSubmodelElement()                  {}

// JSON encoding adds the modelType tag and merges Extra back in.

func (e *Property) MarshalJSON() ([]byte, error) {
	type alias Property
	return marshalWithExtra(struct {
		ModelType ElementKind `json:"modelType"`
		*alias
	}{KindProperty, (*alias)(e)}, e.Extra)
}

func (e *Range) MarshalJSON() ([]byte, error) {
	type alias Range
	return marshalWithExtra(struct {
		ModelType ElementKind `json:"modelType"`
		*alias
	}{KindRange, (*alias)(e)}, e.Extra)
}

func (e *File) MarshalJSON() ([]byte, error) {
	type alias File
	return marshalWithExtra(struct {
		ModelType ElementKind `json:"modelType"`
		*alias
	}{KindFile, (*alias)(e)}, e.Extra)
}

func (e *Blob) MarshalJSON() ([]byte, error) {
	type alias Blob
	return marshalWithExtra(struct {
		ModelType ElementKind `json:"modelType"`
		*alias
	}{KindBlob, (*alias)(e)}, e.Extra)
}

func (e *MultiLanguageProperty) MarshalJSON() ([]byte, error) {
	type alias MultiLanguageProperty
	return marshalWithExtra(struct {
		ModelType ElementKind `json:"modelType"`
		*alias
	}{KindMultiLanguageProperty, (*alias)(e)}, e.Extra)
}

func (e *ReferenceElement) MarshalJSON() ([]byte, error) {
	type alias ReferenceElement
	return marshalWithExtra(struct {
		ModelType ElementKind `json:"modelType"`
		*alias
	}{KindReferenceElement, (*alias)(e)}, e.Extra)
}

func (e *RelationshipElement) MarshalJSON() ([]byte, error) {
	type alias RelationshipElement
	return marshalWithExtra(struct {
		ModelType ElementKind `json:"modelType"`
		*alias
	}{KindRelationshipElement, (*alias)(e)}, e.Extra)
}

func (e *Entity) MarshalJSON() ([]byte, error) {
	type alias Entity
	return marshalWithExtra(struct {
		ModelType ElementKind `json:"modelType"`
		*alias
	}{KindEntity, (*alias)(e)}, e.Extra)
}

func (e *Collection) MarshalJSON() ([]byte, error) {
	type alias Collection
	return marshalWithExtra(struct {
		ModelType ElementKind `json:"modelType"`
		*alias
	}{KindCollection, (*alias)(e)}, e.Extra)
}

func (e *List) MarshalJSON() ([]byte, error) {
	type alias List
	return marshalWithExtra(struct {
		ModelType ElementKind `json:"modelType"`
		*alias
	}{KindList, (*alias)(e)}, e.Extra)
}

// NewElement returns a zero value of the variant for kind.
func NewElement(kind ElementKind) (SubmodelElement, error) {
	switch kind {
	case KindProperty:
		return &Property{}, nil
	case KindRange:
		return &Range{}, nil
	case KindFile:
		return &File{}, nil
	case KindBlob:
		return &Blob{}, nil
	case KindMultiLanguageProperty:
		return &MultiLanguageProperty{}, nil
	case KindReferenceElement:
		return &ReferenceElement{}, nil
	case KindRelationshipElement:
		return &RelationshipElement{}, nil
	case KindEntity:
		return &Entity{}, nil
	case KindCollection:
		return &Collection{}, nil
	case KindList:
		return &List{}, nil
	}
	return nil, ErrUnsupportedKind
}
