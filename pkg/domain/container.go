package domain

// Container attribute names.
const (
	RootContainerKey       = "submodelElements"
	ValueContainerKey      = "value"
	StatementsContainerKey = "statements"
)

// ContainerKeyFor returns the attribute holding nested children for a kind.
// Collection and List keep children under "value", Entity under "statements";
// every other kind is a leaf.
func ContainerKeyFor(kind ElementKind) (string, bool) {
	switch kind {
	case KindCollection, KindList:
		return ValueContainerKey, true
	case KindEntity:
		return StatementsContainerKey, true
	}
	return "", false
}

// Children returns the nested elements of a container element.
// The returned slice is the element's own; callers must copy before writing.
func Children(el SubmodelElement) ([]SubmodelElement, bool) {
	switch v := el.(type) {
	case *Collection:
		return v.Value, true
	case *List:
		return v.Value, true
	case *Entity:
		return v.Statements, true
	case *Property, *Range, *File, *Blob, *MultiLanguageProperty,
		*ReferenceElement, *RelationshipElement:
		return nil, false
	}
	return nil, false
}

// WithChildren returns a shallow copy of a container element holding children.
// Leaf elements are returned unchanged with ok=false.
func WithChildren(el SubmodelElement, children []SubmodelElement) (SubmodelElement, bool) {
	switch v := el.(type) {
	case *Collection:
		next := *v
		next.Value = children
		return &next, true
	case *List:
		next := *v
		next.Value = children
		return &next, true
	case *Entity:
		next := *v
		next.Statements = children
		return &next, true
	}
	return el, false
}
