package domain

import "fmt"

// ElementKind is the modelType tag of a SubmodelElement variant.
type ElementKind string

// Supported SubmodelElement kinds.
const (
	KindProperty              ElementKind = "Property"
	KindRange                 ElementKind = "Range"
	KindFile                  ElementKind = "File"
	KindBlob                  ElementKind = "Blob"
	KindMultiLanguageProperty ElementKind = "MultiLanguageProperty"
	KindReferenceElement      ElementKind = "ReferenceElement"
	KindRelationshipElement   ElementKind = "RelationshipElement"
	KindEntity                ElementKind = "Entity"
	KindCollection            ElementKind = "SubmodelElementCollection"
	KindList                  ElementKind = "SubmodelElementList"
)

// Model type tags of the identifiable records.
const (
	ModelTypeShell    = "AssetAdministrationShell"
	ModelTypeSubmodel = "Submodel"
)

// SupportedElementKinds lists the element kinds the editor can build, in the
// order the schema enumerates them.
var SupportedElementKinds = []ElementKind{
	KindBlob,
	KindEntity,
	KindFile,
	KindMultiLanguageProperty,
	KindProperty,
	KindRange,
	KindReferenceElement,
	KindRelationshipElement,
	KindCollection,
	KindList,
}

// ParseElementKind maps a modelType string to a supported kind.
func ParseElementKind(s string) (ElementKind, error) {
	for _, k := range SupportedElementKinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedKind, s)
}

// Option lists mirrored from the schema enums.
var (
	AssetKinds     = []string{"Instance", "NotApplicable", "Role", "Type"}
	ModellingKinds = []string{"Instance", "Template"}
	ReferenceTypes = []string{"ExternalReference", "ModelReference"}
	EntityTypes    = []string{"CoManagedEntity", "SelfManagedEntity"}

	DataTypes = []string{
		"xs:anyURI", "xs:base64Binary", "xs:boolean", "xs:byte", "xs:date",
		"xs:dateTime", "xs:decimal", "xs:double", "xs:duration", "xs:float",
		"xs:gDay", "xs:gMonth", "xs:gMonthDay", "xs:gYear", "xs:gYearMonth",
		"xs:hexBinary", "xs:int", "xs:integer", "xs:long", "xs:negativeInteger",
		"xs:nonNegativeInteger", "xs:nonPositiveInteger", "xs:positiveInteger",
		"xs:short", "xs:string", "xs:time", "xs:unsignedByte", "xs:unsignedInt",
		"xs:unsignedLong", "xs:unsignedShort",
	}

	KeyTypes = []string{
		"AnnotatedRelationshipElement", "AssetAdministrationShell", "BasicEventElement",
		"Blob", "Capability", "ConceptDescription", "DataElement", "Entity",
		"EventElement", "File", "FragmentReference", "GlobalReference",
		"Identifiable", "MultiLanguageProperty", "Operation", "Property", "Range",
		"Referable", "ReferenceElement", "RelationshipElement", "Submodel",
		"SubmodelElement", "SubmodelElementCollection", "SubmodelElementList",
	}
)

// Reference and key type values used when wiring Shells to Submodels.
const (
	ReferenceTypeModel = "ModelReference"
	KeyTypeSubmodel    = "Submodel"
)
