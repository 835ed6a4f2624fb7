package document

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/aretw0/aasedit/pkg/domain"
	"github.com/fxamacker/cbor/v2"
	"gopkg.in/yaml.v3"
)

// Encoding names a wire format for environment documents.
type Encoding string

const (
	JSON Encoding = "json"
	YAML Encoding = "yaml"
	CBOR Encoding = "cbor"
)

// Encodings lists the supported wire formats.
var Encodings = []Encoding{JSON, YAML, CBOR}

var (
	cborEnc cbor.EncMode
	cborDec cbor.DecMode
)

func init() {
	var err error
	cborEnc, err = cbor.EncOptions{
		Sort:          cbor.SortCanonical,
		IndefLength:   cbor.IndefLengthForbidden,
		NilContainers: cbor.NilContainerAsNull,
	}.EncMode()
	if err != nil {
		panic(fmt.Sprintf("document: cbor encoder mode: %v", err))
	}
	cborDec, err = cbor.DecOptions{
		DupMapKey:      cbor.DupMapKeyEnforcedAPF,
		IndefLength:    cbor.IndefLengthAllowed,
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
	}.DecMode()
	if err != nil {
		panic(fmt.Sprintf("document: cbor decoder mode: %v", err))
	}
}

// ParseEncoding maps a user supplied name ("json", "yml", ...) to an Encoding.
func ParseEncoding(name string) (Encoding, error) {
	switch strings.ToLower(strings.TrimPrefix(name, ".")) {
	case "json", "":
		return JSON, nil
	case "yaml", "yml":
		return YAML, nil
	case "cbor":
		return CBOR, nil
	}
	return "", fmt.Errorf("unknown encoding %q", name)
}

// EncodingFromPath picks the encoding from a file extension, defaulting to JSON.
func EncodingFromPath(path string) Encoding {
	enc, err := ParseEncoding(filepath.Ext(path))
	if err != nil {
		return JSON
	}
	return enc
}

// ContentType returns the media type used when serving enc over HTTP.
func (e Encoding) ContentType() string {
	switch e {
	case YAML:
		return "application/yaml"
	case CBOR:
		return "application/cbor"
	}
	return "application/json"
}

// Parse decodes a payload into the JSON data model. Syntax errors wrap
// ErrMalformedInput.
func Parse(data []byte, enc Encoding) (any, error) {
	var raw any
	switch enc {
	case JSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrMalformedInput, err)
		}
		if dec.More() {
			return nil, fmt.Errorf("%w: trailing data after document", domain.ErrMalformedInput)
		}
		return raw, nil
	case YAML:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrMalformedInput, err)
		}
	case CBOR:
		if err := cborDec.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrMalformedInput, err)
		}
	default:
		return nil, fmt.Errorf("%w: unknown encoding %q", domain.ErrMalformedInput, enc)
	}
	// YAML and CBOR yield native Go numbers and byte strings; reduce them to
	// what a JSON decoder would produce so the schema sees one data model.
	generic, err := toGeneric(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedInput, err)
	}
	return generic, nil
}

// Encode serializes doc. JSON output is indented for human readers.
func Encode(doc any, enc Encoding) ([]byte, error) {
	switch enc {
	case JSON:
		return json.MarshalIndent(doc, "", "  ")
	case YAML, CBOR:
		generic, err := toGeneric(doc)
		if err != nil {
			return nil, err
		}
		if enc == YAML {
			return yaml.Marshal(generic)
		}
		return cborEnc.Marshal(generic)
	}
	return nil, fmt.Errorf("unknown encoding %q", enc)
}
