package schema

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed aas.schema.json
var aasSchema []byte

const resourceURL = "aas.schema.json"

// Gate validates documents against a compiled schema. It is safe for
// concurrent use.
type Gate struct {
	schema  *jsonschema.Schema
	printer *message.Printer
}

type config struct {
	raw  []byte
	lang language.Tag
}

// Option configures Compile.
type Option func(*config)

// WithSchema replaces the embedded schema with raw JSON schema text.
func WithSchema(raw []byte) Option {
	return func(c *config) {
		c.raw = raw
	}
}

// WithLanguage selects the language of rendered messages.
func WithLanguage(tag language.Tag) Option {
	return func(c *config) {
		c.lang = tag
	}
}

// Compile builds a Gate. The schema is parsed and compiled exactly once.
func Compile(opts ...Option) (*Gate, error) {
	cfg := config{raw: aasSchema, lang: language.English}
	for _, opt := range opts {
		opt(&cfg)
	}

	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(cfg.raw))
	if err != nil {
		return nil, fmt.Errorf("parse schema: %w", err)
	}
	c := jsonschema.NewCompiler()
	c.DefaultDraft(jsonschema.Draft2019)
	if err := c.AddResource(resourceURL, doc); err != nil {
		return nil, fmt.Errorf("add schema resource: %w", err)
	}
	sch, err := c.Compile(resourceURL)
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return &Gate{schema: sch, printer: message.NewPrinter(cfg.lang)}, nil
}

// MustCompile is like Compile but panics on error.
func MustCompile(opts ...Option) *Gate {
	g, err := Compile(opts...)
	if err != nil {
		panic(err)
	}
	return g
}

// Result is the outcome of one validation.
type Result struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

// Err returns nil for a valid result and a *ViolationError otherwise.
func (r Result) Err() error {
	if r.Valid {
		return nil
	}
	return &ViolationError{Errors: r.Errors}
}

// FirstError is shorthand for FormatFirstError(r.Errors).
func (r Result) FirstError() string {
	return FormatFirstError(r.Errors)
}

// Validate checks doc, which must be in the JSON data model
// (map[string]any, []any, string, float64, bool, nil). Other values are
// converted through encoding/json first.
func (g *Gate) Validate(doc any) Result {
	instance, err := asInstance(doc)
	if err != nil {
		return Result{Errors: []ValidationError{{Message: err.Error()}}}
	}

	err = g.schema.Validate(instance)
	if err == nil {
		return Result{Valid: true}
	}
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return Result{Errors: []ValidationError{{Message: err.Error()}}}
	}

	var out []ValidationError
	for _, leaf := range flatten(ve) {
		out = append(out, g.convert(leaf))
	}
	slices.SortStableFunc(out, func(a, b ValidationError) int {
		if c := strings.Compare(a.InstancePath, b.InstancePath); c != 0 {
			return c
		}
		if c := strings.Compare(a.Keyword, b.Keyword); c != 0 {
			return c
		}
		return strings.Compare(a.Message, b.Message)
	})
	return Result{Errors: slices.Compact(out)}
}

func (g *Gate) convert(ve *jsonschema.ValidationError) ValidationError {
	out := ValidationError{
		InstancePath: pointer(ve.InstanceLocation),
		Message:      ve.ErrorKind.LocalizedString(g.printer),
	}
	if kp := ve.ErrorKind.KeywordPath(); len(kp) > 0 {
		out.Keyword = kp[len(kp)-1]
	}
	return out
}

// flatten collects the leaves of a validation error tree.
func flatten(ve *jsonschema.ValidationError) []*jsonschema.ValidationError {
	if len(ve.Causes) == 0 {
		return []*jsonschema.ValidationError{ve}
	}
	var leaves []*jsonschema.ValidationError
	for _, cause := range ve.Causes {
		leaves = append(leaves, flatten(cause)...)
	}
	return leaves
}

var pointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")

// pointer renders an instance location as a JSON pointer.
func pointer(tokens []string) string {
	var sb strings.Builder
	for _, t := range tokens {
		sb.WriteByte('/')
		sb.WriteString(pointerEscaper.Replace(t))
	}
	return sb.String()
}

func asInstance(doc any) (any, error) {
	switch doc.(type) {
	case nil, map[string]any, []any, string, float64, bool, json.Number:
		return doc, nil
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	return jsonschema.UnmarshalJSON(bytes.NewReader(data))
}

var defaultGate = sync.OnceValue(func() *Gate { return MustCompile() })

// Default returns a process-wide Gate over the embedded schema, compiled on
// first use.
func Default() *Gate {
	return defaultGate()
}
