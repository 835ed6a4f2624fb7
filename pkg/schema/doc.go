// Package schema gates environment documents behind the Asset Administration
// Shell JSON schema.
//
// A Gate compiles the embedded schema once and validates export-form
// documents against it. Validation never stops at the first problem: every
// leaf violation is collected, flattened and sorted by instance path so that
// the first error is stable across runs.
//
// Basic usage:
//
//	gate := schema.MustCompile()
//	res := gate.Validate(exportForm)
//	if !res.Valid {
//	    fmt.Println(schema.FormatFirstError(res.Errors))
//	}
//
// A different schema can be supplied with WithSchema, for example to pin a
// newer revision of the metamodel:
//
//	gate, err := schema.Compile(schema.WithSchema(raw))
//
// Messages are rendered through golang.org/x/text/message; WithLanguage
// selects the printer language.
package schema
