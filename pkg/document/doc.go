// Package document converts between wire payloads and the typed environment.
//
// Import runs Parse, then NormalizeRaw, then (after the caller validated the
// raw form) Decode. Export runs ToExportForm and then Encode. JSON, YAML and
// CBOR payloads are supported; all three are reduced to the JSON data model
// before anything else looks at them.
package document
