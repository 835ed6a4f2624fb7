// Package runtime owns the canonical environment of one editing session and
// the commit protocol that guards it.
//
// Every change is expressed as a full candidate environment handed to
// Commit. A candidate whose export form fails the schema is discarded and
// the held environment stays reference-identical; a valid candidate replaces
// it wholesale. The Workspace is not safe for concurrent use.
package runtime
