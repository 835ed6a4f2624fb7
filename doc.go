/*
Package aasedit is an editing core for Asset Administration Shell (AAS) environment documents.

It keeps one canonical Environment in memory, projects it into a navigable tree,
addresses any SubmodelElement by a structural path and gates every change behind
JSON-Schema validation of the document's export form.

# Concept

Every edit derives a candidate document from the current one with copy-on-write
updates along a single path. The candidate is validated; only a valid candidate
replaces the canonical document, as a whole. A rejected candidate leaves the
document untouched and surfaces the first schema error as the editor message.

# Key Features

  - Atomic Commits: the canonical document is swapped whole or not at all.
  - Structural Sharing: an edit copies only the containers on its path.
  - Deterministic Tree: node ids are a pure function of the document.
  - Hexagonal Architecture: HTTP, MCP and Redis adapters drive the same core.

# Usage

	package main

	import (
		"context"
		"fmt"
		"log"

		"github.com/aretw0/aasedit"
		"github.com/aretw0/aasedit/pkg/document"
		"github.com/aretw0/aasedit/pkg/forms"
	)

	func main() {
		ctx := context.Background()
		ed := aasedit.New()

		// New shells are selected, so the submodel is attached to it.
		if _, err := ed.AddShell(ctx, forms.ShellForm{ID: "urn:aas:pump", AssetKind: "Instance"}); err != nil {
			log.Fatal(err)
		}
		if _, err := ed.AddSubmodel(ctx, forms.DefaultSubmodelForm()); err != nil {
			log.Fatal(err)
		}

		out, err := ed.Export(document.JSON)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(string(out))
	}
*/
package aasedit
