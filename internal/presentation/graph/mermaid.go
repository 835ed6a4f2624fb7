package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/aasedit/pkg/tree"
)

// Overlay contains editor state to visualize on the graph.
type Overlay struct {
	Expanded []string
	Selected string
}

// GenerateMermaid produces a Mermaid flowchart of the navigation tree.
// It applies semantic styling:
// - Package and Environment: ((Circle))
// - Group: [[Subroutine]]
// - Shell: ([Stadium])
// - Referenced-only Submodel: [/Parallelogram/]
// - Element with children: {{Hexagon}}
// - Default: [Rectangle]
// It also applies overlay styles (Expanded/Selected) if provided.
func GenerateMermaid(roots []*tree.Node, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	var walk func(parent string, n *tree.Node)
	walk = func(parent string, n *tree.Node) {
		safeID := sanitizeMermaidID(n.ID)
		opener, closer := shape(n)
		fmt.Fprintf(&sb, "    %s%s\"%s\"%s\n", safeID, opener, label(n), closer)
		if parent != "" {
			fmt.Fprintf(&sb, "    %s --> %s\n", parent, safeID)
		}
		for _, c := range n.Children {
			walk(safeID, c)
		}
	}
	for _, n := range roots {
		walk("", n)
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		sb.WriteString("    classDef expanded fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef selected fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		seen := make(map[string]bool)
		for _, id := range overlay.Expanded {
			safeID := sanitizeMermaidID(id)
			if !seen[safeID] && safeID != "" {
				seen[safeID] = true
				fmt.Fprintf(&sb, "    class %s expanded;\n", safeID)
			}
		}
		if overlay.Selected != "" {
			fmt.Fprintf(&sb, "    class %s selected;\n", sanitizeMermaidID(overlay.Selected))
		}
	}

	return sb.String()
}

func shape(n *tree.Node) (string, string) {
	switch n.Kind {
	case tree.KindRoot, tree.KindEnvironment:
		return "((", "))"
	case tree.KindGroup:
		return "[[", "]]"
	case tree.KindShell:
		return "([", "])"
	case tree.KindSubmodel:
		if n.Meta.RefOnly {
			return "[/", "/]"
		}
	case tree.KindElement:
		if n.HasContainer() {
			return "{{", "}}"
		}
	}
	return "[", "]"
}

func label(n *tree.Node) string {
	text := tree.PlainLabel(n.Label)
	if n.Tag != "" {
		text = n.Tag + " " + text
	}
	return strings.ReplaceAll(text, "\"", "#quot;")
}

// sanitizeMermaidID maps every rune Mermaid does not accept in ids to '_'.
func sanitizeMermaidID(id string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			return r
		}
		return '_'
	}, id)
}
