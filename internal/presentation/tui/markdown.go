// Package tui renders editor state for terminals.
package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/aasedit/pkg/schema"
	"github.com/aretw0/aasedit/pkg/tree"
)

// TreeMarkdown renders the navigation tree as a nested markdown list.
// Children of nodes missing from expanded are folded into a count; a nil
// expanded set shows everything.
func TreeMarkdown(roots []*tree.Node, expanded map[string]bool, selected string) string {
	var sb strings.Builder
	var walk func(n *tree.Node, depth int)
	walk = func(n *tree.Node, depth int) {
		text := tree.PlainLabel(n.Label)
		if n.Tag != "" {
			text = "`" + n.Tag + "` " + text
		}
		if n.ID == selected {
			text = "**" + text + "**"
		}
		open := expanded == nil || expanded[n.ID]
		if !open && len(n.Children) > 0 {
			text += fmt.Sprintf(" (+%d)", len(n.Children))
		}
		fmt.Fprintf(&sb, "%s- %s\n", strings.Repeat("  ", depth), text)
		if !open {
			return
		}
		for _, c := range n.Children {
			walk(c, depth+1)
		}
	}
	for _, n := range roots {
		walk(n, 0)
	}
	return sb.String()
}

// ValidationMarkdown renders a validation result, one error per line.
func ValidationMarkdown(res schema.Result) string {
	if res.Valid {
		return "**Document is valid!**\n"
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "**%d validation error(s)**\n\n", len(res.Errors))
	for _, e := range res.Errors {
		fmt.Fprintf(&sb, "- `%s` %s\n", pointer(e.InstancePath), e.Message)
	}
	return sb.String()
}

func pointer(p string) string {
	if p == "" {
		return "/"
	}
	return p
}

