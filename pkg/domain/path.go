package domain

import (
	"strconv"
	"strings"
)

// Step addresses one position inside a named container.
type Step struct {
	ContainerKey string `json:"key"`
	Index        int    `json:"index"`
}

// Path walks container attributes from a Submodel root.
// The empty path denotes the Submodel itself.
type Path []Step

const (
	stepSeparator  = "."
	indexSeparator = "-"
)

// Key encodes the path as a stable string: "containerKey-index" per step,
// joined by ".". Distinct paths always yield distinct keys since container
// keys never contain either separator.
func (p Path) Key() string {
	var sb strings.Builder
	for i, s := range p {
		if i > 0 {
			sb.WriteString(stepSeparator)
		}
		sb.WriteString(s.ContainerKey)
		sb.WriteString(indexSeparator)
		sb.WriteString(strconv.Itoa(s.Index))
	}
	return sb.String()
}

// Append returns a new path with one more step. The receiver is never aliased.
func (p Path) Append(containerKey string, index int) Path {
	next := make(Path, len(p), len(p)+1)
	copy(next, p)
	return append(next, Step{ContainerKey: containerKey, Index: index})
}

// Root returns the single-step path to a top-level element of a Submodel.
func Root(index int) Path {
	return Path{{ContainerKey: RootContainerKey, Index: index}}
}
