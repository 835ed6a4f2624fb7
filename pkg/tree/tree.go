// Package tree derives the read-only navigation tree from an environment.
//
// The tree is recomputed wholesale on every change. Node ids are a
// deterministic function of the document, so projecting an unchanged
// environment twice yields identical ids.
package tree

import (
	"strconv"
	"strings"

	"github.com/aretw0/aasedit/pkg/domain"
)

// Node kinds.
const (
	KindRoot         = "root"
	KindEnvironment  = "environment"
	KindGroup        = "group"
	KindShell        = "aas"
	KindSubmodel     = "submodel"
	KindElement      = "element"
	KindSupplemental = "supplemental"
)

// Group names carried by KindGroup nodes.
const (
	GroupShells         = "aas"
	GroupSubmodels      = "submodels"
	GroupConcepts       = "concepts"
	GroupShellSubmodels = "aas-submodels"
	GroupElements       = "elements"
)

// Ids of the fixed nodes.
const (
	PackageID        = "package"
	EnvironmentID    = "environment"
	GroupShellsID    = "group-aas"
	GroupSubmodelsID = "group-submodels"
	GroupConceptsID  = "group-concepts"
	SupplementalID   = "supplemental-files"
)

// Meta locates a node's data inside the canonical document.
type Meta struct {
	ShellID      string      `json:"shellId,omitempty"`
	SubmodelID   string      `json:"submodelId,omitempty"`
	Path         domain.Path `json:"path,omitempty"`
	ContainerKey string      `json:"containerKey,omitempty"`
	RefOnly      bool        `json:"refOnly,omitempty"`
}

// Node is one entry of the display tree.
//
// Data holds the record the node was derived from: *domain.Shell,
// *domain.Submodel or a domain.SubmodelElement. Group and fixed nodes carry
// no data.
type Node struct {
	ID       string  `json:"id"`
	Label    string  `json:"label"`
	Tag      string  `json:"tag"`
	Kind     string  `json:"kind"`
	Group    string  `json:"group,omitempty"`
	Data     any     `json:"data,omitempty"`
	Meta     Meta    `json:"meta"`
	Children []*Node `json:"children"`
}

// HasContainer reports whether new elements can be appended under n.
func (n *Node) HasContainer() bool {
	switch n.Kind {
	case KindSubmodel:
		return !n.Meta.RefOnly
	case KindElement:
		return n.Meta.ContainerKey != ""
	}
	return false
}

// Project builds the tree for env. It never fails: dangling shell references
// become RefOnly stubs.
func Project(env *domain.Environment) []*Node {
	if env == nil {
		env = domain.NewEnvironment()
	}
	p := &projector{
		seen:      make(map[string]int),
		submodels: make(map[string]*domain.Submodel, len(env.Submodels)),
	}
	for _, sm := range env.Submodels {
		if _, dup := p.submodels[sm.ID]; !dup {
			p.submodels[sm.ID] = sm
		}
	}

	pkg := p.fixed(PackageID, "Package", "Pkg", KindRoot, "")
	envNode := p.fixed(EnvironmentID, "Environment", "Env", KindEnvironment, "")
	shells := p.fixed(GroupShellsID, "AdministrationShells", "Env", KindGroup, GroupShells)
	submodels := p.fixed(GroupSubmodelsID, "All Submodels", "Env", KindGroup, GroupSubmodels)
	concepts := p.fixed(GroupConceptsID, "ConceptDescriptions", "Env", KindGroup, GroupConcepts)

	for _, s := range env.Shells {
		shells.Children = append(shells.Children, p.shell(s))
	}
	for _, sm := range env.Submodels {
		submodels.Children = append(submodels.Children, p.submodel("", sm))
	}

	envNode.Children = []*Node{shells, submodels, concepts}
	pkg.Children = []*Node{
		envNode,
		p.fixed(SupplementalID, "Supplemental files", "Env", KindSupplemental, ""),
	}
	return []*Node{pkg}
}

type projector struct {
	seen      map[string]int
	submodels map[string]*domain.Submodel
}

// claim returns id, suffixed when an earlier node already took it. Only
// documents with duplicate Shell or Submodel ids ever hit the suffix.
func (p *projector) claim(id string) string {
	n := p.seen[id]
	p.seen[id] = n + 1
	if n == 0 {
		return id
	}
	return p.claim(id + "~" + strconv.Itoa(n+1))
}

func (p *projector) fixed(id, label, tag, kind, group string) *Node {
	return &Node{
		ID:       p.claim(id),
		Label:    quote(label, ""),
		Tag:      tag,
		Kind:     kind,
		Group:    group,
		Children: []*Node{},
	}
}

func (p *projector) shell(s *domain.Shell) *Node {
	id := "aas:" + s.ID
	node := &Node{
		ID:       p.claim(id),
		Label:    quote(s.IDShort, "AAS"),
		Tag:      "AAS",
		Kind:     KindShell,
		Data:     s,
		Meta:     Meta{ShellID: s.ID},
		Children: []*Node{},
	}
	if len(s.Submodels) == 0 {
		return node
	}
	group := &Node{
		ID:       p.claim(id + ":submodels"),
		Label:    quote("Submodels", ""),
		Tag:      "Ref",
		Kind:     KindGroup,
		Group:    GroupShellSubmodels,
		Meta:     Meta{ShellID: s.ID},
		Children: make([]*Node, 0, len(s.Submodels)),
	}
	for i, ref := range s.Submodels {
		group.Children = append(group.Children, p.reference(s, id, i, ref))
	}
	node.Children = []*Node{group}
	return node
}

// reference resolves one Submodel reference of a shell. A resolved target
// reuses the submodel's element subtree with ids scoped under the shell.
func (p *projector) reference(s *domain.Shell, shellNodeID string, idx int, ref *domain.Reference) *Node {
	smID := "ref-" + strconv.Itoa(idx)
	if key, ok := ref.FirstKeyOfType(domain.KeyTypeSubmodel); ok && key.Value != "" {
		smID = key.Value
	}
	target, found := p.submodels[smID]
	if !found {
		return &Node{
			ID:       p.claim(shellNodeID + ":submodel:" + smID),
			Label:    quote("", "Submodel"),
			Tag:      "Sm",
			Kind:     KindSubmodel,
			Data:     &domain.Submodel{ID: smID},
			Meta:     Meta{ShellID: s.ID, SubmodelID: smID, RefOnly: true},
			Children: []*Node{},
		}
	}
	node := p.submodel(shellNodeID+":", target)
	node.ID = p.claim(shellNodeID + ":submodel:" + smID)
	node.Meta.ShellID = s.ID
	return node
}

// submodel projects sm. scope prefixes every derived id so the same
// submodel can appear under several parents.
func (p *projector) submodel(scope string, sm *domain.Submodel) *Node {
	node := &Node{
		Label:    quote(sm.IDShort, "Submodel"),
		Tag:      "Sm",
		Kind:     KindSubmodel,
		Data:     sm,
		Meta:     Meta{SubmodelID: sm.ID},
		Children: []*Node{},
	}
	if scope == "" {
		node.ID = p.claim("submodel:" + sm.ID)
	}
	if len(sm.SubmodelElements) == 0 {
		return node
	}
	group := &Node{
		ID:       p.claim(scope + "submodel:" + sm.ID + ":elements"),
		Label:    quote("SubmodelElements", ""),
		Tag:      "El",
		Kind:     KindGroup,
		Group:    GroupElements,
		Meta:     Meta{SubmodelID: sm.ID},
		Children: make([]*Node, 0, len(sm.SubmodelElements)),
	}
	for i, el := range sm.SubmodelElements {
		group.Children = append(group.Children, p.element(scope, sm.ID, domain.Root(i), el))
	}
	node.Children = []*Node{group}
	return node
}

func (p *projector) element(scope, smID string, path domain.Path, el domain.SubmodelElement) *Node {
	key, _ := domain.ContainerKeyFor(el.Kind())
	node := &Node{
		ID:       p.claim(scope + ElementID(smID, path)),
		Label:    quote(el.ShortID(), string(el.Kind())),
		Tag:      "El",
		Kind:     KindElement,
		Data:     el,
		Meta:     Meta{SubmodelID: smID, Path: path, ContainerKey: key},
		Children: []*Node{},
	}
	children, _ := domain.Children(el)
	for i, child := range children {
		node.Children = append(node.Children, p.element(scope, smID, path.Append(key, i), child))
	}
	return node
}

// ShellID returns the node id of a shell.
func ShellID(id string) string { return "aas:" + id }

// SubmodelID returns the node id of a submodel in the "All Submodels" group.
func SubmodelID(id string) string { return "submodel:" + id }

// ElementsGroupID returns the node id of a submodel's element group.
func ElementsGroupID(id string) string { return "submodel:" + id + ":elements" }

// ElementID returns the node id of the element at path in the "All Submodels" group.
func ElementID(submodelID string, path domain.Path) string {
	return "element:" + submodelID + ":" + path.Key()
}

// quote wraps label in double quotes as is; embedded quotes and backslashes
// are not escaped.
func quote(label, fallback string) string {
	if label == "" {
		label = fallback
	}
	return `"` + label + `"`
}

// PlainLabel strips the surrounding quotes added to node labels.
func PlainLabel(label string) string {
	if len(label) >= 2 && strings.HasPrefix(label, `"`) && strings.HasSuffix(label, `"`) {
		return label[1 : len(label)-1]
	}
	return label
}

// BuildIndex returns a flat id lookup over the whole tree.
func BuildIndex(nodes []*Node) map[string]*Node {
	index := make(map[string]*Node)
	Walk(nodes, func(n *Node, _ int) bool {
		index[n.ID] = n
		return true
	})
	return index
}

// Walk visits nodes depth-first in document order. fn receives the depth of
// each node; returning false skips its children.
func Walk(nodes []*Node, fn func(n *Node, depth int) bool) {
	walk(nodes, 0, fn)
}

func walk(nodes []*Node, depth int, fn func(*Node, int) bool) {
	for _, n := range nodes {
		if fn(n, depth) {
			walk(n.Children, depth+1, fn)
		}
	}
}

// Count returns the number of nodes in the tree.
func Count(nodes []*Node) int {
	n := 0
	Walk(nodes, func(*Node, int) bool {
		n++
		return true
	})
	return n
}
