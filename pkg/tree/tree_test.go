package tree

import (
	"testing"

	"github.com/aretw0/aasedit/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleEnvironment() *domain.Environment {
	env := domain.NewEnvironment()
	nameplate := &domain.Submodel{
		ID:      "urn:sm:1",
		IDShort: "Nameplate",
		SubmodelElements: []domain.SubmodelElement{
			&domain.Property{IDShort: "Serial", ValueType: "xs:string"},
			&domain.Collection{Value: []domain.SubmodelElement{
				&domain.Entity{IDShort: "Site", Statements: []domain.SubmodelElement{
					&domain.Range{IDShort: "Temp", ValueType: "xs:int"},
				}},
				&domain.List{IDShort: "Empty", TypeValueListElement: "Property"},
			}},
		},
	}
	env.Submodels = []*domain.Submodel{nameplate, {ID: "urn:sm:empty"}}
	env.Shells = []*domain.Shell{
		{
			ID:      "urn:aas:1",
			IDShort: "Pump",
			Submodels: []*domain.Reference{
				domain.BuildReference(domain.ReferenceTypeModel, domain.KeyTypeSubmodel, "urn:sm:1"),
				domain.BuildReference(domain.ReferenceTypeModel, domain.KeyTypeSubmodel, "urn:sm:missing"),
				{Type: domain.ReferenceTypeModel, Keys: []domain.Key{{Type: "GlobalReference", Value: "x"}}},
			},
		},
		{ID: "urn:aas:2"},
	}
	return env
}

func TestProject_EmptyEnvironment(t *testing.T) {
	nodes := Project(domain.NewEnvironment())
	require.Len(t, nodes, 1)

	pkg := nodes[0]
	assert.Equal(t, PackageID, pkg.ID)
	require.Len(t, pkg.Children, 2)
	assert.Equal(t, SupplementalID, pkg.Children[1].ID)
	assert.Empty(t, pkg.Children[1].Children)

	env := pkg.Children[0]
	assert.Equal(t, EnvironmentID, env.ID)
	require.Len(t, env.Children, 3)
	for i, id := range []string{GroupShellsID, GroupSubmodelsID, GroupConceptsID} {
		assert.Equal(t, id, env.Children[i].ID)
		assert.Equal(t, KindGroup, env.Children[i].Kind)
		assert.Empty(t, env.Children[i].Children)
	}

	Walk(nodes, func(n *Node, _ int) bool {
		assert.NotEqual(t, GroupElements, n.Group, "no element group expected in an empty environment")
		return true
	})
}

func TestProject_NilEnvironment(t *testing.T) {
	assert.Equal(t, Project(domain.NewEnvironment()), Project(nil))
}

func TestProject_Labels(t *testing.T) {
	idx := BuildIndex(Project(sampleEnvironment()))

	assert.Equal(t, `"Package"`, idx[PackageID].Label)
	assert.Equal(t, `"Pump"`, idx["aas:urn:aas:1"].Label)
	assert.Equal(t, `"AAS"`, idx["aas:urn:aas:2"].Label)
	assert.Equal(t, `"Nameplate"`, idx["submodel:urn:sm:1"].Label)
	assert.Equal(t, `"Submodel"`, idx["submodel:urn:sm:empty"].Label)
	// Missing idShort falls back to the modelType.
	assert.Equal(t, `"SubmodelElementCollection"`, idx["element:urn:sm:1:submodelElements-1"].Label)
}

func TestProject_LabelsAreNotEscaped(t *testing.T) {
	env := domain.NewEnvironment()
	env.Submodels = []*domain.Submodel{{
		ID:               "urn:sm:q",
		SubmodelElements: []domain.SubmodelElement{&domain.Property{IDShort: `a"b\c`, ValueType: "xs:string"}},
	}}
	idx := BuildIndex(Project(env))

	el := idx["element:urn:sm:q:submodelElements-0"]
	require.NotNil(t, el)
	assert.Equal(t, `"a"b\c"`, el.Label)
	assert.Equal(t, `a"b\c`, PlainLabel(el.Label))
}

func TestPlainLabel(t *testing.T) {
	assert.Equal(t, "Pump", PlainLabel(`"Pump"`))
	assert.Equal(t, "", PlainLabel(`""`))
	assert.Equal(t, `"`, PlainLabel(`"`))
	assert.Equal(t, "bare", PlainLabel("bare"))
}

func TestProject_ElementIdsAndMeta(t *testing.T) {
	idx := BuildIndex(Project(sampleEnvironment()))

	entity := idx["element:urn:sm:1:submodelElements-1.value-0"]
	require.NotNil(t, entity)
	assert.Equal(t, "statements", entity.Meta.ContainerKey)
	assert.Equal(t, "urn:sm:1", entity.Meta.SubmodelID)
	assert.True(t, entity.HasContainer())

	temp := idx["element:urn:sm:1:submodelElements-1.value-0.statements-0"]
	require.NotNil(t, temp)
	assert.Equal(t, `"Temp"`, temp.Label)
	assert.Empty(t, temp.Meta.ContainerKey)
	assert.False(t, temp.HasContainer())
	assert.Equal(t, domain.Root(1).Append("value", 0).Append("statements", 0), temp.Meta.Path)

	list := idx["element:urn:sm:1:submodelElements-1.value-1"]
	require.NotNil(t, list)
	assert.Empty(t, list.Children)
}

func TestProject_GroupAbsence(t *testing.T) {
	idx := BuildIndex(Project(sampleEnvironment()))

	assert.Contains(t, idx, ElementsGroupID("urn:sm:1"))
	assert.NotContains(t, idx, ElementsGroupID("urn:sm:empty"))
	assert.Empty(t, idx[SubmodelID("urn:sm:empty")].Children)

	assert.Contains(t, idx, "aas:urn:aas:1:submodels")
	assert.NotContains(t, idx, "aas:urn:aas:2:submodels")
	assert.Empty(t, idx[ShellID("urn:aas:2")].Children)
}

func TestProject_DanglingReference(t *testing.T) {
	idx := BuildIndex(Project(sampleEnvironment()))

	stub := idx["aas:urn:aas:1:submodel:urn:sm:missing"]
	require.NotNil(t, stub)
	assert.True(t, stub.Meta.RefOnly)
	assert.Empty(t, stub.Children)
	assert.False(t, stub.HasContainer())
	sm, ok := stub.Data.(*domain.Submodel)
	require.True(t, ok)
	assert.Equal(t, "urn:sm:missing", sm.ID)

	// A reference without a Submodel key falls back to its position.
	fallback := idx["aas:urn:aas:1:submodel:ref-2"]
	require.NotNil(t, fallback)
	assert.True(t, fallback.Meta.RefOnly)
}

func TestProject_ResolvedReferenceReusesSubtree(t *testing.T) {
	env := sampleEnvironment()
	idx := BuildIndex(Project(env))

	ref := idx["aas:urn:aas:1:submodel:urn:sm:1"]
	require.NotNil(t, ref)
	assert.False(t, ref.Meta.RefOnly)
	assert.Equal(t, "urn:aas:1", ref.Meta.ShellID)
	assert.Same(t, env.Submodels[0], ref.Data)

	require.Len(t, ref.Children, 1)
	group := ref.Children[0]
	assert.Equal(t, GroupElements, group.Group)
	require.Len(t, group.Children, 2)

	// Same element, same location, distinct node.
	scoped := group.Children[0]
	plain := idx[ElementID("urn:sm:1", domain.Root(0))]
	assert.NotEqual(t, plain.ID, scoped.ID)
	assert.Equal(t, plain.Meta, scoped.Meta)
	assert.Same(t, plain.Data, scoped.Data)
}

func TestProject_IdsUnique(t *testing.T) {
	env := sampleEnvironment()
	// Two shells pointing at the same submodel, one of them twice.
	env.Shells = append(env.Shells, &domain.Shell{
		ID: "urn:aas:3",
		Submodels: []*domain.Reference{
			domain.BuildReference(domain.ReferenceTypeModel, domain.KeyTypeSubmodel, "urn:sm:1"),
			domain.BuildReference(domain.ReferenceTypeModel, domain.KeyTypeSubmodel, "urn:sm:1"),
		},
	})
	// Duplicate submodel ids are not rejected by the schema.
	env.Submodels = append(env.Submodels, &domain.Submodel{ID: "urn:sm:empty"})

	seen := make(map[string]bool)
	Walk(Project(env), func(n *Node, _ int) bool {
		assert.False(t, seen[n.ID], "duplicate id %q", n.ID)
		seen[n.ID] = true
		return true
	})
}

func TestProject_Deterministic(t *testing.T) {
	env := sampleEnvironment()
	var first, second []string
	Walk(Project(env), func(n *Node, _ int) bool { first = append(first, n.ID); return true })
	Walk(Project(env), func(n *Node, _ int) bool { second = append(second, n.ID); return true })
	assert.Equal(t, first, second)
}

func TestProject_ChildOrder(t *testing.T) {
	env := sampleEnvironment()
	idx := BuildIndex(Project(env))
	group := idx[ElementsGroupID("urn:sm:1")]
	require.Len(t, group.Children, 2)
	assert.Equal(t, `"Serial"`, group.Children[0].Label)
	assert.Equal(t, ElementID("urn:sm:1", domain.Root(1)), group.Children[1].ID)
}

func TestWalk_SkipChildren(t *testing.T) {
	nodes := Project(sampleEnvironment())
	var visited []string
	Walk(nodes, func(n *Node, depth int) bool {
		visited = append(visited, n.ID)
		return depth < 1
	})
	assert.Equal(t, []string{PackageID, EnvironmentID, SupplementalID}, visited)
}

func TestCount(t *testing.T) {
	// package, environment, three groups, supplemental.
	assert.Equal(t, 6, Count(Project(domain.NewEnvironment())))
}
