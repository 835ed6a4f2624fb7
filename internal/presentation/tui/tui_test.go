package tui

import (
	"bytes"
	"testing"

	"github.com/aretw0/aasedit/pkg/domain"
	"github.com/aretw0/aasedit/pkg/schema"
	"github.com/aretw0/aasedit/pkg/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTree() []*tree.Node {
	env := domain.NewEnvironment()
	env.Shells = []*domain.Shell{{ID: "urn:aas:1", IDShort: "Pump", AssetInformation: domain.AssetInformation{AssetKind: "Instance"}}}
	return tree.Project(env)
}

func TestTreeMarkdown_All(t *testing.T) {
	md := TreeMarkdown(sampleTree(), nil, "aas:urn:aas:1")

	assert.Contains(t, md, "- `Pkg` Package\n")
	assert.Contains(t, md, "  - `Env` Environment\n")
	assert.Contains(t, md, "      - **`AAS` Pump**\n")
}

func TestTreeMarkdown_Folded(t *testing.T) {
	md := TreeMarkdown(sampleTree(), map[string]bool{tree.PackageID: true}, "")

	assert.Contains(t, md, "- `Env` Environment (+3)\n")
	assert.NotContains(t, md, "Pump")
}

func TestValidationMarkdown(t *testing.T) {
	assert.Equal(t, "**Document is valid!**\n", ValidationMarkdown(schema.Result{Valid: true}))

	md := ValidationMarkdown(schema.Result{Errors: []schema.ValidationError{
		{InstancePath: "", Message: "missing property"},
		{InstancePath: "/submodels/0", Message: "bad id"},
	}})
	assert.Contains(t, md, "**2 validation error(s)**")
	assert.Contains(t, md, "- `/` missing property\n")
	assert.Contains(t, md, "- `/submodels/0` bad id\n")
}

func TestNewRenderer(t *testing.T) {
	render, err := NewRenderer("notty")
	require.NoError(t, err)

	out, err := render(TreeMarkdown(sampleTree(), nil, ""))
	require.NoError(t, err)
	assert.Contains(t, out, "Pump")
}

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	PrintBanner(&buf)
	assert.Contains(t, buf.String(), "|___/")
}
