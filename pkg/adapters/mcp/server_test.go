package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/aretw0/aasedit/pkg/forms"
	"github.com/aretw0/aasedit/pkg/session"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	return NewServer(session.NewManager(), nil)
}

func callRequest(name string, args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args
	return req
}

func TestToolsList(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	init := s.MCPServer().HandleMessage(ctx, json.RawMessage(`{"jsonrpc":"2.0","id":1,"method":"initialize","params":{"protocolVersion":"2024-11-05","capabilities":{},"clientInfo":{"name":"test","version":"0"}}}`))
	require.NotNil(t, init)

	resp := s.MCPServer().HandleMessage(ctx, json.RawMessage(`{"jsonrpc":"2.0","id":2,"method":"tools/list"}`))
	data, err := json.Marshal(resp)
	require.NoError(t, err)

	for _, name := range []string{"get_tree", "validate", "select_node", "add_shell", "add_submodel", "add_element", "apply_edits", "import_document", "export"} {
		assert.Contains(t, string(data), `"`+name+`"`)
	}
}

func TestEditingThroughTools(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	res, err := s.handleAddShell(ctx, mcp.CallToolRequest{}, shellArgs{ShellForm: forms.ShellForm{ID: "urn:aas:1", IDShort: "Pump"}})
	require.NoError(t, err)
	assert.True(t, res.Applied)
	assert.Empty(t, res.Error)
	assert.Equal(t, "aas:urn:aas:1", res.SelectedID)

	res, err = s.handleAddSubmodel(ctx, mcp.CallToolRequest{}, submodelArgs{SubmodelForm: forms.SubmodelForm{ID: "urn:sm:1"}})
	require.NoError(t, err)
	assert.True(t, res.Applied)

	res, err = s.handleAddElement(ctx, mcp.CallToolRequest{}, elementArgs{ElementForm: forms.ElementForm{Type: "Property", IDShort: "Serial", ValueType: "xs:string"}})
	require.NoError(t, err)
	assert.True(t, res.Applied)

	req := callRequest("apply_edits", map[string]any{"value": "A-1"})
	res, err = s.handleApplyEdits(ctx, req, editArgs{})
	require.NoError(t, err)
	assert.True(t, res.Applied, res.Error)

	sel, err := s.handleSelect(ctx, mcp.CallToolRequest{}, selectArgs{ID: "element:urn:sm:1:submodelElements-0"})
	require.NoError(t, err)
	assert.Equal(t, "Serial", sel.Draft.IDShort)
	assert.Equal(t, "xs:string", sel.Draft.ValueType, "omitted fields keep their value")
	assert.Equal(t, "A-1", sel.Draft.Value)

	valid, err := s.handleValidate(ctx, mcp.CallToolRequest{}, sessionArgs{})
	require.NoError(t, err)
	assert.True(t, valid.Valid)

	out, err := s.handleExport(ctx, callRequest("export", map[string]any{"format": "yaml"}))
	require.NoError(t, err)
	require.False(t, out.IsError)
	text := out.Content[0].(mcp.TextContent).Text
	assert.Contains(t, text, "value: A-1")
}

func TestRejectionsAreReported(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	res, err := s.handleAddSubmodel(ctx, mcp.CallToolRequest{}, submodelArgs{Session: "other"})
	require.NoError(t, err)
	assert.False(t, res.Applied)
	assert.Equal(t, "Select a Shell to add the Submodel to.", res.Message)
	assert.NotEmpty(t, res.Error)

	_, err = s.handleSelect(ctx, mcp.CallToolRequest{}, selectArgs{Session: "other", ID: "missing"})
	assert.Error(t, err)

	res, err = s.handleImport(ctx, mcp.CallToolRequest{}, importArgs{Document: "{", Format: "json"})
	require.NoError(t, err)
	assert.False(t, res.Applied)
	assert.Equal(t, "invalid input", res.Message)

	out, err := s.handleExport(ctx, callRequest("export", map[string]any{"format": "cbor"}))
	require.NoError(t, err)
	assert.True(t, out.IsError)
}

func TestSessionsAreIsolated(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	_, err := s.handleAddShell(ctx, mcp.CallToolRequest{}, shellArgs{Session: "a"})
	require.NoError(t, err)

	out, err := s.handleGetTree(ctx, callRequest("get_tree", map[string]any{"session": "b"}))
	require.NoError(t, err)
	assert.NotContains(t, out.Content[0].(mcp.TextContent).Text, `"aas:`)

	assert.ElementsMatch(t, []string{"a", "b"}, s.sessions.List())
}

func TestEnvironmentResource(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	_, err := s.handleImport(ctx, mcp.CallToolRequest{}, importArgs{Document: `{"submodels":[{"modelType":"Submodel","id":"urn:sm:1"}]}`})
	require.NoError(t, err)

	resp := s.MCPServer().HandleMessage(ctx, json.RawMessage(`{"jsonrpc":"2.0","id":3,"method":"resources/read","params":{"uri":"aasedit://environment"}}`))
	data, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.Contains(t, string(data), "urn:sm:1")
}
