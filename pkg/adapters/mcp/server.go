package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/aasedit"
	"github.com/aretw0/aasedit/pkg/document"
	"github.com/aretw0/aasedit/pkg/forms"
	"github.com/aretw0/aasedit/pkg/schema"
	"github.com/aretw0/aasedit/pkg/session"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// DefaultSession is used by tool calls that name no session.
const DefaultSession = "default"

// EnvironmentURI exposes the environment of the default session.
const EnvironmentURI = "aasedit://environment"

// CommitResponse aligns with the OpenAPI schema and provides a unified structure across adapters.
type CommitResponse struct {
	aasedit.CommitResult
	Error string `json:"error,omitempty" jsonschema_description:"Why the operation was refused, if it was"`
}

// SelectedResponse describes the selected node and its editable fields.
type SelectedResponse struct {
	ID    string      `json:"id" jsonschema_description:"Tree node id"`
	Label string      `json:"label"`
	Kind  string      `json:"kind"`
	Draft forms.Draft `json:"draft" jsonschema_description:"Editable fields of the node"`
}

type sessionArgs struct {
	Session string `json:"session"`
}

type selectArgs struct {
	Session string `json:"session"`
	ID      string `json:"id"`
}

type shellArgs struct {
	Session string `json:"session"`
	forms.ShellForm
}

type submodelArgs struct {
	Session string `json:"session"`
	forms.SubmodelForm
}

type elementArgs struct {
	Session string `json:"session"`
	forms.ElementForm
}

type editArgs struct {
	Session string `json:"session"`
	forms.Draft
}

type importArgs struct {
	Session  string `json:"session"`
	Document string `json:"document"`
	Format   string `json:"format"`
}

// Server exposes editor sessions as an MCP Server.
type Server struct {
	sessions  *session.Manager
	mcpServer *server.MCPServer
	logger    *slog.Logger
}

// NewServer creates a new MCP Server instance.
func NewServer(sessions *session.Manager, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Server{
		sessions:  sessions,
		mcpServer: server.NewMCPServer("aasedit-mcp", strings.TrimSpace(aasedit.Version)),
		logger:    logger,
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer returns the underlying server, for in-process transports.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Info("Shutdown signal received, shutting down server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func sessionOption() mcp.ToolOption {
	return mcp.WithString("session", mcp.Description("Editor session id (defaults to \"default\")"))
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("get_tree",
		mcp.WithDescription("Get the navigation tree of the environment."),
		sessionOption(),
	), s.handleGetTree)

	s.mcpServer.AddTool(mcp.NewTool("validate",
		mcp.WithDescription("Validate the environment against the AAS schema."),
		sessionOption(),
		mcp.WithOutputSchema[schema.Result](),
	), mcp.NewStructuredToolHandler(s.handleValidate))

	s.mcpServer.AddTool(mcp.NewTool("select_node",
		mcp.WithDescription("Select a tree node and return its editable fields."),
		sessionOption(),
		mcp.WithString("id", mcp.Required(), mcp.Description("Tree node id, as returned by get_tree")),
		mcp.WithOutputSchema[SelectedResponse](),
	), mcp.NewStructuredToolHandler(s.handleSelect))

	s.mcpServer.AddTool(mcp.NewTool("add_shell",
		mcp.WithDescription("Add an Asset Administration Shell and select it."),
		sessionOption(),
		mcp.WithString("id", mcp.Description("Globally unique id; a urn:uuid is generated when omitted")),
		mcp.WithString("idShort", mcp.Description("Short name")),
		mcp.WithString("assetKind", mcp.Enum("Instance", "Type", "NotApplicable")),
		mcp.WithString("assetType"),
		mcp.WithString("globalAssetId"),
		mcp.WithOutputSchema[CommitResponse](),
	), mcp.NewStructuredToolHandler(s.handleAddShell))

	s.mcpServer.AddTool(mcp.NewTool("add_submodel",
		mcp.WithDescription("Add a Submodel to the selected shell and select it."),
		sessionOption(),
		mcp.WithString("id", mcp.Description("Globally unique id; a urn:uuid is generated when omitted")),
		mcp.WithString("idShort"),
		mcp.WithString("kind", mcp.Enum("Instance", "Template")),
		mcp.WithOutputSchema[CommitResponse](),
	), mcp.NewStructuredToolHandler(s.handleAddSubmodel))

	s.mcpServer.AddTool(mcp.NewTool("add_element",
		mcp.WithDescription("Add a submodel element under the selected submodel or container element."),
		sessionOption(),
		mcp.WithString("type", mcp.Required(), mcp.Description("Element kind, e.g. Property or SubmodelElementCollection")),
		mcp.WithString("idShort"),
		mcp.WithString("valueType", mcp.Description("XSD value type for Property and Range")),
		mcp.WithString("value"),
		mcp.WithString("min"),
		mcp.WithString("max"),
		mcp.WithString("contentType"),
		mcp.WithString("language"),
		mcp.WithString("text"),
		mcp.WithString("entityType"),
		mcp.WithOutputSchema[CommitResponse](),
	), mcp.NewStructuredToolHandler(s.handleAddElement))

	s.mcpServer.AddTool(mcp.NewTool("apply_edits",
		mcp.WithDescription("Apply edited fields to the selected node. Omitted fields keep their value."),
		sessionOption(),
		mcp.WithString("idShort"),
		mcp.WithString("assetKind"),
		mcp.WithString("kind"),
		mcp.WithString("valueType"),
		mcp.WithString("value"),
		mcp.WithOutputSchema[CommitResponse](),
	), mcp.NewStructuredToolHandler(s.handleApplyEdits))

	s.mcpServer.AddTool(mcp.NewTool("import_document",
		mcp.WithDescription("Replace the environment with a document."),
		sessionOption(),
		mcp.WithString("document", mcp.Required()),
		mcp.WithString("format", mcp.Enum("json", "yaml")),
		mcp.WithOutputSchema[CommitResponse](),
	), mcp.NewStructuredToolHandler(s.handleImport))

	s.mcpServer.AddTool(mcp.NewTool("export",
		mcp.WithDescription("Export the environment in its export form."),
		sessionOption(),
		mcp.WithString("format", mcp.Enum("json", "yaml")),
	), s.handleExport)
}

func (s *Server) editor(ctx context.Context, id string) (*aasedit.Editor, error) {
	if id == "" {
		id = DefaultSession
	}
	return s.sessions.Open(ctx, id)
}

func (s *Server) commit(ctx context.Context, id string, op func(context.Context, *aasedit.Editor) (aasedit.CommitResult, error)) (CommitResponse, error) {
	if id == "" {
		id = DefaultSession
	}
	if _, err := s.sessions.Open(ctx, id); err != nil {
		return CommitResponse{}, err
	}
	var resp CommitResponse
	err := s.sessions.WithLock(ctx, id, func(ctx context.Context, ed *aasedit.Editor) error {
		res, opErr := op(ctx, ed)
		resp.CommitResult = res
		if opErr != nil {
			resp.Error = opErr.Error()
		}
		return nil
	})
	return resp, err
}

func (s *Server) handleGetTree(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ed, err := s.editor(ctx, request.GetString("session", ""))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("open session failed: %v", err)), nil
	}
	jsonBytes, err := json.Marshal(ed.Tree())
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encode tree failed: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonBytes)), nil
}

func (s *Server) handleValidate(ctx context.Context, _ mcp.CallToolRequest, args sessionArgs) (schema.Result, error) {
	ed, err := s.editor(ctx, args.Session)
	if err != nil {
		return schema.Result{}, err
	}
	return ed.Validation(), nil
}

func (s *Server) handleSelect(ctx context.Context, _ mcp.CallToolRequest, args selectArgs) (SelectedResponse, error) {
	ed, err := s.editor(ctx, args.Session)
	if err != nil {
		return SelectedResponse{}, err
	}
	if err := ed.Select(args.ID); err != nil {
		return SelectedResponse{}, err
	}
	n := ed.Selected()
	return SelectedResponse{ID: n.ID, Label: n.Label, Kind: n.Kind, Draft: ed.Draft()}, nil
}

func (s *Server) handleAddShell(ctx context.Context, _ mcp.CallToolRequest, args shellArgs) (CommitResponse, error) {
	f := args.ShellForm
	defaults := forms.DefaultShellForm()
	if f.ID == "" {
		f.ID = defaults.ID
	}
	if f.AssetKind == "" {
		f.AssetKind = defaults.AssetKind
	}
	return s.commit(ctx, args.Session, func(ctx context.Context, ed *aasedit.Editor) (aasedit.CommitResult, error) {
		return ed.AddShell(ctx, f)
	})
}

func (s *Server) handleAddSubmodel(ctx context.Context, _ mcp.CallToolRequest, args submodelArgs) (CommitResponse, error) {
	f := args.SubmodelForm
	defaults := forms.DefaultSubmodelForm()
	if f.ID == "" {
		f.ID = defaults.ID
	}
	if f.Kind == "" {
		f.Kind = defaults.Kind
	}
	return s.commit(ctx, args.Session, func(ctx context.Context, ed *aasedit.Editor) (aasedit.CommitResult, error) {
		return ed.AddSubmodel(ctx, f)
	})
}

func (s *Server) handleAddElement(ctx context.Context, _ mcp.CallToolRequest, args elementArgs) (CommitResponse, error) {
	return s.commit(ctx, args.Session, func(ctx context.Context, ed *aasedit.Editor) (aasedit.CommitResult, error) {
		return ed.AddElement(ctx, args.ElementForm)
	})
}

// handleApplyEdits starts from the current draft so omitted fields are kept.
func (s *Server) handleApplyEdits(ctx context.Context, request mcp.CallToolRequest, args editArgs) (CommitResponse, error) {
	return s.commit(ctx, args.Session, func(ctx context.Context, ed *aasedit.Editor) (aasedit.CommitResult, error) {
		d := ed.Draft()
		if err := request.BindArguments(&d); err != nil {
			return aasedit.CommitResult{}, fmt.Errorf("bind draft: %w", err)
		}
		return ed.ApplyEdits(ctx, d)
	})
}

func (s *Server) handleImport(ctx context.Context, _ mcp.CallToolRequest, args importArgs) (CommitResponse, error) {
	enc, err := document.ParseEncoding(args.Format)
	if err != nil {
		return CommitResponse{}, err
	}
	return s.commit(ctx, args.Session, func(ctx context.Context, ed *aasedit.Editor) (aasedit.CommitResult, error) {
		return ed.Import(ctx, []byte(args.Document), enc)
	})
}

func (s *Server) handleExport(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	enc, err := document.ParseEncoding(request.GetString("format", "json"))
	if err == nil && enc == document.CBOR {
		err = errors.New("cbor is not a text encoding")
	}
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	ed, err := s.editor(ctx, request.GetString("session", ""))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("open session failed: %v", err)), nil
	}
	data, err := ed.Export(enc)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("export failed: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(EnvironmentURI, "Environment of the default session",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		ed, err := s.editor(ctx, DefaultSession)
		if err != nil {
			return nil, fmt.Errorf("failed to open session: %w", err)
		}
		jsonBytes, err := json.Marshal(ed.Environment())
		if err != nil {
			return nil, fmt.Errorf("failed to encode environment: %w", err)
		}

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      EnvironmentURI,
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
