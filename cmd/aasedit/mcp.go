package main

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/aretw0/aasedit"
	"github.com/aretw0/aasedit/pkg/adapters/mcp"
	"github.com/aretw0/aasedit/pkg/observability"
	"github.com/aretw0/aasedit/pkg/session"
	"github.com/spf13/cobra"
)

func newMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp [file]",
		Short: "Run the Model Context Protocol (MCP) server",
		Long: `Exposes editor sessions as MCP tools, so AI agents can inspect and edit
AAS environments. When a file is given it is imported into the default session.

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse: Uses Server-Sent Events over HTTP. Ideal for remote agents or debuggers.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			transport, _ := cmd.Flags().GetString("transport")
			port, _ := cmd.Flags().GetInt("port")

			mgr := session.NewManager(
				session.WithLogger(logger),
				session.WithEditorOptions(
					aasedit.WithLogger(logger),
					aasedit.WithCommitHooks(observability.LogHooks(logger)),
				),
			)
			if len(args) > 0 {
				if err := seedDefaultSession(cmd, mgr, args); err != nil {
					return err
				}
			}
			srv := mcp.NewServer(mgr, logger)

			switch transport {
			case "stdio":
				// Ensure logs don't corrupt JSON-RPC on Stdout
				log.SetOutput(os.Stderr)
				logger.Info("Starting aasedit MCP Server (Stdio)")
				return srv.ServeStdio()
			case "sse":
				logger.Info("Starting aasedit MCP Server (SSE)", "port", port)
				if err := srv.ServeSSE(cmd.Context(), port); err != nil && !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				logger.Info("MCP Server stopped gracefully")
				return nil
			default:
				return fmt.Errorf("unknown transport: %s. Supported: stdio, sse", transport)
			}
		},
	}
	cmd.Flags().String("transport", "stdio", "Transport protocol to use: 'stdio' or 'sse'")
	cmd.Flags().Int("port", 8080, "Port to listen on (only for SSE)")
	return cmd
}

func seedDefaultSession(cmd *cobra.Command, mgr *session.Manager, args []string) error {
	data, enc, err := readDocument(cmd, args)
	if err != nil {
		return err
	}
	ed, err := mgr.Open(cmd.Context(), mcp.DefaultSession)
	if err != nil {
		return err
	}
	if res, err := ed.Import(cmd.Context(), data, enc); err != nil {
		return fmt.Errorf("import %s: %s", args[0], res.Message)
	}
	return nil
}
