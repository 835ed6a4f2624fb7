package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/aretw0/aasedit/internal/logging"
	"github.com/spf13/cobra"
)

// logger is configured from --log-level before any command runs.
var logger = logging.NewNop()

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "aasedit",
		Short:         "aasedit edits Asset Administration Shell environments",
		Long:          `aasedit loads, validates, inspects, converts and serves AAS environment documents (JSON, YAML or CBOR).`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			name, _ := cmd.Flags().GetString("log-level")
			level, err := logging.ParseLevel(name)
			if err != nil {
				return err
			}
			logger = logging.NewWithWriter(cmd.ErrOrStderr(), level)
			slog.SetDefault(logger)
			return nil
		},
	}

	// Persistent flags (available to all commands)
	root.PersistentFlags().String("log-level", "info", "Log level: debug, info, warn or error")
	root.PersistentFlags().String("from", "", "Input encoding (json, yaml or cbor); detected from the file extension when empty")

	root.AddCommand(
		newValidateCmd(),
		newTreeCmd(),
		newGraphCmd(),
		newExportCmd(),
		newServeCmd(),
		newMCPCmd(),
		newWatchCmd(),
		newVersionCmd(),
	)
	return root
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
