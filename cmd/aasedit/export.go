package main

import (
	"fmt"
	"os"

	"github.com/aretw0/aasedit"
	"github.com/aretw0/aasedit/pkg/document"
	"github.com/spf13/cobra"
)

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export [file]",
		Short: "Convert a document to its export form",
		Long: `Imports the document, which must be valid, and writes its export form:
empty values are dropped and the result is encoded as JSON, YAML or CBOR.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			to, _ := cmd.Flags().GetString("to")
			output, _ := cmd.Flags().GetString("output")

			data, enc, err := readDocument(cmd, args)
			if err != nil {
				return err
			}
			target := document.JSON
			switch {
			case to != "":
				if target, err = document.ParseEncoding(to); err != nil {
					return err
				}
			case output != "":
				target = document.EncodingFromPath(output)
			}

			ed := aasedit.New(aasedit.WithLogger(logger))
			if res, err := ed.Import(cmd.Context(), data, enc); err != nil {
				return fmt.Errorf("import failed: %s", res.Message)
			}
			out, err := ed.Export(target)
			if err != nil {
				return err
			}

			if output == "" {
				_, err = cmd.OutOrStdout().Write(out)
				return err
			}
			if err := os.WriteFile(output, out, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			logger.Info("Document exported", "path", output, "encoding", target)
			return nil
		},
	}
	cmd.Flags().String("to", "", "Output encoding: json, yaml or cbor (defaults to the output file extension, then json)")
	cmd.Flags().StringP("output", "o", "", "Write to this file instead of stdout")
	return cmd
}
