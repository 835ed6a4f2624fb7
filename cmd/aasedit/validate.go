package main

import (
	"fmt"

	"github.com/aretw0/aasedit"
	"github.com/spf13/cobra"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [file]",
		Short: "Check a document against the AAS schema",
		Long:  `Loads the document the way the editor imports it and reports every schema violation.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, enc, err := readDocument(cmd, args)
			if err != nil {
				return err
			}

			ed := aasedit.New(aasedit.WithLogger(logger))
			res, err := ed.Import(cmd.Context(), data, enc)
			if err != nil {
				for _, e := range res.Errors {
					fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", e.String())
				}
				return fmt.Errorf("validation failed: %s", res.Message)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Document is valid! ✅")
			return nil
		},
	}
}
