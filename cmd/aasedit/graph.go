package main

import (
	"fmt"

	"github.com/aretw0/aasedit/internal/presentation/graph"
	"github.com/aretw0/aasedit/pkg/tree"
	"github.com/spf13/cobra"
)

func newGraphCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "graph [file]",
		Short: "Export the navigation tree visualization",
		Long:  `Loads the document and outputs a Mermaid diagram (graph TD) of its navigation tree.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := loadEnvironment(cmd, args)
			if err != nil {
				return err
			}

			var overlay *graph.Overlay
			if selected, _ := cmd.Flags().GetString("select"); selected != "" {
				overlay = &graph.Overlay{Selected: selected}
			}
			fmt.Fprint(cmd.OutOrStdout(), graph.GenerateMermaid(tree.Project(env), overlay))
			return nil
		},
	}
	cmd.Flags().String("select", "", "Highlight the node with this id")
	return cmd
}
