package main

import (
	"fmt"
	"os"

	"github.com/aretw0/aasedit/internal/presentation/tui"
	"github.com/aretw0/aasedit/internal/runtime"
	"github.com/aretw0/aasedit/pkg/tree"
	"github.com/spf13/cobra"
)

func newTreeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tree [file]",
		Short: "Print the navigation tree of a document",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := loadEnvironment(cmd, args)
			if err != nil {
				return err
			}

			var expanded map[string]bool
			if all, _ := cmd.Flags().GetBool("all"); !all {
				expanded = make(map[string]bool)
				for _, id := range runtime.DefaultExpanded {
					expanded[id] = true
				}
			}
			md := tui.TreeMarkdown(tree.Project(env), expanded, "")

			// Only style output going straight to a terminal.
			if cmd.OutOrStdout() == os.Stdout && tui.IsTerminal(os.Stdout) {
				render, err := tui.NewRenderer("")
				if err != nil {
					return err
				}
				if md, err = render(md); err != nil {
					return err
				}
			}
			fmt.Fprint(cmd.OutOrStdout(), md)
			return nil
		},
	}
	cmd.Flags().Bool("all", false, "Expand every node")
	return cmd
}
