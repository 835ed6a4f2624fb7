package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/aasedit"
	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of aasedit",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "aasedit version %s\n", strings.TrimSpace(aasedit.Version))
		},
	}
}
