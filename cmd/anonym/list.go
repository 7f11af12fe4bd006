package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/zoobzio/anonym"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List available transformers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			reg := anonym.Default()
			for _, id := range reg.IDs() {
				fmt.Fprintf(cmd.OutOrStdout(), "%-10s %s\n", id, reg.Description(id))
			}
			return nil
		},
	}
}
