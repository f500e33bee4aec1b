package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/BerylCAtieno/outreach-copy-agent/internal/hooks"
)

func newHooksCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hooks",
		Short: "List the hook catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "KEY\tNAME\tDESCRIPTION")
			for _, h := range hooks.All() {
				fmt.Fprintf(w, "%s\t%s\t%s\n", h.Key, h.Name, h.Description)
			}
			return w.Flush()
		},
	}
}
