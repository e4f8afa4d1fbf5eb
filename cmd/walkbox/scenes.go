package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/walkbox/scene"
)

func newScenesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "scenes",
		Short: "List built-in scenes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, s := range scene.All() {
				marker := " "
				if s.Name == a.cfg.Scene.Name {
					marker = "*"
				}
				fmt.Fprintf(w, "%s %s\t%d holes\t%s\n", marker, s.Name, len(s.Holes), s.Description)
			}
			return w.Flush()
		},
	}
}
