package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Faultbox/terrain-viewer/internal/preset"
)

func (a *app) newPresetsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List the built-in terrain presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tSOURCE\tGRID\tUP\tCOLOR\tSCALE\tMODE\tROTATE")
			for _, name := range preset.Names() {
				p, _ := preset.Lookup(name)
				grid := "-"
				if p.Source == preset.Procedural {
					grid = fmt.Sprintf("%dx%d/%g", p.Resolution, p.Resolution, p.Size)
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%g\t%s\t%t\n",
					p.Name, p.Source, grid, p.UpAxis, p.Params.Color.Hex(),
					p.Params.Scale, p.Params.ColorMode, p.Params.AutoRotate)
			}
			return tw.Flush()
		},
	}
}
