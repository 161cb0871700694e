package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/Faultbox/terrain-viewer/internal/engine/terrain"
)

func (a *app) newInfoCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info [dataset.json]",
		Short: "Print mesh statistics",
		Long: `Build a mesh from a dataset, or from the configured preset when no
dataset is given, and print its vertex and triangle counts, bounding box and
height range.`,
		Args: cobra.MaximumNArgs(1),
		PreRun: func(cmd *cobra.Command, args []string) {
			a.bindTerrainFlags(cmd.Flags())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			mesh, scene, err := a.loadMesh(firstArg(args))
			if err != nil {
				return err
			}
			source := scene.Name
			if scene.Dataset != "" {
				source = scene.Dataset
			}
			return writeInfo(cmd.OutOrStdout(), source, mesh)
		},
	}
	addTerrainFlags(cmd.Flags())
	return cmd
}

func writeInfo(w io.Writer, source string, m *terrain.Mesh) error {
	b := m.Bounds
	size := b.Size()
	_, err := fmt.Fprintf(w, `source:    %s
vertices:  %d
triangles: %d
bounds:    min (%.3f, %.3f, %.3f) max (%.3f, %.3f, %.3f)
size:      %.3f x %.3f x %.3f
up axis:   %s
heights:   %.3f .. %.3f (span %.3f)
`,
		source,
		m.VertexCount(),
		m.TriangleCount(),
		b.Min.X, b.Min.Y, b.Min.Z, b.Max.X, b.Max.Y, b.Max.Z,
		size.X, size.Y, size.Z,
		m.UpAxis,
		m.Heights.Min, m.Heights.Max, m.Heights.Span(),
	)
	return err
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
