package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Faultbox/terrain-viewer/internal/assets"
	"github.com/Faultbox/terrain-viewer/internal/engine/terrain"
	"github.com/Faultbox/terrain-viewer/internal/logger"
	"github.com/Faultbox/terrain-viewer/internal/preset"
)

func (a *app) newGenerateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write procedural terrain as a JSON dataset",
		Long: `Generate a procedural terrain grid and write its raw vertex and index
buffers as a dataset the viewer can open. Use --out - for stdout.`,
		Args: cobra.NoArgs,
		PreRun: func(cmd *cobra.Command, args []string) {
			a.bindTerrainFlags(cmd.Flags())
		},
		RunE: a.runGenerate,
	}
	addTerrainFlags(cmd.Flags())
	cmd.Flags().StringP("out", "o", "terrain.json", "Output file, - for stdout")
	return cmd
}

func (a *app) runGenerate(cmd *cobra.Command, args []string) error {
	log := logger.Named("generate")
	out, _ := cmd.Flags().GetString("out")

	cfg, err := a.terrainConfig()
	if err != nil {
		return err
	}
	scene, err := cfg.Scene()
	if err != nil {
		return err
	}
	if scene.Source != preset.Procedural {
		return fmt.Errorf("preset %q is not procedural", scene.Name)
	}

	start := time.Now()
	g, err := terrain.Generate(scene.Generate)
	if err != nil {
		return err
	}
	log.Info("terrain generated",
		zap.String("preset", scene.Name),
		zap.Int("resolution", scene.Generate.Resolution),
		zap.Float32("size", scene.Generate.Size),
		zap.Int("vertices", g.VertexCount()),
		zap.Int("triangles", g.TriangleCount()),
		zap.Duration("took", time.Since(start)),
	)

	d := assets.FromGeometry(g, scene.UpAxis)
	if out == "-" {
		return assets.Encode(cmd.OutOrStdout(), d)
	}
	if err := assets.Save(out, d); err != nil {
		return err
	}
	log.Info("dataset written", zap.String("path", out))
	return nil
}
