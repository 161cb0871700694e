package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Faultbox/terrain-viewer/internal/engine/debug"
	"github.com/Faultbox/terrain-viewer/internal/engine/shading"
	"github.com/Faultbox/terrain-viewer/internal/logger"
	"github.com/Faultbox/terrain-viewer/internal/preview"
)

func (a *app) newPreviewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preview [dataset.json]",
		Short: "Render a top-down image of a terrain",
		Long: `Render a colour-mapped top-down image of a dataset, or of the configured
preset when no dataset is given. North is up. The solid mode hillshades the
base colour; the height modes use the viewer's banded palette.`,
		Example: `  terrainctl preview --preset heightmap --seed 7 -o heightmap.png
  terrainctl preview terrain.json --mode solid --color "#8d6e63" --smooth 1.2`,
		Args: cobra.MaximumNArgs(1),
		PreRun: func(cmd *cobra.Command, args []string) {
			a.bindTerrainFlags(cmd.Flags())
		},
		RunE: a.runPreview,
	}
	addTerrainFlags(cmd.Flags())

	f := cmd.Flags()
	f.StringP("out", "o", "preview.png", "Output image (.png or .bmp), - for stdout")
	f.String("format", "", "Image format, png or bmp (default from --out)")
	f.Int("width", 512, "Image width in pixels")
	f.Int("height", 0, "Image height in pixels (0 keeps the terrain's aspect)")
	f.String("mode", "", "Colour mode: solid, height or gradient (default from preset)")
	f.String("color", "", "Base colour for solid mode (default from preset)")
	f.Float32("time", 0, "Animation time in seconds for gradient mode")
	f.Float32("smooth", 0, "Gaussian blur sigma (0 disables)")
	return cmd
}

func (a *app) runPreview(cmd *cobra.Command, args []string) error {
	log := logger.Named("preview")
	f := cmd.Flags()

	mesh, scene, err := a.loadMesh(firstArg(args))
	if err != nil {
		return err
	}

	opts := preview.DefaultOptions()
	opts.Mode = scene.Params.ColorMode
	opts.Color = scene.Params.Color
	opts.Width, _ = f.GetInt("width")
	opts.Height, _ = f.GetInt("height")
	opts.Time, _ = f.GetFloat32("time")
	opts.Smooth, _ = f.GetFloat32("smooth")

	if s, _ := f.GetString("mode"); s != "" {
		if opts.Mode, err = shading.ParseMode(s); err != nil {
			return err
		}
	}
	if s, _ := f.GetString("color"); s != "" {
		if opts.Color, err = shading.ParseHex(s); err != nil {
			return err
		}
	}

	out, _ := f.GetString("out")
	format := debug.FormatFromPath(out)
	if s, _ := f.GetString("format"); s != "" {
		if format, err = debug.ParseFormat(s); err != nil {
			return err
		}
	}

	start := time.Now()
	img, err := preview.Render(mesh, opts)
	if err != nil {
		return fmt.Errorf("rendering preview: %w", err)
	}
	log.Debug("preview rendered",
		zap.Int("width", img.Bounds().Dx()),
		zap.Int("height", img.Bounds().Dy()),
		zap.Stringer("mode", opts.Mode),
		zap.Duration("took", time.Since(start)),
	)

	if out == "-" {
		return debug.Encode(cmd.OutOrStdout(), img, format)
	}
	if err := debug.WriteFile(out, img, format); err != nil {
		return err
	}
	log.Info("preview written", zap.String("path", out), zap.Stringer("format", format))
	return nil
}
