package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Faultbox/terrain-viewer/internal/logger"
)

func (a *app) newInitCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write a starter config file",
		Long: `Write the effective terrain and render settings as a config file the
viewer and terrainctl both read. Without a path the file goes to the user
config directory. An existing file is kept unless --force is given.`,
		Args: cobra.MaximumNArgs(1),
		PreRun: func(cmd *cobra.Command, args []string) {
			a.bindTerrainFlags(cmd.Flags())
		},
		RunE: a.runInit,
	}
	addTerrainFlags(cmd.Flags())
	cmd.Flags().BoolP("force", "f", false, "Overwrite an existing file")
	return cmd
}

func (a *app) runInit(cmd *cobra.Command, args []string) error {
	force, _ := cmd.Flags().GetBool("force")

	cfg, err := a.terrainConfig()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if _, err := cfg.Scene(); err != nil {
		return err
	}

	var path string
	if len(args) == 1 {
		path = args[0]
		err = cfg.SaveTo(path, force)
	} else {
		path, err = cfg.Save(force)
	}
	if err != nil {
		return err
	}
	logger.Named("init").Info("config written", zap.String("path", path))
	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}
