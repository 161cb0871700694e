// Package cli implements terrainctl, the command-line companion to the
// viewer: it generates, inspects and previews terrain meshes without a GPU.
package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/Faultbox/terrain-viewer/internal/config"
	"github.com/Faultbox/terrain-viewer/internal/logger"
)

// EnvPrefix prefixes environment overrides, e.g. TERRAIN_SEED=7.
const EnvPrefix = "TERRAIN"

// app carries state shared by the subcommands.
type app struct {
	v       *viper.Viper
	cfgFile string
}

// NewRootCommand builds the terrainctl command tree with its own viper
// instance.
func NewRootCommand() *cobra.Command {
	a := &app{v: viper.New()}

	root := &cobra.Command{
		Use:   "terrainctl",
		Short: "Generate, inspect and preview terrain meshes",
		Long: `terrainctl works with the same presets, datasets and config file as the
terrain viewer. It writes procedural terrain as JSON datasets, prints mesh
statistics and renders top-down colour-mapped previews.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := a.readConfig(); err != nil {
				return err
			}
			level := a.v.GetString("logging.level")
			if a.v.GetBool("verbose") {
				level = "debug"
			}
			var fileCfg logger.FileConfig
			if path := a.v.GetString("logging.log_file"); path != "" {
				fileCfg = logger.DefaultFileConfig(path)
			}
			// Logs go to stderr so stdout stays clean for command output.
			return logger.InitWithFileConfig(level, fileCfg, cmd.ErrOrStderr())
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "config file (default is ./config.yaml)")
	pf.Bool("verbose", false, "Enable debug logging")
	pf.String("log-level", "", "Log level (debug, info, warn, error)")
	a.bind(pf.Lookup("verbose"), "verbose")
	a.bind(pf.Lookup("log-level"), "logging.level")

	root.AddCommand(
		a.newGenerateCommand(),
		a.newInitCommand(),
		a.newInfoCommand(),
		a.newPreviewCommand(),
		a.newPresetsCommand(),
	)
	return root
}

// Execute runs terrainctl and exits non-zero on failure.
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func (a *app) bind(flag *pflag.Flag, key string) {
	if err := a.v.BindPFlag(key, flag); err != nil {
		panic(fmt.Sprintf("failed to bind flag %s: %v", flag.Name, err))
	}
}

func (a *app) readConfig() error {
	v := a.v
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if a.cfgFile != "" {
		v.SetConfigFile(a.cfgFile)
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath(config.ConfigDir())
		v.SetConfigType("yaml")
		v.SetConfigName("config")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if a.cfgFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("reading config: %w", err)
		}
	}
	return nil
}

// terrainConfig returns the viewer's terrain and render settings: defaults,
// then the config file, then environment and flags.
func (a *app) terrainConfig() (*config.Config, error) {
	cfg := config.Default()
	if err := a.v.UnmarshalKey("terrain", &cfg.Terrain, yamlTags); err != nil {
		return nil, fmt.Errorf("decoding terrain config: %w", err)
	}
	if err := a.v.UnmarshalKey("render", &cfg.Render, yamlTags); err != nil {
		return nil, fmt.Errorf("decoding render config: %w", err)
	}

	v := a.v
	if v.IsSet("terrain.preset") {
		cfg.Terrain.Preset = v.GetString("terrain.preset")
	}
	if v.IsSet("terrain.dataset") {
		cfg.Terrain.Dataset = v.GetString("terrain.dataset")
	}
	if v.IsSet("terrain.resolution") {
		cfg.Terrain.Resolution = v.GetInt("terrain.resolution")
	}
	if v.IsSet("terrain.size") {
		cfg.Terrain.Size = float32(v.GetFloat64("terrain.size"))
	}
	if v.IsSet("terrain.seed") {
		cfg.Terrain.Seed = v.GetInt64("terrain.seed")
	}
	if v.IsSet("terrain.up_axis") {
		cfg.Terrain.UpAxis = v.GetString("terrain.up_axis")
	}
	if v.IsSet("terrain.elevation.jitter") {
		cfg.Terrain.Elevation.Jitter = v.GetFloat64("terrain.elevation.jitter")
	}
	if v.IsSet("terrain.elevation.detail_amplitude") {
		cfg.Terrain.Elevation.DetailAmplitude = v.GetFloat64("terrain.elevation.detail_amplitude")
	}
	return cfg, nil
}

// yamlTags makes viper decode with the yaml tags the config structs carry.
func yamlTags(dc *mapstructure.DecoderConfig) {
	dc.TagName = "yaml"
	dc.WeaklyTypedInput = true
}
