package main

import (
	"fmt"
	"io/fs"
	"math"
	"time"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/knot-runner/config"
	"github.com/lixenwraith/knot-runner/level"
	"github.com/lixenwraith/knot-runner/levels"
)

// globalFlags are shared by every subcommand
type globalFlags struct {
	configPath string
	levelPath  string
	debug      bool
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:   "knot-runner",
		Short: "A board game piece that runs along knotted paths",
		Long: `knot-runner moves a piece along the paths of a knot graph level.
Dice rolls advance the piece knot by knot; junctions ask the player which
path to take, and star spaces offer a star for coins.`,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "YAML config file (KNOT_* environment variables override it)")
	rootCmd.PersistentFlags().StringVar(&flags.levelPath, "level", "", "level file; default is the bundled "+levels.Default)
	rootCmd.PersistentFlags().BoolVar(&flags.debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(
		newPlayCmd(flags),
		newSimulateCmd(flags),
		newValidateCmd(flags),
	)
	return rootCmd
}

// loadConfig reads the config file and environment, then applies flag overrides
func (f *globalFlags) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return nil, err
	}
	if f.levelPath != "" {
		cfg.Level = f.levelPath
	}
	if f.debug {
		cfg.Log.Debug = true
	}
	return cfg, nil
}

// loadLevel opens a level from disk, or from the bundled set when path is empty
// A bare name matching a bundled level also resolves, e.g. "spiral.yaml"
func loadLevel(path string) (*level.Level, error) {
	if path == "" {
		path = levels.Default
	}
	lvl, err := level.Load(path)
	if err == nil {
		return lvl, nil
	}

	data, embedErr := fs.ReadFile(levels.FS, path)
	if embedErr != nil {
		return nil, err
	}
	lvl, err = level.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("bundled %s: %w", path, err)
	}
	return lvl, nil
}

// diceSeed returns the configured seed, or a clock-derived one for 0
func diceSeed(seed uint64) uint64 {
	if seed != 0 {
		return seed
	}
	return uint64(time.Now().UnixNano()) & math.MaxInt64
}
