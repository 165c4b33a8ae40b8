/*
Copyright © 2025 David Stockton <dave@davidstockton.com>
*/
package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/dstockto/dough/calc"
	"github.com/dstockto/dough/models"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// Config represents the structure of the config.json file
// Example at project root: config.json
//
//	{
//	  "hydration_mode": "extended",
//	  "flour_weight": 500,
//	  "presets": {"country": {"water": 75, "salt": 2, "starter": 20}}
//	}
//
// Add fields here as config grows.
type Config struct {
	HydrationMode string                        `json:"hydration_mode"`
	FlourWeight   float64                       `json:"flour_weight"`
	Presets       map[string]map[string]float64 `json:"presets"`
}

// Cfg holds the loaded configuration and is available to all commands.
var Cfg *Config

// cfgFile is set from -c/--config flag.
var cfgFile string

// noColor toggles ANSI color output off when set via --no-color flag.
var noColor bool

// modeFlag overrides the configured hydration mode.
var modeFlag string

// verbose enables debug output on stderr.
var verbose bool

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "dough",
	Short: "Dough converts between ingredient weights and baker's percentages",
	Long: `Dough converts between ingredient weights and baker's percentages.

Every ingredient is expressed relative to the flour weight; editing a weight
updates its percentage and editing a percentage updates its weight. The totals
show the dough weight and its hydration, counting a sourdough starter as half
flour and half water.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Apply color preference as early as possible, but only disable if the flag is set
		if noColor {
			color.NoColor = true
		}

		// Load config only once; subsequent subcommands in the chain need not reload
		if Cfg != nil {
			return nil
		}
		// Determine path: explicit flag takes precedence; else try merge from standard locations
		if cfgFile != "" {
			cfg, err := LoadConfig(cfgFile)
			if err != nil {
				return fmt.Errorf("failed to load config from %s: %w", cfgFile, err)
			}
			Cfg = cfg
			debugf("loaded config from %s", cfgFile)

			return nil
		}

		cfg, err := LoadMergedConfig()
		if err != nil {
			return fmt.Errorf("unable to load config: %w", err)
		}
		// Config is optional; only set if any file existed
		if cfg != nil {
			Cfg = cfg
		}

		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// LoadConfig reads and parses JSON config from the given path.
func LoadConfig(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var c Config
	if err := json.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("json config parsing error: %w", err)
	}

	return &c, nil
}

func exists(path string) bool {
	if path == "" {
		return false
	}

	info, err := os.Stat(path)
	if err != nil {
		return !errors.Is(err, fs.ErrNotExist)
	}

	return !info.IsDir()
}

//nolint:gochecknoinits
func init() {
	// Global config flag for all commands
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "path to config file (config.json)")
	// Global color toggle
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable ANSI color output")
	rootCmd.PersistentFlags().StringVar(&modeFlag, "mode", "", "hydration mode: extended (starter counts half flour, half water) or simple")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print debug output to stderr")
}

// LoadMergedConfig attempts to load and merge configs from standard locations when no explicit --config is provided.
// Precedence (later overrides earlier):
//  1. $HOME/.config/dough/config.json
//  2. $XDG_CONFIG_HOME/dough/config.json
//  3. ./config.json (current working directory)
//
// If none exist, returns (nil, nil).
func LoadMergedConfig() (*Config, error) {
	paths := discoverConfigPaths()
	if len(paths) == 0 {
		return nil, nil
	}

	merged := &Config{}

	for _, p := range paths {
		c, err := LoadConfig(p)
		if err != nil {
			return nil, fmt.Errorf("failed loading %s: %w", p, err)
		}
		debugf("merging config from %s", p)

		mergeInto(merged, c)
	}

	return merged, nil
}

// discoverConfigPaths returns existing config paths in merge order.
func discoverConfigPaths() []string {
	var out []string
	// 1) HOME
	if home, _ := os.UserHomeDir(); home != "" {
		p := filepath.Join(home, ".config", "dough", "config.json")
		if exists(p) {
			out = append(out, p)
		}
	}
	// 2) XDG
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		p := filepath.Join(xdg, "dough", "config.json")
		if exists(p) {
			out = append(out, p)
		}
	}
	// 3) CWD
	if cwd, _ := os.Getwd(); cwd != "" {
		p := filepath.Join(cwd, "config.json")
		if exists(p) {
			out = append(out, p)
		}
	}

	return out
}

// mergeInto copies non-zero values and maps from src into dst.
// Maps are merged by keys; src keys override dst.
func mergeInto(dst, src *Config) {
	if src == nil || dst == nil {
		return
	}

	if src.HydrationMode != "" {
		dst.HydrationMode = src.HydrationMode
	}

	if src.FlourWeight > 0 {
		dst.FlourWeight = src.FlourWeight
	}
	// presets replace whole entries so a later file can redefine one
	if src.Presets != nil {
		if dst.Presets == nil {
			dst.Presets = map[string]map[string]float64{}
		}

		for k, v := range src.Presets {
			dst.Presets[k] = v
		}
	}
}

// hydrationMode resolves the mode from --mode, then config, then the default.
func hydrationMode() (models.HydrationMode, error) {
	if modeFlag != "" {
		return models.ParseHydrationMode(modeFlag)
	}
	if Cfg != nil {
		return models.ParseHydrationMode(Cfg.HydrationMode)
	}
	return models.HydrationExtended, nil
}

// configuredFlourWeight returns the seed flour weight from config, or the
// calculator default.
func configuredFlourWeight() float64 {
	if Cfg != nil && Cfg.FlourWeight > 0 {
		return Cfg.FlourWeight
	}
	return calc.DefaultFlourWeight
}

// newCalculator builds a calculator from config and global flags.
func newCalculator() (*calc.Calculator, error) {
	mode, err := hydrationMode()
	if err != nil {
		return nil, err
	}
	flour := configuredFlourWeight()
	debugf("new calculator: mode=%s flour=%.1fg", mode, flour)

	return calc.New(calc.WithHydrationMode(mode), calc.WithFlourWeight(flour)), nil
}
