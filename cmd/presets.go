package cmd

import (
	"fmt"
	"sort"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List the percentage presets defined in config",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if Cfg == nil || len(Cfg.Presets) == 0 {
			_, _ = fmt.Fprintln(out, "No presets configured.")
			return nil
		}

		names := make([]string, 0, len(Cfg.Presets))
		for name := range Cfg.Presets {
			names = append(names, name)
		}
		sort.Strings(names)

		bold := color.New(color.Bold).SprintFunc()
		for _, name := range names {
			specs, err := ResolvePreset(name)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(out, "%s\n", bold(name))
			for _, s := range specs {
				_, _ = fmt.Fprintf(out, "  %-20s %6s %%\n", ToIngredientName(s.Name), s.Value)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(presetsCmd)
}
