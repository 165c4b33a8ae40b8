package cmd

import (
	"fmt"

	"github.com/dstockto/dough/calc"
	"github.com/dstockto/dough/models"
	"github.com/spf13/cobra"
)

var calcCmd = &cobra.Command{
	Use:     "calc [name=value[%|g] ...]",
	Aliases: []string{"c"},
	Short:   "Calculate weights and percentages for a formula",
	Long: `Calculate weights and percentages for a formula.

Each argument edits one ingredient. A value ending in % sets the baker's
percentage, any other value (optionally ending in g) sets the weight in grams.
Names that are not flour, water, salt or starter add a custom ingredient.

  dough calc water=70% salt=2% starter=200g
  dough calc --flour 500 water=350 olive_oil=3%`,
	RunE: runCalc,
}

func runCalc(cmd *cobra.Command, args []string) error {
	c, err := calculatorFromArgs(cmd, args)
	if err != nil {
		return err
	}

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}

	return writeReport(cmd.OutOrStdout(), c, format)
}

// calculatorFromArgs builds a calculator and applies --flour, --preset and the
// name=value arguments, in that order.
func calculatorFromArgs(cmd *cobra.Command, args []string) (*calc.Calculator, error) {
	specs := make([]AmountSpec, 0, len(args))
	for _, a := range args {
		spec, err := ParseAmountSpec(a)
		if err != nil {
			return nil, err
		}
		specs = append(specs, spec)
	}

	c, err := newCalculator()
	if err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("flour") {
		flour, err := cmd.Flags().GetString("flour")
		if err != nil {
			return nil, fmt.Errorf("failed to get flour flag: %w", err)
		}
		applyAmount(c, AmountSpec{Name: models.FlourID, Field: calc.FieldWeight, Value: flour})
	}

	if preset, _ := cmd.Flags().GetString("preset"); preset != "" {
		presetSpecs, err := ResolvePreset(preset)
		if err != nil {
			return nil, err
		}
		// preset first so explicit arguments win
		specs = append(presetSpecs, specs...)
	}

	for _, spec := range specs {
		applyAmount(c, spec)
	}

	return c, nil
}

func init() {
	rootCmd.AddCommand(calcCmd)
	calcCmd.Flags().String("flour", "", "flour weight in grams (defaults to config flour_weight or 1000)")
	calcCmd.Flags().StringP("preset", "p", "", "apply a named percentage preset from config first")
	calcCmd.Flags().StringP("format", "f", "table", "output format: table, json or yaml")
}
