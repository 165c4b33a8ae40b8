package cmd

import (
	"fmt"

	"github.com/dstockto/dough/form"
	"github.com/spf13/cobra"
)

var formCmd = &cobra.Command{
	Use:     "form [name=value[%|g] ...]",
	Aliases: []string{"i", "interactive"},
	Short:   "Edit a formula interactively",
	Long: `Edit a formula interactively.

Opens a full screen form when running in a terminal, or a simpler prompt
based menu with --simple or on terminals that cannot host the full form.
Arguments are applied before the form opens, as with calc.`,
	RunE: runForm,
}

func runForm(cmd *cobra.Command, args []string) error {
	c, err := calculatorFromArgs(cmd, args)
	if err != nil {
		return err
	}

	simple, err := cmd.Flags().GetBool("simple")
	if err != nil {
		return fmt.Errorf("failed to get simple flag: %w", err)
	}

	if !isInteractiveAllowed(false) {
		return fmt.Errorf("form needs an interactive terminal; use calc or apply instead")
	}

	if simple || !supportsAdvancedTUI() {
		err = runPromptForm(c, cmd.OutOrStdout())
	} else if err = form.Run(c); err != nil {
		warnf("full screen form failed (%v), falling back to prompts", err)
		err = runPromptForm(c, cmd.OutOrStdout())
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintln(out)
	printTable(out, c.Ingredients(), c.Totals())

	return nil
}

func init() {
	rootCmd.AddCommand(formCmd)
	formCmd.Flags().Bool("simple", false, "use the prompt based menu instead of the full screen form")
	formCmd.Flags().String("flour", "", "flour weight in grams (defaults to config flour_weight or 1000)")
	formCmd.Flags().StringP("preset", "p", "", "apply a named percentage preset from config first")
}
