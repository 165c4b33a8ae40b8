package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dstockto/dough/calc"
	"github.com/dstockto/dough/models"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	ErrUnknownOp   = errors.New("unknown op")
	ErrRowNotFound = errors.New("no ingredient matches")
)

var applyCmd = &cobra.Command{
	Use:   "apply <script.yaml|->",
	Short: "Replay a YAML script of ingredient edits",
	Long: `Replay a YAML script of ingredient edits and print the result.

  flour_weight: "500"
  steps:
    - {op: edit, id: water, field: percentage, value: "72"}
    - {op: add, name: Olive oil, percentage: "3"}
    - {name: salt, field: weight, value: "10"}
    - {op: remove, name: starter}

Steps without an op are edits. Rows are addressed by id or by name.`,
	Args: cobra.ExactArgs(1),
	RunE: runApply,
}

func runApply(cmd *cobra.Command, args []string) error {
	script, err := loadScript(args[0], cmd.InOrStdin())
	if err != nil {
		return err
	}

	// --mode beats the script, which beats config
	if modeFlag == "" && script.Mode != "" {
		modeFlag = script.Mode
		defer func() { modeFlag = "" }()
	}

	c, err := newCalculator()
	if err != nil {
		return err
	}

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}

	var trace func(int, models.ScriptStep)
	if t, _ := cmd.Flags().GetBool("trace"); t {
		out := cmd.OutOrStdout()
		trace = func(n int, step models.ScriptStep) {
			_, _ = color.New(color.FgGreen).Fprintf(out, "Step %d: %s\n", n, describeStep(step))
			printTable(out, c.Ingredients(), c.Totals())
			_, _ = fmt.Fprintln(out)
		}
	}

	if err := replayScript(c, script, trace); err != nil {
		return err
	}

	return writeReport(cmd.OutOrStdout(), c, format)
}

// loadScript reads an edit script from a file, or from stdin when path is "-".
func loadScript(path string, stdin io.Reader) (models.EditScript, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return models.EditScript{}, fmt.Errorf("failed to read script: %w", err)
	}

	var script models.EditScript
	if err := yaml.Unmarshal(data, &script); err != nil {
		return models.EditScript{}, fmt.Errorf("failed to parse script %s: %w", path, err)
	}
	script.DefaultOp()

	return script, nil
}

// replayScript applies every step in order. trace, when not nil, is called
// after each step with its 1-based number.
func replayScript(c *calc.Calculator, script models.EditScript, trace func(int, models.ScriptStep)) error {
	if script.FlourWeight != "" {
		c.EditField(models.FlourID, calc.FieldWeight, script.FlourWeight)
	}

	for i, step := range script.Steps {
		n := i + 1
		if err := replayStep(c, step); err != nil {
			return fmt.Errorf("step %d: %w", n, err)
		}
		debugf("step %d: %s", n, describeStep(step))
		if trace != nil {
			trace(n, step)
		}
	}

	return nil
}

func replayStep(c *calc.Calculator, step models.ScriptStep) error {
	switch step.Op {
	case models.OpAdd:
		id := c.AddIngredient()
		if step.Name != "" {
			c.EditField(id, calc.FieldName, step.Name)
		}
		if step.Weight != "" {
			c.EditField(id, calc.FieldWeight, step.Weight)
		}
		if step.Percentage != "" {
			c.EditField(id, calc.FieldPercentage, step.Percentage)
		}
		return nil

	case models.OpRemove:
		id, err := resolveStepRow(c, step)
		if err != nil {
			return err
		}
		c.RemoveIngredient(id)
		return nil

	case models.OpEdit:
		id, err := resolveStepRow(c, step)
		if err != nil {
			return err
		}
		field, err := calc.ParseField(step.Field)
		if err != nil {
			return err
		}
		c.EditField(id, field, step.Value)
		return nil
	}

	return fmt.Errorf("%w %q", ErrUnknownOp, step.Op)
}

func resolveStepRow(c *calc.Calculator, step models.ScriptStep) (string, error) {
	if step.Id != "" {
		if _, ok := c.Get(step.Id); ok {
			return step.Id, nil
		}
		return "", fmt.Errorf("%w id %q", ErrRowNotFound, step.Id)
	}
	if id, ok := c.Find(step.Name); ok {
		return id, nil
	}
	return "", fmt.Errorf("%w name %q", ErrRowNotFound, step.Name)
}

func describeStep(step models.ScriptStep) string {
	ref := step.Id
	if ref == "" {
		ref = step.Name
	}
	switch step.Op {
	case models.OpAdd:
		return fmt.Sprintf("add %q", step.Name)
	case models.OpRemove:
		return fmt.Sprintf("remove %s", ref)
	}
	return fmt.Sprintf("set %s %s to %q", ref, step.Field, step.Value)
}

func init() {
	rootCmd.AddCommand(applyCmd)
	applyCmd.Flags().StringP("format", "f", "table", "output format: table, json or yaml")
	applyCmd.Flags().Bool("trace", false, "print the table after every step")
}
