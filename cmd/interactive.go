package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/dstockto/dough/calc"
	"github.com/dstockto/dough/models"
	"github.com/manifoldco/promptui"
	"github.com/mattn/go-isatty"
)

// isInteractiveAllowed returns true when the user did not disable interaction
// via flag and when the process is attached to a TTY suitable for prompting.
func isInteractiveAllowed(nonInteractive bool) bool {
	if nonInteractive {
		return false
	}
	// Require stdin, stdout, and stderr to be terminals and TERM to be sane
	if !isatty.IsTerminal(os.Stdin.Fd()) || !isatty.IsTerminal(os.Stdout.Fd()) || !isatty.IsTerminal(os.Stderr.Fd()) {
		return false
	}
	term := strings.ToLower(strings.TrimSpace(os.Getenv("TERM")))
	if term == "" || term == "dumb" {
		return false
	}
	return true
}

// supportsAdvancedTUI gates the full screen form to terminals that can redraw
// the screen without glitches.
func supportsAdvancedTUI() bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("TERM"))) {
	case "vt52", "vt100", "ansi":
		return false
	}
	return true
}

// Menu entries shown after the ingredient rows.
const (
	menuAdd    = "+ Add ingredient"
	menuRemove = "- Remove ingredient"
	menuDone   = "Done"
)

// menuItems lists one entry per ingredient followed by the actions.
func menuItems(ingredients []models.Ingredient) []string {
	items := make([]string, 0, len(ingredients)+3)
	for _, in := range ingredients {
		items = append(items, fmt.Sprintf("%-20s %9.1f g %7.1f %%", in.DisplayName(), in.Weight, in.Percentage))
	}
	return append(items, menuAdd, menuRemove, menuDone)
}

// editableFields returns the fields the prompt form offers for a row.
func editableFields(in models.Ingredient) []calc.Field {
	var fields []calc.Field
	if in.IsCustom {
		fields = append(fields, calc.FieldName)
	}
	fields = append(fields, calc.FieldWeight)
	if !in.IsBase {
		fields = append(fields, calc.FieldPercentage)
	}
	return fields
}

func currentValue(in models.Ingredient, field calc.Field) string {
	switch field {
	case calc.FieldName:
		return in.Name
	case calc.FieldPercentage:
		return strconv.FormatFloat(in.Percentage, 'f', -1, 64)
	}
	return strconv.FormatFloat(in.Weight, 'f', -1, 64)
}

func canceled(err error) bool {
	return errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrAbort) || errors.Is(err, promptui.ErrEOF)
}

// runPromptForm is the line based form for terminals where the full screen
// form is unavailable: pick a row, pick a field, type a value.
func runPromptForm(c *calc.Calculator, out io.Writer) error {
	for {
		ingredients := c.Ingredients()
		totals := c.Totals()
		_, _ = fmt.Fprintf(out, "\n%s\n", totals)

		menu := promptui.Select{
			Label:  "Select an ingredient to edit (Ctrl+C to finish)",
			Items:  menuItems(ingredients),
			Size:   12,
			Stdout: NoBellStdout,
		}
		idx, choice, err := menu.Run()
		if err != nil {
			if canceled(err) {
				return nil
			}
			return err
		}

		if idx >= len(ingredients) {
			switch choice {
			case menuDone:
				return nil
			case menuAdd:
				id := c.AddIngredient()
				if err := promptEdit(c, id, calc.FieldName); err != nil {
					return err
				}
				if err := promptEdit(c, id, calc.FieldPercentage); err != nil {
					return err
				}
			case menuRemove:
				if err := promptRemove(c); err != nil {
					return err
				}
			}
			continue
		}

		in := ingredients[idx]
		fields := editableFields(in)
		field := fields[0]
		if len(fields) > 1 {
			labels := make([]string, len(fields))
			for i, f := range fields {
				labels[i] = string(f)
			}
			fieldPrompt := promptui.Select{
				Label:  fmt.Sprintf("Edit which field of %s", in.DisplayName()),
				Items:  labels,
				Stdout: NoBellStdout,
			}
			fi, _, err := fieldPrompt.Run()
			if err != nil {
				if canceled(err) {
					continue
				}
				return err
			}
			field = fields[fi]
		}

		if err := promptEdit(c, in.Id, field); err != nil {
			return err
		}
	}
}

// promptEdit asks for a new value of one field and applies it. Cancelling the
// prompt leaves the row unchanged.
func promptEdit(c *calc.Calculator, id string, field calc.Field) error {
	in, ok := c.Get(id)
	if !ok {
		return nil
	}

	label := fmt.Sprintf("%s %s", in.DisplayName(), field)
	switch field {
	case calc.FieldWeight:
		label += " (g)"
	case calc.FieldPercentage:
		label += " (%)"
	}

	prompt := promptui.Prompt{
		Label:     label,
		Default:   currentValue(in, field),
		AllowEdit: true,
		Stdout:    NoBellStdout,
	}
	value, err := prompt.Run()
	if err != nil {
		if canceled(err) {
			return nil
		}
		return err
	}

	c.EditField(id, field, value)
	debugf("set %s %s to %q", id, field, value)

	return nil
}

// promptRemove offers the custom rows for removal.
func promptRemove(c *calc.Calculator) error {
	var custom []models.Ingredient
	for _, in := range c.Ingredients() {
		if in.IsCustom {
			custom = append(custom, in)
		}
	}
	if len(custom) == 0 {
		warnf("only custom ingredients can be removed")
		return nil
	}

	items := make([]string, len(custom))
	for i, in := range custom {
		items[i] = in.DisplayName()
	}
	prompt := promptui.Select{
		Label:  "Remove which ingredient",
		Items:  items,
		Stdout: NoBellStdout,
	}
	idx, _, err := prompt.Run()
	if err != nil {
		if canceled(err) {
			return nil
		}
		return err
	}

	c.RemoveIngredient(custom[idx].Id)
	return nil
}
