package cmd

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/chzyer/readline"
	"github.com/dstockto/dough/calc"
	"github.com/dstockto/dough/models"
	"github.com/fatih/color"
)

// noBellStdout swallows the terminal bell promptui emits on every keystroke
// it cannot handle.
type noBellStdout struct{}

func (n *noBellStdout) Write(p []byte) (int, error) {
	if len(p) == 1 && p[0] == readline.CharBell {
		return 0, nil
	}
	return readline.Stdout.Write(p)
}

func (n *noBellStdout) Close() error {
	return readline.Stdout.Close()
}

// NoBellStdout is passed as Stdout to every promptui prompt.
var NoBellStdout = &noBellStdout{}

// debugf prints a dimmed line to stderr when --verbose is set.
func debugf(format string, args ...any) {
	if !verbose {
		return
	}
	_, _ = color.New(color.FgHiBlack).Fprintf(os.Stderr, "debug: "+format+"\n", args...)
}

// warnf prints a warning to stderr.
func warnf(format string, args ...any) {
	_, _ = color.New(color.FgHiYellow).Fprintf(os.Stderr, "Warning: "+format+"\n", args...)
}

// AmountSpec is one name=value pair from the command line.
type AmountSpec struct {
	Name  string
	Field calc.Field
	Value string
}

func (a AmountSpec) String() string {
	if a.Field == calc.FieldPercentage {
		return fmt.Sprintf("%s=%s%%", a.Name, a.Value)
	}
	return fmt.Sprintf("%s=%sg", a.Name, a.Value)
}

// ParseAmountSpec parses tokens like "water=70%", "salt=20g", "salt=20" or
// "starter:15%". A trailing % edits the percentage, anything else the weight.
// The value is left as text; the calculator does the numeric coercion.
func ParseAmountSpec(input string) (AmountSpec, error) {
	in := strings.TrimSpace(input)
	idx := strings.LastIndexAny(in, "=:")
	if idx <= 0 || idx == len(in)-1 { // no separator, no name, or nothing after it
		return AmountSpec{}, fmt.Errorf("invalid amount %q, want name=value, name=value%% or name=valueg", input)
	}

	name := strings.TrimSpace(in[:idx])
	value := strings.TrimSpace(in[idx+1:])

	spec := AmountSpec{Name: name, Field: calc.FieldWeight}
	lower := strings.ToLower(value)
	switch {
	case strings.HasSuffix(lower, "%"):
		spec.Field = calc.FieldPercentage
		value = strings.TrimSpace(value[:len(value)-1])
	case strings.HasSuffix(lower, "g"):
		value = strings.TrimSpace(value[:len(value)-1])
	}
	spec.Value = value

	return spec, nil
}

// applyAmount applies a parsed spec, adding a custom row when the name does
// not match an existing one. Returns the id of the row that was edited.
func applyAmount(c *calc.Calculator, spec AmountSpec) string {
	id, ok := c.Find(spec.Name)
	if !ok {
		id = c.AddIngredient()
		c.EditField(id, calc.FieldName, ToIngredientName(spec.Name))
		debugf("added custom ingredient %q as %s", spec.Name, id)
	}
	c.EditField(id, spec.Field, spec.Value)
	debugf("applied %s", spec)

	return id
}

// ResolvePreset looks up a configured preset case-insensitively and returns
// its entries sorted by ingredient name so repeated runs add custom rows in
// the same order.
func ResolvePreset(name string) ([]AmountSpec, error) {
	if Cfg == nil || len(Cfg.Presets) == 0 {
		return nil, fmt.Errorf("no presets configured")
	}

	want := strings.ToLower(strings.TrimSpace(name))
	for k, entries := range Cfg.Presets {
		if strings.ToLower(strings.TrimSpace(k)) != want {
			continue
		}

		specs := make([]AmountSpec, 0, len(entries))
		for ingredient, pct := range entries {
			if strings.TrimSpace(ingredient) == "" {
				continue
			}
			if pct < 0 {
				warnf("preset %s: ignoring negative percentage for %s", k, ingredient)
				continue
			}
			specs = append(specs, AmountSpec{
				Name:  ingredient,
				Field: calc.FieldPercentage,
				Value: fmt.Sprintf("%g", pct),
			})
		}
		sort.Slice(specs, func(i, j int) bool { return specs[i].Name < specs[j].Name })

		return specs, nil
	}

	return nil, fmt.Errorf("preset %q not found", name)
}

// ToIngredientName converts a command line token to a display name by
// replacing dashes and underscores with spaces and capitalizing each word.
func ToIngredientName(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")
	words := strings.Fields(s)
	for i, w := range words {
		if len(w) > 0 {
			words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
		}
	}
	return strings.Join(words, " ")
}

// TruncateFront truncates a string from the front if it exceeds maxLen.
func TruncateFront(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[len(s)-maxLen:]
	}
	return "..." + s[len(s)-maxLen+3:]
}

// printTable writes the ingredient rows followed by the totals footer.
func printTable(w io.Writer, ingredients []models.Ingredient, totals models.Totals) {
	for _, in := range ingredients {
		if len(in.Name) > 20 {
			in.Name = TruncateFront(in.Name, 20)
		}
		_, _ = fmt.Fprintf(w, " - %s\n", in)
	}
	_, _ = fmt.Fprintln(w)

	bold := color.New(color.Bold).SprintFunc()
	_, _ = fmt.Fprintf(w, "%s %.0f g\n", bold("Total weight:"), totals.TotalWeight)
	_, _ = fmt.Fprintf(w, "%s %s%.1f%%", bold("Hydration:   "), models.HydrationSwatch(totals.Hydration), totals.Hydration)
	if totals.Mode == models.HydrationExtended {
		_, _ = fmt.Fprintf(w, " (flour %.1f g, water %.1f g)", totals.FlourMass, totals.WaterMass)
	}
	_, _ = fmt.Fprintln(w)
}
