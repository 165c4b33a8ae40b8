package models

import (
	"fmt"
	"math"

	"github.com/fatih/color"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// HydrationMode selects how hydration is derived from the ingredient rows.
type HydrationMode string

const (
	// HydrationSimple counts only rows named like water against the flour row.
	HydrationSimple HydrationMode = "simple"
	// HydrationExtended also splits any starter row half flour, half water.
	HydrationExtended HydrationMode = "extended"
)

// ParseHydrationMode maps a config or flag value to a mode. Empty selects the
// extended mode.
func ParseHydrationMode(s string) (HydrationMode, error) {
	switch HydrationMode(s) {
	case "", HydrationExtended:
		return HydrationExtended, nil
	case HydrationSimple:
		return HydrationSimple, nil
	}
	return "", fmt.Errorf("unknown hydration mode %q (want %q or %q)", s, HydrationSimple, HydrationExtended)
}

// Totals are the aggregate figures shown under the ingredient table.
type Totals struct {
	TotalWeight float64       `json:"total_weight" yaml:"total_weight"`
	FlourMass   float64       `json:"flour_mass" yaml:"flour_mass"`
	WaterMass   float64       `json:"water_mass" yaml:"water_mass"`
	Hydration   float64       `json:"hydration" yaml:"hydration"`
	Mode        HydrationMode `json:"mode" yaml:"mode"`
}

func (t Totals) String() string {
	return fmt.Sprintf("Total weight %.0f g, hydration %.1f%%", t.TotalWeight, t.Hydration)
}

var (
	dryColor, _ = colorful.Hex("#d4a373")
	wetColor, _ = colorful.Hex("#4d96ff")
)

// Hydration below dryHydration is drawn fully dry, above wetHydration fully wet.
const (
	dryHydration = 50.0
	wetHydration = 100.0
)

// HydrationColor blends from a flour tone to a water tone as hydration moves
// from a stiff dough to a batter.
func HydrationColor(hydration float64) colorful.Color {
	t := (hydration - dryHydration) / (wetHydration - dryHydration)
	t = math.Max(0, math.Min(1, t))
	return dryColor.BlendLab(wetColor, t).Clamped()
}

// HydrationSwatch returns a small ANSI colour block for the hydration, or an
// empty string when colour output is disabled.
func HydrationSwatch(hydration float64) string {
	if color.NoColor {
		return ""
	}
	r, g, b := HydrationColor(hydration).RGB255()
	return fmt.Sprintf("\x1b[38;2;%d;%d;%dm%s\x1b[0m ", r, g, b, "████")
}
