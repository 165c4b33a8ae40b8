package models

import (
	"fmt"

	"github.com/fatih/color"
)

// Fixed ids for the rows every recipe starts with.
const (
	FlourID   = "flour"
	WaterID   = "water"
	SaltID    = "salt"
	StarterID = "starter"
)

// Ingredient is one row of a bread formula. Weight is in grams, Percentage is
// relative to the flour (base) row's weight.
type Ingredient struct {
	Id         string  `json:"id" yaml:"id"`
	Name       string  `json:"name" yaml:"name"`
	Weight     float64 `json:"weight" yaml:"weight"`
	Percentage float64 `json:"percentage" yaml:"percentage"`
	IsBase     bool    `json:"is_base,omitempty" yaml:"is_base,omitempty"`
	IsCustom   bool    `json:"is_custom,omitempty" yaml:"is_custom,omitempty"`
}

// DefaultIngredients returns the starting rows: flour at the given weight and
// zeroed water, salt and starter.
func DefaultIngredients(flourWeight float64) []Ingredient {
	return []Ingredient{
		{Id: FlourID, Name: "Flour", Weight: flourWeight, Percentage: 100, IsBase: true},
		{Id: WaterID, Name: "Water", Weight: 0, Percentage: 0},
		{Id: SaltID, Name: "Salt", Weight: 0, Percentage: 0},
		{Id: StarterID, Name: "Sourdough starter", Weight: 0, Percentage: 0},
	}
}

// DisplayName returns the name to show for the row; unnamed custom rows get a
// placeholder.
func (i Ingredient) DisplayName() string {
	if i.Name == "" {
		return "(unnamed)"
	}
	return i.Name
}

func (i Ingredient) String() string {
	// Flour              1000.0 g   100.0 %
	name := fmt.Sprintf("%-20s", i.DisplayName())
	if i.IsBase {
		name = color.New(color.Bold).Sprint(name)
	}
	custom := ""
	if i.IsCustom {
		custom = color.New(color.FgHiBlack).Sprint(" (custom)")
	}

	return fmt.Sprintf("%s %9.1f g %7.1f %%%s", name, i.Weight, i.Percentage, custom)
}
