package calc

import (
	"strings"

	"github.com/dstockto/dough/models"
)

// ComputeTotals aggregates the list into total weight and hydration.
//
// In extended mode a row named like "starter" is treated as a 100% hydration
// levain: half its weight counts as flour and half as water. Total weight is
// always the plain sum of every row. Hydration is 0 when there is no flour.
func ComputeTotals(list []models.Ingredient, mode models.HydrationMode) models.Totals {
	if mode == "" {
		mode = models.HydrationExtended
	}

	var total, flour, water float64
	for _, in := range list {
		total += in.Weight

		name := strings.ToLower(in.Name)
		switch {
		case in.IsBase:
			flour += in.Weight
		case strings.Contains(name, "water"):
			water += in.Weight
		case mode == models.HydrationExtended && strings.Contains(name, "starter"):
			flour += in.Weight * 0.5
			water += in.Weight * 0.5
		}
	}

	hydration := 0.0
	if flour > 0 {
		hydration = Round1(water / flour * 100)
	}

	return models.Totals{
		TotalWeight: Round1(total),
		FlourMass:   Round1(flour),
		WaterMass:   Round1(water),
		Hydration:   hydration,
		Mode:        mode,
	}
}
