package calc

import (
	"math"
	"strconv"
	"strings"

	"github.com/dstockto/dough/models"
)

// Round1 rounds to one decimal place, halves away from zero.
func Round1(x float64) float64 {
	return math.Round(x*10) / 10
}

// ParseAmount coerces user text into a non-negative number. Anything that is
// not a finite, non-negative number becomes 0.
func ParseAmount(raw string) float64 {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

// percentOf returns weight as a rounded percentage of flour, 0 when there is
// no flour to divide by.
func percentOf(weight, flour float64) float64 {
	if flour == 0 {
		return 0
	}
	return Round1(weight / flour * 100)
}

// base returns the flour row, if the list has one.
func base(list []models.Ingredient) (models.Ingredient, bool) {
	for _, in := range list {
		if in.IsBase {
			return in, true
		}
	}
	return models.Ingredient{}, false
}

// Normalize returns a new list in which the flour row sits at 100% and every
// other row's weight is derived from its (rounded) percentage. Without a flour
// row the list is returned as an unchanged copy.
func Normalize(list []models.Ingredient) []models.Ingredient {
	out := make([]models.Ingredient, len(list))
	copy(out, list)

	flour, ok := base(list)
	if !ok {
		return out
	}

	for i, in := range out {
		if in.IsBase {
			out[i].Percentage = 100
			continue
		}
		pct := math.Max(0, in.Percentage)
		out[i].Weight = Round1(pct / 100 * flour.Weight)
		out[i].Percentage = Round1(pct)
	}

	return out
}
