// Package calc keeps a bread formula's weights and baker's percentages in step
// with each other as individual fields are edited.
//
// Every mutation builds a new list and runs it through Normalize, so weights
// and percentages never drift apart across edits. Nothing here returns an
// error: bad numbers become 0 and a missing flour row turns the flour-relative
// derivations into no-ops.
package calc

import (
	"fmt"
	"strings"

	"github.com/dstockto/dough/models"
)

// Field names an editable column of an ingredient row.
type Field string

const (
	FieldName       Field = "name"
	FieldWeight     Field = "weight"
	FieldPercentage Field = "percentage"
)

// ParseField accepts the column names plus a few short forms used on the
// command line.
func ParseField(s string) (Field, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "name", "n":
		return FieldName, nil
	case "weight", "w", "g", "grams":
		return FieldWeight, nil
	case "percentage", "percent", "pct", "p", "%":
		return FieldPercentage, nil
	}
	return "", fmt.Errorf("unknown field %q", s)
}

// DefaultFlourWeight is the flour row's starting weight in grams.
const DefaultFlourWeight = 1000.0

// Option configures a Calculator.
type Option func(*config)

type config struct {
	flourWeight float64
	mode        models.HydrationMode
	newID       func() string
	seed        []models.Ingredient
}

// WithFlourWeight sets the starting flour weight. Negative values become 0.
func WithFlourWeight(w float64) Option {
	return func(c *config) {
		if w < 0 {
			w = 0
		}
		c.flourWeight = w
	}
}

// WithHydrationMode selects simple or extended hydration.
func WithHydrationMode(m models.HydrationMode) Option {
	return func(c *config) {
		c.mode = m
	}
}

// WithIDGenerator replaces the random id source for custom rows.
func WithIDGenerator(fn func() string) Option {
	return func(c *config) {
		c.newID = fn
	}
}

// WithIngredients starts from the given rows instead of the default four.
// The rows are normalized before use.
func WithIngredients(list []models.Ingredient) Option {
	return func(c *config) {
		c.seed = list
	}
}

func applyOptions(opts []Option) *config {
	cfg := &config{
		flourWeight: DefaultFlourWeight,
		mode:        models.HydrationExtended,
		newID:       newCustomID,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Calculator owns the ordered ingredient list of one editing session.
// It is not safe for concurrent use.
type Calculator struct {
	items []models.Ingredient
	mode  models.HydrationMode
	newID func() string
}

// New creates a calculator seeded with flour, water, salt and starter.
func New(opts ...Option) *Calculator {
	cfg := applyOptions(opts)

	seed := cfg.seed
	if seed == nil {
		seed = models.DefaultIngredients(cfg.flourWeight)
	}

	return &Calculator{
		items: Normalize(seed),
		mode:  cfg.mode,
		newID: cfg.newID,
	}
}

// Mode returns the hydration mode used by Totals.
func (c *Calculator) Mode() models.HydrationMode {
	return c.mode
}

// Ingredients returns a copy of the current rows in insertion order.
func (c *Calculator) Ingredients() []models.Ingredient {
	out := make([]models.Ingredient, len(c.items))
	copy(out, c.items)
	return out
}

// Len returns the number of rows.
func (c *Calculator) Len() int {
	return len(c.items)
}

// Get returns the row with the given id.
func (c *Calculator) Get(id string) (models.Ingredient, bool) {
	if i := c.index(id); i >= 0 {
		return c.items[i], true
	}
	return models.Ingredient{}, false
}

// Flour returns the base row, if one exists.
func (c *Calculator) Flour() (models.Ingredient, bool) {
	return base(c.items)
}

// Totals recomputes total weight and hydration from the current rows.
func (c *Calculator) Totals() models.Totals {
	return ComputeTotals(c.items, c.mode)
}

// EditField applies one user edit and renormalizes the whole list.
//
// A weight edit on a non-flour row derives the row's percentage first; the
// weight is then re-derived from that rounded percentage, so the stored weight
// may differ from the typed one by up to 0.1 g. A weight edit on the flour row
// rescales every other row. Unknown ids and fields are ignored.
func (c *Calculator) EditField(id string, field Field, raw string) {
	idx := c.index(id)
	if idx < 0 {
		return
	}

	next := c.Ingredients()
	row := next[idx]

	switch field {
	case FieldName:
		row.Name = raw
	case FieldWeight:
		row.Weight = ParseAmount(raw)
		if !row.IsBase {
			if flour, ok := base(c.items); ok {
				row.Percentage = percentOf(row.Weight, flour.Weight)
			}
		}
	case FieldPercentage:
		row.Percentage = ParseAmount(raw)
	default:
		return
	}

	next[idx] = row
	c.items = Normalize(next)
}

// AddIngredient appends an empty custom row and returns its id.
func (c *Calculator) AddIngredient() string {
	id := c.newID()
	next := append(c.Ingredients(), models.Ingredient{
		Id:       id,
		IsCustom: true,
	})
	c.items = Normalize(next)
	return id
}

// RemoveIngredient drops the row with the given id. The flour row is not
// protected here; removing it leaves the other rows as they are.
func (c *Calculator) RemoveIngredient(id string) {
	idx := c.index(id)
	if idx < 0 {
		return
	}

	next := make([]models.Ingredient, 0, len(c.items)-1)
	next = append(next, c.items[:idx]...)
	next = append(next, c.items[idx+1:]...)
	c.items = Normalize(next)
}

// Find resolves a user-supplied reference to a row id: an exact id first, then
// a case-insensitive id or name match.
func (c *Calculator) Find(ref string) (string, bool) {
	if i := c.index(ref); i >= 0 {
		return ref, true
	}
	needle := strings.ToLower(strings.TrimSpace(ref))
	if needle == "" {
		return "", false
	}
	for _, in := range c.items {
		if strings.ToLower(in.Id) == needle || strings.ToLower(strings.TrimSpace(in.Name)) == needle {
			return in.Id, true
		}
	}
	return "", false
}

func (c *Calculator) index(id string) int {
	for i, in := range c.items {
		if in.Id == id {
			return i
		}
	}
	return -1
}
