package calc

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"testing"

	"github.com/dstockto/dough/models"
)

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("custom-%d", n)
	}
}

func mustGet(t *testing.T, c *Calculator, id string) models.Ingredient {
	t.Helper()
	in, ok := c.Get(id)
	if !ok {
		t.Fatalf("row %q not found", id)
	}
	return in
}

func assertFlourPinned(t *testing.T, c *Calculator) {
	t.Helper()
	flour, ok := c.Flour()
	if !ok {
		t.Fatal("flour row missing")
	}
	if flour.Percentage != 100 {
		t.Errorf("flour percentage = %v, want 100", flour.Percentage)
	}
}

func TestNewDefaults(t *testing.T) {
	c := New()
	got := c.Ingredients()
	if len(got) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(got))
	}

	wantIDs := []string{models.FlourID, models.WaterID, models.SaltID, models.StarterID}
	for i, id := range wantIDs {
		if got[i].Id != id {
			t.Errorf("row %d id = %q, want %q", i, got[i].Id, id)
		}
	}
	if got[0].Weight != 1000 || got[0].Percentage != 100 || !got[0].IsBase {
		t.Errorf("unexpected flour row: %+v", got[0])
	}
	for _, in := range got[1:] {
		if in.Weight != 0 || in.Percentage != 0 || in.IsBase || in.IsCustom {
			t.Errorf("unexpected seed row: %+v", in)
		}
	}
	if c.Mode() != models.HydrationExtended {
		t.Errorf("default mode = %q, want extended", c.Mode())
	}
}

func TestNewWithFlourWeight(t *testing.T) {
	c := New(WithFlourWeight(500))
	if flour := mustGet(t, c, models.FlourID); flour.Weight != 500 {
		t.Errorf("flour weight = %v, want 500", flour.Weight)
	}

	c = New(WithFlourWeight(-3))
	if flour := mustGet(t, c, models.FlourID); flour.Weight != 0 {
		t.Errorf("negative flour weight should clamp to 0, got %v", flour.Weight)
	}
}

func TestEditField(t *testing.T) {
	tests := []struct {
		name      string
		flour     string
		id        string
		field     Field
		value     string
		wantW     float64
		wantP     float64
		wantFlour float64
	}{
		{"percentage sets weight", "", models.WaterID, FieldPercentage, "70", 700, 70, 1000},
		{"weight sets percentage", "", models.WaterID, FieldWeight, "700", 700, 70, 1000},
		{"percentage rounds", "", models.SaltID, FieldPercentage, "2.26", 22.6, 2.3, 1000},
		{"weight double rounds", "333", models.WaterID, FieldWeight, "100", 99.9, 30, 333},
		{"garbage weight", "", models.WaterID, FieldWeight, "abc", 0, 0, 1000},
		{"negative percentage", "", models.WaterID, FieldPercentage, "-5", 0, 0, 1000},
		{"nan percentage", "", models.WaterID, FieldPercentage, "NaN", 0, 0, 1000},
		{"inf weight", "", models.WaterID, FieldWeight, "+Inf", 0, 0, 1000},
		{"padded input", "", models.WaterID, FieldWeight, " 650 ", 650, 65, 1000},
		{"zero flour", "0", models.WaterID, FieldWeight, "50", 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New()
			if tt.flour != "" {
				c.EditField(models.FlourID, FieldWeight, tt.flour)
			}
			c.EditField(tt.id, tt.field, tt.value)

			got := mustGet(t, c, tt.id)
			if got.Weight != tt.wantW || got.Percentage != tt.wantP {
				t.Errorf("got weight=%v pct=%v, want weight=%v pct=%v", got.Weight, got.Percentage, tt.wantW, tt.wantP)
			}
			if math.IsNaN(got.Percentage) || math.IsInf(got.Percentage, 0) {
				t.Errorf("percentage is not finite: %v", got.Percentage)
			}
			if flour := mustGet(t, c, models.FlourID); flour.Weight != tt.wantFlour {
				t.Errorf("flour weight = %v, want %v", flour.Weight, tt.wantFlour)
			}
			assertFlourPinned(t, c)
		})
	}
}

func TestEditFlourWeightRescales(t *testing.T) {
	c := New()
	c.EditField(models.WaterID, FieldPercentage, "70")
	c.EditField(models.SaltID, FieldPercentage, "2")
	c.EditField(models.StarterID, FieldPercentage, "20")

	c.EditField(models.FlourID, FieldWeight, "500")

	want := map[string][2]float64{
		models.FlourID:   {500, 100},
		models.WaterID:   {350, 70},
		models.SaltID:    {10, 2},
		models.StarterID: {100, 20},
	}
	for id, wp := range want {
		got := mustGet(t, c, id)
		if got.Weight != wp[0] || got.Percentage != wp[1] {
			t.Errorf("%s: got %v g / %v %%, want %v g / %v %%", id, got.Weight, got.Percentage, wp[0], wp[1])
		}
	}
}

func TestEditFlourPercentageIsPinned(t *testing.T) {
	c := New()
	c.EditField(models.FlourID, FieldPercentage, "80")
	assertFlourPinned(t, c)
	if flour := mustGet(t, c, models.FlourID); flour.Weight != 1000 {
		t.Errorf("flour weight changed to %v", flour.Weight)
	}
}

func TestEditFieldName(t *testing.T) {
	c := New(WithIDGenerator(sequentialIDs()))
	id := c.AddIngredient()
	c.EditField(id, FieldName, "  Rye flour ")

	if got := mustGet(t, c, id); got.Name != "  Rye flour " {
		t.Errorf("name = %q, want verbatim", got.Name)
	}
}

func TestEditFieldIgnoresUnknown(t *testing.T) {
	c := New()
	before := c.Ingredients()

	c.EditField("nope", FieldWeight, "10")
	c.EditField(models.WaterID, Field("colour"), "10")

	if !reflect.DeepEqual(before, c.Ingredients()) {
		t.Errorf("list changed: %+v", c.Ingredients())
	}
}

func TestWeightThenPercentageIsFixedPoint(t *testing.T) {
	flours := []string{"1000", "333", "487.5", "120"}
	weights := []string{"0", "1", "23.456", "99.95", "700", "1234.5"}

	for _, f := range flours {
		for _, w := range weights {
			t.Run(f+"/"+w, func(t *testing.T) {
				c := New()
				c.EditField(models.FlourID, FieldWeight, f)
				c.EditField(models.WaterID, FieldWeight, w)
				first := mustGet(t, c, models.WaterID)

				c.EditField(models.WaterID, FieldPercentage, strconv.FormatFloat(first.Percentage, 'f', -1, 64))
				second := mustGet(t, c, models.WaterID)

				if first != second {
					t.Errorf("not a fixed point: %+v then %+v", first, second)
				}
			})
		}
	}
}

func TestWeightsAndPercentagesStayConsistent(t *testing.T) {
	c := New(WithIDGenerator(sequentialIDs()))
	extra := c.AddIngredient()

	edits := []struct {
		id    string
		field Field
		value string
	}{
		{models.WaterID, FieldWeight, "712.3"},
		{models.SaltID, FieldPercentage, "2.15"},
		{models.StarterID, FieldWeight, "187"},
		{extra, FieldPercentage, "12.34"},
		{models.FlourID, FieldWeight, "873"},
		{models.WaterID, FieldPercentage, "68.7"},
		{models.FlourID, FieldWeight, "250"},
		{extra, FieldWeight, "31.3"},
	}

	for _, e := range edits {
		c.EditField(e.id, e.field, e.value)
		assertFlourPinned(t, c)

		flour, _ := c.Flour()
		for _, in := range c.Ingredients() {
			if in.IsBase {
				continue
			}
			if d := math.Abs(in.Weight - in.Percentage/100*flour.Weight); d > 0.1 {
				t.Errorf("after %s=%s on %s: %s weight %v drifts %v from its percentage", e.field, e.value, e.id, in.Id, in.Weight, d)
			}
			if d := math.Abs(in.Percentage - in.Weight/flour.Weight*100); d > 0.1 {
				t.Errorf("after %s=%s on %s: %s percentage %v drifts %v from its weight", e.field, e.value, e.id, in.Id, in.Percentage, d)
			}
			if in.Weight < 0 || in.Percentage < 0 {
				t.Errorf("negative values on %s: %+v", in.Id, in)
			}
		}
	}
}

func TestAddIngredient(t *testing.T) {
	c := New()
	id := c.AddIngredient()

	if !strings.HasPrefix(id, "custom-") {
		t.Errorf("id %q lacks custom- prefix", id)
	}
	if c.Len() != 5 {
		t.Fatalf("expected 5 rows, got %d", c.Len())
	}
	got := c.Ingredients()[4]
	want := models.Ingredient{Id: id, IsCustom: true}
	if got != want {
		t.Errorf("added row = %+v, want %+v", got, want)
	}

	if other := c.AddIngredient(); other == id {
		t.Errorf("ids collide: %q", id)
	}
}

func TestAddThenRemoveRestoresList(t *testing.T) {
	c := New()
	c.EditField(models.WaterID, FieldWeight, "723")
	c.EditField(models.SaltID, FieldPercentage, "2.1")
	before := c.Ingredients()

	id := c.AddIngredient()
	c.RemoveIngredient(id)

	if !reflect.DeepEqual(before, c.Ingredients()) {
		t.Errorf("list differs after add/remove:\nbefore %+v\nafter  %+v", before, c.Ingredients())
	}
}

func TestRemoveIngredient(t *testing.T) {
	c := New()
	c.RemoveIngredient("nope")
	if c.Len() != 4 {
		t.Fatalf("unknown id removed a row")
	}

	c.RemoveIngredient(models.SaltID)
	if _, ok := c.Get(models.SaltID); ok {
		t.Error("salt still present")
	}
	ids := []string{}
	for _, in := range c.Ingredients() {
		ids = append(ids, in.Id)
	}
	if strings.Join(ids, ",") != "flour,water,starter" {
		t.Errorf("unexpected order after remove: %v", ids)
	}
}

func TestWithoutFlourRow(t *testing.T) {
	c := New()
	c.EditField(models.WaterID, FieldPercentage, "70")
	c.RemoveIngredient(models.FlourID)

	if _, ok := c.Flour(); ok {
		t.Fatal("flour row should be gone")
	}

	c.EditField(models.WaterID, FieldWeight, "10")
	water := mustGet(t, c, models.WaterID)
	if water.Weight != 10 || water.Percentage != 70 {
		t.Errorf("water = %+v, want weight 10 and untouched percentage", water)
	}

	c.EditField(models.SaltID, FieldPercentage, "3")
	if salt := mustGet(t, c, models.SaltID); salt.Percentage != 3 || salt.Weight != 0 {
		t.Errorf("salt = %+v", salt)
	}

	tot := c.Totals()
	if tot.Hydration != 0 {
		t.Errorf("hydration without flour = %v, want 0", tot.Hydration)
	}
	if tot.TotalWeight != 10 {
		t.Errorf("total weight = %v, want 10", tot.TotalWeight)
	}
}

func TestWithIngredients(t *testing.T) {
	c := New(WithIngredients([]models.Ingredient{
		{Id: "f", Name: "Bread flour", Weight: 400, Percentage: 12, IsBase: true},
		{Id: "w", Name: "Water", Weight: 1, Percentage: 75},
	}))

	if f := mustGet(t, c, "f"); f.Percentage != 100 {
		t.Errorf("seed flour not pinned: %+v", f)
	}
	if w := mustGet(t, c, "w"); w.Weight != 300 {
		t.Errorf("seed water weight = %v, want 300", w.Weight)
	}
}

func TestFind(t *testing.T) {
	c := New(WithIDGenerator(sequentialIDs()))
	id := c.AddIngredient()
	c.EditField(id, FieldName, "Olive Oil")

	tests := []struct {
		ref    string
		wantID string
		wantOK bool
	}{
		{"water", models.WaterID, true},
		{"WATER", models.WaterID, true},
		{"sourdough starter", models.StarterID, true},
		{"olive oil", id, true},
		{id, id, true},
		{"honey", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			got, ok := c.Find(tt.ref)
			if ok != tt.wantOK || got != tt.wantID {
				t.Errorf("Find(%q) = %q, %v; want %q, %v", tt.ref, got, ok, tt.wantID, tt.wantOK)
			}
		})
	}
}

func TestParseField(t *testing.T) {
	tests := []struct {
		in      string
		want    Field
		wantErr bool
	}{
		{"name", FieldName, false},
		{"Weight", FieldWeight, false},
		{"g", FieldWeight, false},
		{"%", FieldPercentage, false},
		{" pct ", FieldPercentage, false},
		{"colour", "", true},
	}

	for _, tt := range tests {
		got, err := ParseField(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseField(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseField(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
