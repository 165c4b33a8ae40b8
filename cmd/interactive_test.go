package cmd

import (
	"reflect"
	"strings"
	"testing"

	"github.com/dstockto/dough/calc"
	"github.com/dstockto/dough/models"
	"github.com/manifoldco/promptui"
)

func TestIsInteractiveAllowedHonoursFlag(t *testing.T) {
	if isInteractiveAllowed(true) {
		t.Error("isInteractiveAllowed(true) should always be false")
	}
}

func TestMenuItems(t *testing.T) {
	list := models.DefaultIngredients(1000)
	list = append(list, models.Ingredient{Id: "custom-1", IsCustom: true})

	items := menuItems(list)
	if len(items) != len(list)+3 {
		t.Fatalf("expected %d items, got %d", len(list)+3, len(items))
	}
	if !strings.HasPrefix(items[0], "Flour") || !strings.Contains(items[0], "1000.0 g") {
		t.Errorf("flour item = %q", items[0])
	}
	if !strings.HasPrefix(items[4], "(unnamed)") {
		t.Errorf("custom item = %q", items[4])
	}
	if tail := items[len(items)-3:]; !reflect.DeepEqual(tail, []string{menuAdd, menuRemove, menuDone}) {
		t.Errorf("menu actions = %v", tail)
	}
}

func TestEditableFields(t *testing.T) {
	tests := []struct {
		name string
		in   models.Ingredient
		want []calc.Field
	}{
		{"flour", models.Ingredient{IsBase: true}, []calc.Field{calc.FieldWeight}},
		{"built-in", models.Ingredient{}, []calc.Field{calc.FieldWeight, calc.FieldPercentage}},
		{"custom", models.Ingredient{IsCustom: true}, []calc.Field{calc.FieldName, calc.FieldWeight, calc.FieldPercentage}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := editableFields(tt.in); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("editableFields() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCurrentValue(t *testing.T) {
	in := models.Ingredient{Name: "Rye", Weight: 123.4, Percentage: 12.3}
	if got := currentValue(in, calc.FieldName); got != "Rye" {
		t.Errorf("name = %q", got)
	}
	if got := currentValue(in, calc.FieldWeight); got != "123.4" {
		t.Errorf("weight = %q", got)
	}
	if got := currentValue(in, calc.FieldPercentage); got != "12.3" {
		t.Errorf("percentage = %q", got)
	}
}

func TestCanceled(t *testing.T) {
	for _, err := range []error{promptui.ErrInterrupt, promptui.ErrAbort, promptui.ErrEOF} {
		if !canceled(err) {
			t.Errorf("canceled(%v) = false", err)
		}
	}
	if canceled(nil) {
		t.Error("canceled(nil) = true")
	}
}
