package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/dstockto/dough/calc"
	"github.com/dstockto/dough/models"
	"gopkg.in/yaml.v3"
)

// Report is the machine readable form of a calculation.
type Report struct {
	Ingredients []models.Ingredient `json:"ingredients" yaml:"ingredients"`
	Totals      models.Totals       `json:"totals" yaml:"totals"`
}

// writeReport renders the calculator state in the requested format: table,
// json or yaml.
func writeReport(w io.Writer, c *calc.Calculator, format string) error {
	report := Report{
		Ingredients: c.Ingredients(),
		Totals:      c.Totals(),
	}

	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "table":
		printTable(w, report.Ingredients, report.Totals)
		return nil
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return fmt.Errorf("failed to encode json: %w", err)
		}
		return nil
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(report); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		return enc.Close()
	}

	return fmt.Errorf("unknown format %q (want table, json or yaml)", format)
}
