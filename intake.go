package main

import (
	"encoding/json"
	"math"
)

// Log entry units. Anything outside this set falls back to treating the
// quantity as a bare multiplier (legacy behavior).
const (
	unitServing = "serving"
	unitGrams   = "g"
	unitOunces  = "oz"
	unitMillis  = "ml"
)

const gramsPerOunce = 28.35

// defaultServingSizeG is the reference serving assumed when a gram-based unit
// is logged against a meal that has no stored serving size.
const defaultServingSizeG = 100.0

// meal is one catalog record. Macros are per one reference serving;
// ServingSizeG says how many grams that serving is (nil means unknown, the
// aggregator assumes 100).
type meal struct {
	ID           string   `json:"id" db:"id"`
	UserID       int      `json:"user_id" db:"user_id"`
	Name         string   `json:"name" db:"name"`
	Calories     float64  `json:"calories" db:"calories"`
	ProteinG     float64  `json:"protein_g" db:"protein_g"`
	CarbsG       float64  `json:"carbs_g" db:"carbs_g"`
	FatG         float64  `json:"fat_g" db:"fat_g"`
	FiberG       *float64 `json:"fiber_g" db:"fiber_g"`
	SugarG       *float64 `json:"sugar_g" db:"sugar_g"`
	ServingSizeG *float64 `json:"serving_size_g" db:"serving_size_g"`
}

// logEntry is one logged meal reference. The wire form is either a bare meal
// id string (legacy shorthand for one serving) or the structured object —
// UnmarshalJSON normalizes both into the struct, so everything past the JSON
// boundary only ever sees the structured form.
type logEntry struct {
	MealID   string  `json:"meal_id"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
}

func (e *logEntry) UnmarshalJSON(b []byte) error {
	var id string
	if err := json.Unmarshal(b, &id); err == nil {
		e.MealID = id
		e.Quantity = 1
		e.Unit = unitServing
		return nil
	}
	type structured logEntry // drop methods to avoid recursing
	var s structured
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	*e = logEntry(s)
	return nil
}

// intakeTotals is the aggregator's output. Each field is a sum of per-entry
// values that were individually rounded to whole units.
type intakeTotals struct {
	Calories int `json:"calories"`
	ProteinG int `json:"protein_g"`
	CarbsG   int `json:"carbs_g"`
	FatG     int `json:"fat_g"`
	FiberG   int `json:"fiber_g"`
	SugarG   int `json:"sugar_g"`
}

// getServingMultiplier converts a logged quantity+unit into the scalar to
// apply to the meal's per-serving macros. Gram-based units divide by the
// meal's reference serving size (default 100 when absent); ml is treated as
// density-1 with grams. Unknown units fall open to the raw quantity, which
// preserves legacy bare-quantity logs.
func getServingMultiplier(quantity float64, unit string, servingSizeG *float64) float64 {
	ref := defaultServingSizeG
	if servingSizeG != nil && *servingSizeG > 0 {
		ref = *servingSizeG
	}
	switch unit {
	case unitServing:
		return quantity
	case unitGrams, unitMillis:
		return quantity / ref
	case unitOunces:
		return quantity * gramsPerOunce / ref
	default:
		return quantity
	}
}

// aggregateIntake sums calories and macros for a day's log against a meal
// catalog. Entries whose meal id is not in the catalog contribute zero —
// a stale reference never breaks the rest of the day. Each macro is rounded
// per entry before summing; summing fractions first and rounding once would
// drift on logs with many small entries, so the order is a compatibility
// contract, not a style choice.
func aggregateIntake(entries []logEntry, catalog map[string]meal) intakeTotals {
	var totals intakeTotals
	for _, e := range entries {
		m, found := catalog[e.MealID]
		if !found {
			continue
		}
		mult := getServingMultiplier(e.Quantity, e.Unit, m.ServingSizeG)
		totals.Calories += roundScaled(m.Calories, mult)
		totals.ProteinG += roundScaled(m.ProteinG, mult)
		totals.CarbsG += roundScaled(m.CarbsG, mult)
		totals.FatG += roundScaled(m.FatG, mult)
		if m.FiberG != nil {
			totals.FiberG += roundScaled(*m.FiberG, mult)
		}
		if m.SugarG != nil {
			totals.SugarG += roundScaled(*m.SugarG, mult)
		}
	}
	return totals
}

func roundScaled(value, mult float64) int {
	return int(math.Round(value * mult))
}
