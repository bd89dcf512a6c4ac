package main

import (
	"encoding/json"
	"math"
	"reflect"
	"testing"
)

/* ─── Serving multiplier tests ───────────────────────────────────────── */

func TestGetServingMultiplier(t *testing.T) {
	cases := []struct {
		name   string
		qty    float64
		unit   string
		ref    *float64
		want   float64
		approx bool
	}{
		{"servings pass through", 2.5, unitServing, floatPtr(100), 2.5, false},
		{"serving ignores reference", 3, unitServing, floatPtr(43), 3, false},
		{"grams against reference", 150, unitGrams, floatPtr(100), 1.5, false},
		{"grams default reference", 50, unitGrams, nil, 0.5, false},
		{"ml density-1", 250, unitMillis, floatPtr(100), 2.5, false},
		{"oz converts to grams", 1, unitOunces, floatPtr(28.35), 1, true},
		{"oz against 100g", 2, unitOunces, floatPtr(100), 0.567, true},
		{"unknown unit fails open", 2, "unknown-unit", floatPtr(100), 2, false},
		{"empty unit fails open", 1.5, "", nil, 1.5, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := getServingMultiplier(tc.qty, tc.unit, tc.ref)
			if tc.approx {
				if math.Abs(got-tc.want) > 1e-4 {
					t.Errorf("got %v, want ~%v (±1e-4)", got, tc.want)
				}
			} else if got != tc.want {
				t.Errorf("got %v, want %v", got, tc.want)
			}
		})
	}
}

/* ─── Log entry normalization tests ──────────────────────────────────── */

// TestLogEntry_UnmarshalBoth verifies the legacy bare-string shorthand and
// the structured form decode into the same normalized shape.
func TestLogEntry_UnmarshalBoth(t *testing.T) {
	raw := `["m1", {"meal_id": "m2", "quantity": 150, "unit": "g"}]`
	var entries []logEntry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	want := []logEntry{
		{MealID: "m1", Quantity: 1, Unit: unitServing},
		{MealID: "m2", Quantity: 150, Unit: unitGrams},
	}
	if !reflect.DeepEqual(entries, want) {
		t.Errorf("got %+v, want %+v", entries, want)
	}
}

func TestLogEntry_UnmarshalRejectsGarbage(t *testing.T) {
	var e logEntry
	if err := json.Unmarshal([]byte(`42`), &e); err == nil {
		t.Error("expected error for numeric log entry")
	}
}

/* ─── Aggregation tests ──────────────────────────────────────────────── */

func testCatalog() map[string]meal {
	return map[string]meal{
		"m1": {ID: "m1", Name: "Chicken Bowl", Calories: 200, ProteinG: 30, CarbsG: 10, FatG: 5},
		"m2": {ID: "m2", Name: "Oatmeal", Calories: 350, ProteinG: 12, CarbsG: 60, FatG: 7,
			FiberG: floatPtr(8), SugarG: floatPtr(1), ServingSizeG: floatPtr(80)},
	}
}

// TestAggregateIntake_MissingMealSkipped verifies an unresolvable meal id
// contributes zero without aborting the rest of the log.
func TestAggregateIntake_MissingMealSkipped(t *testing.T) {
	entries := []logEntry{
		{MealID: "m1", Quantity: 1, Unit: unitServing},
		{MealID: "missing", Quantity: 1, Unit: unitServing},
	}
	got := aggregateIntake(entries, testCatalog())
	if got.Calories != 200 {
		t.Errorf("calories = %d, want exactly 200", got.Calories)
	}
	if got.ProteinG != 30 {
		t.Errorf("protein = %d, want 30", got.ProteinG)
	}
}

// TestAggregateIntake_GramEntry verifies gram quantities scale against the
// meal's own serving size. 160g of an 80g-serving meal doubles every macro.
func TestAggregateIntake_GramEntry(t *testing.T) {
	entries := []logEntry{{MealID: "m2", Quantity: 160, Unit: unitGrams}}
	got := aggregateIntake(entries, testCatalog())
	want := intakeTotals{Calories: 700, ProteinG: 24, CarbsG: 120, FatG: 14, FiberG: 16, SugarG: 2}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

// TestAggregateIntake_RoundPerEntry verifies each entry's macros are rounded
// before summing. Three half-calorie servings must give 3×round(100.5)=303,
// not round(301.5)=302.
func TestAggregateIntake_RoundPerEntry(t *testing.T) {
	catalog := map[string]meal{
		"m": {ID: "m", Calories: 100.5},
	}
	entries := []logEntry{
		{MealID: "m", Quantity: 1, Unit: unitServing},
		{MealID: "m", Quantity: 1, Unit: unitServing},
		{MealID: "m", Quantity: 1, Unit: unitServing},
	}
	got := aggregateIntake(entries, catalog)
	if got.Calories != 303 {
		t.Errorf("calories = %d, want 303 (round per entry, then sum)", got.Calories)
	}
}

func TestAggregateIntake_EmptyLog(t *testing.T) {
	got := aggregateIntake(nil, testCatalog())
	if got != (intakeTotals{}) {
		t.Errorf("empty log must total zero, got %+v", got)
	}
}

// TestAggregateIntake_Deterministic verifies identical inputs produce
// identical totals.
func TestAggregateIntake_Deterministic(t *testing.T) {
	entries := []logEntry{
		{MealID: "m1", Quantity: 2, Unit: unitServing},
		{MealID: "m2", Quantity: 3, Unit: unitOunces},
	}
	a := aggregateIntake(entries, testCatalog())
	b := aggregateIntake(entries, testCatalog())
	if a != b {
		t.Errorf("identical inputs gave %+v and %+v", a, b)
	}
}
