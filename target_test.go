package main

import (
	"testing"
	"time"
)

/* ─── Daily target tests ─────────────────────────────────────────────── */

// TestCalculateDailyTarget_MultiplierTable verifies the activity multiplier
// table against known endpoints.
func TestCalculateDailyTarget_MultiplierTable(t *testing.T) {
	cases := []struct {
		level string
		want  int
	}{
		{"sedentary", 1800},
		{"light", 2063}, // 1500 * 1.375 = 2062.5, rounds up
		{"moderate", 2325},
		{"active", 2588}, // 1500 * 1.725 = 2587.5, rounds up
		{"very_active", 2850},
	}
	for _, tc := range cases {
		t.Run(tc.level, func(t *testing.T) {
			got := calculateDailyTarget(1500, tc.level, 0)
			if got.BaseCalories != tc.want {
				t.Errorf("base = %d, want %d", got.BaseCalories, tc.want)
			}
			if got.TargetCalories != got.BaseCalories || got.Deficit != 0 {
				t.Errorf("zero goal must give target=base, deficit=0; got %+v", got)
			}
		})
	}
}

// TestCalculateDailyTarget_UnknownLevel verifies the sedentary fallback for
// an unrecognised level string — the function stays total.
func TestCalculateDailyTarget_UnknownLevel(t *testing.T) {
	got := calculateDailyTarget(1500, "couch", 0)
	if got.BaseCalories != 1800 {
		t.Errorf("base = %d, want sedentary fallback 1800", got.BaseCalories)
	}
}

// TestCalculateDailyTarget_DeficitArithmetic verifies the literal deficit
// arithmetic: deficit = round(goal * 7700 / 7) and target = base - deficit,
// for both signs of the weekly goal. The sign convention is preserved exactly
// as documented — callers pass positive magnitudes for loss goals.
func TestCalculateDailyTarget_DeficitArithmetic(t *testing.T) {
	got := calculateDailyTarget(2000, "moderate", 0.5)
	base := 3100 // 2000 * 1.55
	if got.BaseCalories != base {
		t.Fatalf("base = %d, want %d", got.BaseCalories, base)
	}
	if got.Deficit != 550 { // 0.5 * 7700 / 7
		t.Errorf("deficit = %d, want 550", got.Deficit)
	}
	if got.TargetCalories != base-550 {
		t.Errorf("target = %d, want %d", got.TargetCalories, base-550)
	}

	neg := calculateDailyTarget(2000, "moderate", -0.5)
	if neg.Deficit != -550 {
		t.Errorf("deficit = %d, want -550", neg.Deficit)
	}
	if neg.TargetCalories != base+550 {
		t.Errorf("target = %d, want %d (base minus negative deficit)", neg.TargetCalories, base+550)
	}
}

// TestCalculateDailyTarget_Invariant checks target = base - deficit across a
// spread of inputs.
func TestCalculateDailyTarget_Invariant(t *testing.T) {
	for _, bmr := range []int{0, 1200, 1500, 2200} {
		for _, goal := range []float64{-1, -0.25, 0, 0.5, 1.5} {
			got := calculateDailyTarget(bmr, "light", goal)
			if got.TargetCalories != got.BaseCalories-got.Deficit {
				t.Errorf("bmr=%d goal=%v: target %d != base %d - deficit %d",
					bmr, goal, got.TargetCalories, got.BaseCalories, got.Deficit)
			}
		}
	}
}

/* ─── Goal-based target tests ────────────────────────────────────────── */

// testToday is a fixed "today" so goal-date arithmetic is deterministic.
var testToday = time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

func daysOut(n int) *time.Time {
	d := testToday.AddDate(0, 0, n)
	return &d
}

// TestCalculateGoalBasedTarget_ShortCircuit verifies every guard that must
// return bmr-as-target with no deficit: absent goal, absent date, non-loss
// goal, and a timeline with no days left (which must not divide by zero).
func TestCalculateGoalBasedTarget_ShortCircuit(t *testing.T) {
	cases := []struct {
		name string
		goal *float64
		date *time.Time
	}{
		{"nil goal weight", nil, daysOut(30)},
		{"nil target date", floatPtr(75), nil},
		{"goal above current", floatPtr(85), daysOut(30)},
		{"goal equals current", floatPtr(80), daysOut(30)},
		{"target date today", floatPtr(75), daysOut(0)},
		{"target date in past", floatPtr(75), daysOut(-10)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := calculateGoalBasedTarget(1600, 80, tc.goal, tc.date, "male", testToday)
			if got.TargetCalories != 1600 || got.DailyDeficit != 0 || got.WeeklyWeightLoss != 0 {
				t.Errorf("got %+v, want target=1600 deficit=0 weekly=0", got)
			}
			if got.IsAggressive || got.IsTooLow {
				t.Errorf("short-circuit must not set flags; got %+v", got)
			}
		})
	}
}

// TestCalculateGoalBasedTarget_Arithmetic verifies the timeline-derived rate
// and deficit. 4 kg over 56 days: weekly = 4/(56/7) = 0.5 kg/wk, deficit =
// round(4*7700/56) = 550, target = 1600-550 = 1050 — which is below the male
// floor, so the target clamps to 1500 with is_too_low set.
func TestCalculateGoalBasedTarget_Arithmetic(t *testing.T) {
	got := calculateGoalBasedTarget(1600, 80, floatPtr(76), daysOut(56), "male", testToday)
	if got.WeeklyWeightLoss != 0.5 {
		t.Errorf("weekly = %v, want 0.5", got.WeeklyWeightLoss)
	}
	if got.DailyDeficit != 550 {
		t.Errorf("deficit = %d, want 550", got.DailyDeficit)
	}
	if got.TargetCalories != 1500 || !got.IsTooLow {
		t.Errorf("target = %d too_low=%v, want clamped to 1500 with too_low=true",
			got.TargetCalories, got.IsTooLow)
	}
	if got.IsAggressive {
		t.Error("0.5 kg/week must not be flagged aggressive")
	}
}

// TestCalculateGoalBasedTarget_NoClampNeeded verifies the unclamped path.
// 2 kg over 140 days: deficit = round(2*7700/140) = 110, target = 2090.
func TestCalculateGoalBasedTarget_NoClampNeeded(t *testing.T) {
	got := calculateGoalBasedTarget(2200, 80, floatPtr(78), daysOut(140), "male", testToday)
	if got.DailyDeficit != 110 {
		t.Errorf("deficit = %d, want 110", got.DailyDeficit)
	}
	if got.TargetCalories != 2090 {
		t.Errorf("target = %d, want 2090", got.TargetCalories)
	}
	if got.IsTooLow || got.IsAggressive {
		t.Errorf("unexpected flags: %+v", got)
	}
}

// TestCalculateGoalBasedTarget_FemaleFloor verifies a 7-day aggressive goal
// for a female profile clamps to 1200 with both flags set. 2 kg in 7 days:
// weekly = 2 (> 1, aggressive), deficit = 2200, target = 1400-2200 = -800.
func TestCalculateGoalBasedTarget_FemaleFloor(t *testing.T) {
	got := calculateGoalBasedTarget(1400, 80, floatPtr(78), daysOut(7), "female", testToday)
	if !got.IsAggressive {
		t.Error("2 kg/week must be flagged aggressive")
	}
	if got.TargetCalories != 1200 || !got.IsTooLow {
		t.Errorf("target = %d too_low=%v, want clamped to 1200 with too_low=true",
			got.TargetCalories, got.IsTooLow)
	}
}

// TestCalculateGoalBasedTarget_FloorByGender verifies only "male" gets the
// 1500 floor; other and prefer-not-to-say share the 1200 floor.
func TestCalculateGoalBasedTarget_FloorByGender(t *testing.T) {
	cases := []struct {
		gender string
		want   int
	}{
		{"male", 1500},
		{"female", 1200},
		{"other", 1200},
		{"prefer-not-to-say", 1200},
	}
	for _, tc := range cases {
		t.Run(tc.gender, func(t *testing.T) {
			// 5 kg in 7 days: deficit 5500, hopelessly below any floor.
			got := calculateGoalBasedTarget(1600, 80, floatPtr(75), daysOut(7), tc.gender, testToday)
			if got.TargetCalories != tc.want || !got.IsTooLow {
				t.Errorf("target = %d too_low=%v, want %d with too_low=true",
					got.TargetCalories, got.IsTooLow, tc.want)
			}
		})
	}
}

// TestCalculateGoalBasedTarget_Deterministic verifies two identical calls
// produce identical results — the explicit today argument removes the only
// possible hidden clock dependency.
func TestCalculateGoalBasedTarget_Deterministic(t *testing.T) {
	a := calculateGoalBasedTarget(1600, 80, floatPtr(76), daysOut(56), "male", testToday)
	b := calculateGoalBasedTarget(1600, 80, floatPtr(76), daysOut(56), "male", testToday)
	if a != b {
		t.Errorf("identical inputs gave %+v and %+v", a, b)
	}
}
