package main

import (
	"math"
	"time"
)

// activityMultipliers maps activity level strings to their TDEE multiplier.
// This is the single source of truth for valid activity levels — also used
// for input validation in patchProfile and by the activity recommender's
// tier vocabulary.
var activityMultipliers = map[string]float64{
	"sedentary":   1.2,
	"light":       1.375,
	"moderate":    1.55,
	"active":      1.725,
	"very_active": 1.9,
}

// kcalPerKG is the energy content of 1 kg of adipose tissue. Fixed constant,
// not user-configurable.
const kcalPerKG = 7700.0

// Minimum safe daily calorie intakes. The female floor also applies to
// other/prefer-not-to-say genders.
const (
	minCaloriesMale    = 1500
	minCaloriesDefault = 1200
)

// dailyTargetResult is calculateDailyTarget's output. All values are rounded
// integers with TargetCalories = BaseCalories - Deficit.
type dailyTargetResult struct {
	BaseCalories   int `json:"base_calories"`
	TargetCalories int `json:"target_calories"`
	Deficit        int `json:"deficit"`
}

// goalBasedTargetResult extends the daily result with the weekly rate implied
// by the goal timeline and the safety flags derived from it.
type goalBasedTargetResult struct {
	BaseCalories     int     `json:"base_calories"`
	TargetCalories   int     `json:"target_calories"`
	DailyDeficit     int     `json:"daily_deficit"`
	WeeklyWeightLoss float64 `json:"weekly_weight_loss"`
	IsAggressive     bool    `json:"is_aggressive"`
	IsTooLow         bool    `json:"is_too_low"`
}

// calculateDailyTarget converts a BMR into a maintenance calorie figure and a
// goal-adjusted daily target. weeklyWeightGoalKG follows the caller's sign
// convention: deficit = round(goal * 7700 / 7) and target = base - deficit,
// kept literal for compatibility with existing clients, which pass positive
// magnitudes for loss goals.
// An unknown activity level falls back to the sedentary multiplier so the
// function stays total.
func calculateDailyTarget(bmr int, activityLevel string, weeklyWeightGoalKG float64) dailyTargetResult {
	mult, found := activityMultipliers[activityLevel]
	if !found {
		mult = activityMultipliers["sedentary"]
	}
	base := int(math.Round(float64(bmr) * mult))
	deficit := int(math.Round(weeklyWeightGoalKG * kcalPerKG / 7))
	return dailyTargetResult{
		BaseCalories:   base,
		TargetCalories: base - deficit,
		Deficit:        deficit,
	}
}

// minCaloriesFor returns the safety floor for a gender. Only "male" gets the
// higher floor; female, other, and prefer-not-to-say all use the default.
func minCaloriesFor(gender string) int {
	if gender == "male" {
		return minCaloriesMale
	}
	return minCaloriesDefault
}

// calculateGoalBasedTarget derives a daily calorie target from an explicit
// goal weight and date. The target is BMR minus the deficit implied by the
// timeline — the activity multiplier is intentionally not applied here; the
// goal path targets BMR, not TDEE.
//
// Short-circuits to target=bmr / deficit=0 when the goal is absent, not a
// loss (goal >= current), or the date gives no days to work with. today is
// an explicit argument so the function stays pure.
func calculateGoalBasedTarget(bmr int, currentWeightKG float64, goalWeightKG *float64, targetDate *time.Time, gender string, today time.Time) goalBasedTargetResult {
	noGoal := goalBasedTargetResult{
		BaseCalories:   bmr,
		TargetCalories: bmr,
	}
	if goalWeightKG == nil || targetDate == nil {
		return noGoal
	}
	if *goalWeightKG >= currentWeightKG {
		return noGoal
	}

	daysRemaining := targetDate.Sub(today).Hours() / 24
	if daysRemaining <= 0 {
		return noGoal
	}

	weightToLose := currentWeightKG - *goalWeightKG
	weeklyLoss := weightToLose / (daysRemaining / 7)
	deficit := int(math.Round(weightToLose * kcalPerKG / daysRemaining))
	target := bmr - deficit

	result := goalBasedTargetResult{
		BaseCalories:     bmr,
		TargetCalories:   target,
		DailyDeficit:     deficit,
		WeeklyWeightLoss: weeklyLoss,
		IsAggressive:     math.Abs(weeklyLoss) > 1,
	}

	if floor := minCaloriesFor(gender); target < floor {
		result.TargetCalories = floor
		result.IsTooLow = true
	}
	return result
}
