package main

import (
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

// DateOnly wraps time.Time to serialize as "YYYY-MM-DD" in JSON.
type DateOnly struct{ time.Time }

func (d DateOnly) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Time.Format("2006-01-02") + `"`), nil
}

func (d *DateOnly) UnmarshalJSON(b []byte) error {
	t, err := time.Parse(`"2006-01-02"`, string(b))
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

// ScanDate implements pgtype.DateScanner so pgx can scan PostgreSQL date
// columns (OID 1082) into DateOnly. NULL values zero the time and return nil
// so that *DateOnly pointer fields can be set to nil by pgx's NULL handling.
func (d *DateOnly) ScanDate(v pgtype.Date) error {
	if !v.Valid {
		d.Time = time.Time{}
		return nil
	}
	d.Time = v.Time
	return nil
}

/* ─── Domain structs ─────────────────────────────────────────────────── */

// user maps to the users table. AuthToken and Password are hidden from JSON
// responses. Role is "user" or "coach".
type user struct {
	ID        int        `json:"id" db:"id"`
	Username  string     `json:"username" db:"username"`
	Email     string     `json:"email" db:"email"`
	Role      string     `json:"role" db:"role"`
	AuthToken string     `json:"-" db:"auth_token"`
	Password  string     `json:"-" db:"password"`
	CreatedAt *time.Time `json:"created_at" db:"created_at"`
}

// userProfile maps to user_profiles. One row per user with physiology, the
// configured activity level, and the weight goal. All physiology fields are
// nullable; zero-knowledge rows still work — the BMR priority cascade treats
// absence as a first-class case.
type userProfile struct {
	UserID             int       `json:"user_id"               db:"user_id"`
	Gender             *string   `json:"gender"                db:"gender"`
	DateOfBirth        *DateOnly `json:"date_of_birth"         db:"date_of_birth"`
	HeightCM           *float64  `json:"height_cm"             db:"height_cm"`
	WeightKG           *float64  `json:"weight_kg"             db:"weight_kg"`
	ActivityLevel      *string   `json:"activity_level"        db:"activity_level"`
	GoalWeightKG       *float64  `json:"goal_weight_kg"        db:"goal_weight_kg"`
	GoalDate           *DateOnly `json:"goal_date"             db:"goal_date"`
	WeeklyWeightGoalKG float64   `json:"weekly_weight_goal_kg" db:"weekly_weight_goal_kg"`
}

// weightEntry maps to weight_log — one body-weight measurement per date.
type weightEntry struct {
	ID        int        `json:"id" db:"id"`
	UserID    int        `json:"user_id" db:"user_id"`
	Date      DateOnly   `json:"date" db:"date"`
	WeightKG  float64    `json:"weight_kg" db:"weight_kg"`
	CreatedAt *time.Time `json:"created_at" db:"created_at"`
}

// bodyScan maps to body_scans — a body-composition scan (e.g. InBody). The
// measured BMR and lean mass feed the top of the BMR priority cascade.
type bodyScan struct {
	ID             int        `json:"id" db:"id"`
	UserID         int        `json:"user_id" db:"user_id"`
	Date           DateOnly   `json:"date" db:"date"`
	MeasuredBMR    *int       `json:"measured_bmr" db:"measured_bmr"`
	LeanBodyMassKG *float64   `json:"lean_body_mass_kg" db:"lean_body_mass_kg"`
	BodyFatPercent *float64   `json:"body_fat_percent" db:"body_fat_percent"`
	CreatedAt      *time.Time `json:"created_at" db:"created_at"`
}

// foodLogRow maps to food_log_entries. The JSON-boundary sum type (logEntry
// in intake.go) is normalized into this shape before storage, so the table
// only ever holds the structured form.
type foodLogRow struct {
	ID        int        `json:"id" db:"id"`
	UserID    int        `json:"user_id" db:"user_id"`
	Date      DateOnly   `json:"date" db:"date"`
	MealID    string     `json:"meal_id" db:"meal_id"`
	Quantity  float64    `json:"quantity" db:"quantity"`
	Unit      string     `json:"unit" db:"unit"`
	CreatedAt *time.Time `json:"created_at" db:"created_at"`
}

// healthSampleRow maps to health_samples — one row per user per date, both
// metrics nullable (a watch that only counts steps still syncs).
type healthSampleRow struct {
	UserID          int      `json:"user_id" db:"user_id"`
	Date            DateOnly `json:"date" db:"date"`
	Steps           *int     `json:"steps" db:"steps"`
	ExerciseMinutes *int     `json:"exercise_minutes" db:"exercise_minutes"`
}

/* ─── Request / response shapes ──────────────────────────────────────── */

// patchProfileRequest is the body for PATCH /api/profile. All fields are
// pointers — only non-nil fields get written.
type patchProfileRequest struct {
	Gender             *string  `json:"gender"`
	DateOfBirth        *string  `json:"date_of_birth"` // YYYY-MM-DD string, stored as date
	HeightCM           *float64 `json:"height_cm"`
	WeightKG           *float64 `json:"weight_kg"`
	ActivityLevel      *string  `json:"activity_level"`
	GoalWeightKG       *float64 `json:"goal_weight_kg"`
	GoalDate           *string  `json:"goal_date"` // YYYY-MM-DD string, stored as date
	WeeklyWeightGoalKG *float64 `json:"weekly_weight_goal_kg"`
}

// createMealRequest is the body for POST /api/meals.
type createMealRequest struct {
	Name         string   `json:"name"`
	Calories     float64  `json:"calories"`
	ProteinG     float64  `json:"protein_g"`
	CarbsG       float64  `json:"carbs_g"`
	FatG         float64  `json:"fat_g"`
	FiberG       *float64 `json:"fiber_g"`
	SugarG       *float64 `json:"sugar_g"`
	ServingSizeG *float64 `json:"serving_size_g"`
}

// logMealsRequest is the body for POST /api/food-log/entries. Entries accept
// both the legacy bare-string shorthand and the structured form — logEntry's
// UnmarshalJSON normalizes them.
type logMealsRequest struct {
	Date    string     `json:"date"`
	Entries []logEntry `json:"entries"`
}

// dailySummary is the response for GET /api/food-log/daily: the day's rows
// plus aggregated totals from the intake engine.
type dailySummary struct {
	Date    string       `json:"date"`
	Totals  intakeTotals `json:"totals"`
	Entries []foodLogRow `json:"entries"`
}

// targetsResponse is the response for GET /api/profile/targets: the BMR
// estimate, the activity-based daily target, the goal-based target, and the
// profile fields still missing for a formula-based estimate.
type targetsResponse struct {
	BMR           bmrResult             `json:"bmr"`
	Daily         dailyTargetResult     `json:"daily"`
	Goal          goalBasedTargetResult `json:"goal"`
	MissingFields []string              `json:"missing_fields,omitempty"`
}

// clientSnapshot is one roster entry in the coach endpoints: the client plus
// their latest weight, today's intake totals, and current targets.
type clientSnapshot struct {
	User         user             `json:"user"`
	LatestWeight *weightEntry     `json:"latest_weight"`
	TodayIntake  intakeTotals     `json:"today_intake"`
	Targets      *targetsResponse `json:"targets,omitempty"`
}
