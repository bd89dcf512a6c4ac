package main

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
)

// validGenders is the closed set accepted by PATCH /api/profile. The engine's
// formulas treat anything outside male/female as the neutral offset, but
// writes are still validated so the stored vocabulary stays closed.
var validGenders = map[string]bool{
	"male":              true,
	"female":            true,
	"other":             true,
	"prefer-not-to-say": true,
}

// ageOnDate computes whole years between dob and today, birthday-aware.
func ageOnDate(dob, today time.Time) int {
	age := today.Year() - dob.Year()
	if today.Before(dob.AddDate(age, 0, 0)) {
		age--
	}
	return age
}

// physiologyFor assembles the engine's input bag from the profile row and the
// most recent body scan. The scan supplies the high-priority fields
// (measured BMR, lean mass); the profile supplies the Mifflin-St Jeor
// fallback inputs.
func physiologyFor(p userProfile, scan *bodyScan, today time.Time) physiologicalProfile {
	phys := physiologicalProfile{
		WeightKG: p.WeightKG,
		HeightCM: p.HeightCM,
		Gender:   p.Gender,
	}
	if p.DateOfBirth != nil {
		age := ageOnDate(p.DateOfBirth.Time, today)
		// Guard against implausible ages (DOB in the future, or over 130 years ago)
		if age > 0 && age <= 130 {
			phys.AgeYears = &age
		}
	}
	if scan != nil {
		phys.InBodyBMR = scan.MeasuredBMR
		phys.LeanBodyMassKG = scan.LeanBodyMassKG
	}
	return phys
}

// targetsFor runs the full engine pipeline for one user: BMR cascade, the
// activity-based daily target, and the goal-based target. Shared by
// GET /api/profile/targets and the coach snapshot.
func (h *Handler) targetsFor(c *gin.Context, userID int, today time.Time) (targetsResponse, error) {
	p, err := queryOne[userProfile](h.db, c,
		"SELECT * FROM user_profiles WHERE user_id = @userID",
		pgx.NamedArgs{"userID": userID})
	if err != nil {
		return targetsResponse{}, err
	}

	phys := physiologyFor(p, h.latestBodyScan(c, userID), today)
	bmr := getBMRWithPriority(phys)
	_, missing := canCalculateBMR(phys)

	level := ""
	if p.ActivityLevel != nil {
		level = *p.ActivityLevel
	}
	daily := calculateDailyTarget(bmr.BMR, level, p.WeeklyWeightGoalKG)

	gender := ""
	if p.Gender != nil {
		gender = *p.Gender
	}
	weight := 0.0
	if p.WeightKG != nil {
		weight = *p.WeightKG
	}
	var goalDate *time.Time
	if p.GoalDate != nil {
		goalDate = &p.GoalDate.Time
	}
	goal := calculateGoalBasedTarget(bmr.BMR, weight, p.GoalWeightKG, goalDate, gender, today)

	return targetsResponse{
		BMR:           bmr,
		Daily:         daily,
		Goal:          goal,
		MissingFields: missing,
	}, nil
}

// getProfile returns the authenticated user's profile row.
// GET /api/profile.
func (h *Handler) getProfile(c *gin.Context) {
	userID := c.GetInt("user_id")

	p, err := queryOne[userProfile](h.db, c,
		"SELECT * FROM user_profiles WHERE user_id = @userID",
		pgx.NamedArgs{"userID": userID})
	if err != nil {
		apiError(c, http.StatusNotFound, "profile not found")
		return
	}

	c.JSON(http.StatusOK, p)
}

// getTargets returns the computed BMR, daily target, and goal-based target.
// GET /api/profile/targets. When no estimation path is satisfied the BMR
// comes back as {0, none} with missing_fields listing what the UI should
// prompt for.
func (h *Handler) getTargets(c *gin.Context) {
	userID := c.GetInt("user_id")

	resp, err := h.targetsFor(c, userID, time.Now())
	if err != nil {
		apiError(c, http.StatusNotFound, "profile not found")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// patchProfile updates only the provided profile fields.
// PATCH /api/profile. Uses pointer fields in the request body to distinguish
// "not provided" from zero — only non-nil fields get updated.
func (h *Handler) patchProfile(c *gin.Context) {
	userID := c.GetInt("user_id")

	var body patchProfileRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	// Validate closed vocabularies before saving — an unknown activity level
	// silently breaks target calculations with no visible error.
	if body.ActivityLevel != nil {
		if _, ok := activityMultipliers[*body.ActivityLevel]; !ok {
			apiError(c, http.StatusBadRequest, "activity_level must be one of: sedentary, light, moderate, active, very_active")
			return
		}
	}
	if body.Gender != nil && !validGenders[*body.Gender] {
		apiError(c, http.StatusBadRequest, "gender must be one of: male, female, other, prefer-not-to-say")
		return
	}
	if body.DateOfBirth != nil {
		if _, err := time.Parse("2006-01-02", *body.DateOfBirth); err != nil {
			apiError(c, http.StatusBadRequest, "invalid date_of_birth, expected YYYY-MM-DD")
			return
		}
	}
	if body.GoalDate != nil {
		if _, err := time.Parse("2006-01-02", *body.GoalDate); err != nil {
			apiError(c, http.StatusBadRequest, "invalid goal_date, expected YYYY-MM-DD")
			return
		}
	}
	if body.HeightCM != nil && *body.HeightCM <= 0 {
		apiError(c, http.StatusBadRequest, "height_cm must be positive")
		return
	}
	if body.WeightKG != nil && *body.WeightKG <= 0 {
		apiError(c, http.StatusBadRequest, "weight_kg must be positive")
		return
	}
	if body.GoalWeightKG != nil && *body.GoalWeightKG <= 0 {
		apiError(c, http.StatusBadRequest, "goal_weight_kg must be positive")
		return
	}

	// Build SET clause dynamically — only update fields the client actually sent
	setClauses := []string{}
	args := pgx.NamedArgs{"userID": userID}

	if body.Gender != nil {
		setClauses = append(setClauses, "gender = @gender")
		args["gender"] = *body.Gender
	}
	if body.DateOfBirth != nil {
		setClauses = append(setClauses, "date_of_birth = @dateOfBirth")
		args["dateOfBirth"] = *body.DateOfBirth
	}
	if body.HeightCM != nil {
		setClauses = append(setClauses, "height_cm = @heightCM")
		args["heightCM"] = *body.HeightCM
	}
	if body.WeightKG != nil {
		setClauses = append(setClauses, "weight_kg = @weightKG")
		args["weightKG"] = *body.WeightKG
	}
	if body.ActivityLevel != nil {
		setClauses = append(setClauses, "activity_level = @activityLevel")
		args["activityLevel"] = *body.ActivityLevel
	}
	if body.GoalWeightKG != nil {
		setClauses = append(setClauses, "goal_weight_kg = @goalWeightKG")
		args["goalWeightKG"] = *body.GoalWeightKG
	}
	if body.GoalDate != nil {
		setClauses = append(setClauses, "goal_date = @goalDate")
		args["goalDate"] = *body.GoalDate
	}
	if body.WeeklyWeightGoalKG != nil {
		setClauses = append(setClauses, "weekly_weight_goal_kg = @weeklyWeightGoalKG")
		args["weeklyWeightGoalKG"] = *body.WeeklyWeightGoalKG
	}

	if len(setClauses) == 0 {
		apiError(c, http.StatusBadRequest, "no fields to update")
		return
	}

	query := "UPDATE user_profiles SET " +
		strings.Join(setClauses, ", ") +
		" WHERE user_id = @userID RETURNING *"

	p, err := queryOne[userProfile](h.db, c, query, args)
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to update profile")
		return
	}

	c.JSON(http.StatusOK, p)
}
