package main

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
)

// upsertHealthSamples stores daily step/exercise samples, one row per date.
// POST /api/health-samples. Body: [{ "date", "steps"?, "exercise_minutes"? }].
// Re-posting a date overwrites it — sync clients send whole windows.
func (h *Handler) upsertHealthSamples(c *gin.Context) {
	userID := c.GetInt("user_id")

	var body []struct {
		Date            string `json:"date"`
		Steps           *int   `json:"steps"`
		ExerciseMinutes *int   `json:"exercise_minutes"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(body) == 0 {
		apiError(c, http.StatusBadRequest, "at least one sample is required")
		return
	}
	for _, s := range body {
		if _, err := time.Parse("2006-01-02", s.Date); err != nil {
			apiError(c, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
			return
		}
		if s.Steps != nil && *s.Steps < 0 {
			apiError(c, http.StatusBadRequest, "steps must not be negative")
			return
		}
		if s.ExerciseMinutes != nil && *s.ExerciseMinutes < 0 {
			apiError(c, http.StatusBadRequest, "exercise_minutes must not be negative")
			return
		}
	}

	for _, s := range body {
		_, err := h.db.Exec(c,
			`INSERT INTO health_samples (user_id, date, steps, exercise_minutes)
			 VALUES (@userID, @date, @steps, @exerciseMinutes)
			 ON CONFLICT (user_id, date) DO UPDATE
			   SET steps = EXCLUDED.steps, exercise_minutes = EXCLUDED.exercise_minutes`,
			pgx.NamedArgs{
				"userID": userID, "date": s.Date,
				"steps": s.Steps, "exerciseMinutes": s.ExerciseMinutes,
			})
		if err != nil {
			apiError(c, http.StatusInternalServerError, "failed to store samples")
			return
		}
	}

	c.JSON(http.StatusCreated, gin.H{"stored": len(body)})
}

// getActivityRecommendation analyzes the recent sample window against the
// user's configured activity level.
// GET /api/activity/recommendation?window_days=14.
func (h *Handler) getActivityRecommendation(c *gin.Context) {
	userID := c.GetInt("user_id")

	windowDays := defaultActivityWindowDays
	if s := c.Query("window_days"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 {
			apiError(c, http.StatusBadRequest, "window_days must be a positive integer")
			return
		}
		windowDays = n
	}

	rows, err := queryMany[healthSampleRow](h.db, c,
		`SELECT user_id, date, steps, exercise_minutes
		 FROM health_samples WHERE user_id = @userID
		 ORDER BY date DESC
		 LIMIT @limit`,
		pgx.NamedArgs{"userID": userID, "limit": windowDays * 2})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to fetch samples")
		return
	}

	currentLevel := ""
	p, err := queryOne[userProfile](h.db, c,
		"SELECT * FROM user_profiles WHERE user_id = @userID",
		pgx.NamedArgs{"userID": userID})
	if err == nil && p.ActivityLevel != nil {
		currentLevel = *p.ActivityLevel
	}

	samples := make([]healthSample, len(rows))
	for i, r := range rows {
		samples[i] = healthSample{
			Date:            r.Date.Time,
			Steps:           r.Steps,
			ExerciseMinutes: r.ExerciseMinutes,
		}
	}

	c.JSON(http.StatusOK, analyzeActivityLevel(samples, currentLevel, windowDays))
}
