package main

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
)

// getWeightLog returns weight entries for the authenticated user within [start, end].
// GET /api/weight-log?start=YYYY-MM-DD&end=YYYY-MM-DD. Both params required.
// Returns an empty array (not null) if no entries exist in the range.
func (h *Handler) getWeightLog(c *gin.Context) {
	userID := c.GetInt("user_id")
	start := c.Query("start")
	end := c.Query("end")

	if start == "" || end == "" {
		apiError(c, http.StatusBadRequest, "start and end query params are required")
		return
	}
	if _, err := time.Parse("2006-01-02", start); err != nil {
		apiError(c, http.StatusBadRequest, "invalid start, expected YYYY-MM-DD")
		return
	}
	if _, err := time.Parse("2006-01-02", end); err != nil {
		apiError(c, http.StatusBadRequest, "invalid end, expected YYYY-MM-DD")
		return
	}
	if start > end {
		apiError(c, http.StatusBadRequest, "start must not be after end")
		return
	}

	entries, err := queryMany[weightEntry](h.db, c,
		`SELECT * FROM weight_log
		 WHERE user_id = @userID AND date >= @start AND date <= @end
		 ORDER BY date ASC`,
		pgx.NamedArgs{"userID": userID, "start": start, "end": end})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to fetch weight log")
		return
	}
	if entries == nil {
		entries = []weightEntry{}
	}

	c.JSON(http.StatusOK, entries)
}

// upsertWeightEntry creates or updates the weight entry for the given date.
// POST /api/weight-log. Body: { "date": "YYYY-MM-DD", "weight_kg": 84.2 }.
// The UNIQUE(user_id, date) constraint means posting the same date updates in
// place. The profile's current weight is kept in sync so the target
// calculators always see the latest measurement.
func (h *Handler) upsertWeightEntry(c *gin.Context) {
	userID := c.GetInt("user_id")

	var body struct {
		Date     string  `json:"date"`
		WeightKG float64 `json:"weight_kg"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.Date == "" {
		apiError(c, http.StatusBadRequest, "date is required")
		return
	}
	if _, err := time.Parse("2006-01-02", body.Date); err != nil {
		apiError(c, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
		return
	}
	if body.WeightKG <= 0 || body.WeightKG > 999.9 {
		apiError(c, http.StatusBadRequest, "weight_kg must be between 0 and 999.9")
		return
	}

	entry, err := queryOne[weightEntry](h.db, c,
		`INSERT INTO weight_log (user_id, date, weight_kg)
		 VALUES (@userID, @date, @weightKG)
		 ON CONFLICT (user_id, date) DO UPDATE SET weight_kg = EXCLUDED.weight_kg
		 RETURNING *`,
		pgx.NamedArgs{"userID": userID, "date": body.Date, "weightKG": body.WeightKG})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to upsert weight entry")
		return
	}

	// Sync profile weight only when this entry is the newest measurement —
	// backfilling history must not clobber the current weight.
	_, err = h.db.Exec(c,
		`UPDATE user_profiles SET weight_kg = @weightKG
		 WHERE user_id = @userID
		   AND NOT EXISTS (
			SELECT 1 FROM weight_log
			WHERE user_id = @userID AND date > @date)`,
		pgx.NamedArgs{"userID": userID, "date": body.Date, "weightKG": body.WeightKG})
	if err != nil {
		// Non-fatal: the entry itself was saved.
		log.Printf("[upsertWeightEntry] profile weight sync failed for user %d: %v", userID, err)
	}

	c.JSON(http.StatusCreated, entry)
}

// deleteWeightEntry removes a weight log entry by ID.
// DELETE /api/weight-log/:id. Returns 204 on success, 404 if not found.
// Ownership is enforced by requiring both id and user_id to match.
func (h *Handler) deleteWeightEntry(c *gin.Context) {
	userID := c.GetInt("user_id")
	id := c.Param("id")

	result, err := h.db.Exec(c,
		"DELETE FROM weight_log WHERE id = @id AND user_id = @userID",
		pgx.NamedArgs{"id": id, "userID": userID})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to delete weight entry")
		return
	}
	if result.RowsAffected() == 0 {
		apiError(c, http.StatusNotFound, "weight entry not found")
		return
	}

	c.Status(http.StatusNoContent)
}

/* ─── Body-composition scans ─────────────────────────────────────────── */

// listBodyScans returns the user's scans, newest first.
// GET /api/body-scans.
func (h *Handler) listBodyScans(c *gin.Context) {
	userID := c.GetInt("user_id")

	scans, err := queryMany[bodyScan](h.db, c,
		`SELECT * FROM body_scans WHERE user_id = @userID ORDER BY date DESC`,
		pgx.NamedArgs{"userID": userID})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to fetch body scans")
		return
	}
	if scans == nil {
		scans = []bodyScan{}
	}

	c.JSON(http.StatusOK, scans)
}

// createBodyScan records a body-composition scan. At least one of
// measured_bmr and lean_body_mass_kg must be present — a scan carrying
// neither contributes nothing to the BMR cascade.
// POST /api/body-scans.
func (h *Handler) createBodyScan(c *gin.Context) {
	userID := c.GetInt("user_id")

	var body struct {
		Date           string   `json:"date"`
		MeasuredBMR    *int     `json:"measured_bmr"`
		LeanBodyMassKG *float64 `json:"lean_body_mass_kg"`
		BodyFatPercent *float64 `json:"body_fat_percent"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.Date == "" {
		body.Date = time.Now().Format("2006-01-02")
	}
	if _, err := time.Parse("2006-01-02", body.Date); err != nil {
		apiError(c, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
		return
	}
	if body.MeasuredBMR == nil && body.LeanBodyMassKG == nil {
		apiError(c, http.StatusBadRequest, "measured_bmr or lean_body_mass_kg is required")
		return
	}
	if body.MeasuredBMR != nil && *body.MeasuredBMR <= 0 {
		apiError(c, http.StatusBadRequest, "measured_bmr must be positive")
		return
	}
	if body.LeanBodyMassKG != nil && *body.LeanBodyMassKG <= 0 {
		apiError(c, http.StatusBadRequest, "lean_body_mass_kg must be positive")
		return
	}

	scan, err := queryOne[bodyScan](h.db, c,
		`INSERT INTO body_scans (user_id, date, measured_bmr, lean_body_mass_kg, body_fat_percent)
		 VALUES (@userID, @date, @measuredBMR, @leanBodyMassKG, @bodyFatPercent)
		 RETURNING *`,
		pgx.NamedArgs{
			"userID": userID, "date": body.Date,
			"measuredBMR": body.MeasuredBMR, "leanBodyMassKG": body.LeanBodyMassKG,
			"bodyFatPercent": body.BodyFatPercent,
		})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to create body scan")
		return
	}

	c.JSON(http.StatusCreated, scan)
}

// latestBodyScan returns the user's most recent scan, or nil when they have
// none. Used by the targets endpoint to feed the BMR cascade.
func (h *Handler) latestBodyScan(c *gin.Context, userID int) *bodyScan {
	scan, err := queryOne[bodyScan](h.db, c,
		`SELECT * FROM body_scans WHERE user_id = @userID ORDER BY date DESC LIMIT 1`,
		pgx.NamedArgs{"userID": userID})
	if err != nil {
		return nil
	}
	return &scan
}
