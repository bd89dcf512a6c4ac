package main

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
)

// validUnits is the set of units accepted for structured log entries. The
// engine's multiplier fails open on unknown units for legacy data already in
// the log, but new writes are validated so typos don't silently become bare
// multipliers.
var validUnits = map[string]bool{
	unitServing: true,
	unitGrams:   true,
	unitOunces:  true,
	unitMillis:  true,
}

// mealCatalog loads the user's meal library keyed by id, ready for the
// intake aggregator.
func (h *Handler) mealCatalog(c *gin.Context, userID int) (map[string]meal, error) {
	meals, err := queryMany[meal](h.db, c,
		`SELECT id, user_id, name, calories, protein_g, carbs_g, fat_g, fiber_g, sugar_g, serving_size_g
		 FROM meals WHERE user_id = @userID`,
		pgx.NamedArgs{"userID": userID})
	if err != nil {
		return nil, err
	}
	catalog := make(map[string]meal, len(meals))
	for _, m := range meals {
		catalog[m.ID] = m
	}
	return catalog, nil
}

// dailyTotalsFor runs the intake aggregator over one user's entries for one
// date. Shared by the daily summary and the coach snapshot.
func (h *Handler) dailyTotalsFor(c *gin.Context, userID int, date string) (intakeTotals, []foodLogRow, error) {
	rows, err := queryMany[foodLogRow](h.db, c,
		`SELECT * FROM food_log_entries
		 WHERE user_id = @userID AND date = @date
		 ORDER BY created_at`,
		pgx.NamedArgs{"userID": userID, "date": date})
	if err != nil {
		return intakeTotals{}, nil, err
	}

	catalog, err := h.mealCatalog(c, userID)
	if err != nil {
		return intakeTotals{}, nil, err
	}

	entries := make([]logEntry, len(rows))
	for i, r := range rows {
		entries[i] = logEntry{MealID: r.MealID, Quantity: r.Quantity, Unit: r.Unit}
	}
	return aggregateIntake(entries, catalog), rows, nil
}

// getDailySummary returns the day's log entries and aggregated totals.
// GET /api/food-log/daily?date=YYYY-MM-DD (defaults to today).
func (h *Handler) getDailySummary(c *gin.Context) {
	userID := c.GetInt("user_id")
	date := c.DefaultQuery("date", time.Now().Format("2006-01-02"))

	// Validate date format before querying — an invalid value silently returns no rows.
	if _, err := time.Parse("2006-01-02", date); err != nil {
		apiError(c, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
		return
	}

	totals, rows, err := h.dailyTotalsFor(c, userID, date)
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to fetch daily log")
		return
	}
	// Ensure entries is an empty array (not null) in JSON
	if rows == nil {
		rows = []foodLogRow{}
	}

	c.JSON(http.StatusOK, dailySummary{
		Date:    date,
		Totals:  totals,
		Entries: rows,
	})
}

// logMeals appends entries to a day's food log. Each entry may be the legacy
// bare meal-id string (one serving) or {meal_id, quantity, unit} — both forms
// are normalized before they reach the database.
// POST /api/food-log/entries. Defaults date to today if omitted.
func (h *Handler) logMeals(c *gin.Context) {
	userID := c.GetInt("user_id")

	var body logMealsRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(body.Entries) == 0 {
		apiError(c, http.StatusBadRequest, "entries is required")
		return
	}
	if body.Date == "" {
		body.Date = time.Now().Format("2006-01-02")
	}
	if _, err := time.Parse("2006-01-02", body.Date); err != nil {
		apiError(c, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
		return
	}
	for _, e := range body.Entries {
		if e.MealID == "" {
			apiError(c, http.StatusBadRequest, "meal_id is required on every entry")
			return
		}
		if e.Quantity <= 0 {
			apiError(c, http.StatusBadRequest, "quantity must be positive")
			return
		}
		if !validUnits[e.Unit] {
			apiError(c, http.StatusBadRequest, "unit must be one of: serving, g, oz, ml")
			return
		}
	}

	created := make([]foodLogRow, 0, len(body.Entries))
	for _, e := range body.Entries {
		row, err := queryOne[foodLogRow](h.db, c,
			`INSERT INTO food_log_entries (user_id, date, meal_id, quantity, unit)
			 VALUES (@userID, @date, @mealID, @quantity, @unit)
			 RETURNING *`,
			pgx.NamedArgs{
				"userID": userID, "date": body.Date,
				"mealID": e.MealID, "quantity": e.Quantity, "unit": e.Unit,
			})
		if err != nil {
			apiError(c, http.StatusInternalServerError, "failed to log entry")
			return
		}
		created = append(created, row)
	}

	c.JSON(http.StatusCreated, created)
}

// deleteLogEntry removes a food log entry. Returns 204 on success.
// DELETE /api/food-log/entries/:id.
func (h *Handler) deleteLogEntry(c *gin.Context) {
	userID := c.GetInt("user_id")
	id := c.Param("id")

	result, err := h.db.Exec(c,
		"DELETE FROM food_log_entries WHERE id = @id AND user_id = @userID",
		pgx.NamedArgs{"id": id, "userID": userID})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to delete entry")
		return
	}
	if result.RowsAffected() == 0 {
		apiError(c, http.StatusNotFound, "entry not found")
		return
	}

	c.Status(http.StatusNoContent)
}
