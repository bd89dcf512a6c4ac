package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// listMeals returns the authenticated user's meal library, newest first.
// GET /api/meals.
func (h *Handler) listMeals(c *gin.Context) {
	userID := c.GetInt("user_id")

	meals, err := queryMany[meal](h.db, c,
		`SELECT id, user_id, name, calories, protein_g, carbs_g, fat_g, fiber_g, sugar_g, serving_size_g
		 FROM meals WHERE user_id = @userID
		 ORDER BY name ASC`,
		pgx.NamedArgs{"userID": userID})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to fetch meals")
		return
	}
	// Ensure meals is an empty array (not null) in JSON
	if meals == nil {
		meals = []meal{}
	}

	c.JSON(http.StatusOK, meals)
}

// createMeal adds a meal to the user's library. Macros are per one reference
// serving; serving_size_g may be omitted (the aggregator assumes 100 g when a
// gram-based unit is logged against it).
// POST /api/meals.
func (h *Handler) createMeal(c *gin.Context) {
	userID := c.GetInt("user_id")

	var body createMealRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.Name == "" {
		apiError(c, http.StatusBadRequest, "name is required")
		return
	}
	if body.Calories < 0 {
		apiError(c, http.StatusBadRequest, "calories must not be negative")
		return
	}
	if body.ServingSizeG != nil && *body.ServingSizeG <= 0 {
		apiError(c, http.StatusBadRequest, "serving_size_g must be positive")
		return
	}

	m, err := queryOne[meal](h.db, c,
		`INSERT INTO meals (id, user_id, name, calories, protein_g, carbs_g, fat_g, fiber_g, sugar_g, serving_size_g)
		 VALUES (@id, @userID, @name, @calories, @proteinG, @carbsG, @fatG, @fiberG, @sugarG, @servingSizeG)
		 RETURNING id, user_id, name, calories, protein_g, carbs_g, fat_g, fiber_g, sugar_g, serving_size_g`,
		pgx.NamedArgs{
			"id": uuid.New().String(), "userID": userID, "name": body.Name,
			"calories": body.Calories, "proteinG": body.ProteinG,
			"carbsG": body.CarbsG, "fatG": body.FatG,
			"fiberG": body.FiberG, "sugarG": body.SugarG,
			"servingSizeG": body.ServingSizeG,
		})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to create meal")
		return
	}

	c.JSON(http.StatusCreated, m)
}

// updateMeal updates a meal in place. Uses COALESCE so omitted fields keep
// their current values.
// PUT /api/meals/:id.
func (h *Handler) updateMeal(c *gin.Context) {
	userID := c.GetInt("user_id")
	id := c.Param("id")

	var body struct {
		Name         *string  `json:"name"`
		Calories     *float64 `json:"calories"`
		ProteinG     *float64 `json:"protein_g"`
		CarbsG       *float64 `json:"carbs_g"`
		FatG         *float64 `json:"fat_g"`
		FiberG       *float64 `json:"fiber_g"`
		SugarG       *float64 `json:"sugar_g"`
		ServingSizeG *float64 `json:"serving_size_g"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.ServingSizeG != nil && *body.ServingSizeG <= 0 {
		apiError(c, http.StatusBadRequest, "serving_size_g must be positive")
		return
	}

	m, err := queryOne[meal](h.db, c,
		`UPDATE meals SET
			name           = COALESCE(@name, name),
			calories       = COALESCE(@calories, calories),
			protein_g      = COALESCE(@proteinG, protein_g),
			carbs_g        = COALESCE(@carbsG, carbs_g),
			fat_g          = COALESCE(@fatG, fat_g),
			fiber_g        = COALESCE(@fiberG, fiber_g),
			sugar_g        = COALESCE(@sugarG, sugar_g),
			serving_size_g = COALESCE(@servingSizeG, serving_size_g)
		 WHERE id = @id AND user_id = @userID
		 RETURNING id, user_id, name, calories, protein_g, carbs_g, fat_g, fiber_g, sugar_g, serving_size_g`,
		pgx.NamedArgs{
			"id": id, "userID": userID,
			"name": body.Name, "calories": body.Calories,
			"proteinG": body.ProteinG, "carbsG": body.CarbsG, "fatG": body.FatG,
			"fiberG": body.FiberG, "sugarG": body.SugarG,
			"servingSizeG": body.ServingSizeG,
		})
	if err != nil {
		apiError(c, http.StatusNotFound, "meal not found")
		return
	}

	c.JSON(http.StatusOK, m)
}

// deleteMeal removes a meal from the library. Log entries referencing it are
// kept — the aggregator tolerates unresolvable ids, so history stays intact.
// DELETE /api/meals/:id.
func (h *Handler) deleteMeal(c *gin.Context) {
	userID := c.GetInt("user_id")
	id := c.Param("id")

	result, err := h.db.Exec(c,
		"DELETE FROM meals WHERE id = @id AND user_id = @userID",
		pgx.NamedArgs{"id": id, "userID": userID})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to delete meal")
		return
	}
	if result.RowsAffected() == 0 {
		apiError(c, http.StatusNotFound, "meal not found")
		return
	}

	c.Status(http.StatusNoContent)
}
