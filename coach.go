package main

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
)

// listClients returns the users connected to the authenticated coach.
// GET /api/coach/clients.
func (h *Handler) listClients(c *gin.Context) {
	coachID := c.GetInt("user_id")

	clients, err := queryMany[user](h.db, c,
		`SELECT u.* FROM users u
		 JOIN coach_clients cc ON cc.client_id = u.id
		 WHERE cc.coach_id = @coachID
		 ORDER BY u.username ASC`,
		pgx.NamedArgs{"coachID": coachID})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to fetch clients")
		return
	}
	if clients == nil {
		clients = []user{}
	}

	c.JSON(http.StatusOK, clients)
}

// getClientSnapshot returns one connected client's latest weight, today's
// intake totals, and current targets. The join against coach_clients is the
// authorization check — a coach can only see users connected to them.
// GET /api/coach/clients/:id/snapshot.
func (h *Handler) getClientSnapshot(c *gin.Context) {
	coachID := c.GetInt("user_id")
	clientID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		apiError(c, http.StatusBadRequest, "invalid client id")
		return
	}

	u, err := queryOne[user](h.db, c,
		`SELECT u.* FROM users u
		 JOIN coach_clients cc ON cc.client_id = u.id
		 WHERE cc.coach_id = @coachID AND u.id = @clientID`,
		pgx.NamedArgs{"coachID": coachID, "clientID": clientID})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			apiError(c, http.StatusNotFound, "client not found")
		} else {
			apiError(c, http.StatusInternalServerError, "failed to fetch client")
		}
		return
	}

	snapshot := clientSnapshot{User: u}

	latest, err := queryOne[weightEntry](h.db, c,
		`SELECT * FROM weight_log WHERE user_id = @userID
		 ORDER BY date DESC LIMIT 1`,
		pgx.NamedArgs{"userID": clientID})
	if err == nil {
		snapshot.LatestWeight = &latest
	}

	today := time.Now()
	totals, _, err := h.dailyTotalsFor(c, clientID, today.Format("2006-01-02"))
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to fetch client intake")
		return
	}
	snapshot.TodayIntake = totals

	// Targets are best-effort — a client with no profile row still has a snapshot.
	if targets, err := h.targetsFor(c, clientID, today); err == nil {
		snapshot.Targets = &targets
	}

	c.JSON(http.StatusOK, snapshot)
}
