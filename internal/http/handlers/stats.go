package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"codestake/internal/domain"
	"codestake/internal/store"

	"github.com/gin-gonic/gin"
)

// GetUserStats derives UserStats (XP, rank, streaks, earnings) from the
// user's challenges and progress history. Nothing is stored.
func (h *Handler) GetUserStats(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid user id"})
		return
	}

	ctx := c.Request.Context()

	if _, err := h.Store.GetUser(ctx, userID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to get stats"})
		return
	}

	challenges, err := h.Store.GetUserChallenges(ctx, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to get stats"})
		return
	}

	var recs []domain.Progress
	for _, ch := range challenges {
		part, err := h.Store.GetProgress(ctx, ch.ID, userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to get stats"})
			return
		}
		recs = append(recs, part...)
	}

	stats := domain.ComputeStats(userID, challenges, recs, time.Now())
	c.JSON(http.StatusOK, stats)
}
