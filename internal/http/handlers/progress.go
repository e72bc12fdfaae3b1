package handlers

import (
	"net/http"
	"strconv"
	"time"

	"codestake/internal/domain"
	"codestake/internal/ws"

	"github.com/gin-gonic/gin"
)

type recordProgressRequest struct {
	UserID         int64     `json:"userId" binding:"required"`
	ChallengeID    int64     `json:"challengeId" binding:"required"`
	Date           time.Time `json:"date" binding:"required"`
	CommitCount    int       `json:"commitCount" binding:"gte=0"`
	ProblemsSolved int       `json:"problemsSolved" binding:"gte=0"`
	XPEarned       int       `json:"xpEarned" binding:"gte=0"`
}

// RecordProgress validates and persists a daily activity record.
// Counters default to zero when absent.
func (h *Handler) RecordProgress(c *gin.Context) {
	var req recordProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logValidation("progress", err)
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid progress data"})
		return
	}

	p := &domain.Progress{
		UserID:         req.UserID,
		ChallengeID:    req.ChallengeID,
		Date:           req.Date,
		CommitCount:    req.CommitCount,
		ProblemsSolved: req.ProblemsSolved,
		XPEarned:       req.XPEarned,
	}

	if err := h.Store.RecordProgress(c.Request.Context(), p); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to record progress"})
		return
	}

	if h.Hub != nil {
		h.Hub.Broadcast(ws.Event{Type: ws.EventProgressRecorded, Data: p})
	}

	c.JSON(http.StatusOK, p)
}

// GetProgress returns every record matching (challengeId, userId) in
// insertion order; an empty array when none match.
func (h *Handler) GetProgress(c *gin.Context) {
	challengeID, err := strconv.ParseInt(c.Param("challengeId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid challenge id"})
		return
	}
	userID, err := strconv.ParseInt(c.Param("userId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid user id"})
		return
	}

	recs, err := h.Store.GetProgress(c.Request.Context(), challengeID, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to get progress"})
		return
	}
	c.JSON(http.StatusOK, recs)
}
