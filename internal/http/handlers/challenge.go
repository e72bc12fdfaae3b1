package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"codestake/internal/domain"
	"codestake/internal/logger"
	"codestake/internal/store"
	"codestake/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type createChallengeRequest struct {
	CreatorID        int64           `json:"creatorId" binding:"required"`
	Title            string          `json:"title" binding:"required"`
	Description      string          `json:"description" binding:"required"`
	Platform         domain.Platform `json:"platform" binding:"required,oneof=github leetcode"`
	StakingAmount    float64         `json:"stakingAmount" binding:"required,gte=0.001,lte=100"`
	DurationDays     int             `json:"durationDays" binding:"required,gte=1,lte=365"`
	StartDate        time.Time       `json:"startDate" binding:"required"`
	RewardMultiplier int             `json:"rewardMultiplier" binding:"omitempty,gte=1"`
	ChainID          int64           `json:"chainId" binding:"omitempty,gte=1"`
}

// logValidation records field-level validation detail; clients only get
// the generic message.
func logValidation(what string, err error) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		logger.Debug("invalid payload", "entity", what, "error", err)
		return
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field()+":"+fe.Tag())
	}
	logger.Debug("invalid payload", "entity", what, "fields", fields)
}

// CreateChallenge validates the insert payload and persists it. Id and
// isActive are server-assigned; client values for them are ignored.
func (h *Handler) CreateChallenge(c *gin.Context) {
	var req createChallengeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logValidation("challenge", err)
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid challenge data"})
		return
	}

	challenge := &domain.Challenge{
		CreatorID:        req.CreatorID,
		Title:            req.Title,
		Description:      req.Description,
		Platform:         req.Platform,
		StakingAmount:    req.StakingAmount,
		DurationDays:     req.DurationDays,
		StartDate:        req.StartDate,
		RewardMultiplier: req.RewardMultiplier,
		ChainID:          req.ChainID,
	}

	if err := h.Store.CreateChallenge(c.Request.Context(), challenge); err != nil {
		logger.Error("create challenge", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create challenge"})
		return
	}

	if h.Hub != nil {
		h.Hub.Broadcast(ws.Event{Type: ws.EventChallengeCreated, Data: challenge})
	}

	c.JSON(http.StatusOK, challenge)
}

// ListChallenges returns active challenges in insertion order.
func (h *Handler) ListChallenges(c *gin.Context) {
	challenges, err := h.Store.GetActiveChallenges(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to list challenges"})
		return
	}
	c.JSON(http.StatusOK, challenges)
}

// GetChallenge returns one challenge by id.
func (h *Handler) GetChallenge(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid challenge id"})
		return
	}

	challenge, err := h.Store.GetChallenge(c.Request.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Challenge not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to get challenge"})
		return
	}
	c.JSON(http.StatusOK, challenge)
}

// ListUserChallenges returns challenges created by the given user.
func (h *Handler) ListUserChallenges(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid user id"})
		return
	}

	challenges, err := h.Store.GetUserChallenges(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to list challenges"})
		return
	}
	c.JSON(http.StatusOK, challenges)
}
