package handlers

import (
	"errors"
	"net/http"

	"codestake/internal/domain"
	"codestake/internal/logger"
	"codestake/internal/service"
	"codestake/internal/store"

	"github.com/gin-gonic/gin"
)

type githubAuthRequest struct {
	Code string `json:"code"`
}

// GithubAuth exchanges an OAuth code (mocked) for a GitHub identity and
// upserts the user by github id: a second auth with the same external id
// returns the same user, never a duplicate.
func (h *Handler) GithubAuth(c *gin.Context) {
	var req githubAuthRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "GitHub code is required"})
		return
	}

	ctx := c.Request.Context()

	ghUser, err := service.ExchangeCode(ctx, req.Code)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to authenticate with GitHub"})
		return
	}

	user, err := h.Store.GetUserByGithubID(ctx, ghUser.ID)
	if errors.Is(err, store.ErrNotFound) {
		token := "mock_token"
		user = &domain.User{
			Username:       ghUser.Login,
			GithubID:       &ghUser.ID,
			GithubUsername: &ghUser.Login,
			AccessToken:    &token,
			AvatarURL:      &ghUser.AvatarURL,
		}
		if err := h.Store.CreateUser(ctx, user); err != nil {
			logger.Error("auth: create user", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to authenticate with GitHub"})
			return
		}
	} else if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to authenticate with GitHub"})
		return
	}

	token, err := service.GenerateJWT(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to authenticate with GitHub"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  user,
	})
}
