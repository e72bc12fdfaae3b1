package handlers

import (
	"errors"
	"net/http"

	"codestake/internal/store"

	"github.com/gin-gonic/gin"
)

// Me returns the authenticated user.
func (h *Handler) Me(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "user not found"})
		return
	}

	user, err := h.Store.GetUser(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "user not found"})
		return
	}
	c.JSON(http.StatusOK, user)
}

type connectWalletRequest struct {
	WalletAddress string `json:"walletAddress" binding:"required"`
}

// ConnectWallet stores the wallet address on the authenticated user via
// a partial update.
func (h *Handler) ConnectWallet(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "user not found"})
		return
	}

	var req connectWalletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logValidation("wallet", err)
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid wallet data"})
		return
	}

	user, err := h.Store.UpdateUser(c.Request.Context(), userID, store.UserUpdate{
		WalletAddress: &req.WalletAddress,
	})
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "user not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update wallet"})
		return
	}
	c.JSON(http.StatusOK, user)
}
