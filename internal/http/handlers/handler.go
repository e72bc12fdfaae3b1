package handlers

import (
	"codestake/internal/store"
	"codestake/internal/ws"

	"github.com/gin-gonic/gin"
)

// Handler carries the injected store and the event hub. It holds no
// state of its own; all records live behind the Store interface.
type Handler struct {
	Store store.Store
	Hub   *ws.Hub
}

func NewHandler(st store.Store, hub *ws.Hub) *Handler {
	return &Handler{Store: st, Hub: hub}
}

// getUserID extracts the authenticated user id set by the JWT middleware.
func getUserID(c *gin.Context) (int64, bool) {
	v, ok := c.Get("user_id")
	if !ok {
		return 0, false
	}
	switch id := v.(type) {
	case int64:
		return id, true
	case float64:
		return int64(id), true
	default:
		return 0, false
	}
}
