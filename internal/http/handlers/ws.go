package handlers

import (
	"net/http"

	"codestake/internal/logger"
	"codestake/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Frontend is served from a different origin in production.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// WS upgrades the connection and subscribes it to the live event feed.
func (h *Handler) WS(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Warn("ws upgrade failed", "error", err)
		return
	}
	ws.Serve(h.Hub, conn)
}
