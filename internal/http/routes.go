package http

import (
	"codestake/internal/config"
	"codestake/internal/http/handlers"
	"codestake/internal/http/middleware"
	"codestake/internal/store"
	"codestake/internal/ws"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires the API onto the engine. The same surface is
// exposed under /api/v1 and the legacy /api prefix.
func RegisterRoutes(r *gin.Engine, st store.Store, hub *ws.Hub, version string, cfg *config.Config) {
	h := handlers.NewHandler(st, hub)
	healthHandler := handlers.NewHealthHandler(st, version)

	// Health checks (no rate limiting)
	r.GET("/health", healthHandler.Health)
	r.GET("/healthz", healthHandler.Liveness)
	r.GET("/readyz", healthHandler.Readiness)

	v1 := r.Group("/api/v1")
	v1.Use(middleware.RateLimit(cfg.APIRateLimit, cfg.APIRateWindow))
	registerAPIRoutes(v1, h, cfg)

	// Legacy prefix kept for older frontend builds
	api := r.Group("/api")
	api.Use(middleware.RateLimit(cfg.APIRateLimit, cfg.APIRateWindow))
	registerAPIRoutes(api, h, cfg)

	// Live event feed for dashboards
	r.GET("/ws", h.WS)
}

func registerAPIRoutes(api *gin.RouterGroup, h *handlers.Handler, cfg *config.Config) {
	// Auth (tighter limit than the rest of the API)
	api.POST("/auth/github", middleware.RateLimit(cfg.AuthRateLimit, cfg.AuthRateWindow), h.GithubAuth)

	// Current user
	api.GET("/me", middleware.JWT(), h.Me)
	api.POST("/users/wallet", middleware.JWT(), h.ConnectWallet)

	// Challenges
	api.POST("/challenges", h.CreateChallenge)
	api.GET("/challenges", h.ListChallenges)
	api.GET("/challenges/:id", h.GetChallenge)
	api.GET("/users/:id/challenges", h.ListUserChallenges)
	api.GET("/users/:id/stats", h.GetUserStats)

	// Progress
	api.POST("/progress", h.RecordProgress)
	api.GET("/progress/:challengeId/:userId", h.GetProgress)
}
