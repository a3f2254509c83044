package rest

import (
	"github.com/gin-gonic/gin"

	"github.com/checkmint/checkmint/internal/api/middleware"
)

// SetupRoutes configures all REST API routes
func SetupRoutes(router *gin.Engine, handler Handler, authCfg middleware.AuthConfig) {
	// Health check endpoint (no auth, no version prefix)
	router.GET("/healthz", handler.HealthCheck)

	// Admin API v1 routes (all require an API key)
	v1 := router.Group("/api/v1", middleware.APIKeyAuth(authCfg))
	{
		v1.GET("/status", handler.GetStatus)
		v1.GET("/queue", handler.GetQueue)

		v1.POST("/sync/start", handler.StartSync)
		v1.POST("/sync/stop", handler.StopSync)
		v1.POST("/sync/restart", handler.RestartSync)
		v1.POST("/sync/trigger", handler.TriggerSync)
		v1.PUT("/sync/intervals", handler.UpdateIntervals)

		v1.POST("/nfts/:id/retry", handler.RetryMint)
		v1.POST("/events/:id/bulk-mint", handler.BulkMint)
		v1.GET("/events/:id/nfts", handler.ListEventNFTs)
	}
}
