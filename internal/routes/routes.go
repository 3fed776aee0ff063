package routes

import (
	"bloocareer_backend/internal/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers all HTTP routes. The intake endpoints live
// at the root, not under a versioned prefix. The frontend contract
// predates this service.
func RegisterRoutes(ginRouter *gin.Engine, appHandlers *handlers.AppHandlers, uploadsDir string) {
	root := ginRouter.Group("/")
	{
		appHandlers.HealthHandler.RegisterRoutes(root)
		appHandlers.CandidateHandler.RegisterRoutes(root)
	}

	// Stored attachments are only served in the referenced-files mode.
	if uploadsDir != "" {
		ginRouter.Static("/uploads", uploadsDir)
	}
}
