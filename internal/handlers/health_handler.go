package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthHandler answers the liveness probe.
type HealthHandler struct {
	emailProvider string
}

func NewHealthHandler(emailProvider string) *HealthHandler {
	return &HealthHandler{emailProvider: emailProvider}
}

func (h *HealthHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/", h.Status)
}

// Status reports a static payload; reaching it at all is the signal.
func (h *HealthHandler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":        "ok",
		"service":       "candidate-intake-backend",
		"emailProvider": h.emailProvider,
		"timestamp":     time.Now().UTC().Format(time.RFC3339),
	})
}
