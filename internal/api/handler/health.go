package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	modelDimensions int
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(modelDimensions int) *HealthHandler {
	return &HealthHandler{modelDimensions: modelDimensions}
}

// Health returns the health status of the service. A response at all
// implies the model artifacts loaded, since startup aborts otherwise.
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":           "ok",
		"model_dimensions": h.modelDimensions,
	})
}
