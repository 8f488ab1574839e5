package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/veritaslab/veritas/internal/domain"
	"github.com/veritaslab/veritas/internal/logger"
)

// respondError maps the domain error taxonomy onto HTTP statuses. The
// five kinds stay distinguishable to the caller; nothing is swallowed.
func respondError(c *gin.Context, err error) {
	var infErr *domain.InferenceError
	var perErr *domain.PersistenceError

	switch {
	case errors.Is(err, domain.ErrEmptyText):
		c.JSON(http.StatusBadRequest, gin.H{"error": "text cannot be empty"})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "analysis not found"})
	case errors.Is(err, domain.ErrEmailTaken):
		c.JSON(http.StatusBadRequest, gin.H{"error": "email already registered"})
	case errors.Is(err, domain.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
	case errors.Is(err, domain.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
	case errors.As(err, &infErr):
		logger.CtxError(c.Request.Context(), "Inference failure: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "analysis could not be completed"})
	case errors.As(err, &perErr):
		logger.CtxError(c.Request.Context(), "Persistence failure: %v", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "storage temporarily unavailable"})
	default:
		logger.CtxError(c.Request.Context(), "Unhandled error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
