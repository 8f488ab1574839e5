package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/veritaslab/veritas/internal/api/middleware"
	"github.com/veritaslab/veritas/internal/domain"
	"github.com/veritaslab/veritas/internal/service"
)

// AnalysisHandler handles the analyze and history endpoints.
type AnalysisHandler struct {
	analysisService *service.AnalysisService
}

// NewAnalysisHandler creates a new analysis handler.
// Parameters:
//   - analysisService: analysis service instance.
// Returns:
//   - *AnalysisHandler: initialized handler.
func NewAnalysisHandler(analysisService *service.AnalysisService) *AnalysisHandler {
	return &AnalysisHandler{analysisService: analysisService}
}

// AnalyzeRequest is the analyze endpoint payload.
type AnalyzeRequest struct {
	Text string `json:"text" binding:"required"`
}

// Analyze handles POST /api/v1/analyze.
func (h *AnalysisHandler) Analyze(c *gin.Context) {
	ownerID, ok := middleware.OwnerID(c)
	if !ok {
		respondError(c, domain.ErrUnauthorized)
		return
	}

	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "text is required"})
		return
	}

	result, err := h.analysisService.Analyze(c.Request.Context(), ownerID, req.Text)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// History handles GET /api/v1/analyses.
func (h *AnalysisHandler) History(c *gin.Context) {
	ownerID, ok := middleware.OwnerID(c)
	if !ok {
		respondError(c, domain.ErrUnauthorized)
		return
	}

	entries, err := h.analysisService.History(c.Request.Context(), ownerID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"analyses": entries,
		"total":    len(entries),
	})
}

// Get handles GET /api/v1/analyses/:id.
func (h *AnalysisHandler) Get(c *gin.Context) {
	ownerID, ok := middleware.OwnerID(c)
	if !ok {
		respondError(c, domain.ErrUnauthorized)
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	analysis, err := h.analysisService.Get(c.Request.Context(), ownerID, id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, analysis)
}

// Delete handles DELETE /api/v1/analyses/:id.
func (h *AnalysisHandler) Delete(c *gin.Context) {
	ownerID, ok := middleware.OwnerID(c)
	if !ok {
		respondError(c, domain.ErrUnauthorized)
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.analysisService.Delete(c.Request.Context(), ownerID, id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "analysis deleted"})
}

// parseID reads the :id route parameter. A non-numeric ID cannot name
// any record, so it reports the same not-found as an absent one.
func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, domain.ErrNotFound)
		return 0, false
	}
	return uint(id), true
}
