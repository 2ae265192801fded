package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"prediction-engine/internal/auth"
	"prediction-engine/internal/engine"
	"prediction-engine/internal/models"
	"prediction-engine/internal/services"
)

type AccumulatorHandler struct {
	predictionService *services.PredictionService
}

func NewAccumulatorHandler(predictionService *services.PredictionService) *AccumulatorHandler {
	return &AccumulatorHandler{
		predictionService: predictionService,
	}
}

// GetAccumulators returns the system-built accumulators for the current
// pool, gated by the viewer's tier.
// GET /api/accumulators
func (h *AccumulatorHandler) GetAccumulators(c *gin.Context) {
	criteria, err := criteriaFromQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	accs, err := h.predictionService.BuildAccumulators(c.Request.Context(), criteria)
	if err != nil {
		respondError(c, err)
		return
	}

	tier := auth.GetTier(c)
	views := make([]models.AccumulatorView, 0, len(accs))
	for _, acc := range accs {
		views = append(views, engine.GateAccumulator(acc, tier))
	}

	c.JSON(http.StatusOK, gin.H{
		"accumulators": views,
		"count":        len(views),
	})
}

// Combine prices a user-built custom accumulator; with save=true and an
// authenticated user it is also persisted.
// POST /api/accumulators/combine
func (h *AccumulatorHandler) Combine(c *gin.Context) {
	var req models.CombineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, _ := auth.GetUserID(c)

	acc, err := h.predictionService.CombineCustom(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, acc)
}

// ListMine returns the authenticated user's saved custom accumulators.
// GET /api/accumulators/mine
func (h *AccumulatorHandler) ListMine(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	accs, err := h.predictionService.ListUserAccumulators(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"accumulators": accs,
		"count":        len(accs),
	})
}
