package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"prediction-engine/internal/auth"
	"prediction-engine/internal/engine"
	"prediction-engine/internal/models"
	"prediction-engine/internal/services"
)

type SelectionHandler struct {
	predictionService *services.PredictionService
}

func NewSelectionHandler(predictionService *services.PredictionService) *SelectionHandler {
	return &SelectionHandler{
		predictionService: predictionService,
	}
}

// criteriaFromQuery parses the pool filter from query parameters. Bound
// validation happens in the engine, not here.
func criteriaFromQuery(c *gin.Context) (engine.PoolCriteria, error) {
	criteria := engine.PoolCriteria{
		Sport:  c.Query("sport"),
		League: c.Query("league"),
		Search: c.Query("search"),
	}

	if raw := c.Query("min_confidence"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return criteria, err
		}
		criteria.MinConfidence = v
	}
	if raw := c.Query("max_confidence"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return criteria, err
		}
		criteria.MaxConfidence = &v
	}
	if raw := c.Query("from"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return criteria, err
		}
		criteria.From = &t
	}
	if raw := c.Query("to"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return criteria, err
		}
		criteria.To = &t
	}

	return criteria, nil
}

// GetSelections returns the filtered, value-scored pool, gated by the
// viewer's tier.
// GET /api/selections
func (h *SelectionHandler) GetSelections(c *gin.Context) {
	criteria, err := criteriaFromQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	scored, err := h.predictionService.ScorePool(c.Request.Context(), criteria)
	if err != nil {
		respondError(c, err)
		return
	}

	tier := auth.GetTier(c)
	views := make([]models.SelectionView, 0, len(scored))
	for _, s := range scored {
		views = append(views, engine.GateSelection(s, tier))
	}

	c.JSON(http.StatusOK, gin.H{
		"selections": views,
		"count":      len(views),
	})
}

// GetValueBets returns the ranked value bets.
// GET /api/selections/value
func (h *SelectionHandler) GetValueBets(c *gin.Context) {
	criteria, err := criteriaFromQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a non-negative integer"})
			return
		}
	}

	ranked, err := h.predictionService.TopValueBets(c.Request.Context(), criteria, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	tier := auth.GetTier(c)
	views := make([]models.SelectionView, 0, len(ranked))
	for _, s := range ranked {
		views = append(views, engine.GateSelection(s, tier))
	}

	c.JSON(http.StatusOK, gin.H{
		"value_bets": views,
		"count":      len(views),
	})
}
