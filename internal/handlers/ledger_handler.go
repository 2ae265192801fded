package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"prediction-engine/internal/auth"
	"prediction-engine/internal/services"
)

type LedgerHandler struct {
	ledgerService *services.LedgerService
}

func NewLedgerHandler(ledgerService *services.LedgerService) *LedgerHandler {
	return &LedgerHandler{
		ledgerService: ledgerService,
	}
}

// ToggleSave flips the bookmark flag for one prediction.
// POST /api/ledger/save/:predictionId
func (h *LedgerHandler) ToggleSave(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	saved, err := h.ledgerService.ToggleSave(c.Request.Context(), userID, c.Param("predictionId"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"saved": saved})
}

// ToggleStage flips the personal-accumulator flag for one prediction.
// POST /api/ledger/stage/:predictionId
func (h *LedgerHandler) ToggleStage(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	staged, err := h.ledgerService.ToggleStage(c.Request.Context(), userID, c.Param("predictionId"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"staged": staged})
}

// ListSaved returns the user's bookmarked predictions.
// GET /api/ledger/saved
func (h *LedgerHandler) ListSaved(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	entries, err := h.ledgerService.ListSaved(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"entries": entries,
		"count":   len(entries),
	})
}

// ListStaged returns the predictions staged into the user's personal
// accumulator.
// GET /api/ledger/staged
func (h *LedgerHandler) ListStaged(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	entries, err := h.ledgerService.ListStaged(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"entries": entries,
		"count":   len(entries),
	})
}
