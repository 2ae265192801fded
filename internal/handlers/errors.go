package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"prediction-engine/internal/engine"
)

// respondError maps engine errors onto HTTP statuses. All engine errors are
// deterministic and input-driven, so nothing here is retried.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, engine.ErrInvalidCriteria),
		errors.Is(err, engine.ErrInvalidOdds),
		errors.Is(err, engine.ErrEmptyAccumulator):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, engine.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, engine.ErrPermissionDenied):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, engine.ErrInvariantViolation):
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
