package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	svc "roomify/services/booking"
	"roomify/utils"
)

// getLogger retrieves a Zap logger from the Gin context or creates a new one.
func getLogger(c *gin.Context) *zap.Logger {
	if l, exists := c.Get("logger"); exists {
		if logger, ok := l.(*zap.Logger); ok {
			return logger
		}
	}
	logger, _ := zap.NewProduction()
	return logger
}

// respondServiceError maps booking service errors onto HTTP responses.
func respondServiceError(c *gin.Context, logger *zap.Logger, err error) {
	switch e := err.(type) {
	case *svc.FormatError:
		c.JSON(http.StatusBadRequest, gin.H{"error": e.Message, "field": e.Field})
	case *svc.NotFoundError:
		c.JSON(http.StatusNotFound, gin.H{"error": e.Error()})
	case *svc.ConflictError:
		c.JSON(http.StatusConflict, gin.H{
			"error":   e.Error(),
			"segment": e.Segment,
		})
	case *svc.UnauthorizedError:
		c.JSON(http.StatusUnauthorized, gin.H{"error": e.Error()})
	default:
		logger.Error("unhandled service error", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Internal Server Error",
			"An unexpected error occurred. Please try again later.")
	}
}
