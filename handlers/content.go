package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	contentRepo "roomify/database/repository/content"
)

// ContentHandler serves the public site content (venue name, notices,
// contact details).
type ContentHandler struct {
	Content contentRepo.ContentRepository
}

// NewContentHandler creates a new ContentHandler.
func NewContentHandler(content contentRepo.ContentRepository) *ContentHandler {
	return &ContentHandler{Content: content}
}

// SiteContentHandler returns every site content entry as a key/value map.
func (h *ContentHandler) SiteContentHandler(c *gin.Context) {
	content, err := h.Content.GetAll(c.Request.Context())
	if err != nil {
		getLogger(c).Error("failed to fetch site content", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch site content"})
		return
	}
	c.JSON(http.StatusOK, content)
}
