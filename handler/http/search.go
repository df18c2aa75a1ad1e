package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SemanticSearch handles POST /api/v1/search. Search is best-effort: a
// degraded backend surfaces as an empty result set, never a 500.
func (h *Handler) SemanticSearch(c *gin.Context) {
	var req struct {
		Query  string `json:"query" binding:"required"`
		Type   string `json:"type"`
		UserID int64  `json:"user_id" binding:"required"`
		TopK   int    `json:"top_k"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	searchType := req.Type
	if searchType == "" {
		searchType = "all"
	}

	results := h.documents.Search(c.Request.Context(), req.Query, searchType, req.UserID, req.TopK)

	c.JSON(http.StatusOK, gin.H{
		"query":   req.Query,
		"type":    searchType,
		"results": results,
	})
}

// EmbeddingStats handles GET /api/v1/embeddings/stats?user_id=
func (h *Handler) EmbeddingStats(c *gin.Context) {
	userID, ok := userIDFromQuery(c)
	if !ok {
		return
	}

	stats := h.documents.Stats(c.Request.Context(), userID)

	c.JSON(http.StatusOK, stats)
}
