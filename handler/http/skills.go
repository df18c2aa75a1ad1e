package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"resumatch/src/core/skills"
	"resumatch/src/infrastructure/log"
)

// ExtractKeywords handles POST /api/v1/keywords
func (h *Handler) ExtractKeywords(c *gin.Context) {
	var req struct {
		Text        string `json:"text" binding:"required"`
		MaxKeywords int    `json:"max_keywords"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	maxKeywords := req.MaxKeywords
	if maxKeywords <= 0 {
		maxKeywords = skills.DefaultMaxKeywords
	}

	c.JSON(http.StatusOK, gin.H{
		"keywords":    h.extractor.ExtractN(req.Text, maxKeywords),
		"by_category": h.extractor.ExtractByCategory(req.Text),
	})
}

// RecommendedSkills handles POST /api/v1/recommended-skills. It searches the
// web for the query and aggregates skill evidence from the result snippets.
func (h *Handler) RecommendedSkills(c *gin.Context) {
	var req struct {
		Query      string `json:"query" binding:"required"`
		MaxResults int    `json:"max_results"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	maxResults := req.MaxResults
	if maxResults <= 0 {
		maxResults = 5
	}

	// Web search is best-effort: no key or a failed call yields an empty
	// bundle, not an error response
	results, err := h.webSearch.Search(c.Request.Context(), req.Query, maxResults)
	if err != nil {
		log.Error(err, "web search failed, returning empty skill bundle", "query", req.Query)
		c.JSON(http.StatusOK, gin.H{"recommended_skills": skills.Aggregate(nil)})
		return
	}

	webResults := make([]skills.WebResult, 0, len(results))
	for _, result := range results {
		webResults = append(webResults, skills.WebResult{
			Title:   result.Title,
			URL:     result.URL,
			Snippet: result.Snippet,
			Source:  result.Source,
		})
	}

	c.JSON(http.StatusOK, gin.H{"recommended_skills": skills.Aggregate(webResults)})
}
