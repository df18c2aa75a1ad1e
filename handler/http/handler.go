package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"resumatch/src/core/semanticindex"
	"resumatch/src/core/skills"
	"resumatch/src/infrastructure/integrations/tavily"
	"resumatch/src/storage/postgres/jobctrl"
	"resumatch/src/storage/postgres/resumectrl"
)

type Handler struct {
	documents *semanticindex.Service
	resumes   *resumectrl.ResumeService
	jobs      *jobctrl.JobService
	extractor *skills.Extractor
	webSearch *tavily.Client
}

func NewHandler(documents *semanticindex.Service, resumes *resumectrl.ResumeService, jobs *jobctrl.JobService, extractor *skills.Extractor, webSearch *tavily.Client) *Handler {
	return &Handler{
		documents: documents,
		resumes:   resumes,
		jobs:      jobs,
		extractor: extractor,
		webSearch: webSearch,
	}
}

// RegisterRoutes registers all API routes
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	v1 := r.Group("/api/v1")

	// Resume routes
	v1.POST("/resumes", h.CreateResume)
	v1.GET("/resumes", h.ListResumes)
	v1.DELETE("/resumes/:id", h.DeleteResume)

	// Job routes
	v1.POST("/jobs", h.CreateJob)
	v1.GET("/jobs", h.ListJobs)
	v1.DELETE("/jobs/:id", h.DeleteJob)

	// Search routes
	v1.POST("/search", h.SemanticSearch)
	v1.POST("/match-resumes", h.MatchResumes)
	v1.GET("/embeddings/stats", h.EmbeddingStats)

	// Skill routes
	v1.POST("/keywords", h.ExtractKeywords)
	v1.POST("/recommended-skills", h.RecommendedSkills)

	r.GET("/health", h.CheckHealth)
}

// CheckHealth handles GET /health
func (h *Handler) CheckHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// userIDFromQuery parses the required user_id query parameter
func userIDFromQuery(c *gin.Context) (int64, bool) {
	userID, err := strconv.ParseInt(c.Query("user_id"), 10, 64)
	if err != nil || userID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user_id"})
		return 0, false
	}
	return userID, true
}
