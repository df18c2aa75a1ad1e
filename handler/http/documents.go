package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// CreateResume handles POST /api/v1/resumes. Saving always succeeds when the
// row is written; indexing is best-effort and reported via "searchable".
func (h *Handler) CreateResume(c *gin.Context) {
	var req struct {
		UserID int64  `json:"user_id" binding:"required"`
		Title  string `json:"title" binding:"required"`
		Text   string `json:"text" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	resume, err := h.resumes.Create(c.Request.Context(), req.UserID, req.Title, req.Text)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	searchable := h.documents.StoreResume(c.Request.Context(), resume.ID, resume.UserID, resume.Content,
		map[string]interface{}{"title": resume.Title})

	c.JSON(http.StatusCreated, gin.H{
		"resume":     resume,
		"searchable": searchable,
	})
}

// ListResumes handles GET /api/v1/resumes?user_id=
func (h *Handler) ListResumes(c *gin.Context) {
	userID, ok := userIDFromQuery(c)
	if !ok {
		return
	}

	resumes, err := h.resumes.ListByUser(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": resumes})
}

// DeleteResume handles DELETE /api/v1/resumes/:id?user_id=
func (h *Handler) DeleteResume(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid resume ID"})
		return
	}
	userID, ok := userIDFromQuery(c)
	if !ok {
		return
	}

	if err := h.resumes.Delete(c.Request.Context(), id, userID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Resume not found"})
		return
	}

	indexCleaned := h.documents.DeleteResume(c.Request.Context(), id, userID)

	c.JSON(http.StatusOK, gin.H{
		"deleted":       true,
		"index_cleaned": indexCleaned,
	})
}

// CreateJob handles POST /api/v1/jobs
func (h *Handler) CreateJob(c *gin.Context) {
	var req struct {
		UserID      int64  `json:"user_id" binding:"required"`
		Title       string `json:"title" binding:"required"`
		Company     string `json:"company"`
		Description string `json:"description" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	job, err := h.jobs.Create(c.Request.Context(), req.UserID, req.Title, req.Company, req.Description)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	searchable := h.documents.StoreJob(c.Request.Context(), job.ID, job.UserID, job.Description,
		map[string]interface{}{"title": job.Title, "company": job.Company})

	c.JSON(http.StatusCreated, gin.H{
		"job":        job,
		"searchable": searchable,
	})
}

// ListJobs handles GET /api/v1/jobs?user_id=
func (h *Handler) ListJobs(c *gin.Context) {
	userID, ok := userIDFromQuery(c)
	if !ok {
		return
	}

	jobs, err := h.jobs.ListByUser(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": jobs})
}

// DeleteJob handles DELETE /api/v1/jobs/:id?user_id=
func (h *Handler) DeleteJob(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid job ID"})
		return
	}
	userID, ok := userIDFromQuery(c)
	if !ok {
		return
	}

	if err := h.jobs.Delete(c.Request.Context(), id, userID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Job not found"})
		return
	}

	indexCleaned := h.documents.DeleteJob(c.Request.Context(), id, userID)

	c.JSON(http.StatusOK, gin.H{
		"deleted":       true,
		"index_cleaned": indexCleaned,
	})
}

// MatchResumes handles POST /api/v1/match-resumes. The job text comes either
// from a stored job (job_id) or directly from the request (job_text).
func (h *Handler) MatchResumes(c *gin.Context) {
	var req struct {
		UserID  int64  `json:"user_id" binding:"required"`
		JobID   int64  `json:"job_id"`
		JobText string `json:"job_text"`
		TopK    int    `json:"top_k"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	jobText := req.JobText
	if jobText == "" && req.JobID != 0 {
		job, err := h.jobs.GetByID(c.Request.Context(), req.JobID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if job == nil || job.UserID != req.UserID {
			c.JSON(http.StatusNotFound, gin.H{"error": "Job not found"})
			return
		}
		jobText = job.Description
	}
	if jobText == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Either job_id or job_text is required"})
		return
	}

	matches := h.documents.FindMatchingResumes(c.Request.Context(), jobText, req.UserID, req.TopK)

	c.JSON(http.StatusOK, gin.H{"matches": matches})
}
