package handler

import (
	"context"
	"net/http"

	httpPlatform "github.com/andreypavlenko/jobber/internal/platform/http"
	"github.com/andreypavlenko/jobber/modules/shortlisting/model"
	"github.com/andreypavlenko/jobber/modules/shortlisting/service"
	"github.com/gin-gonic/gin"
)

type rankedLister interface {
	ListByStatus(ctx context.Context, jobID, status string) ([]model.CandidateRef, error)
}

// ShortlistHandler exposes the ranked candidate view and manual triggers for
// the recruiter dashboard.
type ShortlistHandler struct {
	engine *service.Engine
	lister rankedLister
}

func NewShortlistHandler(engine *service.Engine, lister rankedLister) *ShortlistHandler {
	return &ShortlistHandler{engine: engine, lister: lister}
}

func (h *ShortlistHandler) RegisterRoutes(rg *gin.RouterGroup, authMiddleware gin.HandlerFunc) {
	dashboard := rg.Group("/dashboard", authMiddleware)
	{
		dashboard.GET("/candidates/:jobId", h.RankedCandidates)
	}

	// Shares the /jobs/:id prefix with modules/jobs' RegisterRoutes, so the
	// wildcard name must match (gin's tree rejects two different names at
	// the same path segment).
	jobs := rg.Group("/jobs", authMiddleware)
	{
		jobs.POST("/:id/shortlist/run", h.RunAutoShortlist)
		jobs.POST("/:id/shortlist/backfill", h.RunBackfill)
	}
}

// RankedCandidates godoc
// @Summary Ranked shortlist/buffer candidates for a job
// @Tags dashboard
// @Security BearerAuth
// @Produce json
// @Param jobId path string true "Job ID"
// @Param status query string false "shortlisted|buffer|pending"
// @Success 200
// @Router /dashboard/candidates/{jobId} [get]
func (h *ShortlistHandler) RankedCandidates(c *gin.Context) {
	jobID := c.Param("jobId")
	status := c.DefaultQuery("status", "shortlisted")

	refs, err := h.lister.ListByStatus(c.Request.Context(), jobID, status)
	if err != nil {
		httpPlatform.RespondWithError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load candidates")
		return
	}
	httpPlatform.RespondWithData(c, http.StatusOK, refs)
}

// RunAutoShortlist godoc
// @Summary Manually trigger auto_shortlist for a job
// @Tags jobs
// @Security BearerAuth
// @Produce json
// @Param id path string true "Job ID"
// @Success 200
// @Router /jobs/{id}/shortlist/run [post]
func (h *ShortlistHandler) RunAutoShortlist(c *gin.Context) {
	result, err := h.engine.AutoShortlist(c.Request.Context(), c.Param("id"))
	if err != nil {
		httpPlatform.RespondWithError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to run shortlisting")
		return
	}
	httpPlatform.RespondWithData(c, http.StatusOK, result)
}

// RunBackfill godoc
// @Summary Manually trigger backfill_buffer for a job
// @Tags jobs
// @Security BearerAuth
// @Produce json
// @Param id path string true "Job ID"
// @Success 200
// @Router /jobs/{id}/shortlist/backfill [post]
func (h *ShortlistHandler) RunBackfill(c *gin.Context) {
	filled, err := h.engine.BackfillBuffer(c.Request.Context(), c.Param("id"))
	if err != nil {
		httpPlatform.RespondWithError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to backfill buffer")
		return
	}
	httpPlatform.RespondWithData(c, http.StatusOK, gin.H{"filled": filled})
}
