// Package handler exposes the negotiation engine over HTTP.
package handler

import (
	"context"
	"net/http"
	"time"

	httpPlatform "github.com/andreypavlenko/jobber/internal/platform/http"
	"github.com/andreypavlenko/jobber/modules/negotiation/service"
	"github.com/gin-gonic/gin"
)

// InterviewJobLookup resolves the job id an interview belongs to, so the
// handler can start a session without importing modules/interviews.
type InterviewJobLookup interface {
	JobIDForInterview(ctx context.Context, interviewID string) (string, error)
}

type NegotiationHandler struct {
	engine     *service.Engine
	interviews InterviewJobLookup
	window     time.Duration
}

func NewNegotiationHandler(engine *service.Engine, interviews InterviewJobLookup, window time.Duration) *NegotiationHandler {
	return &NegotiationHandler{engine: engine, interviews: interviews, window: window}
}

// RegisterRoutes registers the recruiter/candidate-facing negotiation
// endpoint under the same authenticated /interview group as modules/interviews.
func (h *NegotiationHandler) RegisterRoutes(rg *gin.RouterGroup, authMiddleware gin.HandlerFunc) {
	interview := rg.Group("/interview", authMiddleware)
	interview.POST("/negotiate/:id", h.Negotiate)
}

type negotiateRequest struct {
	Message string `json:"message" binding:"required"`
}

// Negotiate godoc
// @Summary Advance a negotiation round with a candidate's availability message
// @Tags interview
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Interview ID"
// @Param request body negotiateRequest true "Candidate message"
// @Success 200 {object} model.RoundOutcome
// @Router /interview/negotiate/{id} [post]
func (h *NegotiationHandler) Negotiate(c *gin.Context) {
	var req negotiateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpPlatform.RespondWithError(c, http.StatusBadRequest, "VALIDATION_ERROR", "message is required")
		return
	}

	interviewID := c.Param("id")
	jobID, err := h.interviews.JobIDForInterview(c.Request.Context(), interviewID)
	if err != nil {
		httpPlatform.RespondWithError(c, http.StatusNotFound, "NOT_FOUND", "Interview not found")
		return
	}

	now := time.Now().UTC()
	outcome, err := h.engine.Advance(c.Request.Context(), interviewID, jobID, req.Message, now, now.Add(h.window))
	if err != nil {
		httpPlatform.RespondWithError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong")
		return
	}
	httpPlatform.RespondWithData(c, http.StatusOK, outcome)
}
