package handler

import (
	"net/http"

	httpPlatform "github.com/andreypavlenko/jobber/internal/platform/http"
	"github.com/andreypavlenko/jobber/modules/interviews/model"
	"github.com/andreypavlenko/jobber/modules/interviews/service"
	"github.com/gin-gonic/gin"
)

// InterviewHandler exposes the public (token-gated) candidate actions and
// the authenticated recruiter operations over the interview state machine.
type InterviewHandler struct {
	engine *service.Engine
}

func NewInterviewHandler(engine *service.Engine) *InterviewHandler {
	return &InterviewHandler{engine: engine}
}

// RegisterPublicRoutes registers the unauthenticated, token-gated candidate
// links sent by email.
func (h *InterviewHandler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	interview := rg.Group("/interview")
	{
		interview.GET("/accept/:id/:token", h.Accept)
		interview.GET("/reject/:id/:token", h.Reject)
		interview.POST("/:id/slot", h.SelectSlot)
	}
}

// RegisterRoutes registers recruiter-authenticated operations.
func (h *InterviewHandler) RegisterRoutes(rg *gin.RouterGroup, authMiddleware gin.HandlerFunc) {
	interview := rg.Group("/interview", authMiddleware)
	{
		interview.GET("/:id", h.Get)
		interview.GET("/available-slots/:id", h.AvailableSlots)
		interview.POST("/:id/confirm", h.Confirm)
		interview.POST("/:id/cancel", h.Cancel)
		interview.PATCH("/:id/attendance", h.MarkAttendance)
	}
}

// Accept godoc
// @Summary Candidate accept landing link, as sent in the invitation email
// @Tags interview
// @Produce json
// @Param id path string true "Interview ID"
// @Param token path string true "Accept token"
// @Success 200 {object} model.InterviewDTO
// @Router /interview/accept/{id}/{token} [get]
func (h *InterviewHandler) Accept(c *gin.Context) {
	interview, err := h.engine.HandleAccept(c.Request.Context(), c.Param("id"), c.Param("token"))
	if err != nil {
		respondEngineError(c, err)
		return
	}
	httpPlatform.RespondWithData(c, http.StatusOK, interview.ToDTO())
}

// Reject godoc
// @Summary Candidate reject landing link, as sent in the invitation email
// @Tags interview
// @Produce json
// @Param id path string true "Interview ID"
// @Param token path string true "Reject token"
// @Success 200 {object} model.InterviewDTO
// @Router /interview/reject/{id}/{token} [get]
func (h *InterviewHandler) Reject(c *gin.Context) {
	interview, err := h.engine.HandleReject(c.Request.Context(), c.Param("id"), c.Param("token"))
	if err != nil {
		respondEngineError(c, err)
		return
	}
	httpPlatform.RespondWithData(c, http.StatusOK, interview.ToDTO())
}

type selectSlotRequest struct {
	Start string `json:"start" binding:"required"`
	End   string `json:"end" binding:"required"`
}

// SelectSlot godoc
// @Summary Candidate selects an interview slot
// @Tags interview
// @Accept json
// @Produce json
// @Param id path string true "Interview ID"
// @Param request body selectSlotRequest true "Slot window, RFC3339"
// @Success 200 {object} model.InterviewDTO
// @Router /interview/{id}/slot [post]
func (h *InterviewHandler) SelectSlot(c *gin.Context) {
	var req selectSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpPlatform.RespondWithError(c, http.StatusBadRequest, "VALIDATION_ERROR", "start and end are required")
		return
	}

	slot, err := parseSlot(req.Start, req.End)
	if err != nil {
		httpPlatform.RespondWithError(c, http.StatusBadRequest, "VALIDATION_ERROR", "start/end must be RFC3339")
		return
	}

	interview, err := h.engine.SelectSlot(c.Request.Context(), c.Param("id"), slot)
	if err != nil {
		respondEngineError(c, err)
		return
	}
	httpPlatform.RespondWithData(c, http.StatusOK, interview.ToDTO())
}

// Get godoc
// @Summary Get an interview
// @Tags interview
// @Security BearerAuth
// @Produce json
// @Param id path string true "Interview ID"
// @Success 200 {object} model.InterviewDTO
// @Router /interview/{id} [get]
func (h *InterviewHandler) Get(c *gin.Context) {
	interview, err := h.engine.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondEngineError(c, err)
		return
	}
	httpPlatform.RespondWithData(c, http.StatusOK, interview.ToDTO())
}

// AvailableSlots godoc
// @Summary Recruiter's free calendar slots during business hours, for negotiation
// @Tags interview
// @Security BearerAuth
// @Produce json
// @Param id path string true "Interview ID"
// @Success 200 {array} model.Slot
// @Router /interview/available-slots/{id} [get]
func (h *InterviewHandler) AvailableSlots(c *gin.Context) {
	slots, err := h.engine.AvailableSlots(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondEngineError(c, err)
		return
	}
	httpPlatform.RespondWithData(c, http.StatusOK, slots)
}

// Confirm godoc
// @Summary Recruiter confirms a selected slot
// @Tags interview
// @Security BearerAuth
// @Produce json
// @Param id path string true "Interview ID"
// @Success 200 {object} model.InterviewDTO
// @Router /interview/{id}/confirm [post]
func (h *InterviewHandler) Confirm(c *gin.Context) {
	interview, err := h.engine.Confirm(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondEngineError(c, err)
		return
	}
	httpPlatform.RespondWithData(c, http.StatusOK, interview.ToDTO())
}

type cancelRequest struct {
	Reason string `json:"reason"`
}

// Cancel godoc
// @Summary Recruiter cancels an interview
// @Tags interview
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Interview ID"
// @Param request body cancelRequest false "Reason"
// @Success 200 {object} model.InterviewDTO
// @Router /interview/{id}/cancel [post]
func (h *InterviewHandler) Cancel(c *gin.Context) {
	var req cancelRequest
	_ = c.ShouldBindJSON(&req)

	interview, err := h.engine.Cancel(c.Request.Context(), c.Param("id"), req.Reason)
	if err != nil {
		respondEngineError(c, err)
		return
	}
	httpPlatform.RespondWithData(c, http.StatusOK, interview.ToDTO())
}

type attendanceRequest struct {
	Status model.AttendanceStatus `json:"status" binding:"required"`
}

// MarkAttendance godoc
// @Summary Recruiter marks post-interview attendance
// @Tags interview
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Interview ID"
// @Param request body attendanceRequest true "completed or no_show"
// @Success 200 {object} model.InterviewDTO
// @Router /interview/{id}/attendance [patch]
func (h *InterviewHandler) MarkAttendance(c *gin.Context) {
	var req attendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpPlatform.RespondWithError(c, http.StatusBadRequest, "VALIDATION_ERROR", "status must be completed or no_show")
		return
	}
	if req.Status != model.AttendanceCompleted && req.Status != model.AttendanceNoShow {
		httpPlatform.RespondWithError(c, http.StatusBadRequest, "VALIDATION_ERROR", "status must be completed or no_show")
		return
	}

	interview, err := h.engine.MarkAttendance(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		respondEngineError(c, err)
		return
	}
	httpPlatform.RespondWithData(c, http.StatusOK, interview.ToDTO())
}

func respondEngineError(c *gin.Context, err error) {
	switch err {
	case service.ErrInvalidToken:
		httpPlatform.RespondWithError(c, http.StatusUnauthorized, "INVALID_TOKEN", "Link invalid or expired")
	case service.ErrInvalidState:
		httpPlatform.RespondWithError(c, http.StatusConflict, "INVALID_STATE", "Interview is not in the required state")
	case service.ErrSlotOutOfHours:
		httpPlatform.RespondWithError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Slot is outside business hours")
	case model.ErrNotFound:
		httpPlatform.RespondWithError(c, http.StatusNotFound, "NOT_FOUND", "Interview not found")
	default:
		httpPlatform.RespondWithError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong")
	}
}
