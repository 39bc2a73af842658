package handler

import (
	"net/http"

	"github.com/andreypavlenko/jobber/internal/platform/auth"
	httpPlatform "github.com/andreypavlenko/jobber/internal/platform/http"
	"github.com/andreypavlenko/jobber/modules/reminders/model"
	"github.com/andreypavlenko/jobber/modules/reminders/service"
	"github.com/gin-gonic/gin"
)

type ReminderHandler struct {
	service *service.ReminderService
}

func NewReminderHandler(service *service.ReminderService) *ReminderHandler {
	return &ReminderHandler{service: service}
}

func (h *ReminderHandler) RegisterRoutes(rg *gin.RouterGroup, authMiddleware gin.HandlerFunc) {
	reminders := rg.Group("/reminders", authMiddleware)
	{
		reminders.POST("", h.Create)
		reminders.GET("", h.List)
		reminders.PATCH("/:id", h.Update)
	}
}

// Create godoc
// @Summary Create a reminder
// @Tags reminders
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body model.CreateReminderRequest true "Reminder details"
// @Success 201 {object} model.ReminderDTO
// @Router /reminders [post]
func (h *ReminderHandler) Create(c *gin.Context) {
	userID, ok := auth.MustGetUserID(c)
	if !ok {
		return
	}
	var req model.CreateReminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpPlatform.RespondWithError(c, http.StatusBadRequest, string(model.CodeInternalError), "Invalid request payload")
		return
	}

	reminder, err := h.service.Create(c.Request.Context(), userID, &req)
	if err != nil {
		httpPlatform.RespondWithError(c, http.StatusInternalServerError, string(model.CodeInternalError), "Failed to create reminder")
		return
	}
	httpPlatform.RespondWithData(c, http.StatusCreated, reminder)
}

// List godoc
// @Summary List the caller's reminders
// @Tags reminders
// @Security BearerAuth
// @Produce json
// @Success 200 {array} model.ReminderDTO
// @Router /reminders [get]
func (h *ReminderHandler) List(c *gin.Context) {
	userID, ok := auth.MustGetUserID(c)
	if !ok {
		return
	}
	reminders, err := h.service.List(c.Request.Context(), userID)
	if err != nil {
		httpPlatform.RespondWithError(c, http.StatusInternalServerError, string(model.CodeInternalError), "Failed to list reminders")
		return
	}
	httpPlatform.RespondWithData(c, http.StatusOK, reminders)
}

// Update godoc
// @Summary Mark a reminder done/undone
// @Tags reminders
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Reminder ID"
// @Param request body model.UpdateReminderRequest true "Desired is_done"
// @Success 200 {object} model.ReminderDTO
// @Router /reminders/{id} [patch]
func (h *ReminderHandler) Update(c *gin.Context) {
	userID, ok := auth.MustGetUserID(c)
	if !ok {
		return
	}
	var req model.UpdateReminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpPlatform.RespondWithError(c, http.StatusBadRequest, string(model.CodeInternalError), "Invalid request payload")
		return
	}

	reminder, err := h.service.Update(c.Request.Context(), userID, c.Param("id"), &req)
	if err != nil {
		if err == model.ErrReminderNotFound {
			httpPlatform.RespondWithError(c, http.StatusNotFound, string(model.CodeReminderNotFound), "Reminder not found")
			return
		}
		httpPlatform.RespondWithError(c, http.StatusInternalServerError, string(model.CodeInternalError), "Failed to update reminder")
		return
	}
	httpPlatform.RespondWithData(c, http.StatusOK, reminder)
}
