package handler

import (
	"net/http"

	"github.com/andreypavlenko/jobber/internal/platform/auth"
	httpPlatform "github.com/andreypavlenko/jobber/internal/platform/http"
	"github.com/andreypavlenko/jobber/modules/tags/model"
	"github.com/andreypavlenko/jobber/modules/tags/service"
	"github.com/gin-gonic/gin"
)

type TagHandler struct {
	service *service.TagService
}

func NewTagHandler(service *service.TagService) *TagHandler {
	return &TagHandler{service: service}
}

func (h *TagHandler) RegisterRoutes(rg *gin.RouterGroup, authMiddleware gin.HandlerFunc) {
	tags := rg.Group("/tags", authMiddleware)
	{
		tags.POST("", h.Create)
		tags.GET("", h.List)
		tags.DELETE("/:id", h.Delete)
		tags.POST("/:id/relations", h.Attach)
		tags.DELETE("/:id/relations/:entityId", h.Detach)
	}
}

// Create godoc
// @Summary Create a tag
// @Tags tags
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body model.CreateTagRequest true "Tag details"
// @Success 201 {object} model.TagDTO
// @Router /tags [post]
func (h *TagHandler) Create(c *gin.Context) {
	userID, ok := auth.MustGetUserID(c)
	if !ok {
		return
	}
	var req model.CreateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpPlatform.RespondWithError(c, http.StatusBadRequest, string(model.CodeTagNameRequired), "Invalid request payload")
		return
	}

	tag, err := h.service.Create(c.Request.Context(), userID, &req)
	if err != nil {
		if err == model.ErrTagNameRequired {
			httpPlatform.RespondWithError(c, http.StatusBadRequest, string(model.CodeTagNameRequired), "Tag name is required")
			return
		}
		httpPlatform.RespondWithError(c, http.StatusInternalServerError, string(model.CodeInternalError), "Failed to create tag")
		return
	}
	httpPlatform.RespondWithData(c, http.StatusCreated, tag)
}

// List godoc
// @Summary List the caller's tags
// @Tags tags
// @Security BearerAuth
// @Produce json
// @Success 200 {array} model.TagDTO
// @Router /tags [get]
func (h *TagHandler) List(c *gin.Context) {
	userID, ok := auth.MustGetUserID(c)
	if !ok {
		return
	}
	tags, err := h.service.List(c.Request.Context(), userID)
	if err != nil {
		httpPlatform.RespondWithError(c, http.StatusInternalServerError, string(model.CodeInternalError), "Failed to list tags")
		return
	}
	httpPlatform.RespondWithData(c, http.StatusOK, tags)
}

// Delete godoc
// @Summary Delete a tag
// @Tags tags
// @Security BearerAuth
// @Produce json
// @Param id path string true "Tag ID"
// @Success 204
// @Router /tags/{id} [delete]
func (h *TagHandler) Delete(c *gin.Context) {
	userID, ok := auth.MustGetUserID(c)
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		if err == model.ErrTagNotFound {
			httpPlatform.RespondWithError(c, http.StatusNotFound, string(model.CodeTagNotFound), "Tag not found")
			return
		}
		httpPlatform.RespondWithError(c, http.StatusInternalServerError, string(model.CodeInternalError), "Failed to delete tag")
		return
	}
	c.Status(http.StatusNoContent)
}

type attachTagRequest struct {
	EntityType string `json:"entity_type" binding:"required"`
	EntityID   string `json:"entity_id" binding:"required"`
}

// Attach godoc
// @Summary Attach a tag to an entity (e.g. an application)
// @Tags tags
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Tag ID"
// @Param request body attachTagRequest true "Entity to tag"
// @Success 201
// @Router /tags/{id}/relations [post]
func (h *TagHandler) Attach(c *gin.Context) {
	var req attachTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpPlatform.RespondWithError(c, http.StatusBadRequest, string(model.CodeInternalError), "entity_type and entity_id are required")
		return
	}
	if err := h.service.Attach(c.Request.Context(), c.Param("id"), req.EntityType, req.EntityID); err != nil {
		httpPlatform.RespondWithError(c, http.StatusInternalServerError, string(model.CodeInternalError), "Failed to attach tag")
		return
	}
	c.Status(http.StatusCreated)
}

// Detach godoc
// @Summary Detach a tag from an entity
// @Tags tags
// @Security BearerAuth
// @Produce json
// @Param id path string true "Tag ID"
// @Param entityId path string true "Entity ID"
// @Success 204
// @Router /tags/{id}/relations/{entityId} [delete]
func (h *TagHandler) Detach(c *gin.Context) {
	if err := h.service.Detach(c.Request.Context(), c.Param("id"), c.Param("entityId")); err != nil {
		httpPlatform.RespondWithError(c, http.StatusInternalServerError, string(model.CodeInternalError), "Failed to detach tag")
		return
	}
	c.Status(http.StatusNoContent)
}
