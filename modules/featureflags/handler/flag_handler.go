package handler

import (
	"net/http"

	httpPlatform "github.com/andreypavlenko/jobber/internal/platform/http"
	"github.com/andreypavlenko/jobber/modules/featureflags/model"
	"github.com/andreypavlenko/jobber/modules/featureflags/service"
	"github.com/gin-gonic/gin"
)

// FlagHandler exposes the feature-flag resolver for the admin dashboard.
type FlagHandler struct {
	resolver *service.Resolver
}

func NewFlagHandler(resolver *service.Resolver) *FlagHandler {
	return &FlagHandler{resolver: resolver}
}

func (h *FlagHandler) RegisterRoutes(rg *gin.RouterGroup, authMiddleware gin.HandlerFunc) {
	flags := rg.Group("/flags", authMiddleware)
	{
		flags.GET("", h.List)
		flags.PUT("/:name", h.Update)
	}
}

// List godoc
// @Summary List feature flags
// @Tags flags
// @Security BearerAuth
// @Produce json
// @Success 200 {array} model.FeatureFlagDTO
// @Router /flags [get]
func (h *FlagHandler) List(c *gin.Context) {
	flags, err := h.resolver.List(c.Request.Context())
	if err != nil {
		httpPlatform.RespondWithError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list flags")
		return
	}
	httpPlatform.RespondWithData(c, http.StatusOK, flags)
}

// Update godoc
// @Summary Toggle a feature flag
// @Tags flags
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param name path string true "Flag name"
// @Param request body model.UpdateFlagRequest true "Desired state"
// @Success 200
// @Router /flags/{name} [put]
func (h *FlagHandler) Update(c *gin.Context) {
	name := c.Param("name")

	var req model.UpdateFlagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpPlatform.RespondWithError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request payload")
		return
	}

	if err := h.resolver.Set(c.Request.Context(), model.Name(name), req.Enabled); err != nil {
		httpPlatform.RespondWithError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update flag")
		return
	}

	httpPlatform.RespondWithData(c, http.StatusOK, gin.H{"name": name, "enabled": req.Enabled})
}
