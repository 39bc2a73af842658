package metrics

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Handler exposes the Metrics & Alerting collaborator's system_health()
// result over HTTP.
type Handler struct {
	rec        *Recorder
	thresholds Thresholds
}

func NewHandler(rec *Recorder, thresholds Thresholds) *Handler {
	return &Handler{rec: rec, thresholds: thresholds}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMiddleware gin.HandlerFunc) {
	rg.GET("/system/health", authMiddleware, h.SystemHealth)
}

// SystemHealth godoc
// @Summary Aggregate system health snapshot
// @Tags system
// @Security BearerAuth
// @Produce json
// @Success 200 {object} Health
// @Router /system/health [get]
func (h *Handler) SystemHealth(c *gin.Context) {
	c.JSON(http.StatusOK, h.rec.SystemHealth(h.thresholds))
}
