package handler

import (
	"net/http"
	"strconv"
	"time"

	httpPlatform "github.com/andreypavlenko/jobber/internal/platform/http"
	"github.com/andreypavlenko/jobber/modules/automationlog/model"
	"github.com/andreypavlenko/jobber/modules/automationlog/service"
	"github.com/gin-gonic/gin"
)

// LogHandler exposes the activity log for the recruiter dashboard.
type LogHandler struct {
	sink *service.Sink
}

func NewLogHandler(sink *service.Sink) *LogHandler {
	return &LogHandler{sink: sink}
}

func (h *LogHandler) RegisterRoutes(rg *gin.RouterGroup, authMiddleware gin.HandlerFunc) {
	dashboard := rg.Group("/dashboard", authMiddleware)
	{
		dashboard.GET("/activity-log/:jobId", h.ActivityLog)
		dashboard.GET("/activity-log/:jobId/summary", h.Summary)
	}
}

// ActivityLog godoc
// @Summary List automation activity for a job
// @Tags dashboard
// @Security BearerAuth
// @Produce json
// @Param jobId path string true "Job ID"
// @Param action_type query string false "Filter by action type"
// @Param startDate query string false "RFC3339 start"
// @Param endDate query string false "RFC3339 end"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {array} model.AutomationLogDTO
// @Router /dashboard/activity-log/{jobId} [get]
func (h *LogHandler) ActivityLog(c *gin.Context) {
	filter := model.QueryFilter{
		JobID:      c.Param("jobId"),
		ActionType: model.ActionType(c.Query("action_type")),
		Limit:      atoiOrDefault(c.Query("limit"), 50),
		Offset:     atoiOrDefault(c.Query("offset"), 0),
	}

	if raw := c.Query("startDate"); raw != "" {
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			filter.StartTime = &t
		} else {
			httpPlatform.RespondWithError(c, http.StatusBadRequest, "VALIDATION_ERROR", "startDate must be RFC3339")
			return
		}
	}
	if raw := c.Query("endDate"); raw != "" {
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			filter.EndTime = &t
		} else {
			httpPlatform.RespondWithError(c, http.StatusBadRequest, "VALIDATION_ERROR", "endDate must be RFC3339")
			return
		}
	}

	logs, err := h.sink.Query(c.Request.Context(), filter)
	if err != nil {
		httpPlatform.RespondWithError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load activity log")
		return
	}
	httpPlatform.RespondWithData(c, http.StatusOK, logs)
}

// Summary godoc
// @Summary Aggregate automation activity counts for a job
// @Tags dashboard
// @Security BearerAuth
// @Produce json
// @Param jobId path string true "Job ID"
// @Success 200
// @Router /dashboard/activity-log/{jobId}/summary [get]
func (h *LogHandler) Summary(c *gin.Context) {
	jobID := c.Param("jobId")

	byAction, err := h.sink.CountByActionType(c.Request.Context(), jobID)
	if err != nil {
		httpPlatform.RespondWithError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load summary")
		return
	}
	bySource, err := h.sink.CountByTriggerSource(c.Request.Context(), jobID)
	if err != nil {
		httpPlatform.RespondWithError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load summary")
		return
	}

	httpPlatform.RespondWithData(c, http.StatusOK, gin.H{
		"by_action_type":    byAction,
		"by_trigger_source": bySource,
	})
}

func atoiOrDefault(raw string, def int) int {
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}
