package interviewer

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/Petrels/internal/dto"
	"github.com/lshigami/Petrels/internal/service"
	"github.com/rs/zerolog/log"
)

type DashboardController struct {
	dashboard service.DashboardService
}

func NewDashboardController(dashboard service.DashboardService) *DashboardController {
	return &DashboardController{dashboard: dashboard}
}

// ListCompletedInterviews godoc
// @Summary (Interviewer) List completed interviews
// @Description Returns summary rows for every archived interview, newest first.
// @Tags Interviewer - Dashboard
// @Produce json
// @Success 200 {array} dto.CompletedInterviewSummary
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /interviews [get]
func (c *DashboardController) ListCompletedInterviews(ctx *gin.Context) {
	summaries, err := c.dashboard.ListCompletedInterviews()
	if err != nil {
		log.Error().Err(err).Msg("ListCompletedInterviews: Service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to retrieve completed interviews", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusOK, summaries)
}

// GetInterviewDetails godoc
// @Summary (Interviewer) Get details of a completed interview
// @Description Returns the full archived interview including the question/answer/evaluation transcript.
// @Tags Interviewer - Dashboard
// @Produce json
// @Param session_id path string true "Interview session ID"
// @Success 200 {object} dto.CompletedInterviewDetail
// @Failure 404 {object} dto.ErrorResponse "Interview not found"
// @Router /interviews/{session_id} [get]
func (c *DashboardController) GetInterviewDetails(ctx *gin.Context) {
	sessionID := ctx.Param("session_id")
	detail, err := c.dashboard.GetInterviewDetails(sessionID)
	if err != nil {
		log.Warn().Err(err).Str("sessionID", sessionID).Msg("GetInterviewDetails: Interview not found or service error")
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, detail)
}

// GetDashboardMetrics godoc
// @Summary (Interviewer) Get dashboard metrics
// @Description Aggregates over archived interviews: totals, average score, hire counts.
// @Tags Interviewer - Dashboard
// @Produce json
// @Success 200 {object} dto.DashboardMetricsResponse
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /dashboard/metrics [get]
func (c *DashboardController) GetDashboardMetrics(ctx *gin.Context) {
	metrics, err := c.dashboard.Metrics()
	if err != nil {
		log.Error().Err(err).Msg("GetDashboardMetrics: Service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to compute dashboard metrics", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusOK, metrics)
}
