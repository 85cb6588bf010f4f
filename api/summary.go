package api

import (
	"time"

	"fintrack/middleware"
	"fintrack/service"

	"github.com/gin-gonic/gin"
)

// SummaryHandler monthly and annual reports
type SummaryHandler struct {
	reports *service.ReportService
}

// NewSummaryHandler creates the handler
func NewSummaryHandler(reports *service.ReportService) *SummaryHandler {
	return &SummaryHandler{reports: reports}
}

// Monthly monthly summary
// @Summary Monthly summary
// @Description Income/expense totals, upcoming parcels and the top five expense categories
// @Tags summary
// @Produce json
// @Security BearerAuth
// @Param month query int true "month 1-12"
// @Param year query int true "year"
// @Success 200 {object} Response{data=service.MonthlyReport}
// @Failure 400 {object} ErrorResponse
// @Router /api/summary [get]
func (h *SummaryHandler) Monthly(c *gin.Context) {
	month, ok := queryInt(c, "month")
	if !ok {
		return
	}
	year, ok := queryInt(c, "year")
	if !ok {
		return
	}

	report, err := h.reports.MonthlySummary(c.Request.Context(), middleware.GetCurrentUserID(c), month, year)
	if err != nil {
		serviceError(c, err, "failed to build summary")
		return
	}
	Success(c, report)
}

// Annual twelve-month summary
// @Summary Annual summary
// @Tags summary
// @Produce json
// @Security BearerAuth
// @Param year query int false "year, defaults to the current one"
// @Success 200 {object} Response{data=service.AnnualSummary}
// @Failure 400 {object} ErrorResponse
// @Router /api/summary/annual [get]
func (h *SummaryHandler) Annual(c *gin.Context) {
	year, ok := queryInt(c, "year")
	if !ok {
		return
	}
	if year == 0 {
		year = time.Now().Year()
	}

	out, err := h.reports.AnnualSummary(c.Request.Context(), middleware.GetCurrentUserID(c), year)
	if err != nil {
		serviceError(c, err, "failed to build annual summary")
		return
	}
	Success(c, out)
}
