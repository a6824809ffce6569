package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/simplefi_backend/internal/core/ports/services"
	"github.com/SscSPs/simplefi_backend/internal/dto"
	"github.com/SscSPs/simplefi_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// reportingHandler handles HTTP requests related to financial reports
type reportingHandler struct {
	reportingService portssvc.ReportingService
	clock            clockFunc
}

// newReportingHandler creates a new reportingHandler
func newReportingHandler(rs portssvc.ReportingService, clock clockFunc) *reportingHandler {
	return &reportingHandler{
		reportingService: rs,
		clock:            clock,
	}
}

// registerReportingRoutes registers routes related to financial reports
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingService, clock clockFunc) {
	h := newReportingHandler(reportingService, clock)

	reportingGroup := rg.Group("/reports")
	{
		reportingGroup.GET("/trial-balance", h.getTrialBalance)
	}
}

// getTrialBalance godoc
// @Summary Generate trial balance report
// @Description Generates a trial balance report as of a specific date
// @Tags reports
// @Produce json
// @Param asOf query string false "Report date (YYYY-MM-DD)" default(current date)
// @Success 200 {object} dto.TrialBalanceResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid date"
// @Failure 500 {object} dto.ErrorResponse "Failed to generate report"
// @Security BearerAuth
// @Router /reports/trial-balance [get]
func (h *reportingHandler) getTrialBalance(c *gin.Context) {
	asOf, err := asOfParam(c)
	if err != nil {
		respondError(c, err, "Invalid asOf date")
		return
	}
	date := h.clock().UTC()
	if asOf != nil {
		date = *asOf
	}

	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("as_of", date.Format(dto.DateLayout)))
	logger.Info("Generating trial balance")

	report, err := h.reportingService.TrialBalance(c.Request.Context(), date)
	if err != nil {
		respondError(c, err, "Failed to generate trial balance")
		return
	}

	if !report.Balanced() {
		logger.Warn("Trial balance does not balance",
			slog.String("total_debits", report.TotalDebits.String()),
			slog.String("total_credits", report.TotalCredits.String()))
	}
	c.JSON(http.StatusOK, dto.ToTrialBalanceResponse(report))
}
