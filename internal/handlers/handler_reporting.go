package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	portssvc "github.com/SscSPs/bookkeeping_app/internal/core/ports/services"
	"github.com/SscSPs/bookkeeping_app/internal/dto"
)

// reportingHandler handles HTTP requests for reports.
type reportingHandler struct {
	reportingService portssvc.ReportingService
}

// RegisterReportingRoutes registers routes related to reports.
func RegisterReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingService) {
	h := &reportingHandler{reportingService: reportingService}

	reports := rg.Group("/reports")
	{
		reports.GET("/trial-balance", h.trialBalance)
		reports.GET("/cash-flow", h.cashFlow)
	}
}

// trialBalance godoc
// @Summary Trial balance
// @Description Totals debits and credits per account over non-deleted entries
// @Tags reports
// @Produce json
// @Param from query string false "First day (YYYY-MM-DD)"
// @Param to query string false "Last day (YYYY-MM-DD)"
// @Success 200 {object} domain.TrialBalance
// @Failure 400 {object} dto.ErrorResponse "Invalid query parameters"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Failed to build trial balance"
// @Security BearerAuth
// @Router /reports/trial-balance [get]
func (h *reportingHandler) trialBalance(c *gin.Context) {
	logger, userID, ok := requestScope(c)
	if !ok {
		return
	}
	var params dto.TrialBalanceParams
	if !bindQuery(c, logger, &params) {
		return
	}
	from, err := dto.ParseOptionalDate(params.From)
	if err != nil {
		respondError(c, logger, err, "Invalid from date")
		return
	}
	to, err := dto.ParseOptionalDate(params.To)
	if err != nil {
		respondError(c, logger, err, "Invalid to date")
		return
	}

	report, err := h.reportingService.TrialBalance(c.Request.Context(), userID, from, to)
	if err != nil {
		respondError(c, logger, err, "Failed to build trial balance")
		return
	}
	c.JSON(http.StatusOK, report)
}

// cashFlow godoc
// @Summary Monthly cash flow
// @Description Money into and out of cash and bank accounts per month. Defaults to the current year.
// @Tags reports
// @Produce json
// @Param year query int false "Calendar year"
// @Success 200 {object} domain.CashFlow
// @Failure 400 {object} dto.ErrorResponse "Invalid query parameters"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Failed to build cash flow"
// @Security BearerAuth
// @Router /reports/cash-flow [get]
func (h *reportingHandler) cashFlow(c *gin.Context) {
	logger, userID, ok := requestScope(c)
	if !ok {
		return
	}
	var params dto.CashFlowParams
	if !bindQuery(c, logger, &params) {
		return
	}
	if params.Year == 0 {
		params.Year = time.Now().UTC().Year()
	}

	report, err := h.reportingService.MonthlyCashFlow(c.Request.Context(), userID, params.Year)
	if err != nil {
		respondError(c, logger, err, "Failed to build cash flow")
		return
	}
	c.JSON(http.StatusOK, report)
}
