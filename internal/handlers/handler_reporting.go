package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	portssvc "github.com/quarryworks/quarry_books_app/internal/core/ports/services"
	"github.com/quarryworks/quarry_books_app/internal/dto"
)

// reportingHandler serves the financial statements and the balance
// calculator. All endpoints are read-only.
type reportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
	ledgerService    portssvc.LedgerSvcFacade
}

// newReportingHandler creates a new reportingHandler.
func newReportingHandler(rs portssvc.ReportingSvcFacade, ls portssvc.LedgerSvcFacade) *reportingHandler {
	return &reportingHandler{reportingService: rs, ledgerService: ls}
}

// registerReportingRoutes registers routes for reports and balances.
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvcFacade, ledgerService portssvc.LedgerSvcFacade) {
	h := newReportingHandler(reportingService, ledgerService)

	rg.GET("/balances", h.allBalances)

	reports := rg.Group("/reports")
	{
		reports.GET("/trial-balance", h.trialBalance)
		reports.GET("/profit-loss", h.profitAndLoss)
		reports.GET("/balance-sheet", h.balanceSheet)
		reports.GET("/cash-flow", h.cashFlow)
		reports.GET("/ar-aging", h.arAging)
		reports.GET("/ap-summary", h.apSummary)
		reports.GET("/general-ledger/:accountID", h.generalLedger)
	}
}

// allBalances godoc
// @Summary Get balances for every active account
// @Tags reports
// @Produce json
// @Param quarryID path string true "Quarry ID"
// @Param asOf query string false "Balance date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} dto.BalancesResponse
// @Security BearerAuth
// @Router /quarries/{quarryID}/balances [get]
func (h *reportingHandler) allBalances(c *gin.Context) {
	asOf, err := parseDateQuery(c, "asOf", time.Now().UTC())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	balances, err := h.ledgerService.AllBalances(c.Request.Context(), c.Param("quarryID"), asOf)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.BalancesResponse{
		AsOf:     asOf.Format("2006-01-02"),
		Balances: balances,
	})
}

// trialBalance godoc
// @Summary Get the trial balance
// @Tags reports
// @Produce json
// @Param quarryID path string true "Quarry ID"
// @Param asOf query string false "Report date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} dto.TrialBalanceResponse
// @Security BearerAuth
// @Router /quarries/{quarryID}/reports/trial-balance [get]
func (h *reportingHandler) trialBalance(c *gin.Context) {
	asOf, err := parseDateQuery(c, "asOf", time.Now().UTC())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	report, err := h.reportingService.TrialBalance(c.Request.Context(), c.Param("quarryID"), asOf)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToTrialBalanceResponse(report))
}

// profitAndLoss godoc
// @Summary Get the profit and loss statement
// @Tags reports
// @Produce json
// @Param quarryID path string true "Quarry ID"
// @Param from query string true "Range start (YYYY-MM-DD)"
// @Param to query string true "Range end (YYYY-MM-DD)"
// @Param comparative query bool false "Include prior-year comparative figures"
// @Success 200 {object} dto.ProfitAndLossResponse
// @Security BearerAuth
// @Router /quarries/{quarryID}/reports/profit-loss [get]
func (h *reportingHandler) profitAndLoss(c *gin.Context) {
	from, err := requireDateQuery(c, "from")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	to, err := requireDateQuery(c, "to")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	comparative := c.Query("comparative") == "true"

	report, err := h.reportingService.ProfitAndLoss(c.Request.Context(), c.Param("quarryID"), from, to, comparative)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToProfitAndLossResponse(report))
}

// balanceSheet godoc
// @Summary Get the balance sheet
// @Tags reports
// @Produce json
// @Param quarryID path string true "Quarry ID"
// @Param asOf query string false "Report date (YYYY-MM-DD), defaults to today"
// @Param comparative query bool false "Include prior-year comparative figures"
// @Success 200 {object} dto.BalanceSheetResponse
// @Security BearerAuth
// @Router /quarries/{quarryID}/reports/balance-sheet [get]
func (h *reportingHandler) balanceSheet(c *gin.Context) {
	asOf, err := parseDateQuery(c, "asOf", time.Now().UTC())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	comparative := c.Query("comparative") == "true"

	report, err := h.reportingService.BalanceSheet(c.Request.Context(), c.Param("quarryID"), asOf, comparative)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToBalanceSheetResponse(report))
}

// cashFlow godoc
// @Summary Get the cash flow statement
// @Tags reports
// @Produce json
// @Param quarryID path string true "Quarry ID"
// @Param from query string true "Range start (YYYY-MM-DD)"
// @Param to query string true "Range end (YYYY-MM-DD)"
// @Success 200 {object} dto.CashFlowResponse
// @Security BearerAuth
// @Router /quarries/{quarryID}/reports/cash-flow [get]
func (h *reportingHandler) cashFlow(c *gin.Context) {
	from, err := requireDateQuery(c, "from")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	to, err := requireDateQuery(c, "to")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	report, err := h.reportingService.CashFlow(c.Request.Context(), c.Param("quarryID"), from, to)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToCashFlowResponse(report))
}

// arAging godoc
// @Summary Get the receivables aging report
// @Tags reports
// @Produce json
// @Param quarryID path string true "Quarry ID"
// @Param asOf query string false "Report date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} dto.ARAgingResponse
// @Security BearerAuth
// @Router /quarries/{quarryID}/reports/ar-aging [get]
func (h *reportingHandler) arAging(c *gin.Context) {
	asOf, err := parseDateQuery(c, "asOf", time.Now().UTC())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	report, err := h.reportingService.ARAging(c.Request.Context(), c.Param("quarryID"), asOf)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToARAgingResponse(report))
}

// apSummary godoc
// @Summary Get the payables summary for the month containing asOf
// @Tags reports
// @Produce json
// @Param quarryID path string true "Quarry ID"
// @Param asOf query string false "Report date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} dto.APSummaryResponse
// @Security BearerAuth
// @Router /quarries/{quarryID}/reports/ap-summary [get]
func (h *reportingHandler) apSummary(c *gin.Context) {
	asOf, err := parseDateQuery(c, "asOf", time.Now().UTC())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	report, err := h.reportingService.APSummary(c.Request.Context(), c.Param("quarryID"), asOf)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToAPSummaryResponse(report))
}

// generalLedger godoc
// @Summary Get the general ledger for one account
// @Tags reports
// @Produce json
// @Param quarryID path string true "Quarry ID"
// @Param accountID path string true "Account ID"
// @Param from query string true "Range start (YYYY-MM-DD)"
// @Param to query string true "Range end (YYYY-MM-DD)"
// @Success 200 {object} dto.GeneralLedgerResponse
// @Failure 404 {object} map[string]string "Account not found"
// @Security BearerAuth
// @Router /quarries/{quarryID}/reports/general-ledger/{accountID} [get]
func (h *reportingHandler) generalLedger(c *gin.Context) {
	from, err := requireDateQuery(c, "from")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	to, err := requireDateQuery(c, "to")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	report, err := h.reportingService.GeneralLedger(c.Request.Context(), c.Param("quarryID"), c.Param("accountID"), from, to)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToGeneralLedgerResponse(report))
}
