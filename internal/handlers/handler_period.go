package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	portssvc "github.com/quarryworks/quarry_books_app/internal/core/ports/services"
	"github.com/quarryworks/quarry_books_app/internal/dto"
	"github.com/quarryworks/quarry_books_app/internal/middleware"
)

// periodHandler handles HTTP requests for accounting periods.
type periodHandler struct {
	periodService portssvc.PeriodSvcFacade
}

// newPeriodHandler creates a new periodHandler.
func newPeriodHandler(ps portssvc.PeriodSvcFacade) *periodHandler {
	return &periodHandler{periodService: ps}
}

// registerPeriodRoutes registers routes related to accounting periods.
func registerPeriodRoutes(rg *gin.RouterGroup, periodService portssvc.PeriodSvcFacade) {
	h := newPeriodHandler(periodService)

	periods := rg.Group("/periods")
	{
		periods.GET("", h.listPeriods)
		periods.POST("/provision", h.provisionYear)
		periods.GET("/:periodID", h.getPeriod)
		periods.POST("/:periodID/close", h.closePeriod)
		periods.POST("/:periodID/reopen", h.reopenPeriod)
	}
}

// listPeriods godoc
// @Summary List accounting periods
// @Tags periods
// @Produce json
// @Param quarryID path string true "Quarry ID"
// @Param fiscalYear query int false "Fiscal year filter"
// @Success 200 {array} dto.PeriodResponse
// @Security BearerAuth
// @Router /quarries/{quarryID}/periods [get]
func (h *periodHandler) listPeriods(c *gin.Context) {
	var fiscalYear *int
	if raw := c.Query("fiscalYear"); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid fiscalYear"})
			return
		}
		fiscalYear = &year
	}

	periods, err := h.periodService.ListPeriods(c.Request.Context(), c.Param("quarryID"), fiscalYear)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToPeriodResponses(periods))
}

// getPeriod godoc
// @Summary Get a period by ID
// @Tags periods
// @Produce json
// @Param quarryID path string true "Quarry ID"
// @Param periodID path string true "Period ID"
// @Success 200 {object} dto.PeriodResponse
// @Failure 404 {object} map[string]string "Period not found"
// @Security BearerAuth
// @Router /quarries/{quarryID}/periods/{periodID} [get]
func (h *periodHandler) getPeriod(c *gin.Context) {
	period, err := h.periodService.GetPeriodByID(c.Request.Context(), c.Param("quarryID"), c.Param("periodID"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToPeriodResponse(period))
}

// provisionYear godoc
// @Summary Provision a fiscal year
// @Description Seeds twelve monthly periods for the fiscal year
// @Tags periods
// @Accept json
// @Produce json
// @Param quarryID path string true "Quarry ID"
// @Param request body dto.ProvisionYearRequest true "Fiscal year"
// @Success 201 {array} dto.PeriodResponse
// @Failure 409 {object} map[string]string "Year already provisioned"
// @Security BearerAuth
// @Router /quarries/{quarryID}/periods/provision [post]
func (h *periodHandler) provisionYear(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.ProvisionYearRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for provisionYear", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	periods, err := h.periodService.ProvisionFiscalYear(c.Request.Context(), c.Param("quarryID"), req.FiscalYear, creatorUserID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToPeriodResponses(periods))
}

// closePeriod godoc
// @Summary Close a period
// @Description Locks the period against unposting
// @Tags periods
// @Accept json
// @Produce json
// @Param quarryID path string true "Quarry ID"
// @Param periodID path string true "Period ID"
// @Param request body dto.ClosePeriodRequest false "Closing notes"
// @Success 200 {object} dto.PeriodResponse
// @Failure 409 {object} map[string]string "Already closed"
// @Security BearerAuth
// @Router /quarries/{quarryID}/periods/{periodID}/close [post]
func (h *periodHandler) closePeriod(c *gin.Context) {
	var req dto.ClosePeriodRequest
	_ = c.ShouldBindJSON(&req)

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	period, err := h.periodService.ClosePeriod(c.Request.Context(), c.Param("quarryID"), c.Param("periodID"), actorID, req.Notes)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToPeriodResponse(period))
}

// reopenPeriod godoc
// @Summary Reopen a closed period
// @Tags periods
// @Produce json
// @Param quarryID path string true "Quarry ID"
// @Param periodID path string true "Period ID"
// @Success 200 {object} dto.PeriodResponse
// @Failure 409 {object} map[string]string "Not closed"
// @Security BearerAuth
// @Router /quarries/{quarryID}/periods/{periodID}/reopen [post]
func (h *periodHandler) reopenPeriod(c *gin.Context) {
	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	period, err := h.periodService.ReopenPeriod(c.Request.Context(), c.Param("quarryID"), c.Param("periodID"), actorID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToPeriodResponse(period))
}
