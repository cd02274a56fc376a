package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/quarryworks/quarry_books_app/internal/core/ports/services"
	"github.com/quarryworks/quarry_books_app/internal/dto"
	"github.com/quarryworks/quarry_books_app/internal/middleware"
)

// autogenHandler receives completed operational transactions from the
// sales/expenses/banking/prepayment modules and runs them through the
// auto-generation engine.
type autogenHandler struct {
	autogenService portssvc.AutoGenSvcFacade
}

// newAutoGenHandler creates a new autogenHandler.
func newAutoGenHandler(ags portssvc.AutoGenSvcFacade) *autogenHandler {
	return &autogenHandler{autogenService: ags}
}

// registerAutoGenRoutes registers routes for derived entry generation.
func registerAutoGenRoutes(rg *gin.RouterGroup, autogenService portssvc.AutoGenSvcFacade) {
	h := newAutoGenHandler(autogenService)

	autogen := rg.Group("/autogen")
	{
		autogen.POST("/sales", h.generateForSale)
		autogen.POST("/expenses", h.generateForExpense)
		autogen.POST("/bankings", h.generateForBanking)
		autogen.POST("/prepayments", h.generateForPrepayment)
		autogen.POST("/collections", h.generateForCollection)
		autogen.POST("/regenerate", h.regenerateAll)
	}
}

// generateForSale godoc
// @Summary Derive the journal entry for a sale
// @Description Idempotent: re-sending the same sale returns the existing entry
// @Tags autogen
// @Accept json
// @Produce json
// @Param quarryID path string true "Quarry ID"
// @Param sale body dto.SaleEvent true "Sale details"
// @Success 201 {object} dto.JournalEntryResponse
// @Success 204 "Not applicable"
// @Failure 400 {object} map[string]string "Invalid input or unmapped account"
// @Security BearerAuth
// @Router /quarries/{quarryID}/autogen/sales [post]
func (h *autogenHandler) generateForSale(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var event dto.SaleEvent
	if err := c.ShouldBindJSON(&event); err != nil {
		logger.Warn("Failed to bind JSON for generateForSale", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	entry, err := h.autogenService.GenerateForSale(c.Request.Context(), event.ToDomainSale(c.Param("quarryID")), actorID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	if entry == nil {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusCreated, dto.ToJournalEntryResponse(entry))
}

// generateForExpense godoc
// @Summary Derive the journal entry for an expense
// @Tags autogen
// @Accept json
// @Produce json
// @Param quarryID path string true "Quarry ID"
// @Param expense body dto.ExpenseEvent true "Expense details"
// @Success 201 {object} dto.JournalEntryResponse
// @Success 204 "Not applicable"
// @Security BearerAuth
// @Router /quarries/{quarryID}/autogen/expenses [post]
func (h *autogenHandler) generateForExpense(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var event dto.ExpenseEvent
	if err := c.ShouldBindJSON(&event); err != nil {
		logger.Warn("Failed to bind JSON for generateForExpense", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	entry, err := h.autogenService.GenerateForExpense(c.Request.Context(), event.ToDomainExpense(c.Param("quarryID")), actorID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	if entry == nil {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusCreated, dto.ToJournalEntryResponse(entry))
}

// generateForBanking godoc
// @Summary Derive the journal entry for a bank deposit
// @Tags autogen
// @Accept json
// @Produce json
// @Param quarryID path string true "Quarry ID"
// @Param deposit body dto.BankingEvent true "Deposit details"
// @Success 201 {object} dto.JournalEntryResponse
// @Success 204 "Not applicable"
// @Security BearerAuth
// @Router /quarries/{quarryID}/autogen/bankings [post]
func (h *autogenHandler) generateForBanking(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var event dto.BankingEvent
	if err := c.ShouldBindJSON(&event); err != nil {
		logger.Warn("Failed to bind JSON for generateForBanking", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	entry, err := h.autogenService.GenerateForBanking(c.Request.Context(), event.ToDomainBanking(c.Param("quarryID")), actorID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	if entry == nil {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusCreated, dto.ToJournalEntryResponse(entry))
}

// generateForPrepayment godoc
// @Summary Derive the journal entry for a customer prepayment
// @Tags autogen
// @Accept json
// @Produce json
// @Param quarryID path string true "Quarry ID"
// @Param prepayment body dto.PrepaymentEvent true "Prepayment details"
// @Success 201 {object} dto.JournalEntryResponse
// @Success 204 "Not applicable"
// @Security BearerAuth
// @Router /quarries/{quarryID}/autogen/prepayments [post]
func (h *autogenHandler) generateForPrepayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var event dto.PrepaymentEvent
	if err := c.ShouldBindJSON(&event); err != nil {
		logger.Warn("Failed to bind JSON for generateForPrepayment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	entry, err := h.autogenService.GenerateForPrepayment(c.Request.Context(), event.ToDomainPrepayment(c.Param("quarryID")), actorID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	if entry == nil {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusCreated, dto.ToJournalEntryResponse(entry))
}

// generateForCollection godoc
// @Summary Derive the late-payment entry for a sale
// @Description Applies only to sales paid after their sale date
// @Tags autogen
// @Accept json
// @Produce json
// @Param quarryID path string true "Quarry ID"
// @Param sale body dto.SaleEvent true "Sale details including payment date"
// @Success 201 {object} dto.JournalEntryResponse
// @Success 204 "Not applicable"
// @Security BearerAuth
// @Router /quarries/{quarryID}/autogen/collections [post]
func (h *autogenHandler) generateForCollection(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var event dto.SaleEvent
	if err := c.ShouldBindJSON(&event); err != nil {
		logger.Warn("Failed to bind JSON for generateForCollection", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	entry, err := h.autogenService.GenerateForCollection(c.Request.Context(), event.ToDomainSale(c.Param("quarryID")), actorID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	if entry == nil {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusCreated, dto.ToJournalEntryResponse(entry))
}

// regenerateAll godoc
// @Summary Regenerate derived entries for a date range
// @Description Re-derives entries for every source transaction in range, skipping already-generated ones
// @Tags autogen
// @Accept json
// @Produce json
// @Param quarryID path string true "Quarry ID"
// @Param request body dto.RegenerateRequest true "Date range"
// @Success 200 {object} dto.RegenerationSummaryResponse
// @Security BearerAuth
// @Router /quarries/{quarryID}/autogen/regenerate [post]
func (h *autogenHandler) regenerateAll(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.RegenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for regenerateAll", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	summary, err := h.autogenService.RegenerateAll(c.Request.Context(), c.Param("quarryID"), req.FromDate, req.ToDate, actorID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToRegenerationSummaryResponse(summary))
}
