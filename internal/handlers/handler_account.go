package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	portssvc "github.com/quarryworks/quarry_books_app/internal/core/ports/services"
	"github.com/quarryworks/quarry_books_app/internal/dto"
	"github.com/quarryworks/quarry_books_app/internal/middleware"
)

// accountHandler handles HTTP requests for the chart of accounts.
type accountHandler struct {
	accountService portssvc.AccountSvcFacade
	ledgerService  portssvc.LedgerSvcFacade
}

// newAccountHandler creates a new accountHandler.
func newAccountHandler(as portssvc.AccountSvcFacade, ls portssvc.LedgerSvcFacade) *accountHandler {
	return &accountHandler{accountService: as, ledgerService: ls}
}

// RegisterAccountRoutes registers routes related to the chart of accounts.
func RegisterAccountRoutes(rg *gin.RouterGroup, accountService portssvc.AccountSvcFacade, ledgerService portssvc.LedgerSvcFacade) {
	h := newAccountHandler(accountService, ledgerService)

	accounts := rg.Group("/accounts")
	{
		accounts.GET("", h.listAccounts)
		accounts.POST("", h.createAccount)
		accounts.GET("/:accountID", h.getAccount)
		accounts.PUT("/:accountID", h.updateAccount)
		accounts.DELETE("/:accountID", h.deleteAccount)
		accounts.GET("/:accountID/balance", h.getAccountBalance)
	}
}

// listAccounts godoc
// @Summary List the chart of accounts
// @Description Retrieves the active chart of accounts for a quarry
// @Tags accounts
// @Produce json
// @Param quarryID path string true "Quarry ID"
// @Success 200 {array} dto.AccountResponse
// @Failure 500 {object} map[string]string "Failed to list accounts"
// @Security BearerAuth
// @Router /quarries/{quarryID}/accounts [get]
func (h *accountHandler) listAccounts(c *gin.Context) {
	quarryID := c.Param("quarryID")
	accounts, err := h.accountService.GetChartOfAccounts(c.Request.Context(), quarryID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponses(accounts))
}

// createAccount godoc
// @Summary Create a new ledger account
// @Description Adds a non-system account to the quarry's chart
// @Tags accounts
// @Accept json
// @Produce json
// @Param quarryID path string true "Quarry ID"
// @Param account body dto.CreateAccountRequest true "Account details"
// @Success 201 {object} dto.AccountResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 409 {object} map[string]string "Duplicate account code"
// @Security BearerAuth
// @Router /quarries/{quarryID}/accounts [post]
func (h *accountHandler) createAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	quarryID := c.Param("quarryID")

	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createAccount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	account, err := h.accountService.CreateAccount(c.Request.Context(), quarryID, req, creatorUserID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToAccountResponse(account))
}

// getAccount godoc
// @Summary Get an account by ID
// @Tags accounts
// @Produce json
// @Param quarryID path string true "Quarry ID"
// @Param accountID path string true "Account ID"
// @Success 200 {object} dto.AccountResponse
// @Failure 404 {object} map[string]string "Account not found"
// @Security BearerAuth
// @Router /quarries/{quarryID}/accounts/{accountID} [get]
func (h *accountHandler) getAccount(c *gin.Context) {
	account, err := h.accountService.GetAccountByID(c.Request.Context(), c.Param("quarryID"), c.Param("accountID"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// updateAccount godoc
// @Summary Update an account
// @Description Changes name, description or display order. System accounts allow name and description only.
// @Tags accounts
// @Accept json
// @Produce json
// @Param quarryID path string true "Quarry ID"
// @Param accountID path string true "Account ID"
// @Param account body dto.UpdateAccountRequest true "Fields to change"
// @Success 200 {object} dto.AccountResponse
// @Failure 403 {object} map[string]string "System account restriction"
// @Failure 404 {object} map[string]string "Account not found"
// @Security BearerAuth
// @Router /quarries/{quarryID}/accounts/{accountID} [put]
func (h *accountHandler) updateAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for updateAccount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	updaterUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	account, err := h.accountService.UpdateAccount(c.Request.Context(), c.Param("quarryID"), c.Param("accountID"), req, updaterUserID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// deleteAccount godoc
// @Summary Deactivate an account
// @Description Soft-deletes an account. System accounts and accounts with journal history are protected.
// @Tags accounts
// @Produce json
// @Param quarryID path string true "Quarry ID"
// @Param accountID path string true "Account ID"
// @Success 204 "Deactivated"
// @Failure 403 {object} map[string]string "System account"
// @Failure 409 {object} map[string]string "Account has journal lines"
// @Security BearerAuth
// @Router /quarries/{quarryID}/accounts/{accountID} [delete]
func (h *accountHandler) deleteAccount(c *gin.Context) {
	updaterUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.accountService.DeactivateAccount(c.Request.Context(), c.Param("quarryID"), c.Param("accountID"), updaterUserID); err != nil {
		respondWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// getAccountBalance godoc
// @Summary Get one account's balance
// @Description Computes the account's balance from posted lines as of a date (default today)
// @Tags accounts
// @Produce json
// @Param quarryID path string true "Quarry ID"
// @Param accountID path string true "Account ID"
// @Param asOf query string false "As-of date (YYYY-MM-DD)"
// @Success 200 {object} map[string]any
// @Failure 404 {object} map[string]string "Account not found"
// @Security BearerAuth
// @Router /quarries/{quarryID}/accounts/{accountID}/balance [get]
func (h *accountHandler) getAccountBalance(c *gin.Context) {
	asOf, err := parseDateQuery(c, "asOf", time.Now().UTC())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	balance, err := h.ledgerService.AccountBalance(c.Request.Context(), c.Param("quarryID"), c.Param("accountID"), asOf)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"accountID": c.Param("accountID"),
		"asOf":      asOf.Format("2006-01-02"),
		"balance":   balance,
	})
}
