package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/quarryworks/quarry_books_app/internal/core/ports/services"
	"github.com/quarryworks/quarry_books_app/internal/dto"
	"github.com/quarryworks/quarry_books_app/internal/middleware"
)

type setupHandler struct {
	setupService portssvc.SetupSvcFacade
}

func newSetupHandler(ss portssvc.SetupSvcFacade) *setupHandler {
	return &setupHandler{setupService: ss}
}

// registerSetupRoutes registers the quarry provisioning route.
func registerSetupRoutes(rg *gin.RouterGroup, setupService portssvc.SetupSvcFacade) {
	h := newSetupHandler(setupService)
	rg.POST("/provision", h.provisionQuarry)
}

// provisionQuarry godoc
// @Summary Provision a quarry's accounting state
// @Description Seeds the standard chart of accounts, one fiscal year of periods, fee settings and account mappings
// @Tags setup
// @Accept json
// @Produce json
// @Param quarryID path string true "Quarry ID"
// @Param request body dto.ProvisionQuarryRequest true "Provisioning details"
// @Success 201 {object} dto.ProvisionQuarryResponse
// @Failure 409 {object} map[string]string "Quarry already provisioned"
// @Security BearerAuth
// @Router /quarries/{quarryID}/provision [post]
func (h *setupHandler) provisionQuarry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.ProvisionQuarryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for provisionQuarry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	resp, err := h.setupService.ProvisionQuarry(c.Request.Context(), c.Param("quarryID"), req, creatorUserID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}
