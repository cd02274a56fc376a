package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/quarryworks/quarry_books_app/internal/core/domain"
	portssvc "github.com/quarryworks/quarry_books_app/internal/core/ports/services"
	"github.com/quarryworks/quarry_books_app/internal/dto"
	"github.com/quarryworks/quarry_books_app/internal/middleware"
)

// journalHandler handles HTTP requests for journal entries.
type journalHandler struct {
	journalService portssvc.JournalSvcFacade
}

// newJournalHandler creates a new journalHandler.
func newJournalHandler(js portssvc.JournalSvcFacade) *journalHandler {
	return &journalHandler{journalService: js}
}

// registerJournalRoutes registers routes related to journal entries.
func registerJournalRoutes(rg *gin.RouterGroup, journalService portssvc.JournalSvcFacade) {
	h := newJournalHandler(journalService)

	entries := rg.Group("/entries")
	{
		entries.GET("", h.listEntries)
		entries.POST("", h.createEntry)
		entries.GET("/:entryID", h.getEntry)
		entries.PUT("/:entryID", h.updateEntry)
		entries.DELETE("/:entryID", h.deleteEntry)
		entries.POST("/:entryID/post", h.postEntry)
		entries.POST("/:entryID/unpost", h.unpostEntry)
	}
}

// listEntries godoc
// @Summary List journal entries
// @Description Retrieves entries for a quarry, newest first, with optional date and type filters
// @Tags journal
// @Produce json
// @Param quarryID path string true "Quarry ID"
// @Param from query string false "From date (YYYY-MM-DD)"
// @Param to query string false "To date (YYYY-MM-DD)"
// @Param type query string false "Entry type (MANUAL or AUTO)"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {array} dto.JournalEntryResponse
// @Security BearerAuth
// @Router /quarries/{quarryID}/entries [get]
func (h *journalHandler) listEntries(c *gin.Context) {
	params := dto.ListEntriesParams{}

	if raw := c.Query("from"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid from date, expected YYYY-MM-DD"})
			return
		}
		params.FromDate = &parsed
	}
	if raw := c.Query("to"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid to date, expected YYYY-MM-DD"})
			return
		}
		params.ToDate = &parsed
	}
	if raw := c.Query("type"); raw != "" {
		et := domain.EntryType(raw)
		if et != domain.Manual && et != domain.Auto {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid entry type, expected MANUAL or AUTO"})
			return
		}
		params.EntryType = &et
	}
	params.Limit, _ = strconv.Atoi(c.Query("limit"))
	params.Offset, _ = strconv.Atoi(c.Query("offset"))

	entries, err := h.journalService.ListEntries(c.Request.Context(), c.Param("quarryID"), params)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToJournalEntryResponses(entries))
}

// createEntry godoc
// @Summary Create a manual journal entry
// @Description Persists a new unposted manual entry. Debits must equal credits.
// @Tags journal
// @Accept json
// @Produce json
// @Param quarryID path string true "Quarry ID"
// @Param entry body dto.CreateJournalEntryRequest true "Entry details"
// @Success 201 {object} dto.JournalEntryResponse
// @Failure 400 {object} map[string]string "Invalid input or unbalanced lines"
// @Security BearerAuth
// @Router /quarries/{quarryID}/entries [post]
func (h *journalHandler) createEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateJournalEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	entry, err := h.journalService.CreateManualEntry(c.Request.Context(), c.Param("quarryID"), req, creatorUserID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToJournalEntryResponse(entry))
}

// getEntry godoc
// @Summary Get a journal entry with its lines
// @Tags journal
// @Produce json
// @Param quarryID path string true "Quarry ID"
// @Param entryID path string true "Entry ID"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 404 {object} map[string]string "Entry not found"
// @Security BearerAuth
// @Router /quarries/{quarryID}/entries/{entryID} [get]
func (h *journalHandler) getEntry(c *gin.Context) {
	entry, err := h.journalService.GetEntryByID(c.Request.Context(), c.Param("quarryID"), c.Param("entryID"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

// updateEntry godoc
// @Summary Update an unposted manual entry
// @Description Replaces the entry's details and lines wholesale. Posted and derived entries are rejected.
// @Tags journal
// @Accept json
// @Produce json
// @Param quarryID path string true "Quarry ID"
// @Param entryID path string true "Entry ID"
// @Param entry body dto.UpdateJournalEntryRequest true "Replacement details"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 403 {object} map[string]string "Entry is posted or derived"
// @Security BearerAuth
// @Router /quarries/{quarryID}/entries/{entryID} [put]
func (h *journalHandler) updateEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.UpdateJournalEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for updateEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	updaterUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	entry, err := h.journalService.UpdateManualEntry(c.Request.Context(), c.Param("quarryID"), c.Param("entryID"), req, updaterUserID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

// deleteEntry godoc
// @Summary Delete an unposted manual entry
// @Tags journal
// @Produce json
// @Param quarryID path string true "Quarry ID"
// @Param entryID path string true "Entry ID"
// @Success 204 "Deleted"
// @Failure 403 {object} map[string]string "Entry is posted or derived"
// @Security BearerAuth
// @Router /quarries/{quarryID}/entries/{entryID} [delete]
func (h *journalHandler) deleteEntry(c *gin.Context) {
	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.journalService.DeleteManualEntry(c.Request.Context(), c.Param("quarryID"), c.Param("entryID"), actorID); err != nil {
		respondWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// postEntry godoc
// @Summary Post a journal entry
// @Description Finalises the entry so it affects balances
// @Tags journal
// @Produce json
// @Param quarryID path string true "Quarry ID"
// @Param entryID path string true "Entry ID"
// @Success 200 {object} map[string]string
// @Failure 409 {object} map[string]string "Already posted"
// @Security BearerAuth
// @Router /quarries/{quarryID}/entries/{entryID}/post [post]
func (h *journalHandler) postEntry(c *gin.Context) {
	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.journalService.PostEntry(c.Request.Context(), c.Param("quarryID"), c.Param("entryID"), actorID); err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "posted"})
}

// unpostEntry godoc
// @Summary Unpost a journal entry
// @Description Reverts the entry to draft. Rejected when the entry's date is in a closed period.
// @Tags journal
// @Produce json
// @Param quarryID path string true "Quarry ID"
// @Param entryID path string true "Entry ID"
// @Success 200 {object} map[string]string
// @Failure 409 {object} map[string]string "Not posted or period closed"
// @Security BearerAuth
// @Router /quarries/{quarryID}/entries/{entryID}/unpost [post]
func (h *journalHandler) unpostEntry(c *gin.Context) {
	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.journalService.UnpostEntry(c.Request.Context(), c.Param("quarryID"), c.Param("entryID"), actorID); err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "unposted"})
}
