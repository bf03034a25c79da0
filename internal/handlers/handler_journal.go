package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/SscSPs/bookkeeping_app/internal/core/ports/services"
	"github.com/SscSPs/bookkeeping_app/internal/dto"
)

// journalHandler handles HTTP requests for manual journal entries.
type journalHandler struct {
	journalService portssvc.JournalSvcFacade
}

// RegisterJournalRoutes registers routes related to journal entries.
func RegisterJournalRoutes(rg *gin.RouterGroup, journalService portssvc.JournalSvcFacade) {
	h := &journalHandler{journalService: journalService}

	entries := rg.Group("/journal-entries")
	{
		entries.POST("", h.createEntry)
		entries.GET("", h.listEntries)
		entries.GET("/:id", h.getEntry)
		entries.PUT("/:id", h.updateEntry)
		entries.DELETE("/:id", h.deleteEntry)
	}
}

// createEntry godoc
// @Summary Create a journal entry
// @Description Posts a manual entry. Debits must equal credits.
// @Tags journal-entries
// @Accept json
// @Produce json
// @Param entry body dto.CreateJournalEntryRequest true "Entry with at least two lines"
// @Success 201 {object} dto.JournalEntryResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid or unbalanced entry"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Account not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to create journal entry"
// @Security BearerAuth
// @Router /journal-entries [post]
func (h *journalHandler) createEntry(c *gin.Context) {
	logger, userID, ok := requestScope(c)
	if !ok {
		return
	}
	var req dto.CreateJournalEntryRequest
	if !bindJSON(c, logger, &req) {
		return
	}

	entry, err := h.journalService.CreateJournalEntry(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, logger, err, "Failed to create journal entry")
		return
	}

	logger.Info("Journal entry created", slog.String("entry_id", entry.EntryID), slog.Int("lines", len(entry.Lines)))
	c.JSON(http.StatusCreated, dto.ToJournalEntryResponse(entry))
}

// getEntry godoc
// @Summary Get a journal entry
// @Tags journal-entries
// @Produce json
// @Param id path string true "Entry ID"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Journal entry not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to retrieve journal entry"
// @Security BearerAuth
// @Router /journal-entries/{id} [get]
func (h *journalHandler) getEntry(c *gin.Context) {
	logger, userID, ok := requestScope(c)
	if !ok {
		return
	}

	entry, err := h.journalService.GetJournalEntry(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve journal entry")
		return
	}
	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

// listEntries godoc
// @Summary List journal entries
// @Description Pages through non-deleted entries, newest first
// @Tags journal-entries
// @Produce json
// @Param limit query int false "Page size" default(20)
// @Param nextToken query string false "Token of the next page"
// @Param startDate query string false "First day (YYYY-MM-DD)"
// @Param endDate query string false "Last day (YYYY-MM-DD)"
// @Param source query string false "Source kind"
// @Success 200 {object} dto.ListJournalEntriesResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid query parameters"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Failed to list journal entries"
// @Security BearerAuth
// @Router /journal-entries [get]
func (h *journalHandler) listEntries(c *gin.Context) {
	logger, userID, ok := requestScope(c)
	if !ok {
		return
	}
	var params dto.ListJournalEntriesParams
	if !bindQuery(c, logger, &params) {
		return
	}

	resp, err := h.journalService.ListJournalEntries(c.Request.Context(), userID, params)
	if err != nil {
		respondError(c, logger, err, "Failed to list journal entries")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// updateEntry godoc
// @Summary Replace a journal entry
// @Description Replaces the header and all lines of an entry
// @Tags journal-entries
// @Accept json
// @Produce json
// @Param id path string true "Entry ID"
// @Param entry body dto.UpdateJournalEntryRequest true "New entry contents"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid or unbalanced entry"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Journal entry not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to update journal entry"
// @Security BearerAuth
// @Router /journal-entries/{id} [put]
func (h *journalHandler) updateEntry(c *gin.Context) {
	logger, userID, ok := requestScope(c)
	if !ok {
		return
	}
	entryID := c.Param("id")
	var req dto.UpdateJournalEntryRequest
	if !bindJSON(c, logger, &req) {
		return
	}

	entry, err := h.journalService.UpdateJournalEntry(c.Request.Context(), userID, entryID, req)
	if err != nil {
		respondError(c, logger.With(slog.String("entry_id", entryID)), err, "Failed to update journal entry")
		return
	}

	logger.Info("Journal entry updated", slog.String("entry_id", entryID))
	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

// deleteEntry godoc
// @Summary Delete a journal entry
// @Description Soft-deletes the entry. Deleting an entry of a sale invoice deletes the invoice.
// @Tags journal-entries
// @Param id path string true "Entry ID"
// @Success 204 "No Content"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Journal entry not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to delete journal entry"
// @Security BearerAuth
// @Router /journal-entries/{id} [delete]
func (h *journalHandler) deleteEntry(c *gin.Context) {
	logger, userID, ok := requestScope(c)
	if !ok {
		return
	}
	entryID := c.Param("id")

	if err := h.journalService.DeleteJournalEntry(c.Request.Context(), userID, entryID); err != nil {
		respondError(c, logger.With(slog.String("entry_id", entryID)), err, "Failed to delete journal entry")
		return
	}

	logger.Info("Journal entry deleted", slog.String("entry_id", entryID))
	c.Status(http.StatusNoContent)
}
