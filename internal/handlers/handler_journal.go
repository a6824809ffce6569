package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/simplefi_backend/internal/core/ports/services"
	"github.com/SscSPs/simplefi_backend/internal/dto"
	"github.com/SscSPs/simplefi_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// journalHandler handles HTTP requests related to journal entries.
type journalHandler struct {
	journalService portssvc.JournalSvcFacade
}

// newJournalHandler creates a new journalHandler.
func newJournalHandler(journalService portssvc.JournalSvcFacade) *journalHandler {
	return &journalHandler{
		journalService: journalService,
	}
}

// registerJournalRoutes registers the posting engine routes. Posted entries have no update
// or delete route; corrections go through reversal.
func registerJournalRoutes(rg *gin.RouterGroup, journalService portssvc.JournalSvcFacade) {
	h := newJournalHandler(journalService)

	entries := rg.Group("/journal-entries")
	{
		entries.POST("", h.postEntry)
		entries.GET("", h.listEntries)
		entries.GET("/:id", h.getEntry)
		entries.POST("/:id/reverse", h.reverseEntry)
	}
}

// postEntry godoc
// @Summary Post a journal entry
// @Description Validates and atomically commits a balanced entry, updating account balances
// @Tags journal-entries
// @Accept  json
// @Produce  json
// @Param   entry body dto.PostEntryRequest true "Entry with its debit and credit lines"
// @Success 201 {object} dto.JournalEntryResponse
// @Failure 400 {object} dto.ErrorResponse "EmptyEntry, MalformedLine, Unbalanced or InvalidRequest"
// @Failure 404 {object} dto.ErrorResponse "UnknownAccount"
// @Failure 500 {object} dto.ErrorResponse "StorageError"
// @Security BearerAuth
// @Router /journal-entries [post]
func (h *journalHandler) postEntry(c *gin.Context) {
	var req dto.PostEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	logger.Info("Received request to post journal entry", slog.Int("line_count", len(req.Lines)))

	entry, err := h.journalService.PostEntry(c.Request.Context(), req, middleware.ActorFromContext(c))
	if err != nil {
		respondError(c, err, "Failed to post journal entry")
		return
	}

	logger.Info("Journal entry posted successfully", slog.Int64("entry_id", entry.EntryID))
	c.JSON(http.StatusCreated, dto.ToJournalEntryResponse(entry))
}

// reverseEntry godoc
// @Summary Reverse a journal entry
// @Description Posts the mirror image of an entry dated today and marks the original reversed
// @Tags journal-entries
// @Produce  json
// @Param   id path int true "Entry ID"
// @Success 200 {object} dto.ReverseEntryResponse
// @Failure 404 {object} dto.ErrorResponse "UnknownEntry"
// @Failure 409 {object} dto.ErrorResponse "AlreadyReversed"
// @Failure 500 {object} dto.ErrorResponse "StorageError"
// @Security BearerAuth
// @Router /journal-entries/{id}/reverse [post]
func (h *journalHandler) reverseEntry(c *gin.Context) {
	entryID, err := idParam(c, "id")
	if err != nil {
		respondError(c, err, "Invalid entry ID")
		return
	}

	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.Int64("entry_id", entryID))
	logger.Info("Received request to reverse journal entry")

	reversal, err := h.journalService.ReverseEntry(c.Request.Context(), entryID, middleware.ActorFromContext(c))
	if err != nil {
		respondError(c, err, "Failed to reverse journal entry")
		return
	}

	original, err := h.journalService.GetEntryByID(c.Request.Context(), entryID)
	if err != nil {
		respondError(c, err, "Failed to reload reversed entry")
		return
	}

	logger.Info("Journal entry reversed successfully", slog.Int64("reversal_id", reversal.EntryID))
	c.JSON(http.StatusOK, dto.ReverseEntryResponse{
		Reversal: dto.ToJournalEntryResponse(reversal),
		Original: dto.ToJournalEntryResponse(original),
	})
}

// getEntry godoc
// @Summary Get a journal entry
// @Tags journal-entries
// @Produce  json
// @Param   id path int true "Entry ID"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 404 {object} dto.ErrorResponse "UnknownEntry"
// @Security BearerAuth
// @Router /journal-entries/{id} [get]
func (h *journalHandler) getEntry(c *gin.Context) {
	entryID, err := idParam(c, "id")
	if err != nil {
		respondError(c, err, "Invalid entry ID")
		return
	}

	entry, err := h.journalService.GetEntryByID(c.Request.Context(), entryID)
	if err != nil {
		respondError(c, err, "Failed to retrieve journal entry")
		return
	}
	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

// listEntries godoc
// @Summary List journal entries
// @Description Lists entries newest first. Pass nextToken from the previous page to continue.
// @Tags journal-entries
// @Produce  json
// @Param   limit query int false "Page size" default(20)
// @Param   nextToken query string false "Token for the next page"
// @Success 200 {object} dto.ListEntriesResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid query parameters or token"
// @Security BearerAuth
// @Router /journal-entries [get]
func (h *journalHandler) listEntries(c *gin.Context) {
	var params dto.ListEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}

	entries, nextToken, err := h.journalService.ListEntries(c.Request.Context(), params)
	if err != nil {
		respondError(c, err, "Failed to list journal entries")
		return
	}
	c.JSON(http.StatusOK, dto.ToListEntriesResponse(entries, nextToken))
}
