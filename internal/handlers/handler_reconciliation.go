package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/simplefi_backend/internal/core/ports/services"
	"github.com/SscSPs/simplefi_backend/internal/dto"
	"github.com/SscSPs/simplefi_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type reconciliationHandler struct {
	reconciliationService portssvc.ReconciliationSvcFacade
}

func registerReconciliationRoutes(rg *gin.RouterGroup, reconciliationService portssvc.ReconciliationSvcFacade) {
	h := &reconciliationHandler{reconciliationService: reconciliationService}

	recs := rg.Group("/reconciliations")
	{
		recs.POST("", h.startReconciliation)
		recs.GET("", h.listReconciliations)
		recs.GET("/:id", h.getReconciliation)
		recs.POST("/:id/refresh", h.refreshReconciliation)
		recs.POST("/:id/complete", h.completeReconciliation)
	}
}

// startReconciliation godoc
// @Summary Start a bank reconciliation
// @Description Records a statement balance and computes the ledger balance as of the statement date
// @Tags reconciliations
// @Accept  json
// @Produce  json
// @Param   reconciliation body dto.CreateReconciliationRequest true "Statement details"
// @Success 201 {object} dto.ReconciliationResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 404 {object} dto.ErrorResponse "UnknownAccount"
// @Security BearerAuth
// @Router /reconciliations [post]
func (h *reconciliationHandler) startReconciliation(c *gin.Context) {
	var req dto.CreateReconciliationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	rec, err := h.reconciliationService.StartReconciliation(c.Request.Context(), req, middleware.ActorFromContext(c))
	if err != nil {
		respondError(c, err, "Failed to start reconciliation")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Reconciliation started",
		slog.Int64("reconciliation_id", rec.ReconciliationID), slog.String("difference", rec.Difference().String()))
	c.JSON(http.StatusCreated, dto.ToReconciliationResponse(rec))
}

// listReconciliations godoc
// @Summary List bank reconciliations
// @Tags reconciliations
// @Produce  json
// @Param   accountID query int false "Only reconciliations of this account"
// @Param   limit query int false "Limit number of results" default(50)
// @Param   offset query int false "Offset for pagination" default(0)
// @Success 200 {object} dto.ListReconciliationsResponse
// @Security BearerAuth
// @Router /reconciliations [get]
func (h *reconciliationHandler) listReconciliations(c *gin.Context) {
	var params dto.ListReconciliationsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}

	recs, err := h.reconciliationService.ListReconciliations(c.Request.Context(), params)
	if err != nil {
		respondError(c, err, "Failed to list reconciliations")
		return
	}
	c.JSON(http.StatusOK, dto.ListReconciliationsResponse{Reconciliations: dto.ToListReconciliationResponse(recs)})
}

// getReconciliation godoc
// @Summary Get a bank reconciliation
// @Tags reconciliations
// @Produce  json
// @Param   id path int true "Reconciliation ID"
// @Success 200 {object} dto.ReconciliationResponse
// @Failure 404 {object} dto.ErrorResponse "UnknownReconciliation"
// @Security BearerAuth
// @Router /reconciliations/{id} [get]
func (h *reconciliationHandler) getReconciliation(c *gin.Context) {
	recID, err := idParam(c, "id")
	if err != nil {
		respondError(c, err, "Invalid reconciliation ID")
		return
	}

	rec, err := h.reconciliationService.GetReconciliationByID(c.Request.Context(), recID)
	if err != nil {
		respondError(c, err, "Failed to retrieve reconciliation")
		return
	}
	c.JSON(http.StatusOK, dto.ToReconciliationResponse(rec))
}

// refreshReconciliation godoc
// @Summary Refresh a bank reconciliation
// @Description Recomputes the ledger balance of an in-progress reconciliation
// @Tags reconciliations
// @Produce  json
// @Param   id path int true "Reconciliation ID"
// @Success 200 {object} dto.ReconciliationResponse
// @Failure 404 {object} dto.ErrorResponse "UnknownReconciliation"
// @Failure 409 {object} dto.ErrorResponse "AlreadyCompleted"
// @Security BearerAuth
// @Router /reconciliations/{id}/refresh [post]
func (h *reconciliationHandler) refreshReconciliation(c *gin.Context) {
	recID, err := idParam(c, "id")
	if err != nil {
		respondError(c, err, "Invalid reconciliation ID")
		return
	}

	rec, err := h.reconciliationService.RefreshReconciliation(c.Request.Context(), recID, middleware.ActorFromContext(c))
	if err != nil {
		respondError(c, err, "Failed to refresh reconciliation")
		return
	}
	c.JSON(http.StatusOK, dto.ToReconciliationResponse(rec))
}

// completeReconciliation godoc
// @Summary Complete a bank reconciliation
// @Description Closes a reconciliation whose statement and ledger balances agree
// @Tags reconciliations
// @Produce  json
// @Param   id path int true "Reconciliation ID"
// @Success 200 {object} dto.ReconciliationResponse
// @Failure 404 {object} dto.ErrorResponse "UnknownReconciliation"
// @Failure 409 {object} dto.ErrorResponse "ReconciliationMismatch or AlreadyCompleted"
// @Security BearerAuth
// @Router /reconciliations/{id}/complete [post]
func (h *reconciliationHandler) completeReconciliation(c *gin.Context) {
	recID, err := idParam(c, "id")
	if err != nil {
		respondError(c, err, "Invalid reconciliation ID")
		return
	}

	rec, err := h.reconciliationService.CompleteReconciliation(c.Request.Context(), recID, middleware.ActorFromContext(c))
	if err != nil {
		respondError(c, err, "Failed to complete reconciliation")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Reconciliation completed", slog.Int64("reconciliation_id", recID))
	c.JSON(http.StatusOK, dto.ToReconciliationResponse(rec))
}
