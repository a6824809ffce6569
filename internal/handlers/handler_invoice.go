package handlers

import (
	"log/slog"
	"net/http"
	"path/filepath"

	portssvc "github.com/SscSPs/simplefi_backend/internal/core/ports/services"
	"github.com/SscSPs/simplefi_backend/internal/dto"
	"github.com/SscSPs/simplefi_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type invoiceHandler struct {
	invoiceService portssvc.InvoiceSvcFacade
}

func registerInvoiceRoutes(rg *gin.RouterGroup, invoiceService portssvc.InvoiceSvcFacade) {
	h := &invoiceHandler{invoiceService: invoiceService}

	invoices := rg.Group("/invoices")
	{
		invoices.POST("", h.createInvoice)
		invoices.GET("", h.listInvoices)
		invoices.GET("/:id", h.getInvoice)
		invoices.PUT("/:id", h.updateInvoice)
		invoices.DELETE("/:id", h.deleteInvoice)
		invoices.GET("/:id/pdf", h.downloadInvoicePDF)
	}
}

// createInvoice godoc
// @Summary Create an invoice
// @Tags invoices
// @Accept  json
// @Produce  json
// @Param   invoice body dto.CreateInvoiceRequest true "Invoice details"
// @Success 201 {object} dto.InvoiceResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 404 {object} dto.ErrorResponse "UnknownContact"
// @Failure 409 {object} dto.ErrorResponse "DuplicateInvoice"
// @Security BearerAuth
// @Router /invoices [post]
func (h *invoiceHandler) createInvoice(c *gin.Context) {
	var req dto.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	invoice, err := h.invoiceService.CreateInvoice(c.Request.Context(), req, middleware.ActorFromContext(c))
	if err != nil {
		respondError(c, err, "Failed to create invoice")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Invoice created successfully",
		slog.Int64("invoice_id", invoice.InvoiceID), slog.String("invoice_number", invoice.InvoiceNumber))
	c.JSON(http.StatusCreated, dto.ToInvoiceResponse(invoice))
}

// listInvoices godoc
// @Summary List invoices
// @Description Lists invoices ordered by due date, optionally filtered by status
// @Tags invoices
// @Produce  json
// @Param   status query string false "Draft, Sent, Paid or Overdue"
// @Param   limit query int false "Limit number of results" default(50)
// @Param   offset query int false "Offset for pagination" default(0)
// @Success 200 {object} dto.ListInvoicesResponse
// @Security BearerAuth
// @Router /invoices [get]
func (h *invoiceHandler) listInvoices(c *gin.Context) {
	var params dto.ListInvoicesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}

	invoices, err := h.invoiceService.ListInvoices(c.Request.Context(), params)
	if err != nil {
		respondError(c, err, "Failed to list invoices")
		return
	}
	c.JSON(http.StatusOK, dto.ListInvoicesResponse{Invoices: dto.ToListInvoiceResponse(invoices)})
}

// getInvoice godoc
// @Summary Get an invoice
// @Tags invoices
// @Produce  json
// @Param   id path int true "Invoice ID"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 404 {object} dto.ErrorResponse "UnknownInvoice"
// @Security BearerAuth
// @Router /invoices/{id} [get]
func (h *invoiceHandler) getInvoice(c *gin.Context) {
	invoiceID, err := idParam(c, "id")
	if err != nil {
		respondError(c, err, "Invalid invoice ID")
		return
	}

	invoice, err := h.invoiceService.GetInvoiceByID(c.Request.Context(), invoiceID)
	if err != nil {
		respondError(c, err, "Failed to retrieve invoice")
		return
	}
	c.JSON(http.StatusOK, dto.ToInvoiceResponse(invoice))
}

// updateInvoice godoc
// @Summary Update an invoice
// @Description Updates amount, due date or status. Paid invoices cannot change status.
// @Tags invoices
// @Accept  json
// @Produce  json
// @Param   id path int true "Invoice ID"
// @Param   invoice body dto.UpdateInvoiceRequest true "Fields to update"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 404 {object} dto.ErrorResponse "UnknownInvoice"
// @Failure 409 {object} dto.ErrorResponse "InvalidStatusTransition"
// @Security BearerAuth
// @Router /invoices/{id} [put]
func (h *invoiceHandler) updateInvoice(c *gin.Context) {
	invoiceID, err := idParam(c, "id")
	if err != nil {
		respondError(c, err, "Invalid invoice ID")
		return
	}
	var req dto.UpdateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	invoice, err := h.invoiceService.UpdateInvoice(c.Request.Context(), invoiceID, req, middleware.ActorFromContext(c))
	if err != nil {
		respondError(c, err, "Failed to update invoice")
		return
	}
	c.JSON(http.StatusOK, dto.ToInvoiceResponse(invoice))
}

// deleteInvoice godoc
// @Summary Delete an invoice
// @Tags invoices
// @Param   id path int true "Invoice ID"
// @Success 204 "No Content"
// @Failure 404 {object} dto.ErrorResponse "UnknownInvoice"
// @Security BearerAuth
// @Router /invoices/{id} [delete]
func (h *invoiceHandler) deleteInvoice(c *gin.Context) {
	invoiceID, err := idParam(c, "id")
	if err != nil {
		respondError(c, err, "Invalid invoice ID")
		return
	}

	if err := h.invoiceService.DeleteInvoice(c.Request.Context(), invoiceID); err != nil {
		respondError(c, err, "Failed to delete invoice")
		return
	}
	c.Status(http.StatusNoContent)
}

// downloadInvoicePDF godoc
// @Summary Download invoice PDF
// @Description Serves the stored PDF named after the invoice number
// @Tags invoices
// @Produce application/pdf
// @Param   id path int true "Invoice ID"
// @Success 200 {file} file
// @Failure 404 {object} dto.ErrorResponse "UnknownInvoice or PDFNotFound"
// @Security BearerAuth
// @Router /invoices/{id}/pdf [get]
func (h *invoiceHandler) downloadInvoicePDF(c *gin.Context) {
	invoiceID, err := idParam(c, "id")
	if err != nil {
		respondError(c, err, "Invalid invoice ID")
		return
	}

	path, err := h.invoiceService.InvoicePDFPath(c.Request.Context(), invoiceID)
	if err != nil {
		respondError(c, err, "Failed to locate invoice PDF")
		return
	}
	c.FileAttachment(path, filepath.Base(path))
}
