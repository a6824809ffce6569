package dto

import (
	"time"

	"github.com/SscSPs/simplefi_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateInvoiceRequest defines the data needed to create an invoice.
type CreateInvoiceRequest struct {
	InvoiceNumber string               `json:"invoiceNumber" binding:"required,max=64"`
	ContactID     int64                `json:"contactID" binding:"required"`
	Type          domain.InvoiceType   `json:"type" binding:"required,oneof=Payable Receivable"`
	Amount        decimal.Decimal      `json:"amount" binding:"dgt0"`
	DueDate       Date                 `json:"dueDate"`
	Status        domain.InvoiceStatus `json:"status" binding:"omitempty,oneof=Draft Sent Paid Overdue"`
}

// UpdateInvoiceRequest defines the data allowed for updating an invoice.
type UpdateInvoiceRequest struct {
	Amount  *decimal.Decimal      `json:"amount" binding:"omitempty,dgt0"`
	DueDate *Date                 `json:"dueDate"`
	Status  *domain.InvoiceStatus `json:"status" binding:"omitempty,oneof=Draft Sent Paid Overdue"`
}

// ListInvoicesParams defines query parameters for listing invoices.
type ListInvoicesParams struct {
	PageParams
	Status domain.InvoiceStatus `form:"status" binding:"omitempty,oneof=Draft Sent Paid Overdue"`
}

// InvoiceResponse defines the data returned for an invoice.
type InvoiceResponse struct {
	InvoiceID     int64                `json:"invoiceID"`
	InvoiceNumber string               `json:"invoiceNumber"`
	ContactID     int64                `json:"contactID"`
	Type          domain.InvoiceType   `json:"type"`
	Amount        decimal.Decimal      `json:"amount"`
	DueDate       Date                 `json:"dueDate"`
	Status        domain.InvoiceStatus `json:"status"`
	CreatedAt     time.Time            `json:"createdAt"`
	LastUpdatedAt time.Time            `json:"lastUpdatedAt"`
}

func ToInvoiceResponse(inv *domain.Invoice) InvoiceResponse {
	return InvoiceResponse{
		InvoiceID:     inv.InvoiceID,
		InvoiceNumber: inv.InvoiceNumber,
		ContactID:     inv.ContactID,
		Type:          inv.Type,
		Amount:        inv.Amount,
		DueDate:       NewDate(inv.DueDate),
		Status:        inv.Status,
		CreatedAt:     inv.CreatedAt,
		LastUpdatedAt: inv.LastUpdatedAt,
	}
}

func ToListInvoiceResponse(invoices []domain.Invoice) []InvoiceResponse {
	res := make([]InvoiceResponse, len(invoices))
	for i := range invoices {
		res[i] = ToInvoiceResponse(&invoices[i])
	}
	return res
}

type ListInvoicesResponse struct {
	Invoices []InvoiceResponse `json:"invoices"`
}
