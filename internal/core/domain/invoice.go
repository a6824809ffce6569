package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type InvoiceType string

const (
	Payable    InvoiceType = "Payable"
	Receivable InvoiceType = "Receivable"
)

type InvoiceStatus string

const (
	InvoiceDraft   InvoiceStatus = "Draft"
	InvoiceSent    InvoiceStatus = "Sent"
	InvoicePaid    InvoiceStatus = "Paid"
	InvoiceOverdue InvoiceStatus = "Overdue"
)

var invoiceTransitions = map[InvoiceStatus][]InvoiceStatus{
	InvoiceDraft:   {InvoiceSent, InvoicePaid, InvoiceOverdue},
	InvoiceSent:    {InvoicePaid, InvoiceOverdue},
	InvoiceOverdue: {InvoicePaid},
}

// CanTransitionTo reports whether an invoice in status s may move to next.
// Staying in the same status is always allowed.
func (s InvoiceStatus) CanTransitionTo(next InvoiceStatus) bool {
	if s == next {
		return true
	}
	for _, allowed := range invoiceTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Invoice is a payable or receivable document issued to or by a contact.
type Invoice struct {
	InvoiceID     int64           `json:"invoiceID"`
	InvoiceNumber string          `json:"invoiceNumber"`
	ContactID     int64           `json:"contactID"`
	Type          InvoiceType     `json:"type"`
	Amount        decimal.Decimal `json:"amount"`
	DueDate       time.Time       `json:"dueDate"`
	Status        InvoiceStatus   `json:"status"`
	AuditFields
}
