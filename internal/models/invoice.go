package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice is a row of the invoices table.
type Invoice struct {
	InvoiceID     int64           `db:"invoice_id"`
	InvoiceNumber string          `db:"invoice_number"`
	ContactID     int64           `db:"contact_id"`
	InvoiceType   string          `db:"invoice_type"`
	Amount        decimal.Decimal `db:"amount"`
	DueDate       time.Time       `db:"due_date"`
	Status        string          `db:"status"`
	AuditFields
}
