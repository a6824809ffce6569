package models

// Contact is a row of the contacts table.
type Contact struct {
	ContactID   int64  `db:"contact_id"`
	Name        string `db:"name"`
	ContactType string `db:"contact_type"`
	Email       string `db:"email"`
	Phone       string `db:"phone"`
	Address     string `db:"address"`
	TaxID       string `db:"tax_id"`
	AuditFields
}
