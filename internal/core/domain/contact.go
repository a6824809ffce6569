package domain

// ContactType distinguishes who an invoice is issued to or received from.
type ContactType string

const (
	Customer ContactType = "Customer"
	Vendor   ContactType = "Vendor"
)

// Contact is a customer or vendor.
type Contact struct {
	ContactID int64       `json:"contactID"`
	Name      string      `json:"name"`
	Type      ContactType `json:"type"`
	Email     string      `json:"email"`
	Phone     string      `json:"phone"`
	Address   string      `json:"address"`
	TaxID     string      `json:"taxID"`
	AuditFields
}
