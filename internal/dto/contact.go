package dto

import (
	"time"

	"github.com/SscSPs/simplefi_backend/internal/core/domain"
)

// CreateContactRequest defines the data needed to create a contact.
type CreateContactRequest struct {
	Name    string             `json:"name" binding:"required,max=255"`
	Type    domain.ContactType `json:"type" binding:"required,oneof=Customer Vendor"`
	Email   string             `json:"email" binding:"omitempty,email"`
	Phone   string             `json:"phone" binding:"max=50"`
	Address string             `json:"address"`
	TaxID   string             `json:"taxID" binding:"max=50"`
}

// UpdateContactRequest defines the data allowed for updating a contact.
type UpdateContactRequest struct {
	Name    *string             `json:"name" binding:"omitempty,min=1,max=255"`
	Type    *domain.ContactType `json:"type" binding:"omitempty,oneof=Customer Vendor"`
	Email   *string             `json:"email" binding:"omitempty,email"`
	Phone   *string             `json:"phone" binding:"omitempty,max=50"`
	Address *string             `json:"address"`
	TaxID   *string             `json:"taxID" binding:"omitempty,max=50"`
}

// ContactResponse defines the data returned for a contact.
type ContactResponse struct {
	ContactID     int64              `json:"contactID"`
	Name          string             `json:"name"`
	Type          domain.ContactType `json:"type"`
	Email         string             `json:"email"`
	Phone         string             `json:"phone"`
	Address       string             `json:"address"`
	TaxID         string             `json:"taxID"`
	CreatedAt     time.Time          `json:"createdAt"`
	LastUpdatedAt time.Time          `json:"lastUpdatedAt"`
}

func ToContactResponse(c *domain.Contact) ContactResponse {
	return ContactResponse{
		ContactID:     c.ContactID,
		Name:          c.Name,
		Type:          c.Type,
		Email:         c.Email,
		Phone:         c.Phone,
		Address:       c.Address,
		TaxID:         c.TaxID,
		CreatedAt:     c.CreatedAt,
		LastUpdatedAt: c.LastUpdatedAt,
	}
}

func ToListContactResponse(contacts []domain.Contact) []ContactResponse {
	res := make([]ContactResponse, len(contacts))
	for i := range contacts {
		res[i] = ToContactResponse(&contacts[i])
	}
	return res
}

type ListContactsResponse struct {
	Contacts []ContactResponse `json:"contacts"`
}
