package domain

import "time"

// AuditFields holds standard audit information for domain entities.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"` // subject of the caller's token, or "system"
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"`
}

// SystemActor is recorded when a request carries no authenticated subject.
const SystemActor = "system"

// NewAuditFields stamps creation and update fields with the same actor and time.
func NewAuditFields(actor string, now time.Time) AuditFields {
	if actor == "" {
		actor = SystemActor
	}
	return AuditFields{
		CreatedAt:     now,
		CreatedBy:     actor,
		LastUpdatedAt: now,
		LastUpdatedBy: actor,
	}
}

// Touch records an update by actor at now.
func (a *AuditFields) Touch(actor string, now time.Time) {
	if actor == "" {
		actor = SystemActor
	}
	a.LastUpdatedAt = now
	a.LastUpdatedBy = actor
}

// DateOnly truncates t to midnight UTC of its calendar day.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
