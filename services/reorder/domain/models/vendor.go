package models

import (
	"time"

	"github.com/google/uuid"
)

// Vendor is a supplier purchase orders are addressed to.
// Email and ContactPerson are optional; an empty Email means purchase-order
// notifications cannot be dispatched to this vendor.
type Vendor struct {
	ID            uuid.UUID
	OrgID         uuid.UUID
	Name          string
	Email         string
	ContactPerson string
	CreatedAt     time.Time
}

// NewVendor constructs a Vendor with generated ID and current timestamp.
func NewVendor(orgID uuid.UUID, name, email, contactPerson string) *Vendor {
	return &Vendor{
		ID:            uuid.New(),
		OrgID:         orgID,
		Name:          name,
		Email:         email,
		ContactPerson: contactPerson,
		CreatedAt:     time.Now().UTC(),
	}
}

// HasEmail reports whether the vendor can receive order emails.
func (v *Vendor) HasEmail() bool {
	return v.Email != ""
}
