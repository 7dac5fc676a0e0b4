package model

import "time"

// User roles.  Customers book reservations and write reviews; partners
// operate stores and act on incoming reservations.
const (
	RoleCustomer = "CUSTOMER"
	RolePartner  = "PARTNER"
)

// User is an account that can authenticate against the service.
type User struct {
	ID           uint64    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
