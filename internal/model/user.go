package model

import "errors"

var ErrInvalidCredentials = errors.New("invalid credentials")

// User is the minimal identity record this service needs: enough to
// authenticate, resolve a role, and look up simulation targets by
// external ID.
type User struct {
	Base
	ExternalID     string  `json:"external_id" db:"external_id"`
	Email          string  `json:"email" db:"email"`
	Name           string  `json:"name" db:"name"`
	PasswordHash   string  `json:"-" db:"password_hash"`
	Role           Role    `json:"role" db:"role"`
	OrganizationID *string `json:"organization_id,omitempty" db:"organization_id"`
}

// TokenClaims is the decoded JWT payload.
type TokenClaims struct {
	UserID     string `json:"user_id"`
	ExternalID string `json:"external_id"`
	Email      string `json:"email"`
	Role       Role   `json:"role"`
}
