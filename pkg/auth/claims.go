package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Role is the storefront actor role carried in the access token. Token
// issuance belongs to the identity platform; the storefront only reads it.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleRep      Role = "rep"
	RoleCustomer Role = "customer"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleRep, RoleCustomer:
		return true
	}
	return false
}

// AccessTokenClaims represents the typed JWT presented by storefront clients.
// CustomerID is set for customers (their own id) and optionally for admins or
// reps acting on a customer's behalf.
type AccessTokenClaims struct {
	UserID     uuid.UUID  `json:"user_id"`
	Role       Role       `json:"role"`
	CustomerID *uuid.UUID `json:"customer_id,omitempty"`
	jwt.RegisteredClaims
}
