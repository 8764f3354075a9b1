package types

import (
	"github.com/golang-jwt/jwt/v5"
)

// RoleAdmin is the only role the API recognizes.
const RoleAdmin = "admin"

// TokenClaims represents the claims in an admin JWT
type TokenClaims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}
