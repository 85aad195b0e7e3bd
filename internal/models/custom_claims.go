package models

import "github.com/golang-jwt/jwt/v5"

// CustomClaims represents the claims in the bearer tokens the API accepts.
// The owner id every entity is scoped by is the token subject.
type CustomClaims struct {
	jwt.RegisteredClaims
	TokenType string `json:"token_type"`
}

// OwnerID returns the owner id carried by the token
func (c *CustomClaims) OwnerID() string {
	return c.Subject
}
