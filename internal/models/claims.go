package models

import "github.com/golang-jwt/jwt/v5"

// Token types carried in the "type" claim.
const (
	AccessTokenType  = "Access"
	RefreshTokenType = "Refresh"
)

// TokenClaims is the payload embedded in issued tokens. The same record,
// JSON-encoded, is stored in the session cache keyed by the raw token string
// so a token can be revoked server-side before its natural expiry.
type TokenClaims struct {
	jwt.RegisteredClaims
	Type         string `json:"type"`
	UserID       uint   `json:"id,omitempty"`
	IsActive     bool   `json:"is_active,omitempty"`
	TokenRevoked bool   `json:"token_revoked"`
}

// IsRefresh reports whether the claims belong to a refresh token.
func (c *TokenClaims) IsRefresh() bool {
	return c.Type == RefreshTokenType
}

// Email returns the subject claim, which carries the user's email.
func (c *TokenClaims) Email() string {
	return c.Subject
}
