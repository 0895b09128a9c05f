// Package token builds, signs and decodes the bearer tokens used for
// session handling. Tokens are symmetric JWTs; decode fails closed on any
// signature or structure problem but does not enforce expiry, since expiry
// is bounded by the session cache TTL.
package token

import (
	stderrors "errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"aurum/internal/errors"
	"aurum/internal/models"
)

// Codec signs and verifies token claims with a single shared secret.
type Codec struct {
	secret     []byte
	method     jwt.SigningMethod
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewCodec builds a Codec. Only HMAC algorithms are supported; anything
// else is refused at construction time rather than at first use.
func NewCodec(secret, algorithm string, accessTTL, refreshTTL time.Duration) (*Codec, error) {
	if secret == "" {
		return nil, stderrors.New("token: signing secret is not configured")
	}

	method := jwt.GetSigningMethod(algorithm)
	if _, ok := method.(*jwt.SigningMethodHMAC); !ok {
		return nil, stderrors.New("token: unsupported signing algorithm " + algorithm)
	}

	return &Codec{
		secret:     []byte(secret),
		method:     method,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}, nil
}

// IssueAccess signs a new access token for the user. The returned claims
// are what the session store should persist for the token's TTL.
func (c *Codec) IssueAccess(user *models.User) (string, *models.TokenClaims, error) {
	claims := &models.TokenClaims{
		Type:         models.AccessTokenType,
		UserID:       user.ID,
		IsActive:     user.IsActive,
		TokenRevoked: false,
	}
	return c.issue(user.EmailString(), claims, c.accessTTL)
}

// IssueRefresh signs a new refresh token for the user.
func (c *Codec) IssueRefresh(user *models.User) (string, *models.TokenClaims, error) {
	claims := &models.TokenClaims{
		Type:         models.RefreshTokenType,
		TokenRevoked: false,
	}
	return c.issue(user.EmailString(), claims, c.refreshTTL)
}

func (c *Codec) issue(subject string, claims *models.TokenClaims, ttl time.Duration) (string, *models.TokenClaims, error) {
	now := time.Now()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}

	signed, err := jwt.NewWithClaims(c.method, claims).SignedString(c.secret)
	if err != nil {
		return "", nil, err
	}
	return signed, claims, nil
}

// Decode parses and verifies a token string. Any signature mismatch,
// malformed structure or unexpected algorithm yields ErrUnableDecodeToken;
// an expired but otherwise valid token decodes fine.
func (c *Codec) Decode(tokenStr string) (*models.TokenClaims, error) {
	parsed, err := jwt.ParseWithClaims(
		tokenStr,
		&models.TokenClaims{},
		func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, stderrors.New("unexpected signing method")
			}
			return c.secret, nil
		},
		jwt.WithoutClaimsValidation(),
	)
	if err != nil {
		return nil, errors.ErrUnableDecodeToken
	}

	claims, ok := parsed.Claims.(*models.TokenClaims)
	if !ok || !parsed.Valid {
		return nil, errors.ErrUnableDecodeToken
	}
	return claims, nil
}

// Revoke flips token_revoked on the claims and re-signs them, producing
// the revoked form of the token. Revoking already-revoked claims is a
// no-op that still yields a revoked token.
func (c *Codec) Revoke(claims *models.TokenClaims) (string, error) {
	claims.TokenRevoked = true
	return jwt.NewWithClaims(c.method, claims).SignedString(c.secret)
}
