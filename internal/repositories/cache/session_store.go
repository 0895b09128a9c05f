// Package cache adapts the key-value store that backs server-side
// sessions. Every issued token has a record here whose TTL equals the
// token's remaining validity, so expired tokens vanish on their own.
package cache

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"aurum/internal/errors"
	"aurum/internal/models"
)

// SessionStore persists active-token → claims mappings with TTL.
type SessionStore interface {
	Put(ctx context.Context, token string, claims *models.TokenClaims) error
	Get(ctx context.Context, token string) (*models.TokenClaims, bool, error)
	// Update replaces an existing record in place keeping its remaining
	// TTL, used to flip token_revoked without extending the token's life.
	// A record that already expired is left absent.
	Update(ctx context.Context, token string, claims *models.TokenClaims) error
	Close() error
}

type sessionStore struct {
	client *redis.Client
}

// NewSessionStore wraps a redis client as a SessionStore.
func NewSessionStore(client *redis.Client) SessionStore {
	return &sessionStore{client: client}
}

func (s *sessionStore) Put(ctx context.Context, token string, claims *models.TokenClaims) error {
	data, err := json.Marshal(claims)
	if err != nil {
		return fmt.Errorf("failed to marshal claims: %w", err)
	}

	ttl := claims.ExpiresAt.Sub(claims.IssuedAt.Time)
	if err := s.client.Set(ctx, token, data, ttl).Err(); err != nil {
		return &errors.Infra{Op: "session store put", Err: err}
	}
	return nil
}

func (s *sessionStore) Get(ctx context.Context, token string) (*models.TokenClaims, bool, error) {
	data, err := s.client.Get(ctx, token).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, false, nil
		}
		return nil, false, &errors.Infra{Op: "session store get", Err: err}
	}

	var claims models.TokenClaims
	if err := json.Unmarshal(data, &claims); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal claims: %w", err)
	}
	return &claims, true, nil
}

func (s *sessionStore) Update(ctx context.Context, token string, claims *models.TokenClaims) error {
	data, err := json.Marshal(claims)
	if err != nil {
		return fmt.Errorf("failed to marshal claims: %w", err)
	}

	// XX: only replace an existing record. If the entry expired between
	// lookup and update, writing it back would recreate the key without a
	// TTL; a lapsed token needs no revocation record anyway.
	if err := s.client.SetXX(ctx, token, data, redis.KeepTTL).Err(); err != nil {
		return &errors.Infra{Op: "session store update", Err: err}
	}
	return nil
}

func (s *sessionStore) Close() error {
	return s.client.Close()
}
