package dbsession

import (
	"context"

	"gorm.io/gorm"
)

type ctxKey struct{}

// WithTx binds a request-scoped transaction to the context. The handle is
// carried explicitly through the call chain; it is never shared between
// unrelated requests.
func WithTx(ctx context.Context, tx *gorm.DB) context.Context {
	return context.WithValue(ctx, ctxKey{}, tx)
}

// FromContext returns the transaction bound to ctx, or fallback when the
// caller runs outside a request scope (startup tasks, CLI commands).
func FromContext(ctx context.Context, fallback *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(ctxKey{}).(*gorm.DB); ok && tx != nil {
		return tx
	}
	return fallback
}
