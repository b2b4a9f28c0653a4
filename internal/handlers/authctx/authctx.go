package authctx

import (
	"context"

	"github.com/akozyrev/folio/internal/service/auth/tokenmanager"
)

type ctxKey string

const identityKey ctxKey = "identity"

// Create a new context carrying the authenticated identity
func New(ctx context.Context, id tokenmanager.Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// Extract the authenticated identity from the context
func FromContext(ctx context.Context) (tokenmanager.Identity, bool) {
	id, ok := ctx.Value(identityKey).(tokenmanager.Identity)
	return id, ok
}
