// Package http provides HTTP handlers and middleware for principal operations.
package http

import (
	"context"

	"github.com/google/uuid"
)

// principalIDKey is a context key type for storing the authenticated principal ID.
type principalIDKey struct{}

// WithPrincipalID stores the authenticated principal ID in the context.
//
// Only the ID travels with the request. The principal record, and with it the
// private key, is loaded from the repository at the moment an operation needs
// it.
func WithPrincipalID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, principalIDKey{}, id)
}

// GetPrincipalID retrieves the authenticated principal ID from the context.
// Returns (id, true) if present, or (uuid.Nil, false) if no ID was set.
func GetPrincipalID(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(principalIDKey{}).(uuid.UUID)
	return id, ok
}
