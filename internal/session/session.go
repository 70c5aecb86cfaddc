// Package session carries the authenticated identity through a request's
// context.Context.
package session

import "context"

// Identity is the logged-in user of a request.
type Identity struct {
	UserID   uint
	Username string
}

type contextKey struct{}

// WithIdentity returns a copy of ctx carrying id.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// FromContext returns the identity stored in ctx, if any.
func FromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(contextKey{}).(Identity)
	return id, ok && id.UserID != 0
}
