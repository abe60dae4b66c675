// Package auth carries the authenticated request identity and verifies
// bearer tokens.
package auth

import "context"

type contextKey struct{}

// Identity is the authenticated principal attached to a request.
type Identity struct {
	Subject string
}

// WithIdentity returns a context carrying the given identity.
func WithIdentity(ctx context.Context, identity Identity) context.Context {
	return context.WithValue(ctx, contextKey{}, identity)
}

// IdentityFromContext extracts the identity set by the access boundary.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	identity, ok := ctx.Value(contextKey{}).(Identity)
	return identity, ok
}

// SubjectFromContext returns the subject of the request identity, or empty
// when the context carries none (e.g. background processes).
func SubjectFromContext(ctx context.Context) string {
	identity, _ := IdentityFromContext(ctx)
	return identity.Subject
}
