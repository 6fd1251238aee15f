// Package auth extracts the caller identity asserted by the fronting
// access proxy and carries it through the request context.
package auth

import "context"

type contextKey string

const identityKey contextKey = "workout-auth-identity"

// WithIdentity stores the caller's email on the context.
func WithIdentity(ctx context.Context, email string) context.Context {
	return context.WithValue(ctx, identityKey, email)
}

// FromContext retrieves the identity stored by WithIdentity.
func FromContext(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(identityKey).(string)
	return email, ok && email != ""
}
