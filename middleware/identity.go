package middleware

import (
	"context"
	"net/http"

	"github.com/notelab/notelab-api/models"
)

type contextKey string

const (
	identityKey contextKey = "identity"
	callerKey   contextKey = "caller"
)

// Identity is the caller as seen by the identity provider, before any
// database lookup.
type Identity struct {
	Subject string
	Email   string
	Name    string
}

// WithIdentity stores the validated identity for downstream middleware.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// IdentityFrom reports the validated identity on the request, if any.
func IdentityFrom(r *http.Request) (Identity, bool) {
	id, ok := r.Context().Value(identityKey).(Identity)
	return id, ok && id.Subject != ""
}

// WithCaller stores the resolved user record for handlers.
func WithCaller(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, callerKey, user)
}

// CallerFrom reports the resolved user attached by SyncUser.
func CallerFrom(r *http.Request) (*models.User, bool) {
	user, ok := r.Context().Value(callerKey).(*models.User)
	return user, ok && user != nil
}
