// Package identity carries the caller identity extracted from the
// reverse-proxy headers through the request context.
//
// The adapter performs no verification of its own: it trusts that the
// deployment puts this service behind an authenticating proxy
// (authentik) that strips and re-injects the X-Authentik-* headers, so
// external clients can never supply them directly. Exposing the service
// without that proxy removes all authentication.
package identity

import (
	"context"
	"strings"
)

// Caller is the authenticated principal for the current request.
type Caller struct {
	OCID  string
	Name  string
	Email string
}

type callerContextKey struct{}

// WithCaller stores the caller identity in the context.
func WithCaller(ctx context.Context, caller Caller) context.Context {
	return context.WithValue(ctx, callerContextKey{}, caller)
}

// CallerFromContext returns the caller identity from context, if set.
func CallerFromContext(ctx context.Context) (Caller, bool) {
	if ctx == nil {
		return Caller{}, false
	}
	caller, ok := ctx.Value(callerContextKey{}).(Caller)
	if !ok || caller.OCID == "" {
		return Caller{}, false
	}
	return caller, true
}

// DeriveName falls back to the local part of the email address when the
// proxy did not supply a display name.
func DeriveName(name, email string) string {
	name = strings.TrimSpace(name)
	if name != "" {
		return name
	}
	if at := strings.Index(email, "@"); at > 0 {
		return email[:at]
	}
	return email
}
