package httpx

import (
	"context"

	"github.com/sentinellock/sentinel-web/internal/ports"
)

type principalKey struct{}

type requestIDKey struct{}

// WithPrincipal returns a child context carrying the verified admin token.
func WithPrincipal(ctx context.Context, tok ports.VerifiedToken) context.Context {
	return context.WithValue(ctx, principalKey{}, tok)
}

// PrincipalFromContext returns the verified token set by RequireAdmin.
func PrincipalFromContext(ctx context.Context) (ports.VerifiedToken, bool) {
	tok, ok := ctx.Value(principalKey{}).(ports.VerifiedToken)
	return tok, ok
}

// RequestIDFromContext returns the id assigned by RequestID, or "".
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
