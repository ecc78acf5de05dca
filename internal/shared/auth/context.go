package auth

import "context"

type claimsKey struct{}

// WithClaims returns a context carrying the authenticated identity.
func WithClaims(ctx context.Context, claims Claims) context.Context {
	return context.WithValue(ctx, claimsKey{}, claims)
}

// ClaimsFromContext returns the identity set by WithClaims, if any.
func ClaimsFromContext(ctx context.Context) (Claims, bool) {
	claims, ok := ctx.Value(claimsKey{}).(Claims)
	if !ok || claims.Subject == "" {
		return Claims{}, false
	}
	return claims, true
}
