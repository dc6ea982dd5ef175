package http

import (
	"context"
	"errors"

	"vehicle-rental-backend/internal/security"
)

type claimsKey struct{}
type tokenKey struct{}

var errNoIdentity = errors.New("no authenticated user in request context")

func withIdentity(ctx context.Context, claims *security.UserClaims, token string) context.Context {
	ctx = context.WithValue(ctx, claimsKey{}, claims)
	return context.WithValue(ctx, tokenKey{}, token)
}

// ClaimsFromContext returns the verified claims attached by the auth middleware.
func ClaimsFromContext(ctx context.Context) (*security.UserClaims, bool) {
	claims, ok := ctx.Value(claimsKey{}).(*security.UserClaims)
	return claims, ok && claims != nil
}

// GetUserIDFromContext extracts the authenticated user ID.
func GetUserIDFromContext(ctx context.Context) (int32, error) {
	claims, ok := ClaimsFromContext(ctx)
	if !ok {
		return 0, errNoIdentity
	}
	return claims.UserID, nil
}

func bearerTokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(tokenKey{}).(string)
	return token
}
