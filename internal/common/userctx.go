package common

import (
	"context"
	"strings"
)

// UserContext holds the authenticated user scope for a request. When absent
// (nil), services operate in single-tenant mode using config defaults.
type UserContext struct {
	UserID       string
	BaseCurrency string
}

type contextKey int

const userContextKey contextKey = iota

// WithUserContext stores a UserContext in the request context.
func WithUserContext(ctx context.Context, uc *UserContext) context.Context {
	return context.WithValue(ctx, userContextKey, uc)
}

// UserContextFromContext retrieves the UserContext from context, or nil if absent.
func UserContextFromContext(ctx context.Context) *UserContext {
	uc, _ := ctx.Value(userContextKey).(*UserContext)
	return uc
}

// ResolveUserID returns the UserID from context, or "default" when no user
// context is present. Used by services and storage operations that need a
// tenant scope.
func ResolveUserID(ctx context.Context) string {
	if uc := UserContextFromContext(ctx); uc != nil && uc.UserID != "" {
		return uc.UserID
	}
	return "default"
}

// ResolveBaseCurrency returns the user's base currency if present, otherwise
// the supplied fallback. The result is always uppercased.
func ResolveBaseCurrency(ctx context.Context, fallback string) string {
	if uc := UserContextFromContext(ctx); uc != nil && uc.BaseCurrency != "" {
		return strings.ToUpper(uc.BaseCurrency)
	}
	return strings.ToUpper(fallback)
}
