package core

import (
	"context"

	"github.com/JonMunkholm/portal/internal/models"
)

type contextKey string

const ctxKeyPrincipal contextKey = "principal"

// Principal is the signed-in user a request acts for.
type Principal struct {
	UserID   int64
	Username string
	Role     models.Role
	Name     string
}

// ContextWithPrincipal attaches p to ctx. The session middleware calls this
// once per request.
func ContextWithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, ctxKeyPrincipal, p)
}

// PrincipalFromContext returns the principal set by ContextWithPrincipal.
func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(ctxKeyPrincipal).(Principal)
	return p, ok
}

// Authorize returns the request principal when it holds one of roles, for
// callers that must refuse a request before doing any work.
func Authorize(ctx context.Context, roles ...models.Role) (Principal, error) {
	return requireRole(ctx, roles...)
}

// requireRole returns the request principal when it holds one of roles.
// With no roles listed any signed-in user passes.
func requireRole(ctx context.Context, roles ...models.Role) (Principal, error) {
	p, ok := PrincipalFromContext(ctx)
	if !ok || p.UserID == 0 {
		return Principal{}, ErrUnauthenticated
	}
	if len(roles) == 0 {
		return p, nil
	}
	for _, r := range roles {
		if p.Role == r {
			return p, nil
		}
	}
	return Principal{}, ErrForbidden
}
