package middleware

import (
	"net/http"

	"github.com/JonMunkholm/portal/internal/auth"
	"github.com/JonMunkholm/portal/internal/core"
	"github.com/JonMunkholm/portal/internal/logging"
)

// TokenParser verifies a session token. *auth.Manager implements it.
type TokenParser interface {
	Parse(token string) (core.Principal, error)
}

// Session attaches the principal of a valid session cookie to the request
// context. Requests without a valid cookie pass through anonymously; the
// service decides what they may do.
func Session(tokens TokenParser) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c, err := r.Cookie(auth.CookieName)
			if err != nil || c.Value == "" {
				next.ServeHTTP(w, r)
				return
			}

			p, err := tokens.Parse(c.Value)
			if err != nil {
				logging.FromContext(r.Context()).Debug("session rejected", "error", err)
				next.ServeHTTP(w, r)
				return
			}

			ctx := core.ContextWithPrincipal(r.Context(), p)
			ctx = logging.ContextWith(ctx, "user_id", p.UserID, "role", p.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
