package auth

import (
	"net/http"

	"github.com/chesterOps/ecommerce-backend/internal/apperr"
	"github.com/chesterOps/ecommerce-backend/internal/httpx"
)

// Require rejects requests without a valid token.
func (a *Auth) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := tokenFromRequest(r)
		if token == "" {
			httpx.Error(w, nil, apperr.New(apperr.KindUnauthorized, "please log in"))
			return
		}
		p, err := a.VerifyToken(token)
		if err != nil {
			httpx.Error(w, nil, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), p)))
	})
}

// Optional attaches the principal when a valid token is present and lets the
// request through either way. Guest checkout depends on this.
func (a *Auth) Optional(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if token := tokenFromRequest(r); token != "" {
			if p, err := a.VerifyToken(token); err == nil {
				r = r.WithContext(WithPrincipal(r.Context(), p))
			}
		}
		next.ServeHTTP(w, r)
	})
}

// RequireRole rejects authenticated requests whose principal lacks one of the
// given roles. It must run after Require.
func RequireRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, ok := FromContext(r.Context())
			if !ok {
				httpx.Error(w, nil, apperr.New(apperr.KindUnauthorized, "please log in"))
				return
			}
			for _, role := range roles {
				if p.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			httpx.Error(w, nil, apperr.Forbidden("you do not have permission to access this resource"))
		})
	}
}
