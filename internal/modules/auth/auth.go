package auth

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/chesterOps/ecommerce-backend/internal/apperr"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Principal identifies the authenticated caller of a request.
type Principal struct {
	UserID uuid.UUID
	Role   string
}

type contextKey struct{}

// FromContext returns the principal attached to ctx, if any.
func FromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(contextKey{}).(Principal)
	return p, ok
}

// WithPrincipal returns a copy of ctx carrying p.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, contextKey{}, p)
}

// Claims are the JWT claims issued at login.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// TokenTTL is how long an issued token stays valid.
const TokenTTL = 24 * time.Hour

// Auth issues and verifies tokens and provides the route middleware.
type Auth struct {
	secret []byte
}

func New(secret string) *Auth { return &Auth{secret: []byte(secret)} }

// IssueToken signs a token for the given user.
func (a *Auth) IssueToken(userID uuid.UUID, role string) (string, error) {
	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(TokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
}

// VerifyToken parses and validates a signed token.
func (a *Auth) VerifyToken(token string) (Principal, error) {
	var claims Claims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return a.secret, nil
	})
	if err != nil || !parsed.Valid {
		return Principal{}, apperr.Wrap(apperr.KindUnauthorized, "invalid or expired token", err)
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return Principal{}, apperr.Wrap(apperr.KindUnauthorized, "invalid token subject", err)
	}
	return Principal{UserID: userID, Role: claims.Role}, nil
}

// tokenFromRequest reads the bearer token from the Authorization header,
// falling back to the token cookie.
func tokenFromRequest(r *http.Request) string {
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	if c, err := r.Cookie("token"); err == nil {
		return c.Value
	}
	return ""
}
