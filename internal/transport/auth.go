package transport

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/ganot/guildhall/internal/domain/roster"
	"github.com/golang-jwt/jwt/v5"
)

// ErrUnauthorized indicates invalid or missing credentials.
var ErrUnauthorized = errors.New("unauthorized")

type identityKey struct{}

// Identity is the authenticated caller. Tokens are minted by the external
// identity service; this server only verifies them. Member is nil when the
// subject has not applied to the roster yet.
type Identity struct {
	Subject string
	Member  *roster.Member
}

// IdentityFromContext returns the caller identity, if present.
func IdentityFromContext(ctx context.Context) (*Identity, bool) {
	ident, ok := ctx.Value(identityKey{}).(*Identity)
	return ident, ok
}

// MemberLoader resolves roster members for authenticated subjects.
type MemberLoader interface {
	Get(ctx context.Context, id string) (*roster.Member, error)
}

// Authenticator verifies bearer tokens and attaches the caller identity.
type Authenticator struct {
	secret  []byte
	members MemberLoader
}

// NewAuthenticator creates an Authenticator.
func NewAuthenticator(secret string, members MemberLoader) *Authenticator {
	return &Authenticator{secret: []byte(secret), members: members}
}

// Middleware enforces bearer token authentication.
func (a *Authenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth := r.Header.Get("Authorization")
		token := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
		if token == "" {
			http.Error(w, "missing bearer token", http.StatusUnauthorized)
			return
		}

		subject, err := a.verify(token)
		if err != nil || subject == "" {
			http.Error(w, "invalid bearer token", http.StatusUnauthorized)
			return
		}

		ident := &Identity{Subject: subject}
		m, err := a.members.Get(r.Context(), subject)
		if err == nil {
			ident.Member = m
		} else if !errors.Is(err, roster.ErrMemberNotFound) {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		ctx := context.WithValue(r.Context(), identityKey{}, ident)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (a *Authenticator) verify(token string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return "", ErrUnauthorized
	}
	return claims.Subject, nil
}

// RequireActive gates routes on approved guild membership.
func RequireActive(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ident, ok := IdentityFromContext(r.Context())
		if !ok {
			http.Error(w, "missing identity", http.StatusUnauthorized)
			return
		}
		if ident.Member == nil || !ident.Member.IsActive() {
			http.Error(w, "guild membership required", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}
