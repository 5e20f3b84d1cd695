package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/clinicbook/clinicbook/internal/domain/entities"
	"github.com/clinicbook/clinicbook/internal/domain/providers"
)

// SessionCookieName is the cookie carrying the opaque session token.
const SessionCookieName = "session_token"

type contextKey string

const identityKey contextKey = "identity"

// Identity is the authenticated caller resolved from the session token.
type Identity struct {
	UserID    string
	Role      entities.Role
	Name      string
	PatientID string
	DoctorID  string
	Token     string
}

// IdentityFromContext returns the authenticated caller, if any.
func IdentityFromContext(ctx context.Context) (*Identity, bool) {
	identity, ok := ctx.Value(identityKey).(*Identity)
	return identity, ok
}

// ContextWithIdentity attaches an authenticated caller to the context.
func ContextWithIdentity(ctx context.Context, identity *Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

// AuthMiddleware resolves session tokens into identities and enforces
// role requirements. It is the single authorization guard; services still
// scope queries to the resource owner.
type AuthMiddleware struct {
	sessions providers.SessionStore
}

// NewAuthMiddleware creates a new auth middleware
func NewAuthMiddleware(sessions providers.SessionStore) *AuthMiddleware {
	return &AuthMiddleware{sessions: sessions}
}

// tokenFromRequest reads the session token from the cookie or, for API
// clients, a bearer Authorization header.
func tokenFromRequest(r *http.Request) string {
	if cookie, err := r.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}

	return ""
}

// RequireRole wraps a handler so only sessions with one of the given
// roles pass. An empty role list only requires a valid session.
func (m *AuthMiddleware) RequireRole(roles ...entities.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := tokenFromRequest(r)
			if token == "" {
				respondUnauthorized(w, "authentication required")
				return
			}

			session, err := m.sessions.Get(r.Context(), token)
			if err != nil {
				respondUnauthorized(w, "session expired or not found")
				return
			}

			if len(roles) > 0 && !roleAllowed(session.Role, roles) {
				respondForbidden(w)
				return
			}

			identity := &Identity{
				UserID:    session.UserID,
				Role:      session.Role,
				Name:      session.Name,
				PatientID: session.PatientID,
				DoctorID:  session.DoctorID,
				Token:     session.Token,
			}

			next.ServeHTTP(w, r.WithContext(ContextWithIdentity(r.Context(), identity)))
		})
	}
}

func roleAllowed(role entities.Role, allowed []entities.Role) bool {
	for _, a := range allowed {
		if a == role {
			return true
		}
	}
	return false
}

func respondUnauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"error":"` + message + `"}`))
}

func respondForbidden(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusForbidden)
	w.Write([]byte(`{"error":"insufficient permissions"}`))
}
