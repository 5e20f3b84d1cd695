package providers

import (
	"context"
	"time"

	"github.com/clinicbook/clinicbook/internal/domain/entities"
)

// BookingDraftStore holds the in-progress booking selection between the
// schedule-selection step and confirmation. Drafts are scoped to one
// session, expire on their own, and are discarded once confirmed.
type BookingDraftStore interface {
	// Save stores the draft under the session key with the given TTL,
	// replacing any previous draft for that session.
	Save(ctx context.Context, sessionID string, draft *entities.BookingDraft, ttl time.Duration) error

	// Get retrieves the session's draft. A missing or expired draft
	// returns a not-found error.
	Get(ctx context.Context, sessionID string) (*entities.BookingDraft, error)

	// Delete discards the session's draft. Deleting a missing draft is a
	// no-op.
	Delete(ctx context.Context, sessionID string) error
}

// SessionStore holds login sessions keyed by opaque token.
type SessionStore interface {
	// Create stores a session with the given TTL.
	Create(ctx context.Context, session *entities.Session, ttl time.Duration) error

	// Get retrieves a session by token. Missing or expired sessions
	// return a not-found error.
	Get(ctx context.Context, token string) (*entities.Session, error)

	// Delete removes a session.
	Delete(ctx context.Context, token string) error
}
