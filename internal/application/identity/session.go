package identity

import (
	"context"
	"time"

	"github.com/SiteOrganizo/organize-your-catalog/internal/domain/shared"
	"github.com/google/uuid"
)

// Session is the authenticated seller for one request. The auth middleware
// builds it from the access token and passes it down through the context.
type Session struct {
	UserID    uuid.UUID
	Email     string
	TokenJTI  string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// RemainingTTL returns how long the access token stays valid
func (s *Session) RemainingTTL() time.Duration {
	remaining := time.Until(s.ExpiresAt)
	if remaining < 0 {
		return 0
	}
	return remaining
}

type sessionKey struct{}

// WithSession returns a context carrying the session
func WithSession(ctx context.Context, session *Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, session)
}

// SessionFromContext returns the session stored in ctx, if any
func SessionFromContext(ctx context.Context) (*Session, bool) {
	session, ok := ctx.Value(sessionKey{}).(*Session)
	return session, ok && session != nil
}

// RequireSession returns the session or an unauthorized error
func RequireSession(ctx context.Context) (*Session, error) {
	session, ok := SessionFromContext(ctx)
	if !ok {
		return nil, shared.ErrUnauthorized
	}
	return session, nil
}
