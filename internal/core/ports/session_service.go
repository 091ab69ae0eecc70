package ports

import "time"

// IssuedSession is a freshly opened anonymous session.
type IssuedSession struct {
	Token     string
	SessionID string
	ExpiresAt time.Time
}

// SessionService issues and verifies the bearer tokens that identify a session.
type SessionService interface {
	Issue() (*IssuedSession, error)
	// Parse returns the session id carried by token, or domain.ErrUnauthenticated.
	Parse(token string) (string, error)
}
