package ports

import (
	"context"

	"github.com/dinedesk/restaurant-system/internal/core/domain"
)

// RegisterInput carries the self-registration form.
type RegisterInput struct {
	Name     string
	Username string
	Email    string
	Password string
}

// IdentityService manages users and the user signed in to each session.
type IdentityService interface {
	Register(ctx context.Context, sessionID string, in RegisterInput) (*domain.User, error)
	Login(ctx context.Context, sessionID, username, password string) (*domain.User, error)
	Logout(ctx context.Context, sessionID string) error
	// CurrentUser returns nil when the session is anonymous.
	CurrentUser(ctx context.Context, sessionID string) (*domain.User, error)
}
