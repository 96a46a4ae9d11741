package ports

import (
	"context"

	"github.com/fountainmap/fountain-finder/internal/core/domain"
)

// AuthService implements the account lifecycle: signup, login, profile
// updates, and password reset.
type AuthService interface {
	// Signup creates an account and returns a fresh bearer token for it.
	Signup(ctx context.Context, username, email, password string) (string, *domain.User, error)
	// Login accepts a username or an email as identifier.
	Login(ctx context.Context, identifier, password string) (string, *domain.User, error)
	Me(ctx context.Context, userID string) (*domain.User, error)
	// UpdateProfile changes username and/or email; empty fields are left
	// untouched. Uniqueness is re-checked against all other users.
	UpdateProfile(ctx context.Context, userID, username, email string) (*domain.User, error)
	// ResetPassword sets a new password for the account registered under
	// email. There is no possession proof on this path.
	ResetPassword(ctx context.Context, email, newPassword string) error
}
