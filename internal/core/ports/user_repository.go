package ports

import (
	"context"

	"github.com/fountainmap/fountain-finder/internal/core/domain"
)

// UserRepository defines persistence operations for user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// FindByIdentifier matches the identifier against the username
	// (case-insensitive) or the email (lowercased) and returns the first hit.
	FindByIdentifier(ctx context.Context, identifier string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// UsernameExists reports whether another user (id != excludeID) already
	// holds the username, compared case-insensitively. An empty excludeID
	// means no exclusion.
	UsernameExists(ctx context.Context, username, excludeID string) (bool, error)
	// EmailExists is the email counterpart of UsernameExists. The email is
	// expected to be lowercased by the caller.
	EmailExists(ctx context.Context, email, excludeID string) (bool, error)
	// UpdateProfile sets the non-empty fields on the user and returns the
	// updated document.
	UpdateProfile(ctx context.Context, id, username, email string) (*domain.User, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
}
