package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/fountainmap/fountain-finder/internal/core/domain"
	"github.com/fountainmap/fountain-finder/internal/core/ports"
)

// AuthService implements signup, login, profile updates, and password reset.
type AuthService struct {
	repo   ports.UserRepository
	tokens ports.TokenService
	logger zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, tokens ports.TokenService, logger zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, tokens: tokens, logger: logger}
}

// Signup creates an account and returns a bearer token for it. Email and
// username uniqueness are checked case-insensitively before the insert.
func (s *AuthService) Signup(ctx context.Context, username, email, password string) (string, *domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	username = strings.TrimSpace(username)

	if taken, err := s.repo.EmailExists(ctx, email, ""); err != nil {
		return "", nil, err
	} else if taken {
		return "", nil, domain.ErrEmailTaken
	}
	if taken, err := s.repo.UsernameExists(ctx, username, ""); err != nil {
		return "", nil, err
	} else if taken {
		return "", nil, domain.ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", nil, err
	}

	now := time.Now().UTC()
	user, err := s.repo.Create(ctx, &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return "", nil, err
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", nil, err
	}

	s.logger.Info().Str("user_id", user.ID).Str("username", user.Username).Msg("user signed up")
	return token, user, nil
}

// Login verifies credentials against the stored hash. The identifier may be
// a username or an email. An unknown identifier and a wrong password are
// indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, identifier, password string) (string, *domain.User, error) {
	if identifier == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByIdentifier(ctx, identifier)
	if err != nil {
		if err == domain.ErrUserNotFound {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", nil, err
	}

	return token, user, nil
}

// Me returns the account behind an authenticated user id.
func (s *AuthService) Me(ctx context.Context, userID string) (*domain.User, error) {
	return s.repo.FindByID(ctx, userID)
}

// UpdateProfile changes username and/or email. Empty fields are left
// untouched; uniqueness is re-checked excluding the caller's own record.
// Existing fountains keep the creator username they were created with.
func (s *AuthService) UpdateProfile(ctx context.Context, userID, username, email string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))

	if username != "" {
		taken, err := s.repo.UsernameExists(ctx, username, userID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, domain.ErrUsernameTaken
		}
	}
	if email != "" {
		taken, err := s.repo.EmailExists(ctx, email, userID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, domain.ErrEmailTaken
		}
	}

	return s.repo.UpdateProfile(ctx, userID, username, email)
}

// ResetPassword re-hashes and stores a new password for the account under
// email. The email is not verified for possession; the route is open.
func (s *AuthService) ResetPassword(ctx context.Context, email, newPassword string) error {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	if err := s.repo.UpdatePassword(ctx, user.ID, string(hash)); err != nil {
		return err
	}

	s.logger.Info().Str("user_id", user.ID).Msg("password reset")
	return nil
}
