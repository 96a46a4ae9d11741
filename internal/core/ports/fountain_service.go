package ports

import (
	"context"

	"github.com/fountainmap/fountain-finder/internal/core/domain"
)

// CreateFountainInput carries all data needed to place a new fountain. The
// creator's username is resolved by the service and denormalized onto the
// document.
type CreateFountainInput struct {
	Name    string
	Address string
	Lat     float64
	Lng     float64
	UserID  string
}

// LocationFilter selects fountains inside a bounding box approximating a
// circle of RadiusKm around (Lat, Lng). A nil *LocationFilter means no
// spatial filtering.
type LocationFilter struct {
	Lat      float64
	Lng      float64
	RadiusKm float64
}

// AddReviewInput carries a review submission for a fountain.
type AddReviewInput struct {
	FountainID string
	Status     domain.Status
	Text       string
}

// FountainService defines use-case operations for fountains.
type FountainService interface {
	Create(ctx context.Context, input CreateFountainInput) (*domain.Fountain, error)
	List(ctx context.Context, filter *LocationFilter) ([]*domain.Fountain, error)
	Get(ctx context.Context, id string) (*domain.Fountain, error)
	AddReview(ctx context.Context, input AddReviewInput) (*domain.Fountain, error)
	// Report increments the fountain's report counter. Repeated reports by
	// the same user within the throttle window are acknowledged but not
	// counted.
	Report(ctx context.Context, id, userID string) error
	// Delete removes a fountain; only its creator may do so.
	Delete(ctx context.Context, id, userID string) error
}
