package ports

import (
	"context"

	"github.com/fountainmap/fountain-finder/internal/core/domain"
)

// FountainRepository defines persistence operations for fountains. Review
// append and report increment are single-document mutations: the repository
// is the unit of atomicity, callers never coordinate a read-modify-write.
type FountainRepository interface {
	Create(ctx context.Context, f *domain.Fountain) (*domain.Fountain, error)
	FindByID(ctx context.Context, id string) (*domain.Fountain, error)
	// FindAll returns fountains sorted by creation time, newest first. A nil
	// box applies no spatial filter.
	FindAll(ctx context.Context, box *domain.BoundingBox) ([]*domain.Fountain, error)
	// ExistsWithin reports whether any fountain lies inside the box.
	ExistsWithin(ctx context.Context, box domain.BoundingBox) (bool, error)
	// AppendReview pushes the review onto the fountain's review list and
	// returns the updated document.
	AppendReview(ctx context.Context, id string, review domain.Review) (*domain.Fountain, error)
	IncrementReportCount(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}
