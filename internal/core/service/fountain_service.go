package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/fountainmap/fountain-finder/internal/api/metrics"
	"github.com/fountainmap/fountain-finder/internal/core/domain"
	"github.com/fountainmap/fountain-finder/internal/core/ports"
)

// FountainService implements fountain placement, lookup, reviews, reports,
// and owner-only deletion.
type FountainService struct {
	repo     ports.FountainRepository
	users    ports.UserRepository
	throttle ports.ReportThrottle
	logger   zerolog.Logger
}

func NewFountainService(repo ports.FountainRepository, users ports.UserRepository, throttle ports.ReportThrottle, logger zerolog.Logger) *FountainService {
	return &FountainService{repo: repo, users: users, throttle: throttle, logger: logger}
}

// Create places a new fountain. A fountain within ±0.0001° of the requested
// coordinates on both axes is treated as a duplicate and rejected. The check
// and the insert are two store operations; a race between near-simultaneous
// creations at the same spot is accepted.
func (s *FountainService) Create(ctx context.Context, input ports.CreateFountainInput) (*domain.Fountain, error) {
	exists, err := s.repo.ExistsWithin(ctx, domain.DuplicateLocationBox(input.Lat, input.Lng))
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrDuplicateLocation
	}

	creator, err := s.users.FindByID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	fountain, err := s.repo.Create(ctx, &domain.Fountain{
		Name:              input.Name,
		Address:           input.Address,
		Lat:               input.Lat,
		Lng:               input.Lng,
		Reviews:           []domain.Review{},
		CreatedBy:         creator.ID,
		CreatedByUsername: creator.Username,
		CreatedAt:         time.Now().UTC(),
	})
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create fountain")
		return nil, err
	}

	metrics.FountainsCreatedTotal.Inc()
	s.logger.Info().Str("fountain_id", fountain.ID).Str("created_by", creator.ID).Msg("fountain created")
	return fountain, nil
}

// List returns all fountains, newest first, optionally restricted to a
// bounding box approximating the requested radius.
func (s *FountainService) List(ctx context.Context, filter *ports.LocationFilter) ([]*domain.Fountain, error) {
	var box *domain.BoundingBox
	if filter != nil {
		b := domain.BoundingBoxAround(filter.Lat, filter.Lng, filter.RadiusKm)
		box = &b
	}
	return s.repo.FindAll(ctx, box)
}

// Get returns a single fountain by id.
func (s *FountainService) Get(ctx context.Context, id string) (*domain.Fountain, error) {
	return s.repo.FindByID(ctx, id)
}

// AddReview appends an immutable review to the fountain and returns the
// updated document. The append is a single document mutation.
func (s *FountainService) AddReview(ctx context.Context, input ports.AddReviewInput) (*domain.Fountain, error) {
	if !input.Status.IsValid() {
		return nil, domain.ErrInvalidStatus
	}

	fountain, err := s.repo.AppendReview(ctx, input.FountainID, domain.Review{
		Status:    input.Status,
		Text:      input.Text,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	metrics.ReviewsSubmittedTotal.WithLabelValues(string(input.Status)).Inc()
	return fountain, nil
}

// Report increments the fountain's report counter. A user reporting the same
// fountain again inside the throttle window is acknowledged without another
// increment. Throttle errors fail open: a report is never lost to an
// infrastructure fault.
func (s *FountainService) Report(ctx context.Context, id, userID string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}

	allowed := true
	if s.throttle != nil {
		ok, err := s.throttle.Allow(ctx, id, userID)
		if err != nil {
			s.logger.Warn().Err(err).Str("fountain_id", id).Msg("report throttle unavailable")
		} else {
			allowed = ok
		}
	}
	if !allowed {
		metrics.ReportsTotal.WithLabelValues("throttled").Inc()
		return nil
	}

	if err := s.repo.IncrementReportCount(ctx, id); err != nil {
		return err
	}

	metrics.ReportsTotal.WithLabelValues("counted").Inc()
	s.logger.Info().Str("fountain_id", id).Str("reported_by", userID).Msg("fountain reported")
	return nil
}

// Delete removes a fountain. Only the creating user may delete it.
func (s *FountainService) Delete(ctx context.Context, id, userID string) error {
	fountain, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if fountain.CreatedBy != userID {
		return domain.ErrNotFountainOwner
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Str("fountain_id", id).Str("deleted_by", userID).Msg("fountain deleted")
	return nil
}
