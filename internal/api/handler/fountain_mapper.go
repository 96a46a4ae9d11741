package handler

import (
	"github.com/fountainmap/fountain-finder/internal/core/domain"
)

// --- Domain → HTTP response ---

func toFountainResponse(f *domain.Fountain) fountainResponse {
	reviews := make([]reviewResponse, len(f.Reviews))
	for i, r := range f.Reviews {
		reviews[i] = reviewResponse{
			Status:    string(r.Status),
			Text:      r.Text,
			CreatedAt: r.CreatedAt.UTC(),
		}
	}

	return fountainResponse{
		ID:                f.ID,
		Name:              f.Name,
		Address:           f.Address,
		Lat:               f.Lat,
		Lng:               f.Lng,
		Reviews:           reviews,
		CurrentStatus:     string(f.CurrentStatus()),
		CreatedBy:         f.CreatedBy,
		CreatedByUsername: f.CreatedByUsername,
		CreatedAt:         f.CreatedAt.UTC(),
		ReportCount:       f.ReportCount,
	}
}

func toFountainList(fountains []*domain.Fountain) []fountainResponse {
	out := make([]fountainResponse, len(fountains))
	for i, f := range fountains {
		out[i] = toFountainResponse(f)
	}
	return out
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
	}
}
