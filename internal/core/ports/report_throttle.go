package ports

import "context"

// ReportThrottle limits how often a single user's reports against the same
// fountain are counted.
type ReportThrottle interface {
	// Allow returns true when this user's report for this fountain should be
	// counted, and records the attempt.
	Allow(ctx context.Context, fountainID, userID string) (bool, error)
}
