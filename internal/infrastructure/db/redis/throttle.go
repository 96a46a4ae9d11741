package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const throttleWindow = time.Hour

// ReportThrottle limits counted fountain reports to one per user per
// fountain per window, backed by Redis.
// Key format: report:<fountain_id>:<user_id>
type ReportThrottle struct {
	client *redis.Client
}

// NewReportThrottle creates a ReportThrottle wrapping the given Redis client.
func NewReportThrottle(client *redis.Client) *ReportThrottle {
	return &ReportThrottle{client: client}
}

// Allow reports whether this user's report for this fountain should be
// counted, and records the attempt. The SET NX both checks and marks in one
// round trip; the key expires after throttleWindow.
func (t *ReportThrottle) Allow(ctx context.Context, fountainID, userID string) (bool, error) {
	ok, err := t.client.SetNX(ctx, t.key(fountainID, userID), "1", throttleWindow).Result()
	if err != nil {
		return false, fmt.Errorf("report throttle: %w", err)
	}
	return ok, nil
}

func (t *ReportThrottle) key(fountainID, userID string) string {
	return fmt.Sprintf("report:%s:%s", fountainID, userID)
}
