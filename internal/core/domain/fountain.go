package domain

import (
	"errors"
	"time"
)

// Status is the drinkability rating attached to a review and derived
// for a fountain as a whole.
type Status string

const (
	StatusRed    Status = "red"
	StatusYellow Status = "yellow"
	StatusGreen  Status = "green"
)

var ErrFountainNotFound = errors.New("fountain not found")
var ErrDuplicateLocation = errors.New("a fountain already exists at this location")
var ErrNotFountainOwner = errors.New("not authorized to modify this fountain")
var ErrInvalidStatus = errors.New("status must be red, yellow, or green")

// IsValid reports whether s is one of the three known statuses.
func (s Status) IsValid() bool {
	switch s {
	case StatusRed, StatusYellow, StatusGreen:
		return true
	}
	return false
}

// Review is an immutable status+comment submission embedded in a fountain.
// Reviews have no identity of their own; insertion order is submission order.
type Review struct {
	Status    Status    `json:"status" bson:"status"`
	Text      string    `json:"text" bson:"text"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// Fountain is the core aggregate root: a reviewable point of interest.
type Fountain struct {
	ID                string    `json:"id" bson:"_id,omitempty"`
	Name              string    `json:"name" bson:"name"`
	Address           string    `json:"address" bson:"address"`
	Lat               float64   `json:"lat" bson:"lat"`
	Lng               float64   `json:"lng" bson:"lng"`
	Reviews           []Review  `json:"reviews" bson:"reviews"`
	CreatedBy         string    `json:"created_by" bson:"created_by"`
	CreatedByUsername string    `json:"created_by_username" bson:"created_by_username"`
	CreatedAt         time.Time `json:"created_at" bson:"created_at"`
	ReportCount       int       `json:"report_count" bson:"report_count"`
}

// CurrentStatus computes the display status of a review sequence by majority
// vote. An empty sequence yields yellow (unknown). Counts are scanned in the
// fixed order green, yellow, red with a strict improvement over a running
// maximum seeded at (yellow, 0), so green wins a tie against both and yellow
// wins a tie against red.
func CurrentStatus(reviews []Review) Status {
	if len(reviews) == 0 {
		return StatusYellow
	}

	counts := map[Status]int{}
	for _, r := range reviews {
		counts[r.Status]++
	}

	best := StatusYellow
	bestCount := 0
	for _, s := range []Status{StatusGreen, StatusYellow, StatusRed} {
		if counts[s] > bestCount {
			best = s
			bestCount = counts[s]
		}
	}
	return best
}

// CurrentStatus returns the fountain's derived display status.
func (f *Fountain) CurrentStatus() Status {
	return CurrentStatus(f.Reviews)
}
