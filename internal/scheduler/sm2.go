// Package scheduler implements the SM-2 spaced repetition algorithm.
package scheduler

import (
	"errors"
	"fmt"
	"math"
	"time"
)

const (
	DefaultEaseFactor = 2.5
	MinEaseFactor     = 1.3

	// Ratings below this value count as a failed recall.
	passingRating = 3
)

// ErrInvalidRating is returned when a rating is outside [0, 5].
// Out-of-range ratings are rejected, never clamped.
var ErrInvalidRating = errors.New("rating must be between 0 and 5")

// State holds the memory-strength parameters of a single card.
type State struct {
	EaseFactor      float64
	Interval        int
	RepetitionCount int
}

// NewState returns the state assigned to a card that has never been reviewed.
// Interval 0 means the card is immediately due.
func NewState() State {
	return State{EaseFactor: DefaultEaseFactor}
}

// Result is the outcome of a single review transition.
type Result struct {
	EaseFactor      float64
	Interval        int
	RepetitionCount int
	NextReviewDate  time.Time
	LastReviewedAt  time.Time
}

// Review computes the next scheduling state for a card.
//
// It is a pure function of (current, rating, now): no I/O, no hidden state,
// safe for concurrent callers. Persistence is the caller's responsibility.
// Timestamps are truncated to whole seconds in UTC, so
// NextReviewDate - LastReviewedAt is exactly Interval days.
func Review(current State, rating Rating, now time.Time) (Result, error) {
	if rating < RatingBlackout || rating > RatingPerfect {
		return Result{}, fmt.Errorf("%w: got %d", ErrInvalidRating, rating)
	}

	ease := current.EaseFactor
	if ease == 0 {
		ease = DefaultEaseFactor
	}

	repetitions := current.RepetitionCount
	interval := current.Interval

	if rating < passingRating {
		repetitions = 0
		interval = 1
	} else {
		repetitions++
		switch repetitions {
		case 1:
			interval = 1
		case 2:
			interval = 6
		default:
			// Grows from the pre-review ease factor. The ease update below
			// must not happen first: swapping the order changes the curve.
			interval = roundHalfAwayFromZero(float64(interval) * ease)
		}
	}

	reviewedAt := now.UTC().Truncate(time.Second)

	return Result{
		EaseFactor:      nextEaseFactor(ease, rating),
		Interval:        interval,
		RepetitionCount: repetitions,
		NextReviewDate:  reviewedAt.AddDate(0, 0, interval),
		LastReviewedAt:  reviewedAt,
	}, nil
}

// nextEaseFactor applies the SM-2 ease formula
// EF' = EF + (0.1 - (5 - q) * (0.08 + (5 - q) * 0.02))
// on every review, pass or fail, and clamps the result at MinEaseFactor.
// There is no upper bound.
func nextEaseFactor(ease float64, rating Rating) float64 {
	q := float64(rating)
	ease += 0.1 - (5-q)*(0.08+(5-q)*0.02)
	return math.Max(MinEaseFactor, ease)
}

// roundHalfAwayFromZero is the documented rounding policy for interval
// growth: round(6 * 2.5) = 15, not 14.
func roundHalfAwayFromZero(v float64) int {
	return int(math.Round(v))
}
