// Package flashcard provides the flashcard domain model and repository.
package flashcard

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/mzalewski/cardlearn/internal/scheduler"
)

// ErrNotFound is returned when a flashcard does not exist or is owned by a
// different user. The two cases are indistinguishable on purpose.
var ErrNotFound = errors.New("flashcard not found")

const (
	// MaxFrontLength and MaxBackLength bound card text, in runes.
	MaxFrontLength = 500
	MaxBackLength  = 1000
	// MaxBatchSize bounds how many cards one create call may carry.
	MaxBatchSize = 100
)

// Source records how a flashcard was created.
type Source string

const (
	SourceManual      Source = "manual"
	SourceAIGenerated Source = "ai_generated"
)

// Valid reports whether the source is one of the known values.
func (s Source) Valid() bool {
	return s == SourceManual || s == SourceAIGenerated
}

// Flashcard is a single card together with its scheduling state.
type Flashcard struct {
	ID              string     `db:"id" json:"id"`
	UserID          string     `db:"user_id" json:"-"`
	Front           string     `db:"front" json:"front"`
	Back            string     `db:"back" json:"back"`
	Source          Source     `db:"source" json:"source"`
	EaseFactor      float64    `db:"ease_factor" json:"ease_factor"`
	IntervalDays    int        `db:"interval_days" json:"interval"`
	RepetitionCount int        `db:"repetition_count" json:"repetition_count"`
	NextReviewDate  time.Time  `db:"next_review_date" json:"next_review_date"`
	LastReviewedAt  *time.Time `db:"last_reviewed_at" json:"last_reviewed_at"`
	CreatedAt       time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time  `db:"updated_at" json:"updated_at"`
}

// SchedulingState extracts the card's memory-strength parameters.
func (f Flashcard) SchedulingState() scheduler.State {
	return scheduler.State{
		EaseFactor:      f.EaseFactor,
		Interval:        f.IntervalDays,
		RepetitionCount: f.RepetitionCount,
	}
}

// New creates a flashcard with default scheduling state. A card that has
// never been reviewed is immediately due.
func New(userID, front, back string, source Source, now time.Time) Flashcard {
	now = now.UTC().Truncate(time.Second)
	state := scheduler.NewState()

	return Flashcard{
		ID:              uuid.NewString(),
		UserID:          userID,
		Front:           front,
		Back:            back,
		Source:          source,
		EaseFactor:      state.EaseFactor,
		IntervalDays:    state.Interval,
		RepetitionCount: state.RepetitionCount,
		NextReviewDate:  now,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}
