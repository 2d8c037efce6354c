package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReview(t *testing.T) {
	now := time.Date(2025, 6, 1, 10, 30, 0, 0, time.UTC)

	tests := []struct {
		name            string
		current         State
		rating          Rating
		wantEase        float64
		wantInterval    int
		wantRepetitions int
	}{
		{
			name:            "first review with perfect recall",
			current:         State{EaseFactor: 2.5, Interval: 0, RepetitionCount: 0},
			rating:          RatingPerfect,
			wantEase:        2.6,
			wantInterval:    1,
			wantRepetitions: 1,
		},
		{
			name:            "second review jumps to six days",
			current:         State{EaseFactor: 2.5, Interval: 1, RepetitionCount: 1},
			rating:          RatingCorrectHesitant,
			wantEase:        2.5,
			wantInterval:    6,
			wantRepetitions: 2,
		},
		{
			name:            "third review multiplies by pre-review ease factor",
			current:         State{EaseFactor: 2.5, Interval: 6, RepetitionCount: 2},
			rating:          RatingCorrectDifficult,
			wantEase:        2.36,
			wantInterval:    15, // round(6 * 2.5), not round(6 * 2.36)
			wantRepetitions: 3,
		},
		{
			name:            "blackout resets repetitions and interval",
			current:         State{EaseFactor: 2.5, Interval: 15, RepetitionCount: 5},
			rating:          RatingBlackout,
			wantEase:        1.7,
			wantInterval:    1,
			wantRepetitions: 0,
		},
		{
			name:            "ease factor clamps at the floor",
			current:         State{EaseFactor: 1.35, Interval: 1, RepetitionCount: 0},
			rating:          RatingBlackout,
			wantEase:        1.3, // raw formula gives 0.55
			wantInterval:    1,
			wantRepetitions: 0,
		},
		{
			name:            "failed recall keeps ease penalty from original rating",
			current:         State{EaseFactor: 2.5, Interval: 40, RepetitionCount: 8},
			rating:          RatingIncorrectFamiliar,
			wantEase:        2.18,
			wantInterval:    1,
			wantRepetitions: 0,
		},
		{
			name:            "perfect recall always increases ease factor",
			current:         State{EaseFactor: 1.3, Interval: 1, RepetitionCount: 0},
			rating:          RatingPerfect,
			wantEase:        1.4,
			wantInterval:    1,
			wantRepetitions: 1,
		},
		{
			name:            "zero ease factor falls back to the default",
			current:         State{Interval: 6, RepetitionCount: 2},
			rating:          RatingCorrectDifficult,
			wantEase:        2.36,
			wantInterval:    15,
			wantRepetitions: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Review(tt.current, tt.rating, now)
			require.NoError(t, err)

			assert.InDelta(t, tt.wantEase, got.EaseFactor, 0.0001)
			assert.Equal(t, tt.wantInterval, got.Interval)
			assert.Equal(t, tt.wantRepetitions, got.RepetitionCount)
			assert.Equal(t, now, got.LastReviewedAt)
			assert.Equal(t, now.AddDate(0, 0, tt.wantInterval), got.NextReviewDate)
		})
	}
}

func TestReview_InvalidRating(t *testing.T) {
	now := time.Date(2025, 6, 1, 10, 30, 0, 0, time.UTC)

	for _, rating := range []Rating{-1, 6, 100} {
		_, err := Review(NewState(), rating, now)
		assert.ErrorIs(t, err, ErrInvalidRating)
	}
}

func TestReview_Deterministic(t *testing.T) {
	now := time.Date(2025, 6, 1, 10, 30, 0, 0, time.UTC)
	current := State{EaseFactor: 2.2, Interval: 12, RepetitionCount: 4}

	first, err := Review(current, RatingCorrectHesitant, now)
	require.NoError(t, err)
	second, err := Review(current, RatingCorrectHesitant, now)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestReview_EaseFactorNeverBelowFloor(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	// Repeated blackouts must never push the ease factor under the floor.
	state := NewState()
	for i := 0; i < 10; i++ {
		result, err := Review(state, RatingBlackout, now)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, result.EaseFactor, MinEaseFactor)
		state = State{
			EaseFactor:      result.EaseFactor,
			Interval:        result.Interval,
			RepetitionCount: result.RepetitionCount,
		}
	}
	assert.Equal(t, MinEaseFactor, state.EaseFactor)
}

func TestReview_TruncatesToSeconds(t *testing.T) {
	now := time.Date(2025, 6, 1, 10, 30, 15, 987654321, time.UTC)

	got, err := Review(NewState(), RatingPerfect, now)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2025, 6, 1, 10, 30, 15, 0, time.UTC), got.LastReviewedAt)
	assert.Equal(t, 24*time.Hour, got.NextReviewDate.Sub(got.LastReviewedAt))
}

func TestRating_Passed(t *testing.T) {
	assert.False(t, RatingBlackout.Passed())
	assert.False(t, RatingIncorrectRecognized.Passed())
	assert.False(t, RatingIncorrectFamiliar.Passed())
	assert.True(t, RatingCorrectDifficult.Passed())
	assert.True(t, RatingCorrectHesitant.Passed())
	assert.True(t, RatingPerfect.Passed())
}
