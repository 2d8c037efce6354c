package flashcard

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mzalewski/cardlearn/internal/config"
	"github.com/mzalewski/cardlearn/internal/database"
	"github.com/mzalewski/cardlearn/internal/scheduler"
)

func newTestRepository(t *testing.T) *DBRepository {
	t.Helper()

	db, err := database.Open(config.DatabaseConfig{Driver: "sqlite3", Path: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, database.Migrate(context.Background(), db))
	return NewDBRepository(db)
}

func TestDBRepository_CreateAndGet(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	card := New("user-1", "What is Go?", "A programming language", SourceManual, now)
	require.NoError(t, repo.Create(ctx, []Flashcard{card}))

	got, err := repo.GetByID(ctx, "user-1", card.ID)
	require.NoError(t, err)

	assert.Equal(t, card.ID, got.ID)
	assert.Equal(t, "What is Go?", got.Front)
	assert.Equal(t, "A programming language", got.Back)
	assert.Equal(t, SourceManual, got.Source)
	assert.Equal(t, scheduler.DefaultEaseFactor, got.EaseFactor)
	assert.Equal(t, 0, got.IntervalDays)
	assert.Equal(t, 0, got.RepetitionCount)
	assert.True(t, got.NextReviewDate.Equal(now), "new card should be immediately due")
	assert.Nil(t, got.LastReviewedAt)
}

func TestDBRepository_GetByID_Scoping(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	card := New("user-1", "front", "back", SourceManual, now)
	require.NoError(t, repo.Create(ctx, []Flashcard{card}))

	_, err := repo.GetByID(ctx, "user-2", card.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDBRepository_List(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	var cards []Flashcard
	for i := 0; i < 25; i++ {
		cards = append(cards, New("user-1", fmt.Sprintf("front %d", i), "back", SourceManual, base.Add(time.Duration(i)*time.Minute)))
	}
	require.NoError(t, repo.Create(ctx, cards))
	// Another user's cards must not leak into the listing.
	require.NoError(t, repo.Create(ctx, []Flashcard{New("user-2", "other", "back", SourceManual, base)}))

	tests := []struct {
		name       string
		params     ListParams
		wantLen    int
		wantFirst  string
		wantPages  int
	}{
		{
			name:      "first page newest first",
			params:    ListParams{Page: 1, Limit: 10, Sort: "created_at", Order: "desc"},
			wantLen:   10,
			wantFirst: "front 24",
			wantPages: 3,
		},
		{
			name:      "last page is partial",
			params:    ListParams{Page: 3, Limit: 10, Sort: "created_at", Order: "desc"},
			wantLen:   5,
			wantFirst: "front 4",
			wantPages: 3,
		},
		{
			name:      "ascending order",
			params:    ListParams{Page: 1, Limit: 5, Sort: "created_at", Order: "asc"},
			wantLen:   5,
			wantFirst: "front 0",
			wantPages: 5,
		},
		{
			name:      "unknown sort column falls back to created_at",
			params:    ListParams{Page: 1, Limit: 5, Sort: "front; DROP TABLE flashcards", Order: "asc"},
			wantLen:   5,
			wantFirst: "front 0",
			wantPages: 5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := repo.List(ctx, "user-1", tt.params)
			require.NoError(t, err)

			assert.Equal(t, 25, page.Total)
			assert.Equal(t, tt.wantPages, page.TotalPages)
			require.Len(t, page.Cards, tt.wantLen)
			assert.Equal(t, tt.wantFirst, page.Cards[0].Front)
		})
	}
}

func TestDBRepository_Update(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	card := New("user-1", "old front", "old back", SourceManual, now)
	require.NoError(t, repo.Create(ctx, []Flashcard{card}))

	front := "new front"
	updated, err := repo.Update(ctx, "user-1", card.ID, UpdateParams{Front: &front}, now.Add(time.Hour))
	require.NoError(t, err)

	assert.Equal(t, "new front", updated.Front)
	assert.Equal(t, "old back", updated.Back)
	assert.True(t, updated.UpdatedAt.After(updated.CreatedAt))

	_, err = repo.Update(ctx, "user-1", "missing-id", UpdateParams{Front: &front}, now)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDBRepository_Delete(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	card := New("user-1", "front", "back", SourceManual, now)
	require.NoError(t, repo.Create(ctx, []Flashcard{card}))

	require.NoError(t, repo.Delete(ctx, "user-1", card.ID))
	assert.ErrorIs(t, repo.Delete(ctx, "user-1", card.ID), ErrNotFound)
}

func TestDBRepository_FindDueAndCountDue(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	// 25 due cards with staggered due dates, plus one scheduled in the future.
	var cards []Flashcard
	for i := 0; i < 25; i++ {
		card := New("user-1", fmt.Sprintf("due %d", i), "back", SourceManual, now.Add(-time.Duration(25-i)*time.Hour))
		cards = append(cards, card)
	}
	future := New("user-1", "future", "back", SourceManual, now)
	future.NextReviewDate = now.AddDate(0, 0, 3)
	cards = append(cards, future)
	require.NoError(t, repo.Create(ctx, cards))

	total, err := repo.CountDue(ctx, "user-1", now)
	require.NoError(t, err)
	assert.Equal(t, 25, total)

	due, err := repo.FindDue(ctx, "user-1", now, 20)
	require.NoError(t, err)
	require.Len(t, due, 20)

	// Most overdue first, non-decreasing by next review date.
	assert.Equal(t, "due 0", due[0].Front)
	for i := 1; i < len(due); i++ {
		assert.False(t, due[i].NextReviewDate.Before(due[i-1].NextReviewDate))
	}
}

func TestDBRepository_FindDue_EmptySet(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	due, err := repo.FindDue(ctx, "user-1", now, 20)
	require.NoError(t, err)
	assert.Empty(t, due)

	count, err := repo.CountDue(ctx, "user-1", now)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestDBRepository_UpdateScheduling(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	card := New("user-1", "front", "back", SourceManual, now)
	require.NoError(t, repo.Create(ctx, []Flashcard{card}))

	result, err := scheduler.Review(card.SchedulingState(), scheduler.RatingPerfect, now)
	require.NoError(t, err)
	require.NoError(t, repo.UpdateScheduling(ctx, "user-1", card.ID, result))

	got, err := repo.GetByID(ctx, "user-1", card.ID)
	require.NoError(t, err)
	assert.InDelta(t, 2.6, got.EaseFactor, 0.0001)
	assert.Equal(t, 1, got.IntervalDays)
	assert.Equal(t, 1, got.RepetitionCount)
	assert.True(t, got.NextReviewDate.Equal(now.AddDate(0, 0, 1)))
	require.NotNil(t, got.LastReviewedAt)
	assert.True(t, got.LastReviewedAt.Equal(now))

	assert.ErrorIs(t, repo.UpdateScheduling(ctx, "user-2", card.ID, result), ErrNotFound)
}

func TestDBRepository_Stats(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	manual := New("user-1", "manual", "back", SourceManual, now.Add(-time.Hour))
	generated := New("user-1", "generated", "back", SourceAIGenerated, now.Add(-time.Hour))
	scheduled := New("user-1", "scheduled", "back", SourceManual, now)
	scheduled.NextReviewDate = now.AddDate(0, 0, 5)
	require.NoError(t, repo.Create(ctx, []Flashcard{manual, generated, scheduled}))

	stats, err := repo.Stats(ctx, "user-1", now)
	require.NoError(t, err)

	assert.Equal(t, Stats{Total: 3, Manual: 2, AIGenerated: 1, Due: 2}, stats)
}
