// Package study coordinates review sessions over the card collection.
package study

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mzalewski/cardlearn/internal/flashcard"
	"github.com/mzalewski/cardlearn/internal/reviewlog"
	"github.com/mzalewski/cardlearn/internal/scheduler"
)

// Session is one batch of due cards. TotalDue may exceed len(Cards); the
// caller drains the batch and re-queries to continue. An empty session is a
// normal terminal state, not an error.
type Session struct {
	Cards    []flashcard.Flashcard
	TotalDue int
}

// Service runs reviews and assembles study sessions. It holds no session
// state itself; progress through a batch belongs to the caller.
type Service struct {
	repo flashcard.Repository
	logs reviewlog.Repository
	now  func() time.Time
}

// NewService creates a study service. A nil clock falls back to time.Now.
func NewService(repo flashcard.Repository, logs reviewlog.Repository, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{repo: repo, logs: logs, now: now}
}

// Review grades a card and persists the resulting scheduling state.
//
// The rating is validated before any state is touched; an out-of-range
// rating surfaces scheduler.ErrInvalidRating and an unknown card surfaces
// flashcard.ErrNotFound. The write is a single statement scoped to the
// card row, so concurrent reviews of different cards never contend.
func (s *Service) Review(ctx context.Context, userID, cardID string, rating scheduler.Rating) (scheduler.Result, error) {
	card, err := s.repo.GetByID(ctx, userID, cardID)
	if err != nil {
		return scheduler.Result{}, fmt.Errorf("repo.GetByID() > %w", err)
	}

	result, err := scheduler.Review(card.SchedulingState(), rating, s.now())
	if err != nil {
		return scheduler.Result{}, err
	}

	if err := s.repo.UpdateScheduling(ctx, userID, cardID, result); err != nil {
		return scheduler.Result{}, fmt.Errorf("repo.UpdateScheduling() > %w", err)
	}

	// Review history is best effort; the graded state is already saved.
	if err := s.logs.Create(ctx, &reviewlog.ReviewLog{
		FlashcardID:     cardID,
		UserID:          userID,
		Rating:          int(rating),
		EaseFactor:      result.EaseFactor,
		IntervalDays:    result.Interval,
		RepetitionCount: result.RepetitionCount,
		ReviewedAt:      result.LastReviewedAt,
	}); err != nil {
		slog.WarnContext(ctx, "Failed to record review log", "flashcard_id", cardID, "error", err)
	}
	return result, nil
}

// History returns the most recent reviews of a card, newest first.
func (s *Service) History(ctx context.Context, userID, cardID string, limit int) ([]reviewlog.ReviewLog, error) {
	if _, err := s.repo.GetByID(ctx, userID, cardID); err != nil {
		return nil, fmt.Errorf("repo.GetByID() > %w", err)
	}
	logs, err := s.logs.FindByFlashcard(ctx, userID, cardID, limit)
	if err != nil {
		return nil, fmt.Errorf("logs.FindByFlashcard() > %w", err)
	}
	return logs, nil
}

// GetDueSession returns up to limit due cards ordered most overdue first,
// together with the total number of due cards.
func (s *Service) GetDueSession(ctx context.Context, userID string, limit int) (Session, error) {
	now := s.now()

	totalDue, err := s.repo.CountDue(ctx, userID, now)
	if err != nil {
		return Session{}, fmt.Errorf("repo.CountDue() > %w", err)
	}

	cards, err := s.repo.FindDue(ctx, userID, now, limit)
	if err != nil {
		return Session{}, fmt.Errorf("repo.FindDue() > %w", err)
	}

	return Session{Cards: cards, TotalDue: totalDue}, nil
}
