// Package statistics aggregates per-user counters for the profile view.
package statistics

import (
	"context"
	"fmt"
	"time"

	"github.com/mzalewski/cardlearn/internal/flashcard"
	"github.com/mzalewski/cardlearn/internal/generation"
)

// Profile is the full set of per-user statistics.
type Profile struct {
	Flashcards FlashcardStatistics  `json:"flashcards"`
	Generation GenerationStatistics `json:"generation"`
}

// FlashcardStatistics counts the user's collection by origin plus the
// current review backlog.
type FlashcardStatistics struct {
	Total       int `json:"total"`
	Manual      int `json:"manual"`
	AIGenerated int `json:"ai_generated"`
	Due         int `json:"due"`
}

// GenerationStatistics summarizes the user's AI generation history.
type GenerationStatistics struct {
	TotalGenerated int     `json:"total_generated"`
	TotalAccepted  int     `json:"total_accepted"`
	AcceptanceRate float64 `json:"acceptance_rate"`
}

// Service computes profile statistics from the flashcard and generation
// stores.
type Service struct {
	cards    flashcard.Repository
	sessions generation.SessionRepository
	now      func() time.Time
}

// NewService creates a new Service. The now function may be nil, in
// which case time.Now is used.
func NewService(cards flashcard.Repository, sessions generation.SessionRepository, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{
		cards:    cards,
		sessions: sessions,
		now:      now,
	}
}

// Profile returns the user's statistics as of now.
func (s *Service) Profile(ctx context.Context, userID string) (Profile, error) {
	stats, err := s.cards.Stats(ctx, userID, s.now().UTC())
	if err != nil {
		return Profile{}, fmt.Errorf("cards.Stats() > %w", err)
	}
	summary, err := s.sessions.Summarize(ctx, userID)
	if err != nil {
		return Profile{}, fmt.Errorf("sessions.Summarize() > %w", err)
	}
	return Profile{
		Flashcards: FlashcardStatistics{
			Total:       stats.Total,
			Manual:      stats.Manual,
			AIGenerated: stats.AIGenerated,
			Due:         stats.Due,
		},
		Generation: GenerationStatistics{
			TotalGenerated: summary.TotalGenerated,
			TotalAccepted:  summary.TotalAccepted,
			AcceptanceRate: summary.AcceptanceRate,
		},
	}, nil
}
