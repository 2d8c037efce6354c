package generation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// ErrSourceTextLength is returned when the source text is outside the
// accepted length range.
var ErrSourceTextLength = fmt.Errorf(
	"source text must be between %d and %d characters", MinSourceTextLength, MaxSourceTextLength)

// Result is the outcome of a successful generation.
type Result struct {
	GenerationID   string     `json:"generation_id"`
	Proposals      []Proposal `json:"proposals"`
	GeneratedCount int        `json:"generated_count"`
}

// Service turns source text into flashcard proposals and records each
// attempt as a session.
type Service struct {
	client   Client
	sessions SessionRepository
	now      func() time.Time
}

// NewService creates a new Service. The now function may be nil, in
// which case time.Now is used.
func NewService(client Client, sessions SessionRepository, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{
		client:   client,
		sessions: sessions,
		now:      now,
	}
}

// Generate validates the source text, records a session and asks the
// model for proposals. A failed model call leaves the session at a
// generated count of zero.
func (s *Service) Generate(ctx context.Context, userID, sourceText string) (Result, error) {
	if n := utf8.RuneCountInString(sourceText); n < MinSourceTextLength || n > MaxSourceTextLength {
		return Result{}, ErrSourceTextLength
	}

	session := Session{
		ID:         uuid.NewString(),
		UserID:     userID,
		SourceText: sourceText,
		CreatedAt:  s.now().UTC().Truncate(time.Second),
	}
	if err := s.sessions.Create(ctx, &session); err != nil {
		return Result{}, fmt.Errorf("sessions.Create() > %w", err)
	}

	proposals, err := s.client.GenerateFlashcards(ctx, sourceText)
	if err != nil {
		return Result{}, fmt.Errorf("client.GenerateFlashcards() > %w", err)
	}

	if err := s.sessions.SetGeneratedCount(ctx, userID, session.ID, len(proposals)); err != nil {
		// The proposals are already in hand; losing the count is not
		// worth failing the request over.
		slog.WarnContext(ctx, "Failed to record generated count",
			slog.String("generation_id", session.ID),
			slog.Any("error", err))
	}

	return Result{
		GenerationID:   session.ID,
		Proposals:      proposals,
		GeneratedCount: len(proposals),
	}, nil
}

// RecordAccepted stores how many proposals of a session the user kept.
func (s *Service) RecordAccepted(ctx context.Context, userID, generationID string, accepted int) (*Session, error) {
	if accepted < 0 {
		return nil, errors.New("accepted count must not be negative")
	}
	session, err := s.sessions.SetAcceptedCount(ctx, userID, generationID, accepted)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("sessions.SetAcceptedCount() > %w", err)
	}
	return session, nil
}

// History returns one page of the user's generation sessions.
func (s *Service) History(ctx context.Context, userID string, page, limit int) (SessionPage, error) {
	result, err := s.sessions.List(ctx, userID, page, limit)
	if err != nil {
		return SessionPage{}, fmt.Errorf("sessions.List() > %w", err)
	}
	return result, nil
}
