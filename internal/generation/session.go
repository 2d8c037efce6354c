package generation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/jmoiron/sqlx"
)

//go:generate mockgen -source=session.go -destination=../mocks/generation/mock_session_repository.go -package=mock_generation

// ErrSessionNotFound is returned when a generation session does not exist
// or belongs to a different user.
var ErrSessionNotFound = errors.New("generation session not found")

// Session records one AI generation attempt. A session with
// GeneratedCount 0 marks a failed attempt and is kept for analysis.
type Session struct {
	ID             string    `db:"id" json:"id"`
	UserID         string    `db:"user_id" json:"-"`
	SourceText     string    `db:"source_text" json:"-"`
	GeneratedCount int       `db:"generated_count" json:"generated_count"`
	AcceptedCount  int       `db:"accepted_count" json:"accepted_count"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}

// Summary aggregates a user's generation history.
type Summary struct {
	TotalGenerated int     `json:"total_generated"`
	TotalAccepted  int     `json:"total_accepted"`
	AcceptanceRate float64 `json:"acceptance_rate"`
}

// SessionPage is one page of a user's generation history.
type SessionPage struct {
	Sessions   []Session
	Total      int
	TotalPages int
	Summary    Summary
}

// SessionRepository defines storage operations for generation sessions,
// scoped by the owning user.
type SessionRepository interface {
	Create(ctx context.Context, session *Session) error
	SetGeneratedCount(ctx context.Context, userID, id string, count int) error
	SetAcceptedCount(ctx context.Context, userID, id string, count int) (*Session, error)
	List(ctx context.Context, userID string, page, limit int) (SessionPage, error)
	Summarize(ctx context.Context, userID string) (Summary, error)
}

// DBSessionRepository implements SessionRepository on sqlx.
type DBSessionRepository struct {
	db *sqlx.DB
}

// NewDBSessionRepository creates a new DBSessionRepository.
func NewDBSessionRepository(db *sqlx.DB) *DBSessionRepository {
	return &DBSessionRepository{db: db}
}

// Create inserts a new generation session.
func (r *DBSessionRepository) Create(ctx context.Context, session *Session) error {
	if _, err := r.db.NamedExecContext(ctx,
		`INSERT INTO generation_sessions (id, user_id, source_text, generated_count, accepted_count, created_at)
		VALUES (:id, :user_id, :source_text, :generated_count, :accepted_count, :created_at)`,
		session); err != nil {
		return fmt.Errorf("db.NamedExecContext(insert generation_session) > %w", err)
	}
	return nil
}

// SetGeneratedCount records how many proposals a session produced.
func (r *DBSessionRepository) SetGeneratedCount(ctx context.Context, userID, id string, count int) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE generation_sessions SET generated_count = ? WHERE id = ? AND user_id = ?",
		count, id, userID)
	if err != nil {
		return fmt.Errorf("db.ExecContext(update generated_count) > %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("result.RowsAffected() > %w", err)
	}
	if rows == 0 {
		return ErrSessionNotFound
	}
	return nil
}

// SetAcceptedCount records how many proposals the user accepted and
// returns the updated session.
func (r *DBSessionRepository) SetAcceptedCount(ctx context.Context, userID, id string, count int) (*Session, error) {
	result, err := r.db.ExecContext(ctx,
		"UPDATE generation_sessions SET accepted_count = ? WHERE id = ? AND user_id = ?",
		count, id, userID)
	if err != nil {
		return nil, fmt.Errorf("db.ExecContext(update accepted_count) > %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("result.RowsAffected() > %w", err)
	}
	if rows == 0 {
		return nil, ErrSessionNotFound
	}

	var session Session
	err = r.db.GetContext(ctx, &session,
		"SELECT id, user_id, generated_count, accepted_count, created_at FROM generation_sessions WHERE id = ? AND user_id = ?",
		id, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("db.GetContext(generation_session) > %w", err)
	}
	return &session, nil
}

// List returns one page of the user's sessions, newest first, with the
// whole-history summary. Source text is excluded from listings.
func (r *DBSessionRepository) List(ctx context.Context, userID string, page, limit int) (SessionPage, error) {
	var total int
	if err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM generation_sessions WHERE user_id = ?", userID); err != nil {
		return SessionPage{}, fmt.Errorf("db.GetContext(count generation_sessions) > %w", err)
	}

	offset := (page - 1) * limit
	var sessions []Session
	if err := r.db.SelectContext(ctx, &sessions,
		`SELECT id, user_id, generated_count, accepted_count, created_at
		FROM generation_sessions
		WHERE user_id = ?
		ORDER BY created_at DESC
		LIMIT ? OFFSET ?`,
		userID, limit, offset); err != nil {
		return SessionPage{}, fmt.Errorf("db.SelectContext(generation_sessions) > %w", err)
	}

	summary, err := r.Summarize(ctx, userID)
	if err != nil {
		return SessionPage{}, err
	}

	return SessionPage{
		Sessions:   sessions,
		Total:      total,
		TotalPages: (total + limit - 1) / limit,
		Summary:    summary,
	}, nil
}

// Summarize aggregates the user's whole generation history.
func (r *DBSessionRepository) Summarize(ctx context.Context, userID string) (Summary, error) {
	var sums struct {
		Generated int `db:"generated"`
		Accepted  int `db:"accepted"`
	}
	if err := r.db.GetContext(ctx, &sums,
		`SELECT COALESCE(SUM(generated_count), 0) AS generated, COALESCE(SUM(accepted_count), 0) AS accepted
		FROM generation_sessions WHERE user_id = ?`, userID); err != nil {
		return Summary{}, fmt.Errorf("db.GetContext(sum generation_sessions) > %w", err)
	}
	return Summary{
		TotalGenerated: sums.Generated,
		TotalAccepted:  sums.Accepted,
		AcceptanceRate: acceptanceRate(sums.Generated, sums.Accepted),
	}, nil
}

// acceptanceRate is a percentage with two decimal places.
func acceptanceRate(generated, accepted int) float64 {
	if generated == 0 {
		return 0
	}
	return math.Round(float64(accepted)/float64(generated)*10000) / 100
}
