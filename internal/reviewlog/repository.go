// Package reviewlog provides the review history domain model and
// repository interfaces.
package reviewlog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

//go:generate mockgen -source=repository.go -destination=../mocks/reviewlog/mock_repository.go -package=mock_reviewlog

// ReviewLog is one recorded review of a flashcard, with the scheduling
// state the review produced.
type ReviewLog struct {
	ID              string    `db:"id" json:"id"`
	FlashcardID     string    `db:"flashcard_id" json:"flashcard_id"`
	UserID          string    `db:"user_id" json:"-"`
	Rating          int       `db:"rating" json:"rating"`
	EaseFactor      float64   `db:"ease_factor" json:"ease_factor"`
	IntervalDays    int       `db:"interval_days" json:"interval"`
	RepetitionCount int       `db:"repetition_count" json:"repetition_count"`
	ReviewedAt      time.Time `db:"reviewed_at" json:"reviewed_at"`
}

// Repository defines operations for managing review logs.
type Repository interface {
	Create(ctx context.Context, log *ReviewLog) error
	FindByFlashcard(ctx context.Context, userID, flashcardID string, limit int) ([]ReviewLog, error)
	FindLatestByFlashcard(ctx context.Context, userID, flashcardID string) (*ReviewLog, error)
	CountSince(ctx context.Context, userID string, since time.Time) (int, error)
}

// DBRepository implements Repository using sqlx.
type DBRepository struct {
	db *sqlx.DB
}

// NewDBRepository creates a new DBRepository.
func NewDBRepository(db *sqlx.DB) *DBRepository {
	return &DBRepository{db: db}
}

// Create inserts a new review log. A missing ID is generated.
func (r *DBRepository) Create(ctx context.Context, log *ReviewLog) error {
	if log.ID == "" {
		log.ID = uuid.NewString()
	}
	if _, err := r.db.ExecContext(ctx,
		`INSERT INTO review_logs (id, flashcard_id, user_id, rating, ease_factor, interval_days, repetition_count, reviewed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		log.ID, log.FlashcardID, log.UserID, log.Rating, log.EaseFactor,
		log.IntervalDays, log.RepetitionCount, log.ReviewedAt); err != nil {
		return fmt.Errorf("db.ExecContext(insert review_log) > %w", err)
	}
	return nil
}

// FindByFlashcard returns up to limit reviews of a card, newest first.
func (r *DBRepository) FindByFlashcard(ctx context.Context, userID, flashcardID string, limit int) ([]ReviewLog, error) {
	var logs []ReviewLog
	if err := r.db.SelectContext(ctx, &logs,
		`SELECT * FROM review_logs
		WHERE user_id = ? AND flashcard_id = ?
		ORDER BY reviewed_at DESC
		LIMIT ?`,
		userID, flashcardID, limit); err != nil {
		return nil, fmt.Errorf("db.SelectContext(review_logs by flashcard) > %w", err)
	}
	return logs, nil
}

// FindLatestByFlashcard returns the most recent review of a card, or nil
// if the card has never been reviewed.
func (r *DBRepository) FindLatestByFlashcard(ctx context.Context, userID, flashcardID string) (*ReviewLog, error) {
	var log ReviewLog
	err := r.db.GetContext(ctx, &log,
		`SELECT * FROM review_logs
		WHERE user_id = ? AND flashcard_id = ?
		ORDER BY reviewed_at DESC
		LIMIT 1`,
		userID, flashcardID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("db.GetContext(latest review_log) > %w", err)
	}
	return &log, nil
}

// CountSince reports how many reviews the user did since a point in time.
func (r *DBRepository) CountSince(ctx context.Context, userID string, since time.Time) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count,
		"SELECT COUNT(*) FROM review_logs WHERE user_id = ? AND reviewed_at >= ?",
		userID, since); err != nil {
		return 0, fmt.Errorf("db.GetContext(count review_logs) > %w", err)
	}
	return count, nil
}
