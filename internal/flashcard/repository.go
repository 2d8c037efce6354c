package flashcard

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/mzalewski/cardlearn/internal/scheduler"
)

//go:generate mockgen -source=repository.go -destination=../mocks/flashcard/mock_repository.go -package=mock_flashcard

// ListParams control pagination and ordering of a card listing.
type ListParams struct {
	Page  int
	Limit int
	Sort  string
	Order string
}

// Page is one page of a user's card collection.
type Page struct {
	Cards      []Flashcard
	Total      int
	TotalPages int
}

// UpdateParams carry the editable card fields. Nil means unchanged.
type UpdateParams struct {
	Front *string
	Back  *string
}

// Stats summarizes a user's collection for the profile view.
type Stats struct {
	Total       int
	Manual      int
	AIGenerated int
	Due         int
}

// Repository defines storage operations for flashcards. Every operation is
// scoped by the owning user; there is no way to reach another user's rows
// through this interface.
type Repository interface {
	List(ctx context.Context, userID string, params ListParams) (Page, error)
	Create(ctx context.Context, cards []Flashcard) error
	GetByID(ctx context.Context, userID, id string) (*Flashcard, error)
	Update(ctx context.Context, userID, id string, params UpdateParams, now time.Time) (*Flashcard, error)
	Delete(ctx context.Context, userID, id string) error

	// FindDue returns up to limit cards with next_review_date <= now,
	// most overdue first. CountDue reports the full due count, which may
	// exceed limit.
	FindDue(ctx context.Context, userID string, now time.Time, limit int) ([]Flashcard, error)
	CountDue(ctx context.Context, userID string, now time.Time) (int, error)

	// UpdateScheduling writes a review result in a single statement scoped
	// by id and user, which keeps concurrent reviews of the same card
	// serialized by the database's row-level guarantees.
	UpdateScheduling(ctx context.Context, userID, id string, result scheduler.Result) error

	Stats(ctx context.Context, userID string, now time.Time) (Stats, error)
}

// Columns clients are allowed to sort a listing by.
var sortColumns = map[string]bool{
	"created_at":       true,
	"updated_at":       true,
	"next_review_date": true,
}

// DBRepository implements Repository on sqlx.
type DBRepository struct {
	db *sqlx.DB
}

// NewDBRepository creates a new DBRepository.
func NewDBRepository(db *sqlx.DB) *DBRepository {
	return &DBRepository{db: db}
}

// List returns one page of the user's cards with the total count.
func (r *DBRepository) List(ctx context.Context, userID string, params ListParams) (Page, error) {
	sort := params.Sort
	if !sortColumns[sort] {
		sort = "created_at"
	}
	order := "DESC"
	if strings.EqualFold(params.Order, "asc") {
		order = "ASC"
	}

	var total int
	if err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM flashcards WHERE user_id = ?", userID); err != nil {
		return Page{}, fmt.Errorf("db.GetContext(count flashcards) > %w", err)
	}

	offset := (params.Page - 1) * params.Limit
	var cards []Flashcard
	query := fmt.Sprintf(
		"SELECT * FROM flashcards WHERE user_id = ? ORDER BY %s %s LIMIT ? OFFSET ?",
		sort, order)
	if err := r.db.SelectContext(ctx, &cards, query, userID, params.Limit, offset); err != nil {
		return Page{}, fmt.Errorf("db.SelectContext(flashcards) > %w", err)
	}

	totalPages := (total + params.Limit - 1) / params.Limit
	return Page{Cards: cards, Total: total, TotalPages: totalPages}, nil
}

// Create inserts the cards in a single transaction.
func (r *DBRepository) Create(ctx context.Context, cards []Flashcard) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("db.BeginTxx() > %w", err)
	}
	defer tx.Rollback()

	for i := range cards {
		if _, err := tx.NamedExecContext(ctx,
			`INSERT INTO flashcards (id, user_id, front, back, source,
				ease_factor, interval_days, repetition_count,
				next_review_date, last_reviewed_at, created_at, updated_at)
			VALUES (:id, :user_id, :front, :back, :source,
				:ease_factor, :interval_days, :repetition_count,
				:next_review_date, :last_reviewed_at, :created_at, :updated_at)`,
			cards[i]); err != nil {
			return fmt.Errorf("tx.NamedExecContext(insert flashcard) > %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("tx.Commit() > %w", err)
	}
	return nil
}

// GetByID returns the user's card, or ErrNotFound.
func (r *DBRepository) GetByID(ctx context.Context, userID, id string) (*Flashcard, error) {
	var card Flashcard
	err := r.db.GetContext(ctx, &card,
		"SELECT * FROM flashcards WHERE id = ? AND user_id = ?", id, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("db.GetContext(flashcard) > %w", err)
	}
	return &card, nil
}

// Update changes the editable fields and returns the updated card.
func (r *DBRepository) Update(ctx context.Context, userID, id string, params UpdateParams, now time.Time) (*Flashcard, error) {
	sets := []string{"updated_at = ?"}
	args := []any{now.UTC().Truncate(time.Second)}
	if params.Front != nil {
		sets = append(sets, "front = ?")
		args = append(args, *params.Front)
	}
	if params.Back != nil {
		sets = append(sets, "back = ?")
		args = append(args, *params.Back)
	}
	args = append(args, id, userID)

	query := fmt.Sprintf("UPDATE flashcards SET %s WHERE id = ? AND user_id = ?", strings.Join(sets, ", "))
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db.ExecContext(update flashcard) > %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("result.RowsAffected() > %w", err)
	}
	if rows == 0 {
		return nil, ErrNotFound
	}

	return r.GetByID(ctx, userID, id)
}

// Delete removes the user's card, or returns ErrNotFound.
func (r *DBRepository) Delete(ctx context.Context, userID, id string) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM flashcards WHERE id = ? AND user_id = ?", id, userID)
	if err != nil {
		return fmt.Errorf("db.ExecContext(delete flashcard) > %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("result.RowsAffected() > %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// FindDue returns up to limit due cards, most overdue first.
func (r *DBRepository) FindDue(ctx context.Context, userID string, now time.Time, limit int) ([]Flashcard, error) {
	var cards []Flashcard
	if err := r.db.SelectContext(ctx, &cards,
		`SELECT * FROM flashcards
		WHERE user_id = ? AND next_review_date <= ?
		ORDER BY next_review_date ASC
		LIMIT ?`,
		userID, now.UTC().Truncate(time.Second), limit); err != nil {
		return nil, fmt.Errorf("db.SelectContext(due flashcards) > %w", err)
	}
	return cards, nil
}

// CountDue returns the total number of due cards.
func (r *DBRepository) CountDue(ctx context.Context, userID string, now time.Time) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count,
		"SELECT COUNT(*) FROM flashcards WHERE user_id = ? AND next_review_date <= ?",
		userID, now.UTC().Truncate(time.Second)); err != nil {
		return 0, fmt.Errorf("db.GetContext(count due flashcards) > %w", err)
	}
	return count, nil
}

// UpdateScheduling persists a review result for the card.
func (r *DBRepository) UpdateScheduling(ctx context.Context, userID, id string, result scheduler.Result) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE flashcards SET
			ease_factor = ?,
			interval_days = ?,
			repetition_count = ?,
			next_review_date = ?,
			last_reviewed_at = ?,
			updated_at = ?
		WHERE id = ? AND user_id = ?`,
		result.EaseFactor, result.Interval, result.RepetitionCount,
		result.NextReviewDate, result.LastReviewedAt, result.LastReviewedAt,
		id, userID)
	if err != nil {
		return fmt.Errorf("db.ExecContext(update scheduling) > %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("result.RowsAffected() > %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// Stats returns collection counters for the profile view.
func (r *DBRepository) Stats(ctx context.Context, userID string, now time.Time) (Stats, error) {
	var stats Stats
	err := r.db.GetContext(ctx, &stats.Total,
		"SELECT COUNT(*) FROM flashcards WHERE user_id = ?", userID)
	if err != nil {
		return Stats{}, fmt.Errorf("db.GetContext(count flashcards) > %w", err)
	}
	err = r.db.GetContext(ctx, &stats.Manual,
		"SELECT COUNT(*) FROM flashcards WHERE user_id = ? AND source = ?", userID, SourceManual)
	if err != nil {
		return Stats{}, fmt.Errorf("db.GetContext(count manual flashcards) > %w", err)
	}
	err = r.db.GetContext(ctx, &stats.AIGenerated,
		"SELECT COUNT(*) FROM flashcards WHERE user_id = ? AND source = ?", userID, SourceAIGenerated)
	if err != nil {
		return Stats{}, fmt.Errorf("db.GetContext(count generated flashcards) > %w", err)
	}
	stats.Due, err = r.CountDue(ctx, userID, now)
	if err != nil {
		return Stats{}, err
	}
	return stats, nil
}
