package database

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
)

var tables = []string{
	`CREATE TABLE IF NOT EXISTS flashcards (
		id CHAR(36) PRIMARY KEY,
		user_id VARCHAR(64) NOT NULL,
		front VARCHAR(500) NOT NULL,
		back VARCHAR(1000) NOT NULL,
		source VARCHAR(20) NOT NULL,
		ease_factor REAL NOT NULL DEFAULT 2.5,
		interval_days INTEGER NOT NULL DEFAULT 0,
		repetition_count INTEGER NOT NULL DEFAULT 0,
		next_review_date DATETIME NOT NULL,
		last_reviewed_at DATETIME NULL,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS generation_sessions (
		id CHAR(36) PRIMARY KEY,
		user_id VARCHAR(64) NOT NULL,
		source_text TEXT NOT NULL,
		generated_count INTEGER NOT NULL DEFAULT 0,
		accepted_count INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS review_logs (
		id CHAR(36) PRIMARY KEY,
		flashcard_id CHAR(36) NOT NULL,
		user_id VARCHAR(64) NOT NULL,
		rating INTEGER NOT NULL,
		ease_factor REAL NOT NULL,
		interval_days INTEGER NOT NULL,
		repetition_count INTEGER NOT NULL,
		reviewed_at DATETIME NOT NULL
	)`,
}

// The due-set query filters by user and orders by next_review_date, so both
// columns live in one index.
var indexes = []struct {
	name      string
	statement string
}{
	{
		name:      "idx_flashcards_user_due",
		statement: "CREATE INDEX %s idx_flashcards_user_due ON flashcards (user_id, next_review_date)",
	},
	{
		name:      "idx_flashcards_user_created",
		statement: "CREATE INDEX %s idx_flashcards_user_created ON flashcards (user_id, created_at)",
	},
	{
		name:      "idx_generation_sessions_user_created",
		statement: "CREATE INDEX %s idx_generation_sessions_user_created ON generation_sessions (user_id, created_at)",
	},
	{
		name:      "idx_review_logs_user_card",
		statement: "CREATE INDEX %s idx_review_logs_user_card ON review_logs (user_id, flashcard_id, reviewed_at)",
	},
}

// Migrate creates the schema if it does not exist. Safe to run repeatedly.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	for _, statement := range tables {
		if _, err := db.ExecContext(ctx, statement); err != nil {
			return fmt.Errorf("db.ExecContext(create table) > %w", err)
		}
	}

	for _, index := range indexes {
		if err := createIndex(ctx, db, index.name, index.statement); err != nil {
			return err
		}
	}
	return nil
}

func createIndex(ctx context.Context, db *sqlx.DB, name, statement string) error {
	if db.DriverName() == "sqlite3" {
		_, err := db.ExecContext(ctx, fmt.Sprintf(statement, "IF NOT EXISTS"))
		if err != nil {
			return fmt.Errorf("db.ExecContext(create index %s) > %w", name, err)
		}
		return nil
	}

	// MySQL has no CREATE INDEX IF NOT EXISTS; a duplicate index error means
	// the migration already ran.
	_, err := db.ExecContext(ctx, fmt.Sprintf(statement, ""))
	if err != nil && !strings.Contains(err.Error(), "Duplicate key name") {
		return fmt.Errorf("db.ExecContext(create index %s) > %w", name, err)
	}
	return nil
}
