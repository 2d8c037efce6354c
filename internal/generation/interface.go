// Package generation provides AI flashcard generation and session tracking.
package generation

import (
	"context"
	"errors"
)

//go:generate mockgen -source=interface.go -destination=../mocks/generation/mock_client.go -package=mock_generation

// Source text bounds for a generation request. Shorter texts produce too few
// usable cards, longer ones blow the model context.
const (
	MinSourceTextLength = 1000
	MaxSourceTextLength = 10000
)

// Client generates flashcard proposals from a source text.
type Client interface {
	GenerateFlashcards(ctx context.Context, sourceText string) ([]Proposal, error)
}

// Proposal is a generated card candidate. Proposals are returned to the
// caller for review and are not persisted as flashcards.
type Proposal struct {
	Front string `json:"front"`
	Back  string `json:"back"`
}

var (
	// ErrRateLimited means the AI provider rejected the call for quota
	// reasons. Not retried; the caller surfaces it as a 429.
	ErrRateLimited = errors.New("ai service rate limit exceeded")
	// ErrUnavailable covers provider 5xx responses and timeouts.
	ErrUnavailable = errors.New("ai service is temporarily unavailable")
	// ErrParse means the model returned content that is not a usable
	// proposal list.
	ErrParse = errors.New("ai response could not be parsed")
)
