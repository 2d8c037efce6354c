package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/mzalewski/cardlearn/internal/flashcard"
)

type createFlashcardsRequest struct {
	Flashcards []createCardRequest `json:"flashcards" validate:"required,min=1,max=100,dive"`
}

type createCardRequest struct {
	Front  string `json:"front" validate:"required,max=500"`
	Back   string `json:"back" validate:"required,max=1000"`
	Source string `json:"source" validate:"omitempty,oneof=manual ai_generated"`
}

type updateFlashcardRequest struct {
	Front *string `json:"front" validate:"omitempty,min=1,max=500"`
	Back  *string `json:"back" validate:"omitempty,min=1,max=1000"`
}

type listFlashcardsResponse struct {
	Flashcards []flashcard.Flashcard `json:"flashcards"`
	Total      int                   `json:"total"`
	Page       int                   `json:"page"`
	TotalPages int                   `json:"total_pages"`
}

func (s *Server) handleListFlashcards(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := r.URL.Query()
	params := flashcard.ListParams{
		Page:  queryInt(query.Get("page"), 1),
		Limit: queryInt(query.Get("limit"), 20),
		Sort:  query.Get("sort"),
		Order: query.Get("order"),
	}
	if params.Page < 1 {
		params.Page = 1
	}
	if params.Limit < 1 || params.Limit > 100 {
		writeError(ctx, w, http.StatusBadRequest, codeValidationError, "limit must be between 1 and 100")
		return
	}

	page, err := s.cards.List(ctx, UserID(ctx), params)
	if err != nil {
		writeInternalError(ctx, w, err)
		return
	}
	writeJSON(ctx, w, http.StatusOK, listFlashcardsResponse{
		Flashcards: page.Cards,
		Total:      page.Total,
		Page:       params.Page,
		TotalPages: page.TotalPages,
	})
}

func (s *Server) handleCreateFlashcards(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var request createFlashcardsRequest
	if !s.decode(w, r, &request) {
		return
	}

	now := time.Now()
	cards := make([]flashcard.Flashcard, 0, len(request.Flashcards))
	for _, card := range request.Flashcards {
		source := flashcard.Source(card.Source)
		if card.Source == "" {
			source = flashcard.SourceManual
		}
		cards = append(cards, flashcard.New(UserID(ctx), card.Front, card.Back, source, now))
	}

	if err := s.cards.Create(ctx, cards); err != nil {
		writeInternalError(ctx, w, err)
		return
	}
	writeJSON(ctx, w, http.StatusCreated, map[string]any{
		"flashcards":    cards,
		"created_count": len(cards),
	})
}

func (s *Server) handleGetFlashcard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	card, err := s.cards.GetByID(ctx, UserID(ctx), r.PathValue("id"))
	if errors.Is(err, flashcard.ErrNotFound) {
		writeError(ctx, w, http.StatusNotFound, codeNotFound, "flashcard not found")
		return
	}
	if err != nil {
		writeInternalError(ctx, w, err)
		return
	}
	writeJSON(ctx, w, http.StatusOK, card)
}

func (s *Server) handleUpdateFlashcard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var request updateFlashcardRequest
	if !s.decode(w, r, &request) {
		return
	}
	if request.Front == nil && request.Back == nil {
		writeError(ctx, w, http.StatusBadRequest, codeValidationError, "at least one of front or back is required")
		return
	}

	card, err := s.cards.Update(ctx, UserID(ctx), r.PathValue("id"), flashcard.UpdateParams{
		Front: request.Front,
		Back:  request.Back,
	}, time.Now())
	if errors.Is(err, flashcard.ErrNotFound) {
		writeError(ctx, w, http.StatusNotFound, codeNotFound, "flashcard not found")
		return
	}
	if err != nil {
		writeInternalError(ctx, w, err)
		return
	}
	writeJSON(ctx, w, http.StatusOK, card)
}

func (s *Server) handleDeleteFlashcard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	err := s.cards.Delete(ctx, UserID(ctx), r.PathValue("id"))
	if errors.Is(err, flashcard.ErrNotFound) {
		writeError(ctx, w, http.StatusNotFound, codeNotFound, "flashcard not found")
		return
	}
	if err != nil {
		writeInternalError(ctx, w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// decode unmarshals and validates a JSON request body, writing the
// error response itself when the body is unusable.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, request any) bool {
	ctx := r.Context()
	if err := json.NewDecoder(r.Body).Decode(request); err != nil {
		writeError(ctx, w, http.StatusBadRequest, codeInvalidJSON, "request body is not valid JSON")
		return false
	}
	if err := s.validate.Struct(request); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			details := make([]string, 0, len(validationErrors))
			for _, fieldError := range validationErrors {
				details = append(details, fmt.Sprintf("%s failed on %s", fieldError.Namespace(), fieldError.Tag()))
			}
			writeError(ctx, w, http.StatusBadRequest, codeValidationError, "request validation failed", details...)
			return false
		}
		writeInternalError(ctx, w, err)
		return false
	}
	return true
}

func queryInt(value string, fallback int) int {
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}
