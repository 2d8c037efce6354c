package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/mzalewski/cardlearn/internal/flashcard"
	"github.com/mzalewski/cardlearn/internal/reviewlog"
	"github.com/mzalewski/cardlearn/internal/scheduler"
)

type reviewRequest struct {
	Rating *int `json:"rating" validate:"required"`
}

type reviewResponse struct {
	FlashcardID     string  `json:"flashcard_id"`
	EaseFactor      float64 `json:"ease_factor"`
	Interval        int     `json:"interval"`
	RepetitionCount int     `json:"repetition_count"`
	NextReviewDate  string  `json:"next_review_date"`
}

type studySessionResponse struct {
	Flashcards []flashcard.Flashcard `json:"flashcards"`
	TotalDue   int                   `json:"total_due"`
}

func (s *Server) handleStudySession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	limit := queryInt(r.URL.Query().Get("limit"), s.studyCfg.DefaultSessionLimit)
	if limit < 1 || limit > s.studyCfg.MaxSessionLimit {
		writeError(ctx, w, http.StatusBadRequest, codeValidationError,
			"limit must be between 1 and the session maximum")
		return
	}

	session, err := s.study.GetDueSession(ctx, UserID(ctx), limit)
	if err != nil {
		writeInternalError(ctx, w, err)
		return
	}
	writeJSON(ctx, w, http.StatusOK, studySessionResponse{
		Flashcards: session.Cards,
		TotalDue:   session.TotalDue,
	})
}

func (s *Server) handleReview(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var request reviewRequest
	if !s.decode(w, r, &request) {
		return
	}

	result, err := s.study.Review(ctx, UserID(ctx), r.PathValue("id"), scheduler.Rating(*request.Rating))
	switch {
	case errors.Is(err, scheduler.ErrInvalidRating):
		writeError(ctx, w, http.StatusBadRequest, codeValidationError, "rating must be an integer between 0 and 5")
		return
	case errors.Is(err, flashcard.ErrNotFound):
		writeError(ctx, w, http.StatusNotFound, codeNotFound, "flashcard not found")
		return
	case err != nil:
		writeInternalError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, reviewResponse{
		FlashcardID:     r.PathValue("id"),
		EaseFactor:      result.EaseFactor,
		Interval:        result.Interval,
		RepetitionCount: result.RepetitionCount,
		NextReviewDate:  result.NextReviewDate.Format(time.RFC3339),
	})
}

const reviewHistoryLimit = 50

func (s *Server) handleReviewHistory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logs, err := s.study.History(ctx, UserID(ctx), r.PathValue("id"), reviewHistoryLimit)
	switch {
	case errors.Is(err, flashcard.ErrNotFound):
		writeError(ctx, w, http.StatusNotFound, codeNotFound, "flashcard not found")
		return
	case err != nil:
		writeInternalError(ctx, w, err)
		return
	}

	if logs == nil {
		logs = []reviewlog.ReviewLog{}
	}
	writeJSON(ctx, w, http.StatusOK, map[string]any{"reviews": logs})
}
