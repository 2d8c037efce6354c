package server

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/mzalewski/cardlearn/internal/generation"
)

type generateRequest struct {
	SourceText string `json:"source_text" validate:"required"`
}

type recordAcceptedRequest struct {
	AcceptedCount *int `json:"accepted_count" validate:"required,min=0"`
}

type listGenerationsResponse struct {
	Sessions   []generation.Session `json:"sessions"`
	Total      int                  `json:"total"`
	Page       int                  `json:"page"`
	TotalPages int                  `json:"total_pages"`
	Summary    generation.Summary   `json:"summary"`
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := UserID(ctx)

	var request generateRequest
	if !s.decode(w, r, &request) {
		return
	}

	allowed := s.limiter.Allow(userID)
	info := s.limiter.Info(userID)
	w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(info.Remaining))
	w.Header().Set("X-RateLimit-Reset", info.ResetAt.UTC().Format(time.RFC3339))
	if !allowed {
		writeError(ctx, w, http.StatusTooManyRequests, codeRateLimited,
			"generation limit reached, try again later")
		return
	}

	result, err := s.generator.Generate(ctx, userID, request.SourceText)
	switch {
	case errors.Is(err, generation.ErrSourceTextLength):
		writeError(ctx, w, http.StatusBadRequest, codeValidationError, err.Error())
		return
	case errors.Is(err, generation.ErrRateLimited):
		writeError(ctx, w, http.StatusTooManyRequests, codeRateLimited, "ai provider rate limit reached")
		return
	case errors.Is(err, generation.ErrUnavailable):
		writeError(ctx, w, http.StatusServiceUnavailable, codeAIUnavailable, "ai service is temporarily unavailable")
		return
	case errors.Is(err, generation.ErrParse):
		writeError(ctx, w, http.StatusBadGateway, codeAIParseError, "ai service returned an unusable response")
		return
	case err != nil:
		writeInternalError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusCreated, result)
}

func (s *Server) handleRecordAccepted(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var request recordAcceptedRequest
	if !s.decode(w, r, &request) {
		return
	}

	session, err := s.generator.RecordAccepted(ctx, UserID(ctx), r.PathValue("id"), *request.AcceptedCount)
	if errors.Is(err, generation.ErrSessionNotFound) {
		writeError(ctx, w, http.StatusNotFound, codeNotFound, "generation session not found")
		return
	}
	if err != nil {
		writeInternalError(ctx, w, err)
		return
	}
	writeJSON(ctx, w, http.StatusOK, session)
}

func (s *Server) handleListGenerations(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := r.URL.Query()
	page := queryInt(query.Get("page"), 1)
	limit := queryInt(query.Get("limit"), 20)
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		writeError(ctx, w, http.StatusBadRequest, codeValidationError, "limit must be between 1 and 100")
		return
	}

	history, err := s.generator.History(ctx, UserID(ctx), page, limit)
	if err != nil {
		writeInternalError(ctx, w, err)
		return
	}
	writeJSON(ctx, w, http.StatusOK, listGenerationsResponse{
		Sessions:   history.Sessions,
		Total:      history.Total,
		Page:       page,
		TotalPages: history.TotalPages,
		Summary:    history.Summary,
	})
}
