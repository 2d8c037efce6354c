package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
)

// Error codes used across all endpoints.
const (
	codeInvalidJSON     = "invalid_json"
	codeValidationError = "validation_error"
	codeUnauthorized    = "unauthorized"
	codeNotFound        = "not_found"
	codeRateLimited     = "rate_limited"
	codeAIUnavailable   = "ai_unavailable"
	codeAIParseError    = "ai_parse_error"
	codeInternalError   = "internal_error"
)

type errorBody struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

type errorResponse struct {
	Error errorBody `json:"error"`
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.ErrorContext(ctx, "Failed to encode response", slog.Any("error", err))
	}
}

func writeError(ctx context.Context, w http.ResponseWriter, status int, code, message string, details ...string) {
	writeJSON(ctx, w, status, errorResponse{Error: errorBody{
		Code:    code,
		Message: message,
		Details: details,
	}})
}

// writeInternalError logs the cause and hides it from the client.
func writeInternalError(ctx context.Context, w http.ResponseWriter, err error) {
	slog.ErrorContext(ctx, "Request failed", slog.Any("error", err))
	writeError(ctx, w, http.StatusInternalServerError, codeInternalError, "something went wrong")
}
