package server

import (
	"context"
	"errors"
	"net/http"
	"strings"
)

// ErrUnauthorized is returned when a request carries no usable
// credentials.
var ErrUnauthorized = errors.New("missing or invalid credentials")

// Authenticator resolves a request to a user ID.
type Authenticator interface {
	Authenticate(r *http.Request) (string, error)
}

// StaticTokenAuthenticator resolves bearer tokens from a fixed map.
// It stands in for a real identity provider during development and in
// tests.
type StaticTokenAuthenticator struct {
	tokens map[string]string
}

// NewStaticTokenAuthenticator creates an authenticator over a map from
// bearer token to user ID.
func NewStaticTokenAuthenticator(tokens map[string]string) *StaticTokenAuthenticator {
	return &StaticTokenAuthenticator{tokens: tokens}
}

// Authenticate implements the Authenticator interface.
func (a *StaticTokenAuthenticator) Authenticate(r *http.Request) (string, error) {
	token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !ok || token == "" {
		return "", ErrUnauthorized
	}
	userID, ok := a.tokens[token]
	if !ok {
		return "", ErrUnauthorized
	}
	return userID, nil
}

type contextKey struct{}

var userIDContextKey contextKey

func contextWithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDContextKey, userID)
}

// UserID returns the authenticated user of the request, or "" outside
// the authenticated routes.
func UserID(ctx context.Context) string {
	userID, _ := ctx.Value(userIDContextKey).(string)
	return userID
}
