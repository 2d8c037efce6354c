// Package server exposes the flashcard application over a JSON HTTP API.
package server

import (
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/mzalewski/cardlearn/internal/config"
	"github.com/mzalewski/cardlearn/internal/flashcard"
	"github.com/mzalewski/cardlearn/internal/generation"
	"github.com/mzalewski/cardlearn/internal/ratelimit"
	"github.com/mzalewski/cardlearn/internal/statistics"
	"github.com/mzalewski/cardlearn/internal/study"
)

// Server holds the dependencies for the HTTP API.
type Server struct {
	cards     flashcard.Repository
	study     *study.Service
	generator *generation.Service
	profile   *statistics.Service
	limiter   *ratelimit.Limiter
	auth      Authenticator
	validate  *validator.Validate
	studyCfg  config.StudyConfig
	cors      config.CORSConfig
	router    *http.ServeMux
}

// NewServer creates and configures a new server.
func NewServer(
	cards flashcard.Repository,
	studyService *study.Service,
	generator *generation.Service,
	profile *statistics.Service,
	limiter *ratelimit.Limiter,
	auth Authenticator,
	cfg *config.Config,
) *Server {
	s := &Server{
		cards:     cards,
		study:     studyService,
		generator: generator,
		profile:   profile,
		limiter:   limiter,
		auth:      auth,
		validate:  validator.New(),
		studyCfg:  cfg.Study,
		cors:      cfg.Server.CORS,
		router:    http.NewServeMux(),
	}
	s.routes()
	return s
}

// ServeHTTP implements the http.Handler interface.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.corsMiddleware(s.loggingMiddleware(s.router)).ServeHTTP(w, r)
}

func (s *Server) routes() {
	authed := s.authMiddleware

	s.router.HandleFunc("GET /api/health", s.handleHealth)

	s.router.Handle("GET /api/flashcards", authed(s.handleListFlashcards))
	s.router.Handle("POST /api/flashcards", authed(s.handleCreateFlashcards))
	s.router.Handle("GET /api/flashcards/{id}", authed(s.handleGetFlashcard))
	s.router.Handle("PUT /api/flashcards/{id}", authed(s.handleUpdateFlashcard))
	s.router.Handle("DELETE /api/flashcards/{id}", authed(s.handleDeleteFlashcard))
	s.router.Handle("GET /api/flashcards/{id}/reviews", authed(s.handleReviewHistory))

	s.router.Handle("GET /api/study/session", authed(s.handleStudySession))
	s.router.Handle("POST /api/study/flashcards/{id}/review", authed(s.handleReview))

	s.router.Handle("POST /api/generations", authed(s.handleGenerate))
	s.router.Handle("GET /api/generations", authed(s.handleListGenerations))
	s.router.Handle("PUT /api/generations/{id}/accepted", authed(s.handleRecordAccepted))

	s.router.Handle("GET /api/profile/stats", authed(s.handleProfileStats))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(r.Context(), w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) authMiddleware(next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := s.auth.Authenticate(r)
		if err != nil {
			writeError(r.Context(), w, http.StatusUnauthorized, codeUnauthorized, "authentication required")
			return
		}
		next.ServeHTTP(w, r.WithContext(contextWithUserID(r.Context(), userID)))
	})
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(recorder, r)
		slog.InfoContext(r.Context(), "Handled request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", recorder.status),
			slog.Duration("duration", time.Since(start)))
	})
}

func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin != "" && slices.Contains(s.cors.AllowedOrigins, origin) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			w.Header().Set("Access-Control-Max-Age", "3600")
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
