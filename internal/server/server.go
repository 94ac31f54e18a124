// Package server exposes the tutor over a JSON HTTP API.
package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/abhisek/aitutor/internal/explain"
	"github.com/abhisek/aitutor/internal/llm"
	"github.com/abhisek/aitutor/internal/quiz"
	"github.com/abhisek/aitutor/internal/report"
	"github.com/abhisek/aitutor/internal/session"
)

const (
	// SessionCookie carries the session id for browser clients.
	SessionCookie = "aitutor_session"
	// SessionHeader carries the session id for API clients.
	SessionHeader = "X-Session-ID"
	// APIKeyHeader carries the caller's model credential.
	APIKeyHeader = "X-API-Key"
)

// ProviderSource hands out a provider for a caller-supplied credential.
// *llm.Factory implements it.
type ProviderSource interface {
	Provider(ctx context.Context, apiKey string) (llm.Provider, error)
}

// Options configures a Server.
type Options struct {
	Sessions  *session.Manager
	Providers ProviderSource
	Shares    *report.ShareStore
	Quiz      quiz.Config
	Explain   explain.Config
	Logger    *slog.Logger

	// CORSOrigins defaults to any origin.
	CORSOrigins []string
	// Timeout bounds each request when non-zero.
	Timeout time.Duration
	// SecureCookie marks the session cookie Secure.
	SecureCookie bool
}

// Server holds the HTTP handlers.
type Server struct {
	opts   Options
	logger *slog.Logger
}

// New creates a Server.
func New(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if len(opts.CORSOrigins) == 0 {
		opts.CORSOrigins = []string{"*"}
	}
	return &Server{opts: opts, logger: logger}
}

// Handler returns the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	if s.opts.Timeout > 0 {
		r.Use(middleware.Timeout(s.opts.Timeout))
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.opts.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", SessionHeader, APIKeyHeader},
		ExposedHeaders:   []string{"Content-Disposition", SessionHeader},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/grades", s.handleGrades)
		r.Post("/sessions", s.handleCreateSession)

		r.Group(func(r chi.Router) {
			r.Use(s.withSession)
			r.Delete("/sessions/current", s.handleDeleteSession)
			r.Get("/profile", s.handleGetProfile)
			r.Post("/profile", s.handleSaveProfile)

			r.Post("/ask", s.handleAsk)
			r.Post("/quizzes", s.handleCreateQuiz)
			r.Get("/quizzes/{topic}", s.handleGetQuiz)
			r.Put("/quizzes/{topic}/answers/{number}", s.handleSelectAnswer)
			r.Post("/quizzes/{topic}/submit", s.handleSubmitQuiz)
			r.Get("/dashboard", s.handleDashboard)
			r.Get("/report.pdf", s.handleReportPDF)
			r.Post("/share", s.handleShare)
		})
	})
	return r
}
