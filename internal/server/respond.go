package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/abhisek/aitutor/internal/explain"
	"github.com/abhisek/aitutor/internal/llm"
	"github.com/abhisek/aitutor/internal/quiz"
	"github.com/abhisek/aitutor/internal/report"
	"github.com/abhisek/aitutor/internal/session"
)

// errBadRequest marks malformed input that is not a domain error.
var errBadRequest = errors.New("bad request")

// statusClientClosedRequest is recorded when the client went away before
// the response was ready.
const statusClientClosedRequest = 499

type errorBody struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: %v", errBadRequest, err)
	}
	return nil
}

// statusFor maps an error to its HTTP status and the message shown to
// the client.
func statusFor(err error) (int, string) {
	var (
		rateLimit   *llm.ErrRateLimit
		unavailable *llm.ErrProviderUnavailable
		invalid     *llm.ErrInvalidResponse
		truncated   *llm.ErrMaxTokensExceeded
	)

	switch {
	case errors.Is(err, context.Canceled):
		return statusClientClosedRequest, "request canceled"
	case llm.IsCredentialError(err):
		return http.StatusUnauthorized, err.Error()
	case errors.Is(err, quiz.ErrNoValidQuestions):
		return http.StatusUnprocessableEntity, quiz.ErrNoValidQuestions.Error() + "; try a different topic"
	case errors.Is(err, session.ErrNotFound),
		errors.Is(err, quiz.ErrNoActiveQuiz),
		errors.Is(err, report.ErrReportNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, session.ErrProfileRequired):
		return http.StatusPreconditionRequired, err.Error()
	case errors.Is(err, session.ErrProfileExists):
		return http.StatusConflict, err.Error()
	case errors.Is(err, errBadRequest),
		errors.Is(err, quiz.ErrEmptyTopic),
		errors.Is(err, quiz.ErrUnknownOption),
		errors.Is(err, quiz.ErrQuestionOutOfRange),
		errors.Is(err, explain.ErrEmptyQuery),
		errors.Is(err, session.ErrNameRequired),
		errors.Is(err, session.ErrUnknownGrade):
		return http.StatusBadRequest, err.Error()
	case errors.As(err, &rateLimit),
		errors.As(err, &unavailable),
		errors.As(err, &invalid),
		errors.As(err, &truncated):
		return http.StatusBadGateway, err.Error()
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "request timed out"
	default:
		return http.StatusInternalServerError, "internal error"
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, msg := statusFor(err)
	reqID := middleware.GetReqID(r.Context())

	level := slog.LevelInfo
	switch {
	case status == statusClientClosedRequest:
		level = slog.LevelDebug
	case status >= http.StatusInternalServerError:
		level = slog.LevelError
	}
	s.logger.Log(r.Context(), level, "request failed",
		"method", r.Method,
		"path", r.URL.Path,
		"status", status,
		"request_id", reqID,
		"error", err,
	)

	writeJSON(w, status, errorBody{Error: msg, RequestID: reqID})
}
