package server

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/abhisek/aitutor/internal/explain"
	"github.com/abhisek/aitutor/internal/llm"
	"github.com/abhisek/aitutor/internal/quiz"
	"github.com/abhisek/aitutor/internal/report"
	"github.com/abhisek/aitutor/internal/session"
)

type profileResponse struct {
	Profile     *session.Profile `json:"profile"`
	StudentName string           `json:"student_name"`
	GradeYear   string           `json:"grade_year"`
}

type quizResponse struct {
	Created bool      `json:"created"`
	Quiz    quiz.View `json:"quiz"`
}

type submitResponse struct {
	Record    quiz.Record   `json:"record"`
	Breakdown []report.Line `json:"breakdown"`
}

func (s *Server) handleGrades(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"grades": session.Grades})
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.opts.Sessions.Create(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.setSessionCookie(w, sess.ID, 0)
	w.Header().Set(SessionHeader, sess.ID)
	writeJSON(w, http.StatusCreated, map[string]string{"id": sess.ID})
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := s.opts.Sessions.Delete(r.Context(), sessionID(r.Context())); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.setSessionCookie(w, "", -1)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	sess, err := s.opts.Sessions.Get(r.Context(), sessionID(r.Context()))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, profileResponse{
		Profile:     sess.Profile,
		StudentName: sess.StudentName(),
		GradeYear:   sess.GradeYear(),
	})
}

func (s *Server) handleSaveProfile(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name  string `json:"name"`
		Grade string `json:"grade"`
	}
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	p, err := session.NewProfile(req.Name, req.Grade)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	sess, err := s.opts.Sessions.Update(r.Context(), sessionID(r.Context()), func(sess *session.Session) error {
		return sess.SetProfile(p)
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, profileResponse{
		Profile:     sess.Profile,
		StudentName: sess.StudentName(),
		GradeYear:   sess.GradeYear(),
	})
}

func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Query string `json:"query"`
	}
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	var answer string
	_, err := s.opts.Sessions.Update(r.Context(), sessionID(r.Context()), func(sess *session.Session) error {
		if err := sess.RequireProfile(); err != nil {
			return err
		}
		if strings.TrimSpace(req.Query) == "" {
			return explain.ErrEmptyQuery
		}
		provider, err := s.provider(r)
		if err != nil {
			return err
		}
		answer, err = explain.NewService(provider, s.opts.Explain).Explain(r.Context(), req.Query)
		return err
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"query": req.Query, "explanation": answer})
}

// handleCreateQuiz returns the in-progress quiz for the topic, generating
// one only when none exists.
func (s *Server) handleCreateQuiz(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Topic string `json:"topic"`
	}
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	var resp quizResponse
	_, err := s.opts.Sessions.Update(r.Context(), sessionID(r.Context()), func(sess *session.Session) error {
		if err := sess.RequireProfile(); err != nil {
			return err
		}
		if session.TopicKey(req.Topic) == "" {
			return quiz.ErrEmptyTopic
		}
		if q, ok := sess.ActiveQuiz(req.Topic); ok {
			resp.Quiz = q.Render()
			return nil
		}

		provider, err := s.provider(r)
		if err != nil {
			return err
		}
		data, err := quiz.New(provider, s.opts.Quiz, s.logger).Generate(r.Context(), req.Topic)
		if err != nil {
			return err
		}
		resp.Created = true
		resp.Quiz = sess.StartQuiz(req.Topic, *data).Render()
		return nil
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	status := http.StatusOK
	if resp.Created {
		status = http.StatusCreated
	}
	writeJSON(w, status, resp)
}

func (s *Server) handleGetQuiz(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.profiledSession(w, r)
	if !ok {
		return
	}
	topic := topicParam(r)
	q, ok := sess.ActiveQuiz(topic)
	if !ok {
		s.writeError(w, r, fmt.Errorf("%w: %q", quiz.ErrNoActiveQuiz, topic))
		return
	}
	writeJSON(w, http.StatusOK, q.Render())
}

// handleSelectAnswer records a choice for question {number}, counted
// from 1. The choice is a letter or the exact option text.
func (s *Server) handleSelectAnswer(w http.ResponseWriter, r *http.Request) {
	number, err := strconv.Atoi(chi.URLParam(r, "number"))
	if err != nil {
		s.writeError(w, r, fmt.Errorf("%w: question number must be an integer", errBadRequest))
		return
	}
	var req struct {
		Choice string `json:"choice"`
	}
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	topic := topicParam(r)
	var view quiz.View
	_, err = s.opts.Sessions.Update(r.Context(), sessionID(r.Context()), func(sess *session.Session) error {
		if err := sess.RequireProfile(); err != nil {
			return err
		}
		if err := sess.Select(topic, number-1, req.Choice); err != nil {
			return err
		}
		q, _ := sess.ActiveQuiz(topic)
		view = q.Render()
		return nil
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleSubmitQuiz(w http.ResponseWriter, r *http.Request) {
	topic := topicParam(r)
	var rec quiz.Record
	_, err := s.opts.Sessions.Update(r.Context(), sessionID(r.Context()), func(sess *session.Session) error {
		if err := sess.RequireProfile(); err != nil {
			return err
		}
		var err error
		rec, err = sess.Submit(topic, s.opts.Sessions.Now())
		return err
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.logger.Info("quiz submitted", "topic", rec.QuizTopic, "score", rec.Score)
	writeJSON(w, http.StatusOK, submitResponse{Record: rec, Breakdown: report.Breakdown(rec)})
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.profiledSession(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, report.Build(sess.StudentName(), sess.GradeYear(), sess.History))
}

func (s *Server) handleReportPDF(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.profiledSession(w, r)
	if !ok {
		return
	}
	data, err := report.RenderPDF(sess.History)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+report.PDFFileName+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *Server) handleShare(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.profiledSession(w, r)
	if !ok {
		return
	}
	link, err := s.opts.Shares.Save(report.Artifact{
		StudentName: sess.StudentName(),
		GradeYear:   sess.GradeYear(),
		QuizHistory: sess.History,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.logger.Info("share artifact written", "report_id", link.ID, "path", link.Path)
	writeJSON(w, http.StatusCreated, link)
}

// profiledSession loads the session and enforces the profile gate,
// writing the error response itself when it fails.
func (s *Server) profiledSession(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	sess, err := s.opts.Sessions.Get(r.Context(), sessionID(r.Context()))
	if err == nil {
		err = sess.RequireProfile()
	}
	if err != nil {
		s.writeError(w, r, err)
		return nil, false
	}
	return sess, true
}

// provider builds the model client for this request. Construction
// failures other than a missing or rejected key mean the upstream cannot
// be reached, so they surface as an unavailable provider.
func (s *Server) provider(r *http.Request) (llm.Provider, error) {
	p, err := s.opts.Providers.Provider(r.Context(), r.Header.Get(APIKeyHeader))
	if err != nil && !llm.IsCredentialError(err) {
		var unavailable *llm.ErrProviderUnavailable
		if !errors.As(err, &unavailable) {
			err = &llm.ErrProviderUnavailable{Err: err}
		}
	}
	return p, err
}

func topicParam(r *http.Request) string {
	raw := chi.URLParam(r, "topic")
	if t, err := url.PathUnescape(raw); err == nil {
		return t
	}
	return raw
}
