// Package session holds the per-student state of a tutoring session: the
// profile, in-progress quizzes keyed by topic and the quiz history.
package session

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/abhisek/aitutor/internal/quiz"
)

var (
	ErrNotFound        = errors.New("session not found")
	ErrProfileRequired = errors.New("student profile required")
	ErrProfileExists   = errors.New("student profile already saved")
)

// Session is the state of one student interaction. It is not safe for
// concurrent use; Manager serializes access per session id.
type Session struct {
	ID        string                      `json:"id"`
	Profile   *Profile                    `json:"profile,omitempty"`
	Quizzes   map[string]*quiz.InProgress `json:"quizzes"`
	History   []quiz.Record               `json:"history"`
	CreatedAt time.Time                   `json:"created_at"`
	UpdatedAt time.Time                   `json:"updated_at"`
}

// New creates an empty session.
func New(id string, now time.Time) *Session {
	return &Session{
		ID:        id,
		Quizzes:   make(map[string]*quiz.InProgress),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// SetProfile saves the student profile. It can only be done once.
func (s *Session) SetProfile(p Profile) error {
	if s.Profile != nil {
		return ErrProfileExists
	}
	s.Profile = &p
	return nil
}

// RequireProfile returns ErrProfileRequired until a profile is saved.
func (s *Session) RequireProfile() error {
	if s.Profile == nil {
		return ErrProfileRequired
	}
	return nil
}

// StudentName returns the profile name or DefaultStudentName.
func (s *Session) StudentName() string {
	if s.Profile == nil {
		return DefaultStudentName
	}
	return s.Profile.Name
}

// GradeYear returns the profile grade or DefaultGrade.
func (s *Session) GradeYear() string {
	if s.Profile == nil {
		return DefaultGrade
	}
	return s.Profile.Grade
}

// TopicKey normalizes a topic for use as a Quizzes key.
func TopicKey(topic string) string {
	return strings.TrimSpace(topic)
}

// ActiveQuiz returns the in-progress quiz for topic, if any.
func (s *Session) ActiveQuiz(topic string) (*quiz.InProgress, bool) {
	q, ok := s.Quizzes[TopicKey(topic)]
	return q, ok
}

// StartQuiz creates the in-progress quiz for topic from data. If one is
// already in progress it is returned unchanged and data is ignored.
func (s *Session) StartQuiz(topic string, data quiz.Data) *quiz.InProgress {
	key := TopicKey(topic)
	if q, ok := s.Quizzes[key]; ok {
		return q
	}
	if s.Quizzes == nil {
		s.Quizzes = make(map[string]*quiz.InProgress)
	}
	q := quiz.NewInProgress(key, data)
	s.Quizzes[key] = q
	return q
}

// Select records an answer on the in-progress quiz for topic.
func (s *Session) Select(topic string, index int, choice string) error {
	q, ok := s.ActiveQuiz(topic)
	if !ok {
		return fmt.Errorf("%w: %q", quiz.ErrNoActiveQuiz, TopicKey(topic))
	}
	return q.Select(index, choice)
}

// Submit scores the in-progress quiz for topic from a snapshot of its
// answers, appends the record to the history and retires the quiz.
func (s *Session) Submit(topic string, now time.Time) (quiz.Record, error) {
	key := TopicKey(topic)
	q, ok := s.Quizzes[key]
	if !ok {
		return quiz.Record{}, fmt.Errorf("%w: %q", quiz.ErrNoActiveQuiz, key)
	}

	rec := quiz.NewRecord(s.StudentName(), s.GradeYear(), key, q.Data, q.Snapshot(), now)
	s.History = append(s.History, rec)
	delete(s.Quizzes, key)
	return rec, nil
}
