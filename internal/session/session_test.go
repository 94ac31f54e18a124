package session

import (
	"errors"
	"testing"
	"time"

	"github.com/abhisek/aitutor/internal/quiz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleData() quiz.Data {
	return quiz.Data{
		Questions: []quiz.Question{
			{Question: "Which organelle carries out photosynthesis?", Options: []string{"A) Mitochondria", "B) Chloroplast", "C) Nucleus", "D) Ribosome"}},
			{Question: "Which gas do plants absorb?", Options: []string{"A) Oxygen", "B) Nitrogen", "C) Carbon dioxide", "D) Helium"}},
			{Question: "What pigment makes leaves green?", Options: []string{"A) Chlorophyll", "B) Carotene", "C) Melanin", "D) Hemoglobin"}},
			{Question: "What is a product of photosynthesis?", Options: []string{"A) Carbon dioxide", "B) Glucose", "C) Methane", "D) Salt"}},
			{Question: "Where do light reactions occur?", Options: []string{"A) Stroma", "B) Cytoplasm", "C) Thylakoid membrane", "D) Cell wall"}},
		},
		CorrectAnswers: []string{"B", "C", "A", "B", "C"},
	}
}

func TestNewProfile(t *testing.T) {
	p, err := NewProfile("Asha", "Grade 7")
	require.NoError(t, err)
	assert.Equal(t, Profile{Name: "Asha", Grade: "Grade 7"}, p)

	p, err = NewProfile("Asha", "")
	require.NoError(t, err)
	assert.Equal(t, DefaultGrade, p.Grade)

	_, err = NewProfile("   ", "College")
	assert.ErrorIs(t, err, ErrNameRequired)

	_, err = NewProfile("Asha", "Grade 13")
	assert.ErrorIs(t, err, ErrUnknownGrade)
}

func TestGradesList(t *testing.T) {
	require.Len(t, Grades, 14)
	assert.Equal(t, "Not specified", Grades[0])
	assert.Equal(t, "Grade 1", Grades[1])
	assert.Equal(t, "Grade 12", Grades[12])
	assert.Equal(t, "College", Grades[13])
}

func TestSession_ProfileOnce(t *testing.T) {
	s := New("s1", time.Now())
	assert.ErrorIs(t, s.RequireProfile(), ErrProfileRequired)
	assert.Equal(t, DefaultStudentName, s.StudentName())
	assert.Equal(t, DefaultGrade, s.GradeYear())

	require.NoError(t, s.SetProfile(Profile{Name: "Asha", Grade: "Grade 7"}))
	require.NoError(t, s.RequireProfile())
	assert.ErrorIs(t, s.SetProfile(Profile{Name: "Other", Grade: "College"}), ErrProfileExists)
	assert.Equal(t, "Asha", s.StudentName())
}

func TestSession_StartQuizKeepsExisting(t *testing.T) {
	s := New("s1", time.Now())

	first := s.StartQuiz("Photosynthesis", sampleData())
	require.NoError(t, s.Select("Photosynthesis", 0, "B"))

	other := sampleData()
	other.Questions = other.Questions[:1]
	other.CorrectAnswers = other.CorrectAnswers[:1]
	second := s.StartQuiz(" Photosynthesis ", other)

	assert.Same(t, first, second)
	assert.Equal(t, 5, second.Data.Len())
	assert.Equal(t, "B) Chloroplast", second.UserAnswers[0])
}

func TestSession_SelectWithoutQuiz(t *testing.T) {
	s := New("s1", time.Now())
	err := s.Select("Gravity", 0, "A")
	assert.ErrorIs(t, err, quiz.ErrNoActiveQuiz)
}

func TestSession_SubmitPhotosynthesisScenario(t *testing.T) {
	s := New("s1", time.Now())
	require.NoError(t, s.SetProfile(Profile{Name: "Asha", Grade: "Grade 7"}))

	s.StartQuiz("Photosynthesis", sampleData())
	for i, choice := range []string{"B", "A", "A", "D", "A"} {
		require.NoError(t, s.Select("Photosynthesis", i, choice))
	}

	now := time.Date(2026, 10, 18, 14, 0, 0, 0, time.Local)
	rec, err := s.Submit("Photosynthesis", now)
	require.NoError(t, err)

	assert.InDelta(t, 40.0, rec.Score, 1e-9)
	assert.Equal(t, "Asha", rec.StudentName)
	assert.Equal(t, "Grade 7", rec.GradeYear)
	assert.Equal(t, "2026-10-18 14:00:00", rec.Timestamp)
	assert.Equal(t, []string{"B) Chloroplast", "A) Oxygen", "A) Chlorophyll", "D) Salt", "A) Stroma"}, rec.UserAnswers)

	require.Len(t, s.History, 1)
	_, active := s.ActiveQuiz("Photosynthesis")
	assert.False(t, active, "submitted quiz must be retired")

	_, err = s.Submit("Photosynthesis", now)
	assert.True(t, errors.Is(err, quiz.ErrNoActiveQuiz))
}

func TestSession_SubmitUnansweredScoresZero(t *testing.T) {
	s := New("s1", time.Now())
	s.StartQuiz("Gravity", sampleData())
	rec, err := s.Submit("Gravity", time.Now())
	require.NoError(t, err)
	assert.Zero(t, rec.Score)
	assert.Equal(t, DefaultStudentName, rec.StudentName)
}

func TestSession_HistoryIsAppendOnly(t *testing.T) {
	s := New("s1", time.Now())
	for _, topic := range []string{"Photosynthesis", "Gravity", "Photosynthesis"} {
		s.StartQuiz(topic, sampleData())
		_, err := s.Submit(topic, time.Now())
		require.NoError(t, err)
	}
	require.Len(t, s.History, 3)
	assert.Equal(t, "Photosynthesis", s.History[0].QuizTopic)
	assert.Equal(t, "Gravity", s.History[1].QuizTopic)
	assert.Equal(t, "Photosynthesis", s.History[2].QuizTopic)
}
