package tui

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/aitutor/internal/quiz"
	"github.com/abhisek/aitutor/internal/report"
	"github.com/abhisek/aitutor/internal/session"
)

type fakeGenerator struct {
	data  *quiz.Data
	err   error
	calls int
}

func (g *fakeGenerator) Generate(_ context.Context, topic string) (*quiz.Data, error) {
	g.calls++
	if g.err != nil {
		return nil, g.err
	}
	return g.data, nil
}

func testData() *quiz.Data {
	return &quiz.Data{
		Questions: []quiz.Question{
			{Question: "Which organelle carries out photosynthesis?", Options: []string{"A) Mitochondria", "B) Chloroplast", "C) Nucleus", "D) Ribosome"}},
			{Question: "Which gas do plants absorb?", Options: []string{"A) Oxygen", "B) Nitrogen", "C) Carbon dioxide", "D) Helium"}},
			{Question: "What pigment makes leaves green?", Options: []string{"A) Chlorophyll", "B) Carotene", "C) Melanin", "D) Hemoglobin"}},
			{Question: "What is a product of photosynthesis?", Options: []string{"A) Carbon dioxide", "B) Glucose", "C) Methane", "D) Salt"}},
			{Question: "Where does the light reaction occur?", Options: []string{"A) Stroma", "B) Cytoplasm", "C) Thylakoid membrane", "D) Cell wall"}},
		},
		CorrectAnswers: []string{"B", "C", "A", "B", "C"},
	}
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func typeText(m AppModel, text string) AppModel {
	for _, r := range text {
		m = update(m, keyPress(r))
	}
	return m
}

func update(m AppModel, msg tea.Msg) AppModel {
	next, _ := m.Update(msg)
	return next.(AppModel)
}

// updateNav applies msg and then delivers the navigation command it
// produced, if any.
func updateNav(t *testing.T, m AppModel, msg tea.Msg) AppModel {
	t.Helper()
	next, cmd := m.Update(msg)
	m = next.(AppModel)
	if cmd == nil {
		return m
	}
	switch nav := cmd().(type) {
	case pushScreenMsg, replaceScreenMsg, popScreenMsg:
		m = update(m, nav)
	}
	return m
}

func newTestDeps(t *testing.T, gen quiz.Generator) *Deps {
	t.Helper()
	shares, err := report.NewShareStore(filepath.Join(t.TempDir(), "memlog"), "http://localhost:8080")
	require.NoError(t, err)
	return &Deps{
		Session:   session.New("tui", time.Now()),
		Generator: gen,
		Shares:    shares,
		ExportPDF: func(h []quiz.Record) (string, error) {
			return report.ExportPDFTo(filepath.Join(t.TempDir(), report.PDFFileName), h)
		},
		Now: func() time.Time { return time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC) },
	}
}

func TestProfileGate(t *testing.T) {
	deps := newTestDeps(t, &fakeGenerator{data: testData()})
	m := NewAppModel(deps, Options{})
	require.IsType(t, &profileScreen{}, m.router.Active())

	// A blank name is rejected.
	m = update(m, specialKey(tea.KeyEnter))
	assert.Contains(t, m.router.View(80, 20), session.ErrNameRequired.Error())

	m = typeText(m, "Ada")
	m = update(m, specialKey(tea.KeyEnter))
	for i := 0; i < 7; i++ {
		m = update(m, specialKey(tea.KeyDown))
	}
	m = updateNav(t, m, specialKey(tea.KeyEnter))

	require.NotNil(t, deps.Session.Profile)
	assert.Equal(t, "Ada", deps.Session.Profile.Name)
	assert.Equal(t, "Grade 7", deps.Session.Profile.Grade)
	assert.IsType(t, &topicScreen{}, m.router.Active())
}

func TestNameFlagSkipsNameInput(t *testing.T) {
	deps := newTestDeps(t, &fakeGenerator{data: testData()})
	m := NewAppModel(deps, Options{Name: "Ada"})

	m = updateNav(t, m, specialKey(tea.KeyEnter))
	require.NotNil(t, deps.Session.Profile)
	assert.Equal(t, session.DefaultGrade, deps.Session.Profile.Grade)
}

func withProfile(t *testing.T, deps *Deps) {
	t.Helper()
	p, err := session.NewProfile("Ada", "Grade 7")
	require.NoError(t, err)
	require.NoError(t, deps.Session.SetProfile(p))
}

// startQuiz types topic and feeds the generation result back.
func startQuiz(t *testing.T, m AppModel, topic string) AppModel {
	t.Helper()
	m = typeText(m, topic)
	m = update(m, specialKey(tea.KeyEnter))

	ts, ok := m.router.Active().(*topicScreen)
	require.True(t, ok)
	require.Equal(t, topic, ts.loading)
	return updateNav(t, m, ts.generate(topic)())
}

func TestQuizFlow_Photosynthesis(t *testing.T) {
	gen := &fakeGenerator{data: testData()}
	deps := newTestDeps(t, gen)
	withProfile(t, deps)
	m := NewAppModel(deps, Options{})

	m = startQuiz(t, m, "Photosynthesis")
	qs, ok := m.router.Active().(*quizScreen)
	require.True(t, ok)
	assert.Contains(t, qs.View(80, 20), "Question 1: Which organelle")

	// B (correct), A (wrong), enter on the first option A (correct),
	// C (wrong), then leave question 5 unanswered.
	m = update(m, keyPress('b'))
	m = update(m, keyPress('a'))
	m = update(m, specialKey(tea.KeyEnter))
	m = update(m, keyPress('c'))

	q, ok := deps.Session.ActiveQuiz("Photosynthesis")
	require.True(t, ok)
	assert.Equal(t, []string{"B) Chloroplast", "A) Oxygen", "A) Chlorophyll", "C) Methane", ""}, q.UserAnswers)

	m = update(m, keyPress('s'))
	assert.Contains(t, m.router.View(80, 20), "1 question(s) unanswered")
	m = updateNav(t, m, keyPress('y'))

	rs, ok := m.router.Active().(*resultScreen)
	require.True(t, ok)
	assert.InDelta(t, 40.0, rs.record.Score, 1e-9)
	assert.Contains(t, rs.View(80, 20), "Your score: 40.0%")
	require.Len(t, deps.Session.History, 1)
	_, active := deps.Session.ActiveQuiz("Photosynthesis")
	assert.False(t, active)

	// PDF export.
	next, cmd := m.Update(keyPress('p'))
	m = next.(AppModel)
	require.NotNil(t, cmd)
	m = update(m, cmd())
	assert.Contains(t, m.router.View(80, 20), "PDF written to")

	// Share artifact.
	next, cmd = m.Update(keyPress('s'))
	m = next.(AppModel)
	require.NotNil(t, cmd)
	msg := cmd().(sharedMsg)
	require.NoError(t, msg.Err)
	m = update(m, msg)
	assert.Contains(t, m.router.View(80, 20), "/?report_id="+msg.Link.ID)

	// Back to the topic screen for another quiz.
	m = updateNav(t, m, keyPress('n'))
	assert.IsType(t, &topicScreen{}, m.router.Active())
	assert.Equal(t, 1, gen.calls)
}

func TestQuizStoresOptionUnderCursor(t *testing.T) {
	block := "Question %d: Which gas?\nB) Oxygen\nA) Nitrogen\nC) Helium\nD) Neon\nCorrect Answer: B\n\n"
	parsed, err := quiz.Parse(fmt.Sprintf(block, 1) + fmt.Sprintf(block, 2))
	require.NoError(t, err)
	require.Len(t, parsed.Data.Questions, 2)

	deps := newTestDeps(t, &fakeGenerator{data: &parsed.Data})
	withProfile(t, deps)
	m := NewAppModel(deps, Options{})
	m = startQuiz(t, m, "Gases")

	// Enter on the first listed option, then the letter A, which is
	// listed second.
	m = update(m, specialKey(tea.KeyEnter))
	m = update(m, keyPress('a'))

	q, ok := deps.Session.ActiveQuiz("Gases")
	require.True(t, ok)
	assert.Equal(t, []string{"B) Oxygen", "A) Nitrogen"}, q.UserAnswers)

	qs, ok := m.router.Active().(*quizScreen)
	require.True(t, ok)
	assert.Equal(t, 1, qs.choice.Cursor)

	m = updateNav(t, m, keyPress('y'))
	rs, ok := m.router.Active().(*resultScreen)
	require.True(t, ok)
	assert.InDelta(t, 50.0, rs.record.Score, 1e-9)
}

func TestQuizResumesInProgress(t *testing.T) {
	gen := &fakeGenerator{data: testData()}
	deps := newTestDeps(t, gen)
	withProfile(t, deps)
	m := NewAppModel(deps, Options{})

	m = startQuiz(t, m, "Photosynthesis")
	m = update(m, keyPress('b'))
	m = updateNav(t, m, specialKey(tea.KeyEscape))
	require.IsType(t, &topicScreen{}, m.router.Active())

	m = typeText(m, "Photosynthesis")
	m = updateNav(t, m, specialKey(tea.KeyEnter))

	qs, ok := m.router.Active().(*quizScreen)
	require.True(t, ok)
	assert.Equal(t, 1, gen.calls)
	q, _ := deps.Session.ActiveQuiz("Photosynthesis")
	assert.Equal(t, "B) Chloroplast", q.UserAnswers[0])
	assert.Equal(t, 1, qs.choice.Selected)
}

func TestGenerationErrorStaysOnTopic(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"no valid questions", quiz.ErrNoValidQuestions, "Try a different topic."},
		{"provider failure", errors.New("quiz generation failed: boom"), "boom"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deps := newTestDeps(t, &fakeGenerator{err: tt.err})
			withProfile(t, deps)
			m := NewAppModel(deps, Options{})

			m = startQuiz(t, m, "Photosynthesis")
			require.IsType(t, &topicScreen{}, m.router.Active())
			assert.Contains(t, m.router.View(80, 20), tt.want)
			assert.Empty(t, deps.Session.Quizzes)
		})
	}
}

func TestDashboardScreen(t *testing.T) {
	deps := newTestDeps(t, &fakeGenerator{data: testData()})
	withProfile(t, deps)
	deps.Session.StartQuiz("Photosynthesis", *testData())
	_, err := deps.Session.Submit("Photosynthesis", deps.Now())
	require.NoError(t, err)

	m := NewAppModel(deps, Options{})
	m = updateNav(t, m, specialKey(tea.KeyTab))
	require.IsType(t, &dashboardScreen{}, m.router.Active())

	view := m.router.View(100, 200)
	assert.Contains(t, view, "Quiz 1: Photosynthesis (0.0%)")
	assert.True(t, strings.Contains(view, "Ada"))

	m = updateNav(t, m, specialKey(tea.KeyEscape))
	assert.IsType(t, &topicScreen{}, m.router.Active())
}

func TestAppView(t *testing.T) {
	deps := newTestDeps(t, &fakeGenerator{data: testData()})
	withProfile(t, deps)
	m := NewAppModel(deps, Options{})

	m = update(m, tea.WindowSizeMsg{Width: 30, Height: 10})
	assert.Contains(t, m.render(), "Terminal too small")

	m = update(m, tea.WindowSizeMsg{Width: 100, Height: 30})
	content := m.render()
	assert.Contains(t, content, "AI Tutor")
	assert.Contains(t, content, "New Quiz")
	assert.Contains(t, content, "Ada (Grade 7)")
}
