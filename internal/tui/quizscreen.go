package tui

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/aitutor/internal/quiz"
	"github.com/abhisek/aitutor/internal/ui/components"
	"github.com/abhisek/aitutor/internal/ui/layout"
	"github.com/abhisek/aitutor/internal/ui/theme"
)

// quizScreen walks through the questions of one in-progress quiz. Every
// pick is written to the session immediately.
type quizScreen struct {
	deps       *Deps
	topic      string
	index      int
	choice     components.MultiChoice
	confirming bool
	errMsg     string
}

var _ KeyHintProvider = (*quizScreen)(nil)

func newQuizScreen(deps *Deps, topic string) *quizScreen {
	s := &quizScreen{deps: deps, topic: topic}
	s.load()
	return s
}

func (s *quizScreen) Init() tea.Cmd { return nil }

func (s *quizScreen) Title() string { return "Quiz: " + s.topic }

func (s *quizScreen) KeyHints() []layout.KeyHint {
	if s.confirming {
		return []layout.KeyHint{
			{Key: "Y", Description: "Submit"},
			{Key: "N", Description: "Keep answering"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Move"},
		{Key: "A-D/Enter", Description: "Answer"},
		{Key: "←→", Description: "Question"},
		{Key: "S", Description: "Submit"},
		{Key: "Esc", Description: "Back"},
	}
}

// view renders the quiz from the session.
func (s *quizScreen) view() (quiz.View, bool) {
	q, ok := s.deps.Session.ActiveQuiz(s.topic)
	if !ok {
		return quiz.View{}, false
	}
	return q.Render(), true
}

// load rebuilds the selector for the current question.
func (s *quizScreen) load() {
	v, ok := s.view()
	if !ok || len(v.Questions) == 0 {
		return
	}
	s.index = min(max(s.index, 0), len(v.Questions)-1)
	qv := v.Questions[s.index]
	s.choice = components.NewMultiChoice(
		fmt.Sprintf("Question %d: %s", qv.Number, qv.Question),
		qv.Options,
		qv.SelectedIndex,
	)
}

func (s *quizScreen) Update(msg tea.Msg) (Screen, tea.Cmd) {
	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	key := k.String()

	if s.confirming {
		switch key {
		case "y", "Y", "enter":
			return s.submit()
		case "n", "N", "esc":
			s.confirming = false
		}
		return s, nil
	}

	switch key {
	case "esc":
		return s, pop
	case "left", "h":
		s.index--
		s.load()
		return s, nil
	case "right", "l", "tab":
		s.index++
		s.load()
		return s, nil
	case "s", "S":
		s.confirming = true
		return s, nil
	}

	var picked bool
	s.choice, picked = s.choice.Update(msg)
	if !picked {
		return s, nil
	}

	if err := s.deps.Session.Select(s.topic, s.index, s.choice.Value()); err != nil {
		s.errMsg = errorText(err)
		return s, nil
	}
	s.errMsg = ""

	v, _ := s.view()
	if s.index == len(v.Questions)-1 {
		s.load()
		s.confirming = true
		return s, nil
	}
	s.index++
	s.load()
	return s, nil
}

func (s *quizScreen) submit() (Screen, tea.Cmd) {
	rec, err := s.deps.Session.Submit(s.topic, s.deps.Now())
	if err != nil {
		s.confirming = false
		s.errMsg = errorText(err)
		return s, nil
	}
	return s, replace(newResultScreen(s.deps, rec))
}

func (s *quizScreen) View(width, _ int) string {
	v, ok := s.view()
	if !ok {
		return theme.Hint.Render("This quiz is no longer in progress.")
	}

	var b strings.Builder
	b.WriteString(components.NewProgressBar("Answered", v.Answered, len(v.Questions), min(width-4, 60)).View())
	b.WriteString("\n\n")
	b.WriteString(s.choice.View())

	if s.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(theme.Incorrect.Render(s.errMsg))
	}
	if s.confirming {
		b.WriteString("\n")
		unanswered := len(v.Questions) - v.Answered
		prompt := "Submit your answers? (y/n)"
		if unanswered > 0 {
			prompt = fmt.Sprintf("%d question(s) unanswered. Submit anyway? (y/n)", unanswered)
		}
		b.WriteString(theme.Heading.Render(prompt))
	}
	return b.String()
}
