package tui

import (
	"strings"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/aitutor/internal/quiz"
	"github.com/abhisek/aitutor/internal/session"
	"github.com/abhisek/aitutor/internal/ui/components"
	"github.com/abhisek/aitutor/internal/ui/layout"
	"github.com/abhisek/aitutor/internal/ui/theme"
)

// topicScreen reads a topic and generates a quiz for it, or resumes the
// quiz already in progress for that topic.
type topicScreen struct {
	deps    *Deps
	input   components.TextInput
	spinner spinner.Model
	loading string // topic being generated, empty when idle
	initial string
}

var _ KeyHintProvider = (*topicScreen)(nil)

func newTopicScreen(deps *Deps, initial string) *topicScreen {
	return &topicScreen{
		deps:    deps,
		input:   components.NewTextInput("Quiz topic", "e.g. Photosynthesis", 120),
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
		initial: strings.TrimSpace(initial),
	}
}

func (s *topicScreen) Init() tea.Cmd {
	if s.initial != "" {
		topic := s.initial
		s.initial = ""
		return s.start(topic)
	}
	return s.input.Init()
}

func (s *topicScreen) Title() string { return "New Quiz" }

func (s *topicScreen) KeyHints() []layout.KeyHint {
	if s.loading != "" {
		return []layout.KeyHint{{Key: "Ctrl+C", Description: "Quit"}}
	}
	hints := []layout.KeyHint{{Key: "Enter", Description: "Generate quiz"}}
	if len(s.deps.Session.History) > 0 {
		hints = append(hints, layout.KeyHint{Key: "Tab", Description: "Dashboard"})
	}
	return append(hints, layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
}

func (s *topicScreen) Update(msg tea.Msg) (Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case quizReadyMsg:
		return s.handleQuizReady(msg)

	case spinner.TickMsg:
		if s.loading == "" {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case tea.KeyMsg:
		if s.loading != "" {
			return s, nil
		}
		switch msg.String() {
		case "enter":
			return s, s.start(s.input.Value())
		case "tab":
			if len(s.deps.Session.History) > 0 {
				return s, push(newDashboardScreen(s.deps))
			}
			return s, nil
		}
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

// start resumes the in-progress quiz for topic or begins generating one.
func (s *topicScreen) start(topic string) tea.Cmd {
	topic = session.TopicKey(topic)
	if topic == "" {
		s.input.SetError(quiz.ErrEmptyTopic.Error())
		return nil
	}
	if q, ok := s.deps.Session.ActiveQuiz(topic); ok {
		return push(newQuizScreen(s.deps, q.Topic))
	}
	s.loading = topic
	return tea.Batch(s.spinner.Tick, s.generate(topic))
}

func (s *topicScreen) generate(topic string) tea.Cmd {
	gen, ctx := s.deps.Generator, s.deps.Ctx
	return func() tea.Msg {
		data, err := gen.Generate(ctx, topic)
		return quizReadyMsg{Topic: topic, Data: data, Err: err}
	}
}

func (s *topicScreen) handleQuizReady(msg quizReadyMsg) (Screen, tea.Cmd) {
	s.loading = ""
	if msg.Err != nil {
		s.input.SetError(errorText(msg.Err))
		return s, nil
	}
	q := s.deps.Session.StartQuiz(msg.Topic, *msg.Data)
	s.input.Reset()
	return s, push(newQuizScreen(s.deps, q.Topic))
}

func (s *topicScreen) View(_, _ int) string {
	var b strings.Builder
	b.WriteString(theme.Title.Render("Take a quiz"))
	b.WriteString("\n\n")
	if s.loading != "" {
		b.WriteString(s.spinner.View())
		b.WriteString(theme.Body.Render(" Generating quiz on " + s.loading + "..."))
		return b.String()
	}
	b.WriteString(s.input.View())
	b.WriteString("\n\n")
	b.WriteString(theme.Hint.Render("A five-question multiple-choice quiz will be generated for the topic."))
	return b.String()
}
