package tui

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/samber/lo"

	"github.com/abhisek/aitutor/internal/quiz"
	"github.com/abhisek/aitutor/internal/ui/layout"
)

// Options selects where the program starts.
type Options struct {
	// Name pre-fills the profile; the grade is still asked for when the
	// session has no profile.
	Name string
	// Topic starts generating a quiz right away.
	Topic string
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	deps   *Deps
	router *Router
	width  int
	height int
}

// NewAppModel creates the root model. A session without a profile starts
// on the profile screen.
func NewAppModel(deps *Deps, opts Options) AppModel {
	deps.withDefaults()

	var first Screen
	if deps.Session.Profile == nil {
		first = newProfileScreen(deps, opts.Name)
	} else {
		first = newTopicScreen(deps, opts.Topic)
	}
	return AppModel{deps: deps, router: NewRouter(first)}
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	return v
}

// render draws the whole frame as a string.
func (m AppModel) render() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	header := layout.RenderHeader(active.Title(), m.status(), m.width)

	hints := []layout.KeyHint{{Key: "Ctrl+C", Description: "Quit"}}
	if p, ok := active.(KeyHintProvider); ok {
		hints = p.KeyHints()
	}
	footer := layout.RenderFooter(hints, m.width)

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	content := m.router.View(m.width, contentHeight)

	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

func (m AppModel) status() layout.Status {
	s := m.deps.Session
	if s.Profile == nil {
		return layout.Status{}
	}
	return layout.Status{
		Student: fmt.Sprintf("%s (%s)", s.StudentName(), s.GradeYear()),
		Quizzes: len(s.History),
		Average: lo.MeanBy(s.History, func(r quiz.Record) float64 { return r.Score }),
	}
}

// Run starts the program and blocks until the student quits.
func Run(deps *Deps, opts Options) error {
	m := NewAppModel(deps, opts)
	p := tea.NewProgram(m, tea.WithContext(deps.Ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run quiz program: %w", err)
	}
	return nil
}
