package tui

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/aitutor/internal/report"
	"github.com/abhisek/aitutor/internal/ui/layout"
)

// dashboardScreen shows the terminal report for the session history.
type dashboardScreen struct {
	lines  []string
	offset int
	height int
}

var _ KeyHintProvider = (*dashboardScreen)(nil)

func newDashboardScreen(deps *Deps) *dashboardScreen {
	d := report.Build(deps.Session.StudentName(), deps.Session.GradeYear(), deps.Session.History)
	return &dashboardScreen{lines: strings.Split(report.RenderTerminal(d), "\n")}
}

func (s *dashboardScreen) Init() tea.Cmd { return nil }

func (s *dashboardScreen) Title() string { return "Dashboard" }

func (s *dashboardScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Scroll"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *dashboardScreen) Update(msg tea.Msg) (Screen, tea.Cmd) {
	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	switch k.String() {
	case "up", "k":
		s.offset = max(s.offset-1, 0)
	case "down", "j":
		s.offset = min(s.offset+1, max(len(s.lines)-s.height, 0))
	case "esc", "q":
		return s, pop
	}
	return s, nil
}

func (s *dashboardScreen) View(_, height int) string {
	s.height = height
	end := len(s.lines)
	if height > 0 {
		end = min(s.offset+height, len(s.lines))
	}
	return strings.Join(s.lines[min(s.offset, end):end], "\n")
}
