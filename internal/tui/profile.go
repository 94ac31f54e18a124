package tui

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/aitutor/internal/session"
	"github.com/abhisek/aitutor/internal/ui/components"
	"github.com/abhisek/aitutor/internal/ui/layout"
	"github.com/abhisek/aitutor/internal/ui/theme"
)

// profileScreen asks for the student's name, then the grade. Nothing
// else is reachable until it completes.
type profileScreen struct {
	deps       *Deps
	name       components.TextInput
	grades     components.Menu
	pickGrade  bool
	chosenName string
}

var _ KeyHintProvider = (*profileScreen)(nil)

func newProfileScreen(deps *Deps, name string) *profileScreen {
	s := &profileScreen{
		deps:   deps,
		name:   components.NewTextInput("What is your name?", "Your name", 64),
		grades: components.NewMenu(session.Grades, 8),
	}
	if strings.TrimSpace(name) != "" {
		s.chosenName = name
		s.pickGrade = true
	}
	return s
}

func (s *profileScreen) Init() tea.Cmd { return s.name.Init() }

func (s *profileScreen) Title() string { return "Student Info" }

func (s *profileScreen) KeyHints() []layout.KeyHint {
	if s.pickGrade {
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Choose grade"},
			{Key: "Enter", Description: "Save"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Next"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (s *profileScreen) Update(msg tea.Msg) (Screen, tea.Cmd) {
	if s.pickGrade {
		var chosen bool
		s.grades, chosen = s.grades.Update(msg)
		if !chosen {
			return s, nil
		}
		p, err := session.NewProfile(s.chosenName, s.grades.Value())
		if err == nil {
			err = s.deps.Session.SetProfile(p)
		}
		if err != nil {
			s.pickGrade = false
			s.name.SetError(err.Error())
			return s, nil
		}
		return s, replace(newTopicScreen(s.deps, ""))
	}

	if k, ok := msg.(tea.KeyMsg); ok && k.String() == "enter" {
		if s.name.Value() == "" {
			s.name.SetError(session.ErrNameRequired.Error())
			return s, nil
		}
		s.chosenName = s.name.Value()
		s.pickGrade = true
		return s, nil
	}

	var cmd tea.Cmd
	s.name, cmd = s.name.Update(msg)
	return s, cmd
}

func (s *profileScreen) View(_, _ int) string {
	var b strings.Builder
	b.WriteString(theme.Title.Render("Welcome to the AI Tutor"))
	b.WriteString("\n\n")
	if !s.pickGrade {
		b.WriteString(s.name.View())
		return b.String()
	}
	b.WriteString(theme.Body.Render("Name: " + s.chosenName))
	b.WriteString("\n\n")
	b.WriteString(theme.Heading.Render("Grade/Year"))
	b.WriteString("\n")
	b.WriteString(s.grades.View())
	return b.String()
}
