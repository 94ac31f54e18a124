package tui

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/aitutor/internal/quiz"
	"github.com/abhisek/aitutor/internal/report"
	"github.com/abhisek/aitutor/internal/ui/layout"
	"github.com/abhisek/aitutor/internal/ui/theme"
)

// resultScreen shows the score and breakdown of a submitted quiz and
// offers the exports.
type resultScreen struct {
	deps   *Deps
	record quiz.Record
	lines  []report.Line
	status string
}

var _ KeyHintProvider = (*resultScreen)(nil)

func newResultScreen(deps *Deps, rec quiz.Record) *resultScreen {
	return &resultScreen{deps: deps, record: rec, lines: report.Breakdown(rec)}
}

func (s *resultScreen) Init() tea.Cmd { return nil }

func (s *resultScreen) Title() string { return "Results" }

func (s *resultScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "P", Description: "PDF"},
		{Key: "S", Description: "Share"},
		{Key: "D", Description: "Dashboard"},
		{Key: "N", Description: "New quiz"},
		{Key: "Q", Description: "Quit"},
	}
}

func (s *resultScreen) Update(msg tea.Msg) (Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case pdfExportedMsg:
		if msg.Err != nil {
			s.status = "PDF export failed: " + msg.Err.Error()
		} else {
			s.status = "PDF written to " + msg.Path
		}
		return s, nil

	case sharedMsg:
		if msg.Err != nil {
			s.status = "Share failed: " + msg.Err.Error()
		} else {
			s.status = "Share this link: " + msg.Link.URL
		}
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "p", "P":
			s.status = "Exporting PDF..."
			return s, s.exportPDF()
		case "s", "S":
			if s.deps.Shares == nil {
				s.status = "Sharing is not configured."
				return s, nil
			}
			s.status = "Writing share file..."
			return s, s.share()
		case "d", "D":
			return s, push(newDashboardScreen(s.deps))
		case "n", "N", "enter", "esc":
			return s, pop
		case "q", "Q":
			return s, tea.Quit
		}
	}
	return s, nil
}

func (s *resultScreen) exportPDF() tea.Cmd {
	export, history := s.deps.ExportPDF, s.deps.history()
	return func() tea.Msg {
		path, err := export(history)
		return pdfExportedMsg{Path: path, Err: err}
	}
}

func (s *resultScreen) share() tea.Cmd {
	shares := s.deps.Shares
	artifact := report.Artifact{
		StudentName: s.deps.Session.StudentName(),
		GradeYear:   s.deps.Session.GradeYear(),
		QuizHistory: s.deps.history(),
	}
	return func() tea.Msg {
		link, err := shares.Save(artifact)
		return sharedMsg{Link: link, Err: err}
	}
}

func (s *resultScreen) View(_, _ int) string {
	var b strings.Builder
	b.WriteString(theme.Title.Render(fmt.Sprintf("Your score: %.1f%%", s.record.Score)))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Render(fmt.Sprintf("%d of %d correct on %s", report.CorrectCount(s.lines), len(s.lines), s.record.QuizTopic)))
	b.WriteString("\n")

	for _, l := range s.lines {
		verdict := theme.Correct.Render("✓ " + l.Verdict())
		if !l.Correct {
			verdict = theme.Incorrect.Render("✗ " + l.Verdict())
		}
		fmt.Fprintf(&b, "\nQuestion %d: %s\n", l.Number, l.Question)
		fmt.Fprintf(&b, "  Your answer: %s   Correct: %s   %s\n", l.DisplayAnswer(), l.CorrectAnswer, verdict)
	}

	if s.status != "" {
		b.WriteString("\n")
		b.WriteString(theme.Heading.Render(s.status))
	}
	return b.String()
}
