package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/aitutor/internal/ui/theme"
)

// MultiChoice is a single-choice selector over lettered options. It only
// moves a cursor; the owner decides what a pick means.
type MultiChoice struct {
	Question string
	Options  []string
	Cursor   int
	// Selected is the index of the recorded choice, or -1.
	Selected int
}

// NewMultiChoice creates a selector with the cursor on the recorded
// choice, or on the first option when there is none.
func NewMultiChoice(question string, options []string, selected int) MultiChoice {
	cursor := 0
	if selected >= 0 && selected < len(options) {
		cursor = selected
	} else {
		selected = -1
	}
	return MultiChoice{
		Question: question,
		Options:  options,
		Cursor:   cursor,
		Selected: selected,
	}
}

// Update handles cursor movement. A letter key jumps the cursor to the
// option with that label and reports picked=true, as does enter.
func (m MultiChoice) Update(msg tea.Msg) (mc MultiChoice, picked bool) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, false
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "down", "j":
		if m.Cursor < len(m.Options)-1 {
			m.Cursor++
		}
	case "enter":
		return m, len(m.Options) > 0
	default:
		if i := m.optionFor(key); i >= 0 {
			m.Cursor = i
			return m, true
		}
	}
	return m, false
}

// optionFor returns the index of the option labelled with the letter key,
// or -1. Options need not be listed in label order.
func (m MultiChoice) optionFor(key string) int {
	if len(key) != 1 {
		return -1
	}
	prefix := strings.ToUpper(key) + ")"
	for i, opt := range m.Options {
		if strings.HasPrefix(opt, prefix) {
			return i
		}
	}
	return -1
}

// Value returns the option under the cursor, or "" when there are none.
func (m MultiChoice) Value() string {
	if m.Cursor < 0 || m.Cursor >= len(m.Options) {
		return ""
	}
	return m.Options[m.Cursor]
}

// View renders the question and its options. The recorded choice is
// marked with a dot, the cursor with an arrow.
func (m MultiChoice) View() string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(m.Question))
	b.WriteString("\n\n")

	for i, opt := range m.Options {
		prefix := "  "
		if i == m.Cursor {
			prefix = "▸ "
		}
		mark := "○"
		if i == m.Selected {
			mark = "●"
		}
		line := fmt.Sprintf("%s%s %s", prefix, mark, opt)

		style := theme.Unselected
		if i == m.Cursor {
			style = theme.Selected
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}
