package components

import (
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/aitutor/internal/ui/theme"
)

// TextInput wraps bubbles/textinput with the app styling and an inline
// validation message.
type TextInput struct {
	Model textinput.Model
	Label string
	err   string
}

// NewTextInput creates a focused text input.
func NewTextInput(label, placeholder string, charLimit int) TextInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Focus()
	if charLimit > 0 {
		ti.CharLimit = charLimit
	}
	return TextInput{Model: ti, Label: label}
}

// Init returns the initial command.
func (t TextInput) Init() tea.Cmd {
	return t.Model.Focus()
}

// Update forwards messages to the wrapped input and clears any error once
// the user types again.
func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	if _, ok := msg.(tea.KeyMsg); ok {
		t.err = ""
	}
	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

// View renders the label, the input and the validation message.
func (t TextInput) View() string {
	var b strings.Builder
	if t.Label != "" {
		b.WriteString(theme.Heading.Render(t.Label))
		b.WriteString("\n")
	}
	b.WriteString(t.Model.View())
	if t.err != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Error).Render(t.err))
	}
	return b.String()
}

// Value returns the trimmed input value.
func (t TextInput) Value() string {
	return strings.TrimSpace(t.Model.Value())
}

// SetError shows msg under the input until the next key press.
func (t *TextInput) SetError(msg string) {
	t.err = msg
}

// Reset clears the value and the error.
func (t *TextInput) Reset() {
	t.Model.SetValue("")
	t.err = ""
}
