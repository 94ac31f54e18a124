package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/aitutor/internal/ui/theme"
)

// Menu is a vertical list of labels with a cursor.
type Menu struct {
	Items    []string
	Selected int
	// Height limits how many items are shown at once. Zero shows all.
	Height int
}

// NewMenu creates a menu with the cursor on the first item.
func NewMenu(items []string, height int) Menu {
	return Menu{Items: items, Height: height}
}

// Update handles keyboard navigation and reports whether enter chose the
// item under the cursor.
func (m Menu) Update(msg tea.Msg) (menu Menu, chosen bool) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, false
	}

	switch kmsg.String() {
	case "up", "k":
		if m.Selected > 0 {
			m.Selected--
		}
	case "down", "j":
		if m.Selected < len(m.Items)-1 {
			m.Selected++
		}
	case "enter":
		return m, len(m.Items) > 0
	}
	return m, false
}

// Value returns the item under the cursor.
func (m Menu) Value() string {
	if m.Selected < 0 || m.Selected >= len(m.Items) {
		return ""
	}
	return m.Items[m.Selected]
}

// View renders the visible window of the menu.
func (m Menu) View() string {
	start, end := 0, len(m.Items)
	if m.Height > 0 && len(m.Items) > m.Height {
		start = min(max(m.Selected-m.Height/2, 0), len(m.Items)-m.Height)
		end = start + m.Height
	}

	var b strings.Builder
	for i := start; i < end; i++ {
		if i == m.Selected {
			b.WriteString(theme.Selected.Render("  ▸ " + m.Items[i]))
		} else {
			b.WriteString(theme.Unselected.Render("    " + m.Items[i]))
		}
		b.WriteString("\n")
	}
	return b.String()
}
