package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/aitutor/internal/ui/theme"
)

// ProgressBar displays a horizontal progress bar.
type ProgressBar struct {
	Label   string
	Current int
	Total   int
	Width   int
}

// NewProgressBar creates a bar showing current out of total.
func NewProgressBar(label string, current, total, width int) ProgressBar {
	return ProgressBar{Label: label, Current: current, Total: total, Width: width}
}

// View renders the progress bar followed by "current/total".
func (p ProgressBar) View() string {
	var result string
	if p.Label != "" {
		result = theme.Body.Render(p.Label) + "  "
	}

	counter := fmt.Sprintf("  %d/%d", p.Current, p.Total)
	barWidth := max(p.Width-lipgloss.Width(result)-len(counter), 4)

	filled := 0
	if p.Total > 0 {
		filled = min(max(barWidth*p.Current/p.Total, 0), barWidth)
	}

	result += theme.BarFilled.Render(strings.Repeat("█", filled)) +
		theme.BarEmpty.Render(strings.Repeat("░", barWidth-filled)) +
		theme.Subtitle.Render(counter)
	return result
}
