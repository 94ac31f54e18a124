package report

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"

	"github.com/abhisek/aitutor/internal/ui/theme"
)

// barWidth is the width of a 100% chart bar in cells.
const barWidth = 30

// RenderTerminal draws the dashboard as styled terminal text: a history
// table, a bar chart of mean score per topic and every breakdown.
func RenderTerminal(d Dashboard) string {
	var b strings.Builder

	b.WriteString(theme.Title.Render("Quiz Dashboard"))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Render(fmt.Sprintf("Student: %s  Grade/Year: %s", d.StudentName, d.GradeYear)))
	b.WriteString("\n\n")

	if d.Empty() {
		b.WriteString(theme.Hint.Render("No quizzes taken yet."))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(historyTable(d.Rows))
	b.WriteString("\n\n")

	b.WriteString(theme.Heading.Render("Average score by topic"))
	b.WriteString("\n")
	b.WriteString(barChart(d.Chart))
	b.WriteString("\n")

	for _, det := range d.Details {
		b.WriteString(detailCard(det))
		b.WriteString("\n")
	}
	return b.String()
}

func historyTable(rows []Row) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(theme.Border)).
		Headers("Topic", "Score", "Date").
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return theme.TableHeader
			}
			return theme.TableCell
		})
	for _, r := range rows {
		t.Row(r.Topic, fmt.Sprintf("%.1f%%", r.Score), r.Timestamp)
	}
	return t.Render()
}

func barChart(bars []Bar) string {
	labelWidth := 0
	for _, bar := range bars {
		labelWidth = max(labelWidth, lipgloss.Width(bar.Topic))
	}

	var b strings.Builder
	for _, bar := range bars {
		filled := int(bar.MeanScore / 100 * barWidth)
		filled = min(max(filled, 0), barWidth)
		fmt.Fprintf(&b, "%-*s  %s%s  %5.1f%% (%d)\n",
			labelWidth, bar.Topic,
			theme.BarFilled.Render(strings.Repeat("█", filled)),
			theme.BarEmpty.Render(strings.Repeat("░", barWidth-filled)),
			bar.MeanScore, bar.Attempts)
	}
	return b.String()
}

func detailCard(det Detail) string {
	var b strings.Builder
	b.WriteString(theme.Heading.Render(det.Title))
	for _, l := range det.Lines {
		verdict := theme.Correct.Render(l.Verdict())
		if !l.Correct {
			verdict = theme.Incorrect.Render(l.Verdict())
		}
		fmt.Fprintf(&b, "\nQuestion %d: %s\n", l.Number, l.Question)
		fmt.Fprintf(&b, "  Your answer: %s\n", l.DisplayAnswer())
		fmt.Fprintf(&b, "  Correct answer: %s\n", l.CorrectAnswer)
		fmt.Fprintf(&b, "  Result: %s", verdict)
	}
	return theme.Card.Render(b.String())
}
