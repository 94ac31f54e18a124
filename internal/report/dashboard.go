// Package report builds the student dashboard from quiz history and
// exports it as a terminal view, a PDF or a shareable JSON artifact.
package report

import (
	"fmt"
	"sort"

	"github.com/samber/lo"

	"github.com/abhisek/aitutor/internal/quiz"
)

// Row is one line of the history table.
type Row struct {
	Topic     string  `json:"topic"`
	Score     float64 `json:"score"`
	Timestamp string  `json:"timestamp"`
}

// Bar is the mean score for one topic across its attempts.
type Bar struct {
	Topic     string  `json:"topic"`
	MeanScore float64 `json:"mean_score"`
	Attempts  int     `json:"attempts"`
}

// Detail is the collapsible per-attempt breakdown.
type Detail struct {
	Title string `json:"title"`
	Lines []Line `json:"lines"`
}

// Dashboard is everything the history view shows.
type Dashboard struct {
	StudentName string   `json:"student_name"`
	GradeYear   string   `json:"grade_year"`
	Rows        []Row    `json:"rows"`
	Chart       []Bar    `json:"chart"`
	Details     []Detail `json:"details"`
}

// Empty reports whether there is no history to show.
func (d Dashboard) Empty() bool {
	return len(d.Rows) == 0
}

// Build assembles the dashboard. Rows and details follow history order;
// chart bars are sorted by topic name.
func Build(student, grade string, history []quiz.Record) Dashboard {
	d := Dashboard{
		StudentName: student,
		GradeYear:   grade,
		Rows: lo.Map(history, func(r quiz.Record, _ int) Row {
			return Row{Topic: r.QuizTopic, Score: r.Score, Timestamp: r.Timestamp}
		}),
		Details: lo.Map(history, func(r quiz.Record, i int) Detail {
			return Detail{
				Title: DetailTitle(i+1, r),
				Lines: Breakdown(r),
			}
		}),
		Chart: chart(history),
	}
	return d
}

// DetailTitle formats the heading of the n-th attempt.
func DetailTitle(n int, r quiz.Record) string {
	return fmt.Sprintf("Quiz %d: %s (%.1f%%)", n, r.QuizTopic, r.Score)
}

func chart(history []quiz.Record) []Bar {
	groups := lo.GroupBy(history, func(r quiz.Record) string { return r.QuizTopic })
	topics := lo.Keys(groups)
	sort.Strings(topics)

	return lo.Map(topics, func(topic string, _ int) Bar {
		attempts := groups[topic]
		return Bar{
			Topic:     topic,
			MeanScore: lo.MeanBy(attempts, func(r quiz.Record) float64 { return r.Score }),
			Attempts:  len(attempts),
		}
	})
}
