package tui

import (
	"github.com/abhisek/aitutor/internal/quiz"
	"github.com/abhisek/aitutor/internal/report"
)

// quizReadyMsg carries the outcome of a quiz generation.
type quizReadyMsg struct {
	Topic string
	Data  *quiz.Data
	Err   error
}

// pdfExportedMsg carries the outcome of a PDF export.
type pdfExportedMsg struct {
	Path string
	Err  error
}

// sharedMsg carries the outcome of writing a share artifact.
type sharedMsg struct {
	Link *report.Link
	Err  error
}
