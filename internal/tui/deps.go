package tui

import (
	"context"
	"errors"
	"time"

	"github.com/abhisek/aitutor/internal/llm"
	"github.com/abhisek/aitutor/internal/quiz"
	"github.com/abhisek/aitutor/internal/report"
	"github.com/abhisek/aitutor/internal/session"
)

// Deps is what the screens share. The session is only touched from
// Update, which Bubble Tea runs on a single goroutine.
type Deps struct {
	Ctx       context.Context
	Session   *session.Session
	Generator quiz.Generator
	Shares    *report.ShareStore
	// ExportPDF writes the report and returns its path. Defaults to
	// report.ExportPDF.
	ExportPDF func([]quiz.Record) (string, error)
	Now       func() time.Time
}

func (d *Deps) withDefaults() *Deps {
	if d.Ctx == nil {
		d.Ctx = context.Background()
	}
	if d.ExportPDF == nil {
		d.ExportPDF = report.ExportPDF
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	return d
}

// history returns a copy of the session history that is safe to hand to
// a command goroutine.
func (d *Deps) history() []quiz.Record {
	return append([]quiz.Record(nil), d.Session.History...)
}

// errorText is the message shown to the student for err.
func errorText(err error) string {
	switch {
	case errors.Is(err, quiz.ErrNoValidQuestions):
		return "Could not build a quiz from the reply. Try a different topic."
	case llm.IsCredentialError(err):
		return "API key missing or rejected: " + err.Error()
	default:
		return err.Error()
	}
}
