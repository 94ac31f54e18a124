package report

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/go-pdf/fpdf"

	"github.com/abhisek/aitutor/internal/quiz"
	"github.com/abhisek/aitutor/internal/session"
)

// PDFFileName is the name of exported reports.
const PDFFileName = "quiz_report.pdf"

const (
	pdfLineHeight = 8.0
	pdfBodySize   = 12.0
)

// pdfCompress is switched off in tests so page text can be inspected.
var pdfCompress = true

// WritePDF renders the history as a paginated PDF. Student name and grade
// are taken from the first record.
func WritePDF(w io.Writer, history []quiz.Record) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Quiz Report", true)
	pdf.SetCompression(pdfCompress)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	line := func(style, text string) {
		pdf.SetFont("Helvetica", style, pdfBodySize)
		pdf.MultiCell(0, pdfLineHeight, tr(text), "", "L", false)
	}

	student, grade := session.DefaultStudentName, session.DefaultGrade
	if len(history) > 0 {
		student, grade = history[0].StudentName, history[0].GradeYear
	}

	line("", "Student Name: "+student)
	line("", "Grade/Year: "+grade)
	pdf.Ln(pdfLineHeight / 2)

	for _, rec := range history {
		line("B", "Quiz: "+rec.QuizTopic)
		line("", fmt.Sprintf("Score: %.1f%%", rec.Score))
		line("", "Date: "+rec.Timestamp)
		for _, l := range Breakdown(rec) {
			line("", fmt.Sprintf("Question %d: %s", l.Number, l.Question))
			line("", "- Your Answer: "+l.DisplayAnswer())
			line("", "- Correct Answer: "+l.CorrectAnswer)
			line("", "- Result: "+l.Verdict())
		}
		pdf.Ln(pdfLineHeight / 2)
	}

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	return pdf.Output(w)
}

// RenderPDF returns the PDF bytes for history.
func RenderPDF(history []quiz.Record) ([]byte, error) {
	var buf bytes.Buffer
	if err := WritePDF(&buf, history); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ExportPDF writes the report to quiz_report.pdf inside a new private
// directory under the system temp directory and returns its path.
func ExportPDF(history []quiz.Record) (string, error) {
	dir, err := os.MkdirTemp("", "aitutor-report-*")
	if err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}
	return ExportPDFTo(filepath.Join(dir, PDFFileName), history)
}

// ExportPDFTo writes the report to path.
func ExportPDFTo(path string, history []quiz.Record) (string, error) {
	data, err := RenderPDF(history)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}
