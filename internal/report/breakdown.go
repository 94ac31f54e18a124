package report

import "github.com/abhisek/aitutor/internal/quiz"

// Line is the per-question result of a recorded attempt.
type Line struct {
	Number        int    `json:"number"`
	Question      string `json:"question"`
	UserAnswer    string `json:"user_answer"`
	CorrectAnswer string `json:"correct_answer"`
	Correct       bool   `json:"correct"`
}

// Breakdown lists every question of rec with the student's selection and
// the verdict. Missing answers are reported as empty strings.
func Breakdown(rec quiz.Record) []Line {
	lines := make([]Line, len(rec.Questions))
	for i, q := range rec.Questions {
		ua := at(rec.UserAnswers, i)
		ca := at(rec.CorrectAnswers, i)
		lines[i] = Line{
			Number:        i + 1,
			Question:      q.Question,
			UserAnswer:    ua,
			CorrectAnswer: ca,
			Correct:       quiz.IsCorrect(ua, ca),
		}
	}
	return lines
}

// CorrectCount returns how many lines were answered correctly.
func CorrectCount(lines []Line) int {
	n := 0
	for _, l := range lines {
		if l.Correct {
			n++
		}
	}
	return n
}

func at(s []string, i int) string {
	if i < len(s) {
		return s[i]
	}
	return ""
}

// Verdict is the human-readable result word for a line.
func (l Line) Verdict() string {
	if l.Correct {
		return "Correct"
	}
	return "Incorrect"
}

// DisplayAnswer returns the user's answer, or a placeholder when unset.
func (l Line) DisplayAnswer() string {
	if l.UserAnswer == "" {
		return "(no answer)"
	}
	return l.UserAnswer
}
