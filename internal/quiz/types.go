// Package quiz turns free-text model output into multiple-choice quizzes,
// tracks a student's answers and scores submissions.
package quiz

// Letters are the option labels in display order.
var Letters = []string{"A", "B", "C", "D"}

// OptionCount is the number of options every question carries.
const OptionCount = 4

// Question is one multiple-choice question. Each option keeps its letter
// prefix, e.g. "A) Paris".
type Question struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
}

// Data is a parsed quiz. CorrectAnswers[i] is the letter (A-D) of the
// right option for Questions[i].
type Data struct {
	Questions      []Question `json:"questions"`
	CorrectAnswers []string   `json:"correct_answers"`
}

// Len returns the number of questions.
func (d Data) Len() int {
	return len(d.Questions)
}

// Record is one scored quiz attempt. Records are immutable once appended
// to a history; build them with NewRecord.
type Record struct {
	StudentName    string     `json:"student_name"`
	GradeYear      string     `json:"grade_year"`
	QuizTopic      string     `json:"quiz_topic"`
	Questions      []Question `json:"questions"`
	UserAnswers    []string   `json:"user_answers"`
	CorrectAnswers []string   `json:"correct_answers"`
	Score          float64    `json:"score"`
	Timestamp      string     `json:"timestamp"`
}

// TimestampLayout is the format of Record.Timestamp.
const TimestampLayout = "2006-01-02 15:04:05"
