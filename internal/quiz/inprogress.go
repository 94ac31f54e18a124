package quiz

import (
	"fmt"
	"strings"
)

// InProgress is a quiz the student is currently answering. Answers are
// stored as the full option string ("B) Oxygen"); an empty string means
// the question has not been answered yet.
type InProgress struct {
	Topic       string   `json:"topic"`
	Data        Data     `json:"data"`
	UserAnswers []string `json:"user_answers"`
}

// NewInProgress starts a quiz over data with every answer unset.
func NewInProgress(topic string, data Data) *InProgress {
	return &InProgress{
		Topic:       topic,
		Data:        data,
		UserAnswers: make([]string, data.Len()),
	}
}

// Select records the answer for question i. choice is either an option
// letter ("b" or "B") or the exact option text; the full option string is
// what gets stored.
func (q *InProgress) Select(i int, choice string) error {
	if i < 0 || i >= q.Data.Len() {
		return fmt.Errorf("%w: %d", ErrQuestionOutOfRange, i)
	}
	opt, ok := matchOption(q.Data.Questions[i].Options, choice)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownOption, choice)
	}
	q.UserAnswers[i] = opt
	return nil
}

// Answered reports how many questions have a selection.
func (q *InProgress) Answered() int {
	n := 0
	for _, a := range q.UserAnswers {
		if a != "" {
			n++
		}
	}
	return n
}

// Snapshot returns a copy of the current answers.
func (q *InProgress) Snapshot() []string {
	return append([]string(nil), q.UserAnswers...)
}

func matchOption(options []string, choice string) (string, bool) {
	choice = strings.TrimSpace(choice)
	if choice == "" {
		return "", false
	}
	for _, opt := range options {
		if opt == choice {
			return opt, true
		}
	}
	if len(choice) == 1 {
		prefix := strings.ToUpper(choice) + ")"
		for _, opt := range options {
			if strings.HasPrefix(opt, prefix) {
				return opt, true
			}
		}
	}
	return "", false
}

// View is a read-only rendering of an in-progress quiz.
type View struct {
	Topic     string         `json:"topic"`
	Questions []QuestionView `json:"questions"`
	Answered  int            `json:"answered"`
}

// QuestionView is one rendered question.
type QuestionView struct {
	Number   int      `json:"number"`
	Question string   `json:"question"`
	Options  []string `json:"options"`
	// Selected is the full option string, or "" when unanswered.
	Selected string `json:"selected"`
	// SelectedIndex is the position of Selected in Options, or -1.
	SelectedIndex int `json:"selected_index"`
}

// Render builds the view. It never changes the quiz, so it can be called
// any number of times between selections.
func (q *InProgress) Render() View {
	v := View{
		Topic:     q.Topic,
		Questions: make([]QuestionView, q.Data.Len()),
		Answered:  q.Answered(),
	}
	for i, question := range q.Data.Questions {
		qv := QuestionView{
			Number:        i + 1,
			Question:      question.Question,
			Options:       append([]string(nil), question.Options...),
			SelectedIndex: -1,
		}
		if i < len(q.UserAnswers) {
			qv.Selected = q.UserAnswers[i]
		}
		for j, opt := range question.Options {
			if qv.Selected != "" && opt == qv.Selected {
				qv.SelectedIndex = j
			}
		}
		v.Questions[i] = qv
	}
	return v
}
