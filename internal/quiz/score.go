package quiz

import "time"

// IsCorrect compares the first character of the stored answer with the
// correct letter. An unset answer is never correct.
func IsCorrect(userAnswer, correct string) bool {
	if userAnswer == "" || correct == "" {
		return false
	}
	return userAnswer[0] == correct[0]
}

// Score returns the percentage of correct answers in [0, 100]. Pairs are
// compared up to the shorter of the two slices; the denominator is the
// number of user answers. No answers scores 0.
func Score(userAnswers, correctAnswers []string) float64 {
	if len(userAnswers) == 0 {
		return 0
	}
	n := min(len(userAnswers), len(correctAnswers))
	correct := 0
	for i := 0; i < n; i++ {
		if IsCorrect(userAnswers[i], correctAnswers[i]) {
			correct++
		}
	}
	return float64(correct) / float64(len(userAnswers)) * 100
}

// NewRecord scores a submission and captures it as a Record. All slices
// are copied so later changes to the inputs do not leak into history.
func NewRecord(student, grade, topic string, data Data, userAnswers []string, now time.Time) Record {
	return Record{
		StudentName:    student,
		GradeYear:      grade,
		QuizTopic:      topic,
		Questions:      cloneQuestions(data.Questions),
		UserAnswers:    append([]string(nil), userAnswers...),
		CorrectAnswers: append([]string(nil), data.CorrectAnswers...),
		Score:          Score(userAnswers, data.CorrectAnswers),
		Timestamp:      now.Format(TimestampLayout),
	}
}

func cloneQuestions(qs []Question) []Question {
	out := make([]Question, len(qs))
	for i, q := range qs {
		out[i] = Question{
			Question: q.Question,
			Options:  append([]string(nil), q.Options...),
		}
	}
	return out
}
