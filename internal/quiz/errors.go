package quiz

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyTopic is returned when a quiz is requested for a blank topic.
	ErrEmptyTopic = errors.New("quiz topic is required")

	// ErrNoValidQuestions is returned when model output contains no block
	// that parses into a complete question.
	ErrNoValidQuestions = errors.New("failed to parse any valid quiz questions")

	// ErrUnknownOption is returned when a selection matches no option.
	ErrUnknownOption = errors.New("selection does not match any option")

	// ErrQuestionOutOfRange is returned for a question index outside the quiz.
	ErrQuestionOutOfRange = errors.New("question index out of range")

	// ErrNoActiveQuiz is returned when no quiz is in progress for a topic.
	ErrNoActiveQuiz = errors.New("no quiz in progress for topic")
)

// BlockError describes a question block that was dropped during parsing.
type BlockError struct {
	// Index is the position of the block in the model output, from 0.
	Index  int
	Reason string
	Block  string
}

func (e *BlockError) Error() string {
	return fmt.Sprintf("skipping malformed question block %d: %s", e.Index, e.Reason)
}
