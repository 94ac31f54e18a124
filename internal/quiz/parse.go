package quiz

import (
	"slices"
	"strings"
)

const (
	blockSeparator     = "Question "
	correctAnswerLabel = "correct answer:"

	// minBlockLines covers the question line, four options and the answer.
	minBlockLines = 6
)

// ParseResult is the outcome of Parse. Skipped lists blocks that looked
// like questions but were malformed; blocks too short to be a question
// are dropped without a warning.
type ParseResult struct {
	Data    Data
	Skipped []*BlockError
}

// Parse extracts questions from free-form model output. Each accepted block
// yields one Question and one correct-answer letter, in input order. When
// no block is accepted it returns ErrNoValidQuestions along with the
// result, so callers can still report what was skipped.
func Parse(text string) (*ParseResult, error) {
	res := &ParseResult{}

	for i, block := range strings.Split(text, blockSeparator) {
		if strings.TrimSpace(block) == "" {
			continue
		}

		lines := blockLines(block)
		if len(lines) < minBlockLines {
			continue
		}

		q, answer, reason := parseBlock(lines)
		if reason != "" {
			res.Skipped = append(res.Skipped, &BlockError{Index: i, Reason: reason, Block: block})
			continue
		}

		res.Data.Questions = append(res.Data.Questions, q)
		res.Data.CorrectAnswers = append(res.Data.CorrectAnswers, answer)
	}

	if len(res.Data.Questions) == 0 {
		return res, ErrNoValidQuestions
	}
	return res, nil
}

// blockLines splits a block into trimmed, non-empty lines.
func blockLines(block string) []string {
	var lines []string
	for _, l := range strings.Split(block, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}

// parseBlock returns a non-empty reason when the block must be dropped.
func parseBlock(lines []string) (Question, string, string) {
	_, text, ok := strings.Cut(lines[0], ":")
	if !ok {
		return Question{}, "", "question line has no colon"
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return Question{}, "", "empty question text"
	}

	var options []string
	for _, l := range lines[1 : 1+OptionCount] {
		if !hasOptionPrefix(l) {
			break
		}
		options = append(options, l)
	}
	if len(options) != OptionCount {
		return Question{}, "", "expected 4 options"
	}

	answer := ""
	last := lines[len(lines)-1]
	if strings.HasPrefix(strings.ToLower(last), correctAnswerLabel) {
		answer = strings.ToUpper(strings.TrimSpace(last[strings.LastIndex(last, ":")+1:]))
	}
	if !slices.Contains(Letters, answer) {
		return Question{}, "", "missing or invalid correct answer"
	}

	return Question{Question: text, Options: options}, answer, ""
}

func hasOptionPrefix(line string) bool {
	for _, l := range Letters {
		if strings.HasPrefix(line, l+")") {
			return true
		}
	}
	return false
}
