package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/aitutor/internal/quiz"
)

func TestBreakdown_RoundTrip(t *testing.T) {
	rec := sampleRecord("Photosynthesis")
	lines := Breakdown(rec)

	require.Len(t, lines, len(rec.Questions))
	for i, l := range lines {
		assert.Equal(t, i+1, l.Number)
		assert.Equal(t, rec.Questions[i].Question, l.Question)
		assert.Equal(t, rec.UserAnswers[i], l.UserAnswer)
		assert.Equal(t, rec.CorrectAnswers[i], l.CorrectAnswer)
		assert.Equal(t, quiz.IsCorrect(rec.UserAnswers[i], rec.CorrectAnswers[i]), l.Correct)
	}

	assert.Equal(t, 2, CorrectCount(lines))
	assert.InDelta(t, rec.Score, float64(CorrectCount(lines))/float64(len(lines))*100, 1e-9)
}

func TestBreakdown_UnansweredAndShortAnswers(t *testing.T) {
	rec := sampleRecord("Photosynthesis")
	rec.UserAnswers = rec.UserAnswers[:2]

	lines := Breakdown(rec)
	require.Len(t, lines, 5)
	assert.Equal(t, "", lines[4].UserAnswer)
	assert.False(t, lines[4].Correct)
	assert.Equal(t, "(no answer)", lines[4].DisplayAnswer())
	assert.Equal(t, "Incorrect", lines[4].Verdict())
	assert.Equal(t, "Correct", lines[0].Verdict())
}
