package quiz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testData(t *testing.T) Data {
	t.Helper()
	res, err := Parse(photosynthesisQuiz)
	require.NoError(t, err)
	return res.Data
}

func TestInProgress_SelectStoresFullOption(t *testing.T) {
	q := NewInProgress("Photosynthesis", testData(t))
	require.Len(t, q.UserAnswers, 5)

	require.NoError(t, q.Select(0, "B"))
	require.NoError(t, q.Select(1, "c"))
	require.NoError(t, q.Select(2, "A) Chlorophyll"))

	assert.Equal(t, "B) Chloroplast", q.UserAnswers[0])
	assert.Equal(t, "C) Carbon dioxide", q.UserAnswers[1])
	assert.Equal(t, "A) Chlorophyll", q.UserAnswers[2])
	assert.Equal(t, "", q.UserAnswers[3])
	assert.Equal(t, 3, q.Answered())
}

func TestInProgress_SelectOverwrites(t *testing.T) {
	q := NewInProgress("Photosynthesis", testData(t))
	require.NoError(t, q.Select(0, "A"))
	require.NoError(t, q.Select(0, "D"))
	assert.Equal(t, "D) Ribosome", q.UserAnswers[0])
}

func TestInProgress_SelectErrors(t *testing.T) {
	q := NewInProgress("Photosynthesis", testData(t))

	assert.ErrorIs(t, q.Select(5, "A"), ErrQuestionOutOfRange)
	assert.ErrorIs(t, q.Select(-1, "A"), ErrQuestionOutOfRange)
	assert.ErrorIs(t, q.Select(0, "E"), ErrUnknownOption)
	assert.ErrorIs(t, q.Select(0, "Chloroplast"), ErrUnknownOption)
	assert.ErrorIs(t, q.Select(0, ""), ErrUnknownOption)
	assert.Equal(t, 0, q.Answered())
}

func TestInProgress_RenderIsIdempotent(t *testing.T) {
	q := NewInProgress("Photosynthesis", testData(t))
	require.NoError(t, q.Select(1, "C"))

	before := q.Snapshot()
	first := q.Render()
	second := q.Render()

	assert.Equal(t, first, second)
	assert.Equal(t, before, q.UserAnswers)

	assert.Equal(t, "Photosynthesis", first.Topic)
	require.Len(t, first.Questions, 5)
	assert.Equal(t, 1, first.Answered)
	assert.Equal(t, -1, first.Questions[0].SelectedIndex)
	assert.Equal(t, "C) Carbon dioxide", first.Questions[1].Selected)
	assert.Equal(t, 2, first.Questions[1].SelectedIndex)
	assert.Equal(t, 2, first.Questions[1].Number)
	assert.Len(t, first.Questions[4].Options, 4)
}

func TestInProgress_RenderDoesNotAlias(t *testing.T) {
	q := NewInProgress("Photosynthesis", testData(t))
	v := q.Render()
	v.Questions[0].Options[0] = "mutated"
	assert.Equal(t, "A) Mitochondria", q.Data.Questions[0].Options[0])
}
