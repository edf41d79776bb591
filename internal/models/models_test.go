package models

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMode(t *testing.T) {
	for _, m := range Modes {
		got, err := ParseMode(string(m))
		require.NoError(t, err)
		assert.Equal(t, m, got)
	}

	for _, bad := range []string{"", "qna", "Quiz", "SUMMARY", " QNA"} {
		_, err := ParseMode(bad)
		assert.ErrorIs(t, err, ErrInvalidMode, bad)
		assert.ErrorIs(t, err, ErrInvalidInput, bad)
	}
}

func TestParseCount(t *testing.T) {
	n, err := ParseCount("5")
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	for _, bad := range []string{"0", "51", "-1", "five", ""} {
		_, err := ParseCount(bad)
		assert.ErrorIs(t, err, ErrInvalidInput, bad)
	}
}

func TestGenerationRequestValidate(t *testing.T) {
	ok := GenerationRequest{Mode: ModeQNA, Count: 5, Difficulty: DifficultyEasy}
	assert.NoError(t, ok.Validate())

	assert.ErrorIs(t, GenerationRequest{Mode: "Essay", Count: 5, Difficulty: DifficultyEasy}.Validate(), ErrInvalidMode)
	assert.ErrorIs(t, GenerationRequest{Mode: ModeMCQS, Count: 0, Difficulty: DifficultyHard}.Validate(), ErrInvalidInput)
	assert.ErrorIs(t, GenerationRequest{Mode: ModeFlashcards, Count: 3, Difficulty: "Brutal"}.Validate(), ErrInvalidInput)

	// Summary ignores count and difficulty entirely.
	summary := GenerationRequest{Mode: ModeSummary, Count: 999, Difficulty: "whatever"}
	assert.NoError(t, summary.Validate())
	n := summary.Normalize()
	assert.Zero(t, n.Count)
	assert.Empty(t, n.Difficulty)
}

func TestErrorTaxonomy(t *testing.T) {
	assert.True(t, errors.Is(ErrMissingCredential, ErrConfiguration))
	assert.False(t, errors.Is(ErrExternalService, ErrInvalidInput))
}
