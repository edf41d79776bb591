package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"quizify/internal/models"
)

func TestCheck_QNA(t *testing.T) {
	good := "Q: What is ATP?\nA: The energy currency of the cell.\n\nQ: Where is it made?\nA: Mitochondria."
	assert.Empty(t, Check(models.ModeQNA, 2, good))

	assert.Equal(t, []string{"asked for 3 items, got 2"}, Check(models.ModeQNA, 3, good))

	missing := "Q: What is ATP?\nA: Energy.\n\nQ: Where is it made?"
	assert.Contains(t, Check(models.ModeQNA, 2, missing), "2 questions but 1 answers")

	assert.Equal(t, []string{`no "Q:" markers found`}, Check(models.ModeQNA, 2, "Just prose."))
}

func TestCheck_Flashcards(t *testing.T) {
	good := "Q.1: Capital of France?\nA: Paris\n\nQ.2: Capital of Spain?\nA: Madrid"
	assert.Empty(t, Check(models.ModeFlashcards, 2, good))

	skipped := "Q.1: Capital of France?\nA: Paris\n\nQ.3: Capital of Spain?\nA: Madrid"
	assert.Contains(t, Check(models.ModeFlashcards, 2, skipped), "flashcard 2 is numbered Q.3")

	wrongStyle := "Q.1: One?\nA: 1\n1.Q Two?\nA: 2"
	assert.Contains(t, Check(models.ModeFlashcards, 0, wrongStyle), `found "N.Q" style numbering`)
}

func TestCheck_MCQS(t *testing.T) {
	good := `1. Which organelle makes ATP?
A) Nucleus
B) Mitochondrion
C) Ribosome
D) Golgi body
Answer: B

2. What gas do plants release?
A) Oxygen
B) Nitrogen
C) Carbon dioxide
D) Helium
Answer: A`
	assert.Empty(t, Check(models.ModeMCQS, 2, good))

	short := `1. Which organelle makes ATP?
A) Nucleus
B) Mitochondrion
C) Ribosome
Answer: B`
	assert.Equal(t, []string{"question 1 has 3 of 4 options"}, Check(models.ModeMCQS, 1, short))
}

func TestCheck_SummaryIsNeverChecked(t *testing.T) {
	assert.Nil(t, Check(models.ModeSummary, 5, "anything at all"))
}
