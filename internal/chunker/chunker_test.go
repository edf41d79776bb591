package chunker

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quizify/internal/models"
)

func newDefault(t *testing.T) *Chunker {
	t.Helper()
	c, err := New(DefaultChunkSize, DefaultChunkOverlap)
	require.NoError(t, err)
	return c
}

func assertBounded(t *testing.T, chunks []models.Chunk, size int) {
	t.Helper()
	for i, c := range chunks {
		assert.NotEmpty(t, strings.TrimSpace(c.Content), "chunk %d is empty", i)
		assert.LessOrEqual(t, utf8.RuneCountInString(c.Content), size, "chunk %d too long", i)
		assert.Equal(t, i, c.Index)
	}
}

// sentencePage builds roughly n characters of prose.
func sentencePage(word string, n int) string {
	sentence := "The " + word + " cycle moves energy through living systems. "
	return strings.TrimSpace(strings.Repeat(sentence, n/len(sentence)+1)[:n])
}

func TestSplit_ThreePagesThreeChunks(t *testing.T) {
	c := newDefault(t)
	pages := []models.Page{
		{Number: 1, Content: sentencePage("carbon", 840)},
		{Number: 2, Content: sentencePage("nitrogen", 830)},
		{Number: 3, Content: sentencePage("water", 830)},
	}
	total := 0
	for _, p := range pages {
		total += len(p.Content)
	}
	require.InDelta(t, 2500, total, 10)

	chunks, err := c.Split(pages)
	require.NoError(t, err)
	require.Len(t, chunks, 3)
	assertBounded(t, chunks, DefaultChunkSize)

	for i, ch := range chunks {
		assert.Equal(t, i+1, ch.PageNumber)
	}
	assert.Contains(t, chunks[0].Content, "carbon")
	assert.Contains(t, chunks[2].Content, "water")
}

func TestSplit_LongPageRespectsBudget(t *testing.T) {
	c := newDefault(t)
	pages := []models.Page{{Number: 1, Content: sentencePage("krebs", 5200)}}

	chunks, err := c.Split(pages)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(chunks), 6)
	assertBounded(t, chunks, DefaultChunkSize)
}

func TestSplit_NoBreakpointsFallsBackToHardCut(t *testing.T) {
	c := newDefault(t)
	pages := []models.Page{{Number: 1, Content: strings.Repeat("x", 3500)}}

	chunks, err := c.Split(pages)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(chunks), 4)
	assertBounded(t, chunks, DefaultChunkSize)
}

func TestSplit_Deterministic(t *testing.T) {
	c := newDefault(t)
	pages := []models.Page{
		{Number: 1, Content: sentencePage("calvin", 2300)},
		{Number: 2, Content: "Short closing page.\n\nWith two paragraphs."},
	}
	first, err := c.Split(pages)
	require.NoError(t, err)
	second, err := c.Split(pages)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestSplit_SkipsBlankPages(t *testing.T) {
	c := newDefault(t)
	chunks, err := c.Split([]models.Page{
		{Number: 1, Content: "  \n\n "},
		{Number: 2, Content: "Only this page has text."},
	})
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.Equal(t, 2, chunks[0].PageNumber)

	_, err = c.Split([]models.Page{{Number: 1, Content: "\n"}})
	assert.ErrorIs(t, err, models.ErrInvalidInput)

	_, err = c.Split(nil)
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}

func TestNew_RejectsBadParameters(t *testing.T) {
	_, err := New(0, 0)
	assert.ErrorIs(t, err, models.ErrConfiguration)
	_, err = New(100, 100)
	assert.ErrorIs(t, err, models.ErrConfiguration)
	_, err = New(100, -1)
	assert.ErrorIs(t, err, models.ErrConfiguration)
}

func TestHardCut(t *testing.T) {
	assert.Nil(t, hardCut("", 10))
	assert.Equal(t, []string{"abc"}, hardCut("abc", 10))

	pieces := hardCut(strings.Repeat("é", 25), 10)
	require.Len(t, pieces, 3)
	assert.Equal(t, 10, utf8.RuneCountInString(pieces[0]))
	assert.Equal(t, 5, utf8.RuneCountInString(pieces[2]))
}
