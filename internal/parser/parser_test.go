package parser

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quizify/internal/models"
	"quizify/internal/testutil"
)

func assertNoStagedFiles(t *testing.T, dir string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "staged PDF must be removed")
}

func TestParse_ExtractsPagesInOrder(t *testing.T) {
	dir := t.TempDir()
	p := &PDFParser{TempDir: dir}

	data := testutil.BuildPDF(
		"Photosynthesis converts light into chemical energy.",
		"Chlorophyll absorbs mostly blue and red light.",
		"Oxygen is released as a by-product.",
	)
	pages, err := p.Parse(bytes.NewReader(data))
	require.NoError(t, err)
	require.Len(t, pages, 3)

	for i, page := range pages {
		assert.Equal(t, i+1, page.Number)
	}
	assert.Contains(t, pages[0].Content, "Photosynthesis")
	assert.Contains(t, pages[1].Content, "Chlorophyll")
	assert.Contains(t, pages[2].Content, "Oxygen")

	assertNoStagedFiles(t, dir)
}

func TestParse_RejectsNonPDF(t *testing.T) {
	dir := t.TempDir()
	p := &PDFParser{TempDir: dir}

	_, err := p.Parse(strings.NewReader("just some text, not a pdf"))
	assert.ErrorIs(t, err, models.ErrInvalidInput)

	_, err = p.Parse(strings.NewReader(""))
	assert.ErrorIs(t, err, models.ErrInvalidInput)

	_, err = p.Parse(nil)
	assert.ErrorIs(t, err, models.ErrInvalidInput)

	assertNoStagedFiles(t, dir)
}

func TestParse_CorruptedPDF(t *testing.T) {
	dir := t.TempDir()
	p := &PDFParser{TempDir: dir}

	_, err := p.Parse(strings.NewReader("%PDF-1.4\nthis is not really a pdf body"))
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrExternalService)

	// Truncated copy of a valid document.
	data := testutil.BuildPDF("Some page text.")
	_, err = p.Parse(bytes.NewReader(data[:len(data)/2]))
	assert.ErrorIs(t, err, models.ErrExternalService)

	assertNoStagedFiles(t, dir)
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.pdf")
	require.NoError(t, os.WriteFile(path, testutil.BuildPDF("Mitochondria are the powerhouse of the cell."), 0o600))

	p := &PDFParser{TempDir: t.TempDir()}
	pages, err := p.ParseFile(path)
	require.NoError(t, err)
	require.Len(t, pages, 1)
	assert.Contains(t, pages[0].Content, "Mitochondria")

	txt := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(txt, []byte("plain"), 0o600))
	_, err = p.ParseFile(txt)
	assert.ErrorIs(t, err, models.ErrInvalidInput)

	_, err = p.ParseFile(filepath.Join(dir, "missing.pdf"))
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}
