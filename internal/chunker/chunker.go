package chunker

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog/log"
	"github.com/tmc/langchaingo/schema"
	"github.com/tmc/langchaingo/textsplitter"

	"quizify/internal/models"
)

const (
	DefaultChunkSize    = 1000 // characters
	DefaultChunkOverlap = 100  // characters
)

// separators are tried in order: paragraph, line, word, then a hard cut.
var separators = []string{"\n\n", "\n", " ", ""}

// Chunker splits page text into overlapping chunks bounded by size characters.
type Chunker struct {
	splitter textsplitter.TextSplitter
	size     int
}

func New(size, overlap int) (*Chunker, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: chunk size must be positive", models.ErrConfiguration)
	}
	if overlap < 0 || overlap >= size {
		return nil, fmt.Errorf("%w: chunk overlap must be in [0, %d)", models.ErrConfiguration, size)
	}
	splitter := textsplitter.NewRecursiveCharacter(
		textsplitter.WithChunkSize(size),
		textsplitter.WithChunkOverlap(overlap),
		textsplitter.WithSeparators(separators),
	)
	return &Chunker{splitter: splitter, size: size}, nil
}

// Split chunks each page independently and returns the chunks in page order.
// No chunk is empty and none is longer than the configured size.
func (c *Chunker) Split(pages []models.Page) ([]models.Chunk, error) {
	docs := make([]schema.Document, 0, len(pages))
	for _, p := range pages {
		if strings.TrimSpace(p.Content) == "" {
			continue
		}
		docs = append(docs, schema.Document{
			PageContent: p.Content,
			Metadata:    map[string]any{models.MetaPageNumber: p.Number},
		})
	}

	split, err := textsplitter.SplitDocuments(c.splitter, docs)
	if err != nil {
		return nil, fmt.Errorf("split documents: %w", err)
	}

	var chunks []models.Chunk
	for _, doc := range split {
		page, _ := doc.Metadata[models.MetaPageNumber].(int)
		for _, piece := range hardCut(strings.TrimSpace(doc.PageContent), c.size) {
			chunks = append(chunks, models.Chunk{
				Index:      len(chunks),
				Content:    piece,
				PageNumber: page,
			})
		}
	}
	if len(chunks) == 0 {
		return nil, fmt.Errorf("%w: document has no text", models.ErrInvalidInput)
	}

	log.Debug().Int("pages", len(pages)).Int("chunks", len(chunks)).Msg("Chunked document")
	return chunks, nil
}

// hardCut returns text in pieces of at most size runes. Empty text yields nothing.
func hardCut(text string, size int) []string {
	if text == "" {
		return nil
	}
	if utf8.RuneCountInString(text) <= size {
		return []string{text}
	}
	var out []string
	runes := []rune(text)
	for start := 0; start < len(runes); start += size {
		end := min(start+size, len(runes))
		if piece := strings.TrimSpace(string(runes[start:end])); piece != "" {
			out = append(out, piece)
		}
	}
	return out
}
