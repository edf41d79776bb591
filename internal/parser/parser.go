package parser

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/rs/zerolog/log"

	"quizify/internal/models"
)

// Parser turns an uploaded document into ordered page text.
type Parser interface {
	Parse(r io.Reader) ([]models.Page, error)
}

// PDFParser extracts per-page plain text with ledongthuc/pdf.
// The library needs a file, so the upload is staged under TempDir
// (os.TempDir when empty) and removed before Parse returns.
type PDFParser struct {
	TempDir string
}

func NewPDFParser() *PDFParser {
	return &PDFParser{}
}

// ParseFile opens a .pdf file from disk and parses it.
func (p *PDFParser) ParseFile(filePath string) ([]models.Page, error) {
	if ext := strings.ToLower(filepath.Ext(filePath)); ext != models.PDFSuffix {
		return nil, fmt.Errorf("%w: unsupported file format %q, expected a PDF", models.ErrInvalidInput, ext)
	}
	f, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrInvalidInput, err)
	}
	defer f.Close()
	return p.Parse(f)
}

func (p *PDFParser) Parse(r io.Reader) ([]models.Page, error) {
	if r == nil {
		return nil, fmt.Errorf("%w: no file provided", models.ErrInvalidInput)
	}

	br := bufio.NewReader(r)
	head, err := br.Peek(len(models.PDFMagic))
	if err != nil || !bytes.Equal(head, []byte(models.PDFMagic)) {
		return nil, fmt.Errorf("%w: file is not a PDF", models.ErrInvalidInput)
	}

	tmp, err := os.CreateTemp(p.TempDir, "quizify-*.pdf")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		if err := os.Remove(tmpPath); err != nil && !os.IsNotExist(err) {
			log.Warn().Err(err).Str("path", tmpPath).Msg("Failed to remove staged PDF")
		}
	}()

	if _, err := io.Copy(tmp, br); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return nil, fmt.Errorf("close temp file: %w", err)
	}

	pages, err := extractPages(tmpPath)
	if err != nil {
		return nil, fmt.Errorf("%w: parse pdf: %v", models.ErrExternalService, err)
	}
	log.Debug().Int("pages", len(pages)).Msg("Parsed PDF")
	return pages, nil
}

// extractPages reads every page of the PDF at path. ledongthuc/pdf panics on
// some malformed inputs, so panics are turned into errors.
func extractPages(path string) (pages []models.Page, err error) {
	defer func() {
		if r := recover(); r != nil {
			pages = nil
			err = fmt.Errorf("malformed pdf: %v", r)
		}
	}()

	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	numPages := reader.NumPage()
	if numPages == 0 {
		return nil, fmt.Errorf("pdf has no pages")
	}

	hasText := false
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", i, err)
		}
		if strings.TrimSpace(text) != "" {
			hasText = true
		}
		pages = append(pages, models.Page{Number: i, Content: text})
	}
	if !hasText {
		return nil, fmt.Errorf("pdf has no extractable text")
	}
	return pages, nil
}
