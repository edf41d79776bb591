// Package prompt renders the fixed per-mode prompts sent to the model.
package prompt

import (
	"fmt"
	"strings"
	"text/template"

	"quizify/internal/models"
)

var (
	funcs = template.FuncMap{"inc": func(i int) int { return i + 1 }}

	chunkTemplates = map[models.Mode]*template.Template{
		models.ModeQNA:        template.Must(template.New("qna").Parse(qnaTemplate)),
		models.ModeMCQS:       template.Must(template.New("mcqs").Parse(mcqsTemplate)),
		models.ModeFlashcards: template.Must(template.New("flashcards").Parse(flashcardsTemplate)),
		models.ModeSummary:    template.Must(template.New("summary").Parse(summaryTemplate)),
	}

	consolidation = template.Must(template.New("consolidation").Funcs(funcs).Parse(consolidationTemplate))
)

type chunkData struct {
	Text       string
	Count      int
	Difficulty models.Difficulty
}

type consolidationData struct {
	Mode       models.Mode
	Outputs    []string
	Itemized   bool
	Count      int
	Difficulty models.Difficulty
}

// Build returns the per-chunk prompt for mode. Count and difficulty are
// ignored for Summary.
func Build(mode models.Mode, chunkText string, count int, difficulty models.Difficulty) (string, error) {
	tmpl, ok := chunkTemplates[mode]
	if !ok {
		return "", fmt.Errorf("%w: %q", models.ErrInvalidMode, mode)
	}
	return render(tmpl, chunkData{Text: chunkText, Count: count, Difficulty: difficulty})
}

// BuildConsolidation returns the prompt that merges the per-chunk outputs
// into one deduplicated result.
func BuildConsolidation(mode models.Mode, outputs []string, count int, difficulty models.Difficulty) (string, error) {
	if !mode.Valid() {
		return "", fmt.Errorf("%w: %q", models.ErrInvalidMode, mode)
	}
	data := consolidationData{
		Mode:     mode,
		Outputs:  outputs,
		Itemized: mode.Itemized(),
	}
	if data.Itemized {
		data.Count = count
		data.Difficulty = difficulty
	}
	return render(consolidation, data)
}

func render(tmpl *template.Template, data any) (string, error) {
	var sb strings.Builder
	if err := tmpl.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("render %s prompt: %w", tmpl.Name(), err)
	}
	return sb.String(), nil
}
