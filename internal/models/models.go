package models

import (
	"fmt"
	"strconv"
)

// Mode selects the prompt template used for a run.
type Mode string

const (
	ModeQNA        Mode = "QNA"
	ModeMCQS       Mode = "MCQS"
	ModeFlashcards Mode = "Flashcards"
	ModeSummary    Mode = "Summary"
)

// Modes lists the supported modes in display order.
var Modes = []Mode{ModeQNA, ModeMCQS, ModeFlashcards, ModeSummary}

func ParseMode(s string) (Mode, error) {
	for _, m := range Modes {
		if string(m) == s {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidMode, s)
}

func (m Mode) Valid() bool {
	_, err := ParseMode(string(m))
	return err == nil
}

// Itemized reports whether the mode produces a counted list of items.
func (m Mode) Itemized() bool {
	return m == ModeQNA || m == ModeMCQS || m == ModeFlashcards
}

type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

var Difficulties = []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}

func ParseDifficulty(s string) (Difficulty, error) {
	for _, d := range Difficulties {
		if string(d) == s {
			return d, nil
		}
	}
	return "", fmt.Errorf("%w: difficulty %q", ErrInvalidInput, s)
}

// ParseCount parses an item count and checks it against [MinCount, MaxCount].
func ParseCount(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: count %q is not a number", ErrInvalidInput, s)
	}
	if n < MinCount || n > MaxCount {
		return 0, fmt.Errorf("%w: count must be between %d and %d", ErrInvalidInput, MinCount, MaxCount)
	}
	return n, nil
}

// Page is the extracted text of one PDF page. Number is 1-based.
type Page struct {
	Number  int    `json:"page"`
	Content string `json:"content"`
}

// Chunk is a bounded slice of document text used as the unit of generation.
type Chunk struct {
	Index      int    `json:"index"`
	Content    string `json:"content"`
	PageNumber int    `json:"page"`
}

// GenerationRequest carries the user's choices for one run.
type GenerationRequest struct {
	Mode       Mode
	Count      int
	Difficulty Difficulty
}

// Normalize drops count and difficulty for modes that ignore them.
func (r GenerationRequest) Normalize() GenerationRequest {
	if r.Mode == ModeSummary {
		r.Count = 0
		r.Difficulty = ""
	}
	return r
}

func (r GenerationRequest) Validate() error {
	if !r.Mode.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidMode, r.Mode)
	}
	if !r.Mode.Itemized() {
		return nil
	}
	if r.Count < MinCount || r.Count > MaxCount {
		return fmt.Errorf("%w: count must be between %d and %d", ErrInvalidInput, MinCount, MaxCount)
	}
	if _, err := ParseDifficulty(string(r.Difficulty)); err != nil {
		return err
	}
	return nil
}

// Result is the outcome of one run.
type Result struct {
	RunID      string   `json:"run_id"`
	Mode       Mode     `json:"mode"`
	ChunkCount int      `json:"chunk_count"`
	PerChunk   []string `json:"-"`
	Final      string   `json:"result"`
	Warnings   []string `json:"warnings,omitempty"`
}
