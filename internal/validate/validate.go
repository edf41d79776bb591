// Package validate runs advisory format checks on model output. Findings are
// reported as warnings; the text itself is never modified.
package validate

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"quizify/internal/models"
)

var (
	qnaQuestionRe  = regexp.MustCompile(`(?m)^\s*Q:\s*\S`)
	answerRe       = regexp.MustCompile(`(?m)^\s*A:\s*\S`)
	cardQuestionRe = regexp.MustCompile(`(?m)^\s*Q\.(\d+):\s*\S`)
	badCardRe      = regexp.MustCompile(`(?m)^\s*\d+\.\s*Q\b`)
	mcqStartRe     = regexp.MustCompile(`(?m)^\s*\**\s*(?:Q(?:uestion)?\s*)?\d+[.)]`)
	mcqOptionRe    = regexp.MustCompile(`(?m)^\s*\(?([A-Da-d])[).:]\s+\S`)
)

// Check returns human-readable warnings about text for mode. count is the
// number of items that was asked for; Summary output is never checked.
func Check(mode models.Mode, count int, text string) []string {
	switch mode {
	case models.ModeQNA:
		return checkQNA(count, text)
	case models.ModeFlashcards:
		return checkFlashcards(count, text)
	case models.ModeMCQS:
		return checkMCQS(count, text)
	default:
		return nil
	}
}

func checkQNA(count int, text string) []string {
	var warnings []string
	questions := len(qnaQuestionRe.FindAllString(text, -1))
	answers := len(answerRe.FindAllString(text, -1))
	if questions == 0 {
		return []string{`no "Q:" markers found`}
	}
	if questions != answers {
		warnings = append(warnings, fmt.Sprintf("%d questions but %d answers", questions, answers))
	}
	return append(warnings, countWarning(count, questions)...)
}

func checkFlashcards(count int, text string) []string {
	var warnings []string
	matches := cardQuestionRe.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return []string{`no "Q.N:" markers found`}
	}
	for i, m := range matches {
		n, _ := strconv.Atoi(m[1])
		if n != i+1 {
			warnings = append(warnings, fmt.Sprintf("flashcard %d is numbered Q.%d", i+1, n))
			break
		}
	}
	if badCardRe.MatchString(text) {
		warnings = append(warnings, `found "N.Q" style numbering`)
	}
	answers := len(answerRe.FindAllString(text, -1))
	if answers != len(matches) {
		warnings = append(warnings, fmt.Sprintf("%d flashcards but %d answers", len(matches), answers))
	}
	return append(warnings, countWarning(count, len(matches))...)
}

func checkMCQS(count int, text string) []string {
	starts := mcqStartRe.FindAllStringIndex(text, -1)
	if len(starts) == 0 {
		return []string{"no numbered questions found"}
	}
	var warnings []string
	for i, s := range starts {
		end := len(text)
		if i+1 < len(starts) {
			end = starts[i+1][0]
		}
		letters := map[string]bool{}
		for _, m := range mcqOptionRe.FindAllStringSubmatch(text[s[0]:end], -1) {
			letters[strings.ToUpper(m[1])] = true
		}
		if len(letters) != 4 {
			warnings = append(warnings, fmt.Sprintf("question %d has %d of 4 options", i+1, len(letters)))
		}
	}
	return append(warnings, countWarning(count, len(starts))...)
}

func countWarning(want, got int) []string {
	if want <= 0 || want == got {
		return nil
	}
	return []string{fmt.Sprintf("asked for %d items, got %d", want, got)}
}
