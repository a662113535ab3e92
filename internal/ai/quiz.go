package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"mclang-tool/internal/parser"
	"mclang-tool/internal/textclean"
	"mclang-tool/internal/textutil"
)

// ErrNoNarrative is returned when the lang file has no narrative text to
// build quiz questions from.
var ErrNoNarrative = errors.New("no narrative text found in lang file")

// minNarrativeWords filters quiz source entries down to real sentences.
const minNarrativeWords = 5

// maxNarrativeEntries caps the prompt size.
const maxNarrativeEntries = 100

// Quiz is a generated comprehension quiz with its separated answer key.
type Quiz struct {
	Questions string
	AnswerKey string
}

// QuizBuilder generates comprehension quizzes from game narrative text.
type QuizBuilder struct {
	client  *Client
	prompts *PromptBuilder
}

// NewQuizBuilder creates a QuizBuilder.
func NewQuizBuilder(client *Client) *QuizBuilder {
	return &QuizBuilder{client: client, prompts: NewPromptBuilder()}
}

// NarrativeTexts extracts entries with enough prose to serve as quiz source
// material.
func NarrativeTexts(entries []parser.Entry) []string {
	var narrative []string
	for _, e := range entries {
		value := e.Value
		if idx := strings.Index(value, "#"); idx >= 0 {
			value = strings.TrimSpace(value[:idx])
		}
		if len(value) < 5 || !textutil.HasLowercaseLetter(value) {
			continue
		}

		clean := textclean.Sanitize(value)
		if len(strings.Fields(clean)) < minNarrativeWords {
			continue
		}
		narrative = append(narrative, clean)
		if len(narrative) >= maxNarrativeEntries {
			break
		}
	}
	return narrative
}

// Generate builds a 10-question quiz from the document's narrative text.
func (qb *QuizBuilder) Generate(ctx context.Context, doc *parser.Document, targetAge int) (*Quiz, error) {
	narrative := NarrativeTexts(doc.Entries)
	if len(narrative) == 0 {
		return nil, ErrNoNarrative
	}

	prompt := qb.prompts.BuildQuizPrompt(narrative, targetAge)
	content, err := qb.client.Generate(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("generate quiz: %w", err)
	}

	content = strings.TrimSpace(content)
	if len(content) < 100 {
		return nil, errors.New("quiz generation produced no usable content")
	}

	quiz := &Quiz{Questions: content}
	if idx := strings.Index(content, "ANSWER KEY:"); idx >= 0 {
		quiz.Questions = strings.TrimSpace(content[:idx])
		quiz.AnswerKey = strings.TrimSpace(content[idx:])
	}
	return quiz, nil
}
