// Package analyzer runs the full readability pipeline over lang-file content:
// parse, classify, clean, tokenize, score, aggregate.
package analyzer

import (
	"errors"
	"fmt"
	"strings"

	"mclang-tool/internal/lexical"
	"mclang-tool/internal/parser"
	"mclang-tool/internal/readability"
	"mclang-tool/internal/textclean"

	"github.com/rs/zerolog/log"
)

// ErrNoContent is returned when zero entries survive classification. Callers
// must treat it as a distinct outcome, not as a zeroed result.
var ErrNoContent = errors.New("no analyzable player-facing text found")

// playerFacingPrefixes mark keys whose values are shown to the player.
// Ordered roughly by how clearly player-facing the namespace is.
var playerFacingPrefixes = []string{
	"death.", "chat.", "book.", "sign.",
	"menu.", "gui.", "options.",
	"gameMode.", "difficulty.", "multiplayer.",
	"advancements.", "subtitle.",
	"entity.", "effect.", "enchantment.",
	"tile.", "item.", "block.",
	"biome.", "potion.", "attribute.",
	"container.", "structure_block.", "jigsaw_block.",
	"stat.", "commands.",
}

// minValueLength skips values too short to carry prose.
const minValueLength = 3

// Analyzer is the readability analysis engine. The zero value is not usable;
// construct with New.
type Analyzer struct {
	cleaner *textclean.Cleaner

	// PlayerFacingOnly restricts analysis to keys in known player-facing
	// namespaces (tile., menu., death., ...). Off by default: the value-level
	// classifier already rejects technical strings, and custom worlds often
	// use their own key namespaces.
	PlayerFacingOnly bool
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithMinRetainRatio overrides the cleaner's acceptance threshold.
func WithMinRetainRatio(ratio float64) Option {
	return func(a *Analyzer) { a.cleaner.MinRetainRatio = ratio }
}

// WithPlayerFacingOnly enables the key-prefix filter.
func WithPlayerFacingOnly() Option {
	return func(a *Analyzer) { a.PlayerFacingOnly = true }
}

// New creates an Analyzer.
func New(opts ...Option) *Analyzer {
	a := &Analyzer{cleaner: textclean.New()}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// HasPlayerFacingKey reports whether the key belongs to a namespace whose
// values are shown to players.
func HasPlayerFacingKey(key string) bool {
	for _, prefix := range playerFacingPrefixes {
		if strings.HasPrefix(key, prefix) {
			return true
		}
	}
	return false
}

// ExtractCleanedText returns the cleaned player-facing values from content,
// in order of appearance, together with the number of entries rejected as
// technical and the encoding used. This is the extraction step the analysis
// and the AI features share.
func (a *Analyzer) ExtractCleanedText(content []byte) ([]string, int, string, error) {
	entries, encoding, err := parser.Parse(content)
	if err != nil {
		return nil, 0, encoding, fmt.Errorf("parse lang content: %w", err)
	}

	var cleaned []string
	skipped := 0

	for _, e := range entries {
		if e.Value == "" || len(e.Value) < minValueLength {
			continue
		}
		if textclean.IsTechnicalValue(e.Value) {
			skipped++
			continue
		}
		if a.PlayerFacingOnly && !HasPlayerFacingKey(e.Key) {
			continue
		}

		text := a.cleaner.Clean(e.Value)
		if text == "" {
			skipped++
			continue
		}
		cleaned = append(cleaned, text)
	}

	return cleaned, skipped, encoding, nil
}

// Analyze runs the full pipeline over raw lang-file bytes. Returns
// ErrNoContent when nothing survives classification.
func (a *Analyzer) Analyze(content []byte) (*Result, error) {
	texts, skipped, encoding, err := a.ExtractCleanedText(content)
	if err != nil {
		return nil, err
	}
	if len(texts) == 0 {
		return nil, ErrNoContent
	}

	result := &Result{
		TotalEntries:     len(texts),
		SkippedTechnical: skipped,
		Encoding:         encoding,
		// Each retained entry is one complete phrase, counted as a sentence.
		TotalSentences: len(texts),
	}

	words := lexical.Words(strings.Join(texts, " "))
	result.TotalWords = len(words)

	unique := make(map[string]struct{}, len(words))
	for _, w := range words {
		unique[w] = struct{}{}
	}
	result.UniqueWords = len(unique)

	if len(words) == 0 {
		return nil, ErrNoContent
	}

	for _, w := range words {
		result.TotalCharacters += len(w)

		syllables := lexical.Syllables(w)
		result.TotalSyllables += syllables
		if syllables >= 3 {
			result.Vocabulary.ComplexWords++
		}

		switch {
		case len(w) <= 3:
			result.Vocabulary.ShortWords++
		case len(w) <= 6:
			result.Vocabulary.MediumWords++
		default:
			result.Vocabulary.LongWords++
		}
	}

	result.AvgWordLength = round2(float64(result.TotalCharacters) / float64(result.TotalWords))
	result.AvgSentenceLength = round1(float64(result.TotalWords) / float64(result.TotalSentences))
	result.AvgSyllablesPerWord = round2(float64(result.TotalSyllables) / float64(result.TotalWords))
	result.Vocabulary.LexicalDiversity = round3(float64(result.UniqueWords) / float64(result.TotalWords))

	counts := readability.Counts{
		Words:        result.TotalWords,
		Sentences:    result.TotalSentences,
		Syllables:    result.TotalSyllables,
		Characters:   result.TotalCharacters,
		ComplexWords: result.Vocabulary.ComplexWords,
	}

	metricScores := readability.Evaluate(counts)
	result.setScores(metricScores)

	grade := finalGrade(metricScores, result)
	result.GradeLevel = gradeToString(grade)
	result.AgeRange = gradeToAgeRange(grade)
	result.Difficulty = difficultyLevel(grade)

	log.Debug().
		Int("entries", result.TotalEntries).
		Int("words", result.TotalWords).
		Int("skipped_technical", result.SkippedTechnical).
		Str("encoding", encoding).
		Str("grade_level", result.GradeLevel).
		Msg("Analysis complete")

	return result, nil
}
