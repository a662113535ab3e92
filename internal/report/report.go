// Package report renders analysis results for humans and machines.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"mclang-tool/internal/analyzer"
	"mclang-tool/internal/readability"
)

// WriteJSON writes the result as indented JSON.
func WriteJSON(w io.Writer, result *analyzer.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	return nil
}

// WriteText writes a console-friendly report.
func WriteText(w io.Writer, result *analyzer.Result) error {
	var sb strings.Builder

	sb.WriteString("TEXT COMPLEXITY ANALYSIS\n")
	sb.WriteString(strings.Repeat("=", 50) + "\n\n")

	sb.WriteString("Content Statistics:\n")
	fmt.Fprintf(&sb, "  Entries analyzed:       %d\n", result.TotalEntries)
	fmt.Fprintf(&sb, "  Technical entries skipped: %d\n", result.SkippedTechnical)
	fmt.Fprintf(&sb, "  Total words:            %d\n", result.TotalWords)
	fmt.Fprintf(&sb, "  Unique words:           %d\n", result.UniqueWords)
	fmt.Fprintf(&sb, "  Total sentences:        %d\n", result.TotalSentences)
	fmt.Fprintf(&sb, "  Avg word length:        %.2f letters\n", result.AvgWordLength)
	fmt.Fprintf(&sb, "  Avg sentence length:    %.1f words\n", result.AvgSentenceLength)
	fmt.Fprintf(&sb, "  Avg syllables per word: %.2f\n", result.AvgSyllablesPerWord)
	fmt.Fprintf(&sb, "  Encoding:               %s\n\n", result.Encoding)

	sb.WriteString("Readability Scores:\n")
	fmt.Fprintf(&sb, "  Flesch Reading Ease:    %s\n", formatScore(result.Scores.FleschReadingEase))
	fmt.Fprintf(&sb, "  Flesch-Kincaid Grade:   %s\n", formatScore(result.Scores.FleschKincaidGrade))
	fmt.Fprintf(&sb, "  Gunning Fog Index:      %s\n", formatScore(result.Scores.GunningFog))
	fmt.Fprintf(&sb, "  SMOG Index:             %s\n", formatScore(result.Scores.SMOG))
	fmt.Fprintf(&sb, "  Coleman-Liau Index:     %s\n", formatScore(result.Scores.ColemanLiau))
	fmt.Fprintf(&sb, "  Automated Readability:  %s\n\n", formatScore(result.Scores.ARI))

	sb.WriteString("Vocabulary Breakdown:\n")
	fmt.Fprintf(&sb, "  Short words (1-3):      %d\n", result.Vocabulary.ShortWords)
	fmt.Fprintf(&sb, "  Medium words (4-6):     %d\n", result.Vocabulary.MediumWords)
	fmt.Fprintf(&sb, "  Long words (7+):        %d\n", result.Vocabulary.LongWords)
	fmt.Fprintf(&sb, "  Complex words (3+ syl): %d\n", result.Vocabulary.ComplexWords)
	fmt.Fprintf(&sb, "  Lexical diversity:      %.3f\n\n", result.Vocabulary.LexicalDiversity)

	sb.WriteString("Assessment:\n")
	fmt.Fprintf(&sb, "  Grade level:            %s\n", result.GradeLevel)
	fmt.Fprintf(&sb, "  Age range:              %s\n", result.AgeRange)
	fmt.Fprintf(&sb, "  Difficulty:             %s\n", result.Difficulty)

	_, err := io.WriteString(w, sb.String())
	return err
}

// formatScore renders a score, or "n/a (sample too small)" for metrics whose
// precondition failed.
func formatScore(s readability.Score) string {
	if !s.Valid {
		return "n/a (sample too small)"
	}
	return fmt.Sprintf("%.1f", s.Value)
}
