package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"mclang-tool/internal/analyzer"
	"mclang-tool/internal/readability"
)

func sampleResult() *analyzer.Result {
	r := &analyzer.Result{
		TotalEntries:     3,
		SkippedTechnical: 1,
		Encoding:         "utf-8",
		TotalWords:       12,
		UniqueWords:      11,
		TotalSentences:   3,
		GradeLevel:       "4th Grade",
		AgeRange:         "9-10 years",
		Difficulty:       "Easy - Elementary",
	}
	r.Scores.FleschReadingEase = readability.Score{Value: 82.3, Valid: true}
	r.Scores.FleschKincaidGrade = readability.Score{Value: 4.1, Valid: true}
	r.Scores.GunningFog = readability.Score{Value: 5.0, Valid: true}
	r.Scores.ColemanLiau = readability.Score{Value: 4.8, Valid: true}
	r.Scores.ARI = readability.Score{Value: 3.9, Valid: true}
	// SMOG left invalid: sample below the sentence threshold
	return r
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, sampleResult()); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}

	scores, ok := decoded["scores"].(map[string]any)
	if !ok {
		t.Fatalf("scores missing: %v", decoded)
	}
	if scores["smog_index"] != nil {
		t.Errorf("smog_index = %v, want null", scores["smog_index"])
	}
	if scores["flesch_kincaid_grade"] != 4.1 {
		t.Errorf("flesch_kincaid_grade = %v, want 4.1", scores["flesch_kincaid_grade"])
	}
	if decoded["grade_level"] != "4th Grade" {
		t.Errorf("grade_level = %v", decoded["grade_level"])
	}
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteText(&buf, sampleResult()); err != nil {
		t.Fatalf("WriteText: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"TEXT COMPLEXITY ANALYSIS",
		"Total words:            12",
		"Flesch-Kincaid Grade:   4.1",
		"SMOG Index:             n/a (sample too small)",
		"Grade level:            4th Grade",
		"Difficulty:             Easy - Elementary",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q:\n%s", want, out)
		}
	}
}
