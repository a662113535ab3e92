package analyzer

import (
	"math"

	"mclang-tool/internal/readability"
)

// Vocabulary buckets words by length and complexity.
type Vocabulary struct {
	// ShortWords counts words of 1-3 letters.
	ShortWords int `json:"short_words_1_3"`
	// MediumWords counts words of 4-6 letters.
	MediumWords int `json:"medium_words_4_6"`
	// LongWords counts words of 7+ letters.
	LongWords int `json:"long_words_7_plus"`
	// ComplexWords counts words with 3+ estimated syllables.
	ComplexWords int `json:"complex_words_3plus_syllables"`
	// LexicalDiversity is unique words over total words.
	LexicalDiversity float64 `json:"lexical_diversity"`
}

// Scores holds the six readability metrics. SMOG is null below 30 sentences;
// invalid scores serialize as null, never zero.
type Scores struct {
	FleschReadingEase  readability.Score `json:"flesch_reading_ease"`
	FleschKincaidGrade readability.Score `json:"flesch_kincaid_grade"`
	GunningFog         readability.Score `json:"gunning_fog_index"`
	SMOG               readability.Score `json:"smog_index"`
	ColemanLiau        readability.Score `json:"coleman_liau_index"`
	ARI                readability.Score `json:"automated_readability_index"`
}

// Result is the complete readability analysis of one lang file. It is fully
// determined by the cleaned text values; key names and line order never
// influence it.
type Result struct {
	TotalEntries     int    `json:"total_entries"`
	SkippedTechnical int    `json:"skipped_technical"`
	Encoding         string `json:"encoding"`

	TotalWords      int `json:"total_words"`
	UniqueWords     int `json:"unique_words"`
	TotalSentences  int `json:"total_sentences"`
	TotalSyllables  int `json:"total_syllables"`
	TotalCharacters int `json:"total_characters"`

	AvgWordLength       float64 `json:"avg_word_length"`
	AvgSentenceLength   float64 `json:"avg_sentence_length"`
	AvgSyllablesPerWord float64 `json:"avg_syllables_per_word"`

	Scores     Scores     `json:"scores"`
	Vocabulary Vocabulary `json:"vocabulary_complexity"`

	GradeLevel string `json:"grade_level"`
	AgeRange   string `json:"age_range"`
	Difficulty string `json:"difficulty"`
}

// setScores copies evaluated metrics into the named score fields, rounded to
// one decimal for presentation. Aggregation uses the unrounded values.
func (r *Result) setScores(scores []readability.MetricScore) {
	for _, ms := range scores {
		rounded := ms.Score.Round1()
		switch ms.Name {
		case readability.FleschReadingEase:
			r.Scores.FleschReadingEase = rounded
		case readability.FleschKincaidGrade:
			r.Scores.FleschKincaidGrade = rounded
		case readability.GunningFog:
			r.Scores.GunningFog = rounded
		case readability.SMOG:
			r.Scores.SMOG = rounded
		case readability.ColemanLiau:
			r.Scores.ColemanLiau = rounded
		case readability.ARI:
			r.Scores.ARI = rounded
		}
	}
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
func round2(v float64) float64 { return math.Round(v*100) / 100 }
func round3(v float64) float64 { return math.Round(v*1000) / 1000 }
