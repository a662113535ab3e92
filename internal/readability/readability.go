// Package readability computes classic readability formulas from aggregate
// lexical counts. Each formula carries its own validity precondition; a
// formula whose precondition fails yields an invalid Score rather than zero.
package readability

import (
	"encoding/json"
	"math"
)

// Counts are the aggregate lexical statistics one analysis run produces.
type Counts struct {
	// Words is the total word count W.
	Words int
	// Sentences is the total sentence count S. For game text, one retained
	// entry counts as one sentence.
	Sentences int
	// Syllables is the total estimated syllable count Y.
	Syllables int
	// Characters is the total letter count C (sum of word lengths).
	Characters int
	// ComplexWords is the number of words with 3+ syllables.
	ComplexWords int
}

// Score is an optional metric result. Valid is false when the metric's
// precondition was not met; zero is a legitimate computed value and must not
// be confused with "not computed".
type Score struct {
	Value float64
	Valid bool
}

// Round1 returns the score rounded to one decimal place for presentation.
// Invalid scores round to 0 but stay distinguishable through Valid.
func (s Score) Round1() Score {
	if !s.Valid {
		return s
	}
	return Score{Value: math.Round(s.Value*10) / 10, Valid: true}
}

// MarshalJSON encodes an invalid score as null, never as zero.
func (s Score) MarshalJSON() ([]byte, error) {
	if !s.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(s.Value)
}

// UnmarshalJSON accepts a number or null.
func (s *Score) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*s = Score{}
		return nil
	}
	if err := json.Unmarshal(data, &s.Value); err != nil {
		return err
	}
	s.Valid = true
	return nil
}

// Metric is one readability formula with its precondition.
type Metric struct {
	// Name identifies the formula in results and reports.
	Name string
	// GradeScaled marks formulas whose output is a US school grade and which
	// therefore participate in grade averaging. Flesch Reading Ease is a
	// 0-100 ease score and is reported but never averaged with grades.
	GradeScaled bool
	// Applicable reports whether the counts satisfy the formula's
	// precondition.
	Applicable func(Counts) bool
	// Compute evaluates the formula. Only called when Applicable is true.
	Compute func(Counts) float64
}

// Metric names.
const (
	FleschReadingEase  = "flesch_reading_ease"
	FleschKincaidGrade = "flesch_kincaid_grade"
	GunningFog         = "gunning_fog_index"
	SMOG               = "smog_index"
	ColemanLiau        = "coleman_liau_index"
	ARI                = "automated_readability_index"
)

// SMOGMinSentences is the minimum sample size the SMOG formula was derived
// for; below it the metric is not applicable.
const SMOGMinSentences = 30

func hasSentences(c Counts) bool { return c.Words > 0 && c.Sentences > 0 }

// Metrics is the ordered formula table the engine iterates.
var Metrics = []Metric{
	{
		Name:        FleschReadingEase,
		GradeScaled: false,
		Applicable:  hasSentences,
		Compute: func(c Counts) float64 {
			return 206.835 -
				1.015*(float64(c.Words)/float64(c.Sentences)) -
				84.6*(float64(c.Syllables)/float64(c.Words))
		},
	},
	{
		Name:        FleschKincaidGrade,
		GradeScaled: true,
		Applicable:  hasSentences,
		Compute: func(c Counts) float64 {
			return 0.39*(float64(c.Words)/float64(c.Sentences)) +
				11.8*(float64(c.Syllables)/float64(c.Words)) -
				15.59
		},
	},
	{
		Name:        GunningFog,
		GradeScaled: true,
		Applicable:  hasSentences,
		Compute: func(c Counts) float64 {
			return 0.4 * (float64(c.Words)/float64(c.Sentences) +
				100*float64(c.ComplexWords)/float64(c.Words))
		},
	},
	{
		Name:        SMOG,
		GradeScaled: true,
		Applicable: func(c Counts) bool {
			return c.Words > 0 && c.Sentences >= SMOGMinSentences
		},
		Compute: func(c Counts) float64 {
			return 1.0430*math.Sqrt(float64(c.ComplexWords)*30/float64(c.Sentences)) + 3.1291
		},
	},
	{
		Name:        ColemanLiau,
		GradeScaled: true,
		Applicable:  func(c Counts) bool { return c.Words > 0 },
		Compute: func(c Counts) float64 {
			l := float64(c.Characters) / float64(c.Words) * 100
			s := float64(c.Sentences) / float64(c.Words) * 100
			return 0.0588*l - 0.296*s - 15.8
		},
	},
	{
		Name:        ARI,
		GradeScaled: true,
		Applicable:  hasSentences,
		Compute: func(c Counts) float64 {
			return 4.71*(float64(c.Characters)/float64(c.Words)) +
				0.5*(float64(c.Words)/float64(c.Sentences)) -
				21.43
		},
	},
}

// MetricScore pairs a metric with its (possibly invalid) score.
type MetricScore struct {
	Name        string
	GradeScaled bool
	Score       Score
}

// Evaluate runs every metric in the table against the counts. Metrics whose
// precondition fails come back with an invalid Score.
func Evaluate(c Counts) []MetricScore {
	results := make([]MetricScore, 0, len(Metrics))
	for _, m := range Metrics {
		ms := MetricScore{Name: m.Name, GradeScaled: m.GradeScaled}
		if m.Applicable(c) {
			ms.Score = Score{Value: m.Compute(c), Valid: true}
		}
		results = append(results, ms)
	}
	return results
}
