package analyzer

import (
	"fmt"

	"mclang-tool/internal/readability"
)

// finalGrade combines the valid grade-scaled metrics into a single grade and
// boosts it with a vocabulary signal. Short game phrases carry their
// complexity mainly through word choice, so the sentence-length-driven
// formulas alone undershoot.
func finalGrade(scores []readability.MetricScore, r *Result) float64 {
	var sum float64
	var n int
	for _, ms := range scores {
		if !ms.GradeScaled || !ms.Score.Valid || ms.Score.Value <= 0 {
			continue
		}
		sum += ms.Score.Value
		n++
	}

	base := 0.0
	if n > 0 {
		base = sum / float64(n)
	}

	if r.TotalWords == 0 {
		return base
	}

	longRatio := float64(r.Vocabulary.LongWords) / float64(r.TotalWords)
	complexRatio := float64(r.Vocabulary.ComplexWords) / float64(r.TotalWords)
	adjustment := (longRatio*1.5 + complexRatio*1.5) * 2

	diversityBonus := float64(r.UniqueWords) / float64(r.TotalWords)

	return base + adjustment + diversityBonus
}

// gradeToString maps a numeric grade to a school-grade label.
func gradeToString(grade float64) string {
	switch {
	case grade < 1:
		return "Kindergarten or below"
	case grade < 2:
		return "1st Grade"
	case grade < 3:
		return "2nd Grade"
	case grade < 4:
		return "3rd Grade"
	case grade < 13:
		return fmt.Sprintf("%dth Grade", int(grade))
	case grade < 16:
		return "College Level"
	default:
		return "Advanced/Professional"
	}
}

// gradeToAgeRange maps a numeric grade to a typical reader age range.
func gradeToAgeRange(grade float64) string {
	switch {
	case grade < 1:
		return "5-6 years"
	case grade < 2:
		return "6-7 years"
	case grade < 3:
		return "7-8 years"
	case grade < 4:
		return "8-9 years"
	case grade < 5:
		return "9-10 years"
	case grade < 6:
		return "10-11 years"
	case grade < 7:
		return "11-12 years"
	case grade < 8:
		return "12-13 years"
	case grade < 9:
		return "13-14 years"
	case grade < 10:
		return "14-15 years"
	case grade < 11:
		return "15-16 years"
	case grade < 12:
		return "16-17 years"
	case grade < 13:
		return "17-18 years"
	case grade < 16:
		return "18-21 years (College)"
	default:
		return "21+ years (Advanced)"
	}
}

// difficultyLevel maps a numeric grade to a difficulty tier.
func difficultyLevel(grade float64) string {
	switch {
	case grade < 3:
		return "Very Easy - Early Elementary"
	case grade < 6:
		return "Easy - Elementary"
	case grade < 9:
		return "Moderate - Middle School"
	case grade < 13:
		return "Challenging - High School"
	case grade < 16:
		return "Difficult - College Level"
	default:
		return "Very Difficult - Advanced"
	}
}
