package readability

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strconv"

	"github.com/verte-zerg/readability/internal/model"
)

var gradePattern = regexp.MustCompile(`-?\d+`)

// GradeLevels returns the candidate grades Text Standard aggregates: the
// floor and ceiling of each grade-level formula plus the grade bands of the
// Flesch Reading Ease and Dale-Chall scores.
func GradeLevels(s model.TokenStats) []float64 {
	estimates := []float64{
		FleschKincaidGrade(s),
		SMOG(s),
		ColemanLiau(s),
		AutomatedReadabilityIndex(s),
		LinsearWrite(s),
		GunningFog(s),
	}
	grades := make([]float64, 0, 2*len(estimates)+4)
	for _, v := range estimates {
		grades = append(grades, math.Floor(v), math.Ceil(v))
	}
	grades = append(grades, fleschBand(FleschReadingEase(s))...)
	grades = append(grades, daleChallBand(DaleChall(s))...)
	return grades
}

// fleschBand maps a Flesch Reading Ease score to school grades.
func fleschBand(score float64) []float64 {
	switch {
	case score >= 90:
		return []float64{5}
	case score >= 80:
		return []float64{6}
	case score >= 70:
		return []float64{7}
	case score >= 60:
		return []float64{8, 9}
	case score >= 50:
		return []float64{10}
	case score >= 40:
		return []float64{11}
	case score >= 30:
		return []float64{12}
	default:
		return []float64{13}
	}
}

// daleChallBand maps a Dale-Chall score to the grades of its interpretation table.
func daleChallBand(score float64) []float64 {
	switch {
	case score < 5:
		return []float64{4}
	case score < 6:
		return []float64{5, 6}
	case score < 7:
		return []float64{7, 8}
	case score < 8:
		return []float64{9, 10}
	case score < 9:
		return []float64{11, 12}
	default:
		return []float64{13, 15}
	}
}

// TextStandardGrade is the rounded median of GradeLevels.
func TextStandardGrade(s model.TokenStats) int {
	grades := GradeLevels(s)
	sort.Float64s(grades)
	mid := len(grades) / 2
	median := grades[mid]
	if len(grades)%2 == 0 {
		median = (grades[mid-1] + grades[mid]) / 2
	}
	return int(math.Round(median))
}

// TextStandard renders the consensus grade as "9th and 10th grade".
func TextStandard(s model.TokenStats) string {
	return GradeLabel(TextStandardGrade(s))
}

// GradeLabel formats grade g as the range ending at g.
func GradeLabel(g int) string {
	return fmt.Sprintf("%d%s and %d%s grade", g-1, ordinalSuffix(g-1), g, ordinalSuffix(g))
}

// ParseGrade extracts the upper grade from a Text Standard label.
func ParseGrade(label string) (int, error) {
	matches := gradePattern.FindAllString(label, -1)
	if len(matches) == 0 {
		return 0, fmt.Errorf("no grade in %q", label)
	}
	return strconv.Atoi(matches[len(matches)-1])
}

func ordinalSuffix(n int) string {
	if n < 0 {
		n = -n
	}
	if mod := n % 100; mod >= 11 && mod <= 13 {
		return "th"
	}
	switch n % 10 {
	case 1:
		return "st"
	case 2:
		return "nd"
	case 3:
		return "rd"
	default:
		return "th"
	}
}
