package render

import "firewall-rule-generator/internal/model"

type Grade string

const (
	GradeGood Grade = "good"
	GradeFair Grade = "fair"
	GradePoor Grade = "poor"
)

// ScoreGrade buckets a total score: 80 and above is good, 60 and above fair.
func ScoreGrade(score int) Grade {
	switch {
	case score >= 80:
		return GradeGood
	case score >= 60:
		return GradeFair
	default:
		return GradePoor
	}
}

// EntryGrade is good at full marks, poor at zero, fair in between.
func EntryGrade(e model.ScoreEntry) Grade {
	switch {
	case e.Points == e.MaxPoints:
		return GradeGood
	case e.Points > 0:
		return GradeFair
	default:
		return GradePoor
	}
}
