// Package classify assigns a coarse problem category to a scored recording.
package classify

import "diarbench/internal/scoring"

// Category is a coarse diagnosis of where a recording's diarization error
// comes from.
type Category string

const (
	Good                Category = "GOOD"
	HighFalseAlarm      Category = "HIGH_FALSE_ALARM"
	HighConfusion       Category = "HIGH_CONFUSION"
	HighMissedDetection Category = "HIGH_MISSED_DETECTION"
	FalseAlarmDominant  Category = "FALSE_ALARM_DOMINANT"
	ConfusionDominant   Category = "CONFUSION_DOMINANT"
	MixedIssues         Category = "MIXED_ISSUES"
)

// Classify maps an error breakdown to a category. The rules form a priority
// cascade: each is only considered when every earlier rule failed to match.
// All comparisons are strict.
func Classify(b scoring.Breakdown) Category {
	switch {
	case b.DER < 0.2:
		return Good
	case b.FalseAlarm > 0.3:
		return HighFalseAlarm
	case b.Confusion > 0.4:
		return HighConfusion
	case b.MissedDetection > 0.3:
		return HighMissedDetection
	case b.FalseAlarm > b.Confusion && b.FalseAlarm > b.MissedDetection:
		return FalseAlarmDominant
	case b.Confusion > b.FalseAlarm && b.Confusion > b.MissedDetection:
		return ConfusionDominant
	default:
		return MixedIssues
	}
}
