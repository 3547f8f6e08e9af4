package classify_test

import (
	"testing"

	"diarbench/internal/classify"
	"diarbench/internal/scoring"
)

func TestClassifyPriorityOrder(t *testing.T) {
	t.Parallel()

	// Rule 1 short-circuits even with a pathological false-alarm rate.
	got := classify.Classify(scoring.Breakdown{DER: 0.1, FalseAlarm: 0.5})
	if got != classify.Good {
		t.Fatalf("expected GOOD, got %s", got)
	}
}

func TestClassifyStrictThresholds(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   scoring.Breakdown
		want classify.Category
	}{
		{
			name: "der exactly at threshold is not good",
			in:   scoring.Breakdown{DER: 0.2, FalseAlarm: 0.35, Confusion: 0.05, MissedDetection: 0.05},
			want: classify.HighFalseAlarm,
		},
		{
			name: "der just below threshold is good",
			in:   scoring.Breakdown{DER: 0.19999, FalseAlarm: 0.35},
			want: classify.Good,
		},
		{
			name: "false alarm exactly at threshold does not trigger",
			in:   scoring.Breakdown{DER: 0.5, FalseAlarm: 0.3, Confusion: 0.1, MissedDetection: 0.05},
			want: classify.FalseAlarmDominant,
		},
		{
			name: "false alarm just above threshold triggers",
			in:   scoring.Breakdown{DER: 0.5, FalseAlarm: 0.30001, Confusion: 0.1, MissedDetection: 0.05},
			want: classify.HighFalseAlarm,
		},
		{
			name: "high confusion",
			in:   scoring.Breakdown{DER: 0.6, FalseAlarm: 0.1, Confusion: 0.41, MissedDetection: 0.1},
			want: classify.HighConfusion,
		},
		{
			name: "high missed detection",
			in:   scoring.Breakdown{DER: 0.6, FalseAlarm: 0.1, Confusion: 0.1, MissedDetection: 0.31},
			want: classify.HighMissedDetection,
		},
		{
			name: "confusion dominant below thresholds",
			in:   scoring.Breakdown{DER: 0.4, FalseAlarm: 0.05, Confusion: 0.25, MissedDetection: 0.1},
			want: classify.ConfusionDominant,
		},
		{
			name: "missed detection largest falls through to mixed",
			in:   scoring.Breakdown{DER: 0.4, FalseAlarm: 0.05, Confusion: 0.1, MissedDetection: 0.25},
			want: classify.MixedIssues,
		},
		{
			name: "tied components fall through to mixed",
			in:   scoring.Breakdown{DER: 0.3, FalseAlarm: 0.1, Confusion: 0.1, MissedDetection: 0.1},
			want: classify.MixedIssues,
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := classify.Classify(tc.in); got != tc.want {
				t.Fatalf("Classify(%+v) = %s, want %s", tc.in, got, tc.want)
			}
		})
	}
}
