package report

import (
	"sort"

	"diarbench/internal/results"
)

// Recommendation thresholds over mean component rates, taken from field
// experience with the pyannote pipeline.
const (
	falseAlarmAdviceThreshold      = 0.15
	missedDetectionAdviceThreshold = 0.15
	confusionAdviceThreshold       = 0.20
	overDetectionAdvicePct         = -5.0
	worstDERThreshold              = 0.5
	bestDERThreshold               = 0.2
)

// Summary aggregates the successful rows of a batch run. Failed and skipped
// rows count toward Total only.
type Summary struct {
	Total     int
	Succeeded int

	MeanDER   float64
	MedianDER float64
	MinDER    float64
	MaxDER    float64

	MeanFalseAlarm       float64
	MeanMissedDetection  float64
	MeanConfusion        float64
	MeanMissingSpeechPct float64

	OverDetecting  int
	UnderDetecting int

	// Worst holds success rows with DER above worstDERThreshold, worst first.
	Worst []results.Result
	// Best holds success rows with DER below bestDERThreshold, best first.
	Best []results.Result

	Categories map[string]int

	Recommendations []string
}

// Summarize computes summary statistics and textual recommendations over a
// run's results. Only rows with status success contribute to the statistics.
func Summarize(rows []results.Result) Summary {
	summary := Summary{
		Total:      len(rows),
		Categories: make(map[string]int),
	}

	var success []results.Result
	for _, row := range rows {
		if row.Succeeded() {
			success = append(success, row)
		}
	}
	summary.Succeeded = len(success)
	if len(success) == 0 {
		return summary
	}

	ders := make([]float64, 0, len(success))
	for _, row := range success {
		ders = append(ders, row.DER)
		summary.MeanFalseAlarm += row.FalseAlarm
		summary.MeanMissedDetection += row.MissedDetection
		summary.MeanConfusion += row.Confusion
		summary.MeanMissingSpeechPct += row.MissingSpeechPct
		if row.MissingSpeechPct < 0 {
			summary.OverDetecting++
		} else {
			summary.UnderDetecting++
		}
		if row.Category != "" {
			summary.Categories[row.Category]++
		}
		if row.DER > worstDERThreshold {
			summary.Worst = append(summary.Worst, row)
		}
		if row.DER < bestDERThreshold {
			summary.Best = append(summary.Best, row)
		}
	}

	n := float64(len(success))
	summary.MeanFalseAlarm /= n
	summary.MeanMissedDetection /= n
	summary.MeanConfusion /= n
	summary.MeanMissingSpeechPct /= n

	sort.Float64s(ders)
	summary.MinDER = ders[0]
	summary.MaxDER = ders[len(ders)-1]
	summary.MedianDER = median(ders)
	for _, der := range ders {
		summary.MeanDER += der
	}
	summary.MeanDER /= n

	sort.Slice(summary.Worst, func(i, j int) bool { return summary.Worst[i].DER > summary.Worst[j].DER })
	sort.Slice(summary.Best, func(i, j int) bool { return summary.Best[i].DER < summary.Best[j].DER })

	summary.Recommendations = recommendations(summary)
	return summary
}

func median(sorted []float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

func recommendations(s Summary) []string {
	var advice []string
	if s.MeanFalseAlarm > falseAlarmAdviceThreshold {
		advice = append(advice,
			"High false alarm: non-speech detected as speech. Raise the VAD threshold, add silence filtering, and check recordings for background noise.")
	}
	if s.MeanMissedDetection > missedDetectionAdviceThreshold {
		advice = append(advice,
			"High missed detection: actual speech is being skipped. Lower the VAD threshold and check audio quality and volume levels.")
	}
	if s.MeanConfusion > confusionAdviceThreshold {
		advice = append(advice,
			"High confusion: wrong speaker labels. Speaker embeddings may not be discriminative enough; consider speaker-specific fine-tuning or check for similar voices.")
	}
	if s.MeanMissingSpeechPct < overDetectionAdvicePct {
		advice = append(advice,
			"Over-detection: the system is treating silence or noise as speech. Strongly raise the VAD threshold.")
	}
	return advice
}
