// Package scoring compares reference and hypothesis timelines through a DER
// metric sidecar, producing an error-rate breakdown.
package scoring

import (
	"context"
	"errors"

	"diarbench/internal/timeline"
)

// ErrDetailedUnsupported indicates the scorer cannot produce a component
// breakdown. Callers should fall back to aggregate-only scoring; this is a
// degraded success, not a failure.
var ErrDetailedUnsupported = errors.New("detailed breakdown unsupported")

// Breakdown holds DER and its components, each a fraction of reference
// speech duration. When Detailed is false only DER is meaningful; the
// components are zero by convention.
type Breakdown struct {
	DER             float64
	FalseAlarm      float64
	MissedDetection float64
	Confusion       float64
	Detailed        bool
}

// Scorer computes an error breakdown for a reference/hypothesis pair.
type Scorer interface {
	// Score compares the two timelines. With detailed set it returns the full
	// component breakdown or ErrDetailedUnsupported; without it only the
	// aggregate rate is computed.
	Score(ctx context.Context, reference, hypothesis *timeline.Annotation, detailed bool) (Breakdown, error)
}

// ScoreWithFallback requests a detailed breakdown and degrades to an
// aggregate-only score when the scorer does not support components. The
// zeroed components in the degraded result are a documented inaccuracy kept
// for report compatibility.
func ScoreWithFallback(ctx context.Context, scorer Scorer, reference, hypothesis *timeline.Annotation) (Breakdown, error) {
	breakdown, err := scorer.Score(ctx, reference, hypothesis, true)
	if err == nil {
		return breakdown, nil
	}
	if !errors.Is(err, ErrDetailedUnsupported) {
		return Breakdown{}, err
	}

	breakdown, err = scorer.Score(ctx, reference, hypothesis, false)
	if err != nil {
		return Breakdown{}, err
	}
	breakdown.FalseAlarm = 0
	breakdown.MissedDetection = 0
	breakdown.Confusion = 0
	breakdown.Detailed = false
	return breakdown, nil
}
