// Package diagnostics derives per-recording quality signals from the audio
// and the two timeline annotations.
package diagnostics

import (
	"fmt"

	"diarbench/internal/timeline"
)

// Record holds derived metrics for one recording. Durations are seconds;
// MissingSpeechPct is a percentage of reference speech duration and can be
// negative when the hypothesis over-detects speech.
type Record struct {
	AudioDuration        float64
	RefSpeechDuration    float64
	HypSpeechDuration    float64
	MissingSpeechSeconds float64
	MissingSpeechPct     float64
	SpeakersDetected     int
	SpeakersExpected     int

	// Quality is populated only when the audio-quality step is enabled.
	Quality *Quality
}

// Analyze computes the diagnostic record for a recording. Reference overlap
// is not merged, so overlapping source entries double count in
// RefSpeechDuration.
func Analyze(audioPath string, reference, hypothesis *timeline.Annotation) (Record, error) {
	audioDuration, err := AudioDuration(audioPath)
	if err != nil {
		return Record{}, fmt.Errorf("probe audio duration: %w", err)
	}

	refDuration := reference.SpeechDuration()
	hypDuration := hypothesis.SpeechDuration()
	missing := refDuration - hypDuration

	missingPct := 0.0
	if refDuration > 0 {
		missingPct = missing / refDuration * 100
	}

	return Record{
		AudioDuration:        audioDuration,
		RefSpeechDuration:    refDuration,
		HypSpeechDuration:    hypDuration,
		MissingSpeechSeconds: missing,
		MissingSpeechPct:     missingPct,
		SpeakersDetected:     hypothesis.SpeakerCount(),
		SpeakersExpected:     reference.SpeakerCount(),
	}, nil
}
