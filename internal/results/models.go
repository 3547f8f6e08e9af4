package results

import (
	"strings"
	"time"
)

// Status represents the terminal state of one recording in a batch.
type Status string

const (
	StatusSuccess        Status = "success"
	StatusDownloadFailed Status = "download_failed"
	StatusFailed         Status = "failed"
)

var statusSet = map[Status]struct{}{
	StatusSuccess:        {},
	StatusDownloadFailed: {},
	StatusFailed:         {},
}

// ParseStatus converts a string into a known Status.
func ParseStatus(value string) (Status, bool) {
	normalized := Status(strings.ToLower(strings.TrimSpace(value)))
	_, ok := statusSet[normalized]
	return normalized, ok
}

// Run describes one batch execution.
type Run struct {
	ID           string
	ManifestPath string
	StartedAt    time.Time
	FinishedAt   *time.Time
	ReportPath   string
	Total        int
	Succeeded    int
	Failed       int
}

// Result is the immutable outcome for one recording. Created once during a
// batch run and never mutated afterwards; error metrics and diagnostics are
// only meaningful when Status is success.
type Result struct {
	ID     int64
	RunID  string
	RecID  string
	Status Status

	DER             float64
	FalseAlarm      float64
	MissedDetection float64
	Confusion       float64
	// Detailed is false when the scorer degraded to aggregate-only DER; the
	// component fields above are zero by convention in that case.
	Detailed bool

	AudioDuration        float64
	RefSpeechDuration    float64
	HypSpeechDuration    float64
	MissingSpeechSeconds float64
	MissingSpeechPct     float64
	SpeakersDetected     int
	SpeakersExpected     int

	Category     string
	ErrorMessage string
	CreatedAt    time.Time
}

// Succeeded reports whether the recording completed the full pipeline.
func (r Result) Succeeded() bool {
	return r.Status == StatusSuccess
}
