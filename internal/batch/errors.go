package batch

import (
	"errors"

	"diarbench/internal/results"
)

// Sentinel errors partition per-recording failures into the two terminal
// statuses a recording can end in short of success.
var (
	// ErrDownload marks a failure to retrieve the audio or transcript.
	// Later pipeline stages are skipped for the recording.
	ErrDownload = errors.New("download failed")

	// ErrProcessing marks a failure after download: parsing, diarization,
	// scoring, or diagnostics.
	ErrProcessing = errors.New("processing failed")
)

// statusFor maps a per-recording error to its terminal status.
func statusFor(err error) results.Status {
	if errors.Is(err, ErrDownload) {
		return results.StatusDownloadFailed
	}
	return results.StatusFailed
}
