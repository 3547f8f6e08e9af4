// Package diarize defines the diarization provider contract and the pyannote
// sidecar client that fulfils it.
package diarize

import (
	"context"

	"diarbench/internal/timeline"
)

// Request holds parameters for a diarization call. Zero-valued hints leave
// the model unconstrained; NumSpeakers is exclusive with the min/max pair.
type Request struct {
	AudioPath   string
	NumSpeakers int
	MinSpeakers int
	MaxSpeakers int
}

// Provider is implemented by diarization backends.
type Provider interface {
	// Name identifies the backend for logs.
	Name() string
	// IsAvailable reports whether the backend is reachable.
	IsAvailable(ctx context.Context) bool
	// Diarize maps audio to a predicted speaker timeline.
	Diarize(ctx context.Context, req Request) (*timeline.Annotation, error)
}
