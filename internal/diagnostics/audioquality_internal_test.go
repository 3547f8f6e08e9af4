package diagnostics

import (
	"math"
	"testing"
)

func TestNormalizeZeroBitDepth(t *testing.T) {
	t.Parallel()

	// A decoder that reports no bit depth must not panic the scaler; samples
	// fall back to 16-bit scaling.
	samples := normalize([]int{16384, -16384}, 0, 1)
	if len(samples) != 2 {
		t.Fatalf("got %d samples, want 2", len(samples))
	}
	if math.Abs(samples[0]-0.5) > 1e-9 || math.Abs(samples[1]+0.5) > 1e-9 {
		t.Fatalf("samples = %v, want [0.5 -0.5]", samples)
	}
}

func TestNormalizeAveragesChannels(t *testing.T) {
	t.Parallel()

	samples := normalize([]int{16384, -16384}, 16, 2)
	if len(samples) != 1 {
		t.Fatalf("got %d samples, want 1", len(samples))
	}
	if math.Abs(samples[0]) > 1e-9 {
		t.Fatalf("stereo average = %v, want 0", samples[0])
	}
}
