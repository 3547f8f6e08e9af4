package testsupport

import (
	"math"
	"os"
	"testing"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// WriteWAV writes a 16-bit mono PCM WAV file of the given duration at the
// given sample rate. A positive frequency produces a sine tone; frequency 0
// produces silence.
func WriteWAV(t testing.TB, path string, seconds float64, sampleRate int, frequency float64) {
	t.Helper()

	file, err := os.Create(path)
	if err != nil {
		t.Fatalf("create wav %s: %v", path, err)
	}
	defer file.Close()

	total := int(seconds * float64(sampleRate))
	data := make([]int, total)
	if frequency > 0 {
		for i := range data {
			sample := math.Sin(2 * math.Pi * frequency * float64(i) / float64(sampleRate))
			data[i] = int(sample * 0.5 * math.MaxInt16)
		}
	}

	encoder := wav.NewEncoder(file, sampleRate, 16, 1, 1)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: sampleRate},
		Data:           data,
		SourceBitDepth: 16,
	}
	if err := encoder.Write(buf); err != nil {
		t.Fatalf("encode wav %s: %v", path, err)
	}
	if err := encoder.Close(); err != nil {
		t.Fatalf("close wav %s: %v", path, err)
	}
}
