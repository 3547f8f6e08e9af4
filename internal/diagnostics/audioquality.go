package diagnostics

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-audio/wav"
	"gonum.org/v1/gonum/dsp/fourier"
)

// Quality holds descriptive waveform statistics. They feed the report only;
// nothing downstream changes behavior based on them.
type Quality struct {
	// Energy is the mean squared sample amplitude over the whole signal,
	// with samples normalized to [-1, 1].
	Energy float64
	// ZeroCrossingRate is the fraction of adjacent sample pairs that change
	// sign.
	ZeroCrossingRate float64
	// SpectralRolloffHz is the frequency below which 85% of spectral energy
	// lies, averaged over analysis frames.
	SpectralRolloffHz float64
	// SilenceRatio is the fraction of analysis frames whose energy falls
	// below silenceEnergyThreshold.
	SilenceRatio float64
}

const (
	frameSize              = 2048
	rolloffFraction        = 0.85
	silenceEnergyThreshold = 1e-4
)

// AudioDuration returns the length of a WAV file in seconds.
func AudioDuration(path string) (float64, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer file.Close()

	decoder := wav.NewDecoder(file)
	duration, err := decoder.Duration()
	if err != nil {
		return 0, fmt.Errorf("decode wav %s: %w", path, err)
	}
	return duration.Seconds(), nil
}

// AnalyzeAudioQuality decodes the WAV at path and computes waveform
// statistics over fixed-size frames.
func AnalyzeAudioQuality(path string) (*Quality, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	decoder := wav.NewDecoder(file)
	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("decode wav %s: %w", path, err)
	}
	if buf == nil || len(buf.Data) == 0 {
		return nil, errors.New("empty audio stream")
	}

	sampleRate := float64(buf.Format.SampleRate)
	samples := normalize(buf.Data, int(decoder.BitDepth), buf.Format.NumChannels)
	if len(samples) < 2 {
		return nil, errors.New("audio too short for analysis")
	}

	quality := &Quality{
		Energy:           meanEnergy(samples),
		ZeroCrossingRate: zeroCrossingRate(samples),
	}

	fft := fourier.NewFFT(frameSize)
	var (
		rolloffSum    float64
		rolloffFrames int
		silentFrames  int
		totalFrames   int
	)
	for offset := 0; offset+frameSize <= len(samples); offset += frameSize {
		frame := samples[offset : offset+frameSize]
		totalFrames++
		if meanEnergy(frame) < silenceEnergyThreshold {
			silentFrames++
		}
		if hz, ok := spectralRolloff(fft, frame, sampleRate); ok {
			rolloffSum += hz
			rolloffFrames++
		}
	}
	if totalFrames > 0 {
		quality.SilenceRatio = float64(silentFrames) / float64(totalFrames)
	}
	if rolloffFrames > 0 {
		quality.SpectralRolloffHz = rolloffSum / float64(rolloffFrames)
	}
	return quality, nil
}

// normalize scales interleaved integer PCM to mono float samples in [-1, 1].
// Multi-channel audio is averaged across channels.
func normalize(data []int, bitDepth, channels int) []float64 {
	if channels < 1 {
		channels = 1
	}
	// Shifting by a negative count panics, so a missing bit depth falls back
	// to 16-bit scaling before the shift.
	if bitDepth < 1 {
		bitDepth = 16
	}
	scale := float64(int64(1) << (bitDepth - 1))
	if scale == 0 {
		scale = 1 << 15
	}

	frames := len(data) / channels
	out := make([]float64, 0, frames)
	for i := 0; i < frames; i++ {
		var sum float64
		for c := 0; c < channels; c++ {
			sum += float64(data[i*channels+c]) / scale
		}
		out = append(out, sum/float64(channels))
	}
	return out
}

func meanEnergy(samples []float64) float64 {
	if len(samples) == 0 {
		return 0
	}
	var sum float64
	for _, s := range samples {
		sum += s * s
	}
	return sum / float64(len(samples))
}

func zeroCrossingRate(samples []float64) float64 {
	if len(samples) < 2 {
		return 0
	}
	crossings := 0
	for i := 1; i < len(samples); i++ {
		if (samples[i-1] >= 0) != (samples[i] >= 0) {
			crossings++
		}
	}
	return float64(crossings) / float64(len(samples)-1)
}

// spectralRolloff returns the frequency below which rolloffFraction of the
// frame's spectral energy lies. Frames with no energy report no rolloff.
func spectralRolloff(fft *fourier.FFT, frame []float64, sampleRate float64) (float64, bool) {
	coeffs := fft.Coefficients(nil, frame)

	power := make([]float64, len(coeffs))
	var total float64
	for i, c := range coeffs {
		p := real(c)*real(c) + imag(c)*imag(c)
		power[i] = p
		total += p
	}
	if total == 0 {
		return 0, false
	}

	target := total * rolloffFraction
	var cumulative float64
	for i, p := range power {
		cumulative += p
		if cumulative >= target {
			return fft.Freq(i) * sampleRate, true
		}
	}
	return fft.Freq(len(power)-1) * sampleRate, true
}
