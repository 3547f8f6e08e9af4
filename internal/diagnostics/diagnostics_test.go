package diagnostics_test

import (
	"math"
	"path/filepath"
	"testing"

	"diarbench/internal/diagnostics"
	"diarbench/internal/testsupport"
	"diarbench/internal/timeline"
)

func TestAnalyzeComputesDurationsAndCounts(t *testing.T) {
	t.Parallel()

	audioPath := filepath.Join(t.TempDir(), "rec.wav")
	testsupport.WriteWAV(t, audioPath, 10, 16000, 440)

	ref := timeline.New([]timeline.Turn{
		{Speaker: "A", Start: 0, End: 4},
		{Speaker: "B", Start: 4, End: 8},
	})
	hyp := timeline.New([]timeline.Turn{
		{Speaker: "SPEAKER_00", Start: 0, End: 6},
	})

	rec, err := diagnostics.Analyze(audioPath, ref, hyp)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if math.Abs(rec.AudioDuration-10) > 0.01 {
		t.Fatalf("expected ~10s audio, got %v", rec.AudioDuration)
	}
	if rec.RefSpeechDuration != 8 || rec.HypSpeechDuration != 6 {
		t.Fatalf("unexpected speech durations %+v", rec)
	}
	if rec.MissingSpeechSeconds != 2 {
		t.Fatalf("expected 2s missing, got %v", rec.MissingSpeechSeconds)
	}
	if math.Abs(rec.MissingSpeechPct-25) > 1e-9 {
		t.Fatalf("expected 25%% missing, got %v", rec.MissingSpeechPct)
	}
	if rec.SpeakersExpected != 2 || rec.SpeakersDetected != 1 {
		t.Fatalf("unexpected speaker counts %+v", rec)
	}
}

func TestAnalyzeZeroReferenceDurationGuardsDivision(t *testing.T) {
	t.Parallel()

	audioPath := filepath.Join(t.TempDir(), "rec.wav")
	testsupport.WriteWAV(t, audioPath, 1, 16000, 440)

	ref := timeline.New(nil)
	hyp := timeline.New([]timeline.Turn{{Speaker: "S", Start: 0, End: 5}})

	rec, err := diagnostics.Analyze(audioPath, ref, hyp)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if rec.MissingSpeechPct != 0 {
		t.Fatalf("expected missing pct 0 with empty reference, got %v", rec.MissingSpeechPct)
	}
	if rec.MissingSpeechSeconds != -5 {
		t.Fatalf("expected -5s missing (over-detection), got %v", rec.MissingSpeechSeconds)
	}
}

func TestAnalyzeNegativeMissingIndicatesOverDetection(t *testing.T) {
	t.Parallel()

	audioPath := filepath.Join(t.TempDir(), "rec.wav")
	testsupport.WriteWAV(t, audioPath, 1, 16000, 440)

	ref := timeline.New([]timeline.Turn{{Speaker: "A", Start: 0, End: 4}})
	hyp := timeline.New([]timeline.Turn{{Speaker: "S", Start: 0, End: 6}})

	rec, err := diagnostics.Analyze(audioPath, ref, hyp)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if rec.MissingSpeechPct >= 0 {
		t.Fatalf("expected negative missing pct, got %v", rec.MissingSpeechPct)
	}
}

func TestAnalyzeMissingAudioFails(t *testing.T) {
	t.Parallel()

	ref := timeline.New(nil)
	hyp := timeline.New(nil)
	if _, err := diagnostics.Analyze(filepath.Join(t.TempDir(), "absent.wav"), ref, hyp); err == nil {
		t.Fatal("expected error for missing audio file")
	}
}

func TestAnalyzeAudioQualityToneVersusSilence(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	tonePath := filepath.Join(dir, "tone.wav")
	silencePath := filepath.Join(dir, "silence.wav")
	testsupport.WriteWAV(t, tonePath, 2, 16000, 440)
	testsupport.WriteWAV(t, silencePath, 2, 16000, 0)

	tone, err := diagnostics.AnalyzeAudioQuality(tonePath)
	if err != nil {
		t.Fatalf("AnalyzeAudioQuality(tone): %v", err)
	}
	silence, err := diagnostics.AnalyzeAudioQuality(silencePath)
	if err != nil {
		t.Fatalf("AnalyzeAudioQuality(silence): %v", err)
	}

	if tone.Energy <= silence.Energy {
		t.Fatalf("tone energy %v should exceed silence energy %v", tone.Energy, silence.Energy)
	}
	if silence.SilenceRatio != 1 {
		t.Fatalf("expected all-silent frames, got ratio %v", silence.SilenceRatio)
	}
	if tone.SilenceRatio != 0 {
		t.Fatalf("expected no silent frames in tone, got ratio %v", tone.SilenceRatio)
	}
	// A 440 Hz sine concentrates energy near 440 Hz, so the 85% rolloff must
	// sit well below Nyquist.
	if tone.SpectralRolloffHz < 300 || tone.SpectralRolloffHz > 1500 {
		t.Fatalf("unexpected rolloff %v Hz for 440 Hz tone", tone.SpectralRolloffHz)
	}
	// A 440 Hz tone at 16 kHz crosses zero roughly 880 times per second.
	wantZCR := 880.0 / 16000.0
	if math.Abs(tone.ZeroCrossingRate-wantZCR) > wantZCR/2 {
		t.Fatalf("unexpected zero-crossing rate %v, want about %v", tone.ZeroCrossingRate, wantZCR)
	}
}
