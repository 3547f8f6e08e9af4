package batch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"path"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"diarbench/internal/classify"
	"diarbench/internal/config"
	"diarbench/internal/diagnostics"
	"diarbench/internal/diarize"
	"diarbench/internal/fetch"
	"diarbench/internal/manifest"
	"diarbench/internal/report"
	"diarbench/internal/results"
	"diarbench/internal/scoring"
	"diarbench/internal/timeline"
)

// Runner executes one batch over a manifest. Construct with New and call Run
// once; a Runner is not reusable.
type Runner struct {
	cfg        *config.Config
	logger     *slog.Logger
	store      *results.Store
	downloader *fetch.Downloader
	provider   diarize.Provider
	scorer     scoring.Scorer

	lock *flock.Flock
}

// Outcome summarizes a finished batch run.
type Outcome struct {
	Run        results.Run
	Results    []results.Result
	ReportPath string
	Summary    report.Summary
}

// New wires a runner from its collaborators.
func New(cfg *config.Config, store *results.Store, provider diarize.Provider, scorer scoring.Scorer, logger *slog.Logger) (*Runner, error) {
	if cfg == nil || store == nil || provider == nil || scorer == nil {
		return nil, errors.New("batch runner requires config, store, provider, and scorer")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		cfg:        cfg,
		logger:     logger.With("component", "batch"),
		store:      store,
		downloader: fetch.NewDownloader(cfg.DownloadTimeout()),
		provider:   provider,
		scorer:     scorer,
		lock:       flock.New(cfg.LockPath()),
	}, nil
}

// Run processes every manifest recording in order and writes the CSV report.
// Only one run may execute at a time per config; concurrent invocations fail
// fast on the lock.
func (r *Runner) Run(ctx context.Context) (*Outcome, error) {
	ok, err := r.lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire run lock: %w", err)
	}
	if !ok {
		return nil, errors.New("another batch run is already in progress")
	}
	defer func() {
		_ = r.lock.Unlock()
	}()

	recordings, err := manifest.Load(r.cfg.Manifest.Path)
	if err != nil {
		return nil, err
	}
	if len(recordings) == 0 {
		return nil, fmt.Errorf("manifest %s lists no recordings", r.cfg.Manifest.Path)
	}

	run := results.Run{
		ID:           uuid.NewString(),
		ManifestPath: r.cfg.Manifest.Path,
		StartedAt:    time.Now(),
		Total:        len(recordings),
	}
	if err := r.store.CreateRun(ctx, run); err != nil {
		return nil, err
	}

	r.logger.Info("batch started",
		"run_id", run.ID,
		"manifest", run.ManifestPath,
		"recordings", run.Total,
	)

	rows := make([]results.Result, 0, len(recordings))
	for i, rec := range recordings {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("batch interrupted: %w", err)
		}

		r.logger.Info("processing recording",
			"rec_id", rec.ID,
			"position", fmt.Sprintf("%d/%d", i+1, len(recordings)),
		)

		row := r.processRecording(ctx, run.ID, rec)
		if err := r.store.Append(ctx, &row); err != nil {
			return nil, fmt.Errorf("persist result for %s: %w", rec.ID, err)
		}
		rows = append(rows, row)

		if row.Succeeded() {
			run.Succeeded++
			r.logger.Info("recording scored",
				"rec_id", row.RecID,
				"der", row.DER,
				"category", row.Category,
				"detailed", row.Detailed,
			)
		} else {
			run.Failed++
			r.logger.Warn("recording failed",
				"rec_id", row.RecID,
				"status", string(row.Status),
				"error", row.ErrorMessage,
			)
		}
	}

	reportPath, err := report.WriteCSV(r.cfg.Paths.ReportDir, run.StartedAt, rows)
	if err != nil {
		return nil, err
	}
	if err := r.store.FinishRun(ctx, run.ID, reportPath, run.Total, run.Succeeded, run.Failed); err != nil {
		return nil, err
	}
	run.ReportPath = reportPath

	r.logger.Info("batch finished",
		"run_id", run.ID,
		"succeeded", run.Succeeded,
		"failed", run.Failed,
		"report", reportPath,
	)

	return &Outcome{
		Run:        run,
		Results:    rows,
		ReportPath: reportPath,
		Summary:    report.Summarize(rows),
	}, nil
}

// processRecording runs the full pipeline for one recording and converts any
// failure into a terminal row. Errors never propagate to the batch loop.
func (r *Runner) processRecording(ctx context.Context, runID string, rec manifest.Recording) results.Result {
	row := results.Result{
		RunID: runID,
		RecID: rec.ID,
	}

	err := r.evaluate(ctx, rec, &row)
	if err != nil {
		row.Status = statusFor(err)
		row.ErrorMessage = err.Error()
		return row
	}

	row.Status = results.StatusSuccess
	return row
}

// evaluate fills row with metrics and diagnostics, or returns a sentinel
// wrapped error describing the stage that failed.
func (r *Runner) evaluate(ctx context.Context, rec manifest.Recording, row *results.Result) error {
	audioPath := filepath.Join(r.cfg.AudioDir(), rec.ID+urlExt(rec.AudioURL, ".wav"))
	if err := r.downloader.Fetch(ctx, rec.AudioURL, audioPath); err != nil {
		return fmt.Errorf("%w: audio: %v", ErrDownload, err)
	}

	transcriptPath := filepath.Join(r.cfg.TranscriptDir(), rec.ID+urlExt(rec.TranscriptURL, ".json"))
	if err := r.downloader.Fetch(ctx, rec.TranscriptURL, transcriptPath); err != nil {
		return fmt.Errorf("%w: transcript: %v", ErrDownload, err)
	}

	hypothesis, err := r.provider.Diarize(ctx, diarize.Request{
		AudioPath:   audioPath,
		NumSpeakers: r.cfg.Diarization.NumSpeakers,
		MinSpeakers: r.cfg.Diarization.MinSpeakers,
		MaxSpeakers: r.cfg.Diarization.MaxSpeakers,
	})
	if err != nil {
		return fmt.Errorf("%w: diarize: %v", ErrProcessing, err)
	}

	// The hypothesis RTTM is persisted before the reference is read so a bad
	// transcript still leaves the model output on disk.
	rttmPath := filepath.Join(r.cfg.DiarizationDir(), rec.ID+".rttm")
	if err := timeline.WriteRTTMFile(rttmPath, rec.ID, hypothesis); err != nil {
		return fmt.Errorf("%w: %v", ErrProcessing, err)
	}

	reference, err := timeline.LoadGroundTruth(transcriptPath)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrProcessing, err)
	}

	breakdown, err := scoring.ScoreWithFallback(ctx, r.scorer, reference, hypothesis)
	if err != nil {
		return fmt.Errorf("%w: score: %v", ErrProcessing, err)
	}
	if !breakdown.Detailed {
		r.logger.Warn("component breakdown unavailable, keeping aggregate DER only", "rec_id", rec.ID)
	}

	diag, err := diagnostics.Analyze(audioPath, reference, hypothesis)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrProcessing, err)
	}
	r.logger.Info("diagnostics",
		"rec_id", rec.ID,
		"audio_duration", diag.AudioDuration,
		"ref_speech_duration", diag.RefSpeechDuration,
		"hyp_speech_duration", diag.HypSpeechDuration,
		"missing_speech_seconds", diag.MissingSpeechSeconds,
		"missing_speech_pct", diag.MissingSpeechPct,
		"speakers_detected", diag.SpeakersDetected,
		"speakers_expected", diag.SpeakersExpected,
	)
	if r.cfg.Diagnostics.AudioQuality {
		quality, qualityErr := diagnostics.AnalyzeAudioQuality(audioPath)
		if qualityErr != nil {
			// Quality metrics are advisory; a decode failure here does not
			// invalidate the scored result.
			r.logger.Warn("audio quality analysis failed", "rec_id", rec.ID, "error", qualityErr)
		} else {
			diag.Quality = quality
			r.logger.Info("audio quality",
				"rec_id", rec.ID,
				"energy", quality.Energy,
				"zero_crossing_rate", quality.ZeroCrossingRate,
				"spectral_rolloff_hz", quality.SpectralRolloffHz,
				"silence_ratio", quality.SilenceRatio,
			)
		}
	}

	row.DER = breakdown.DER
	row.FalseAlarm = breakdown.FalseAlarm
	row.MissedDetection = breakdown.MissedDetection
	row.Confusion = breakdown.Confusion
	row.Detailed = breakdown.Detailed
	row.AudioDuration = diag.AudioDuration
	row.RefSpeechDuration = diag.RefSpeechDuration
	row.HypSpeechDuration = diag.HypSpeechDuration
	row.MissingSpeechSeconds = diag.MissingSpeechSeconds
	row.MissingSpeechPct = diag.MissingSpeechPct
	row.SpeakersDetected = diag.SpeakersDetected
	row.SpeakersExpected = diag.SpeakersExpected
	row.Category = string(classify.Classify(breakdown))
	return nil
}

// urlExt extracts the file extension from a URL path, falling back when the
// URL carries none.
func urlExt(rawURL, fallback string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return fallback
	}
	if ext := path.Ext(parsed.Path); ext != "" {
		return ext
	}
	return fallback
}
