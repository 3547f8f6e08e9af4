package results

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Store persists runs and per-recording results in SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the results database and applies the schema.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &Store{db: db, path: path}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// CreateRun inserts a new run row.
func (s *Store) CreateRun(ctx context.Context, run Run) error {
	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO runs (id, manifest_path, started_at) VALUES (?, ?, ?)`,
		run.ID,
		run.ManifestPath,
		run.StartedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

// FinishRun records the end of a run with its counts and report location.
func (s *Store) FinishRun(ctx context.Context, runID, reportPath string, total, succeeded, failed int) error {
	res, err := s.db.ExecContext(
		ctx,
		`UPDATE runs SET finished_at = ?, report_path = ?, total = ?, succeeded = ?, failed = ? WHERE id = ?`,
		time.Now().UTC().Format(time.RFC3339Nano),
		reportPath,
		total,
		succeeded,
		failed,
		runID,
	)
	if err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("finish run rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("finish run: unknown run %s", runID)
	}
	return nil
}

// LatestFinishedRun returns the most recently finished run, or nil when no
// run has finished yet.
func (s *Store) LatestFinishedRun(ctx context.Context) (*Run, error) {
	row := s.db.QueryRowContext(
		ctx,
		`SELECT id, manifest_path, started_at, finished_at, report_path, total, succeeded, failed
         FROM runs WHERE finished_at IS NOT NULL ORDER BY finished_at DESC LIMIT 1`,
	)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("latest run: %w", err)
	}
	return run, nil
}

// Append inserts a result row for a run.
func (s *Store) Append(ctx context.Context, result *Result) error {
	if result == nil {
		return errors.New("result is nil")
	}
	result.CreatedAt = time.Now().UTC()
	res, err := s.db.ExecContext(
		ctx,
		`INSERT INTO results (
            run_id, rec_id, status, der, false_alarm, missed_detection, confusion,
            detailed, audio_duration, ref_speech_duration, hyp_speech_duration,
            missing_speech_seconds, missing_speech_pct, speakers_detected,
            speakers_expected, category, error_message, created_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		result.RunID,
		result.RecID,
		result.Status,
		result.DER,
		result.FalseAlarm,
		result.MissedDetection,
		result.Confusion,
		boolToInt(result.Detailed),
		result.AudioDuration,
		result.RefSpeechDuration,
		result.HypSpeechDuration,
		result.MissingSpeechSeconds,
		result.MissingSpeechPct,
		result.SpeakersDetected,
		result.SpeakersExpected,
		result.Category,
		result.ErrorMessage,
		result.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert result: %w", err)
	}
	result.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("last insert id: %w", err)
	}
	return nil
}

// ByRun returns the results of a run in insertion order.
func (s *Store) ByRun(ctx context.Context, runID string) ([]Result, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT id, run_id, rec_id, status, der, false_alarm, missed_detection, confusion,
                detailed, audio_duration, ref_speech_duration, hyp_speech_duration,
                missing_speech_seconds, missing_speech_pct, speakers_detected,
                speakers_expected, category, error_message, created_at
         FROM results WHERE run_id = ? ORDER BY id`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("query results: %w", err)
	}
	defer rows.Close()

	var out []Result
	for rows.Next() {
		result, err := scanResult(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, result)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*Run, error) {
	var (
		run        Run
		startedAt  string
		finishedAt sql.NullString
	)
	err := row.Scan(&run.ID, &run.ManifestPath, &startedAt, &finishedAt, &run.ReportPath, &run.Total, &run.Succeeded, &run.Failed)
	if err != nil {
		return nil, err
	}
	run.StartedAt, err = time.Parse(time.RFC3339Nano, startedAt)
	if err != nil {
		return nil, fmt.Errorf("parse started_at: %w", err)
	}
	if finishedAt.Valid {
		parsed, err := time.Parse(time.RFC3339Nano, finishedAt.String)
		if err != nil {
			return nil, fmt.Errorf("parse finished_at: %w", err)
		}
		run.FinishedAt = &parsed
	}
	return &run, nil
}

func scanResult(row rowScanner) (Result, error) {
	var (
		result    Result
		detailed  int
		createdAt string
	)
	err := row.Scan(
		&result.ID,
		&result.RunID,
		&result.RecID,
		&result.Status,
		&result.DER,
		&result.FalseAlarm,
		&result.MissedDetection,
		&result.Confusion,
		&detailed,
		&result.AudioDuration,
		&result.RefSpeechDuration,
		&result.HypSpeechDuration,
		&result.MissingSpeechSeconds,
		&result.MissingSpeechPct,
		&result.SpeakersDetected,
		&result.SpeakersExpected,
		&result.Category,
		&result.ErrorMessage,
		&createdAt,
	)
	if err != nil {
		return Result{}, fmt.Errorf("scan result: %w", err)
	}
	result.Detailed = detailed != 0
	result.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return Result{}, fmt.Errorf("parse created_at: %w", err)
	}
	return result, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
