package report

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"diarbench/internal/fileutil"
	"diarbench/internal/results"
)

var csvHeader = []string{
	"rec_id", "status", "der", "false_alarm", "missed_detection", "confusion",
	"detailed", "audio_duration", "ref_speech_duration", "hyp_speech_duration",
	"missing_speech_seconds", "missing_speech_pct", "speakers_detected",
	"speakers_expected", "category", "error",
}

// ReportFilename returns the timestamped report file name for a run start.
func ReportFilename(start time.Time) string {
	return "report_" + start.Format("20060102_150405") + ".csv"
}

// WriteCSV writes all results to a timestamped CSV under dir and returns the
// file path. The file appears atomically: no partial report is ever visible.
func WriteCSV(dir string, start time.Time, rows []results.Result) (string, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(csvHeader); err != nil {
		return "", fmt.Errorf("write header: %w", err)
	}
	for _, row := range rows {
		record := []string{
			row.RecID,
			string(row.Status),
			formatFloat(row.DER),
			formatFloat(row.FalseAlarm),
			formatFloat(row.MissedDetection),
			formatFloat(row.Confusion),
			strconv.FormatBool(row.Detailed),
			formatFloat(row.AudioDuration),
			formatFloat(row.RefSpeechDuration),
			formatFloat(row.HypSpeechDuration),
			formatFloat(row.MissingSpeechSeconds),
			formatFloat(row.MissingSpeechPct),
			strconv.Itoa(row.SpeakersDetected),
			strconv.Itoa(row.SpeakersExpected),
			row.Category,
			row.ErrorMessage,
		}
		if err := writer.Write(record); err != nil {
			return "", fmt.Errorf("write row %s: %w", row.RecID, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", fmt.Errorf("flush csv: %w", err)
	}

	path := filepath.Join(dir, ReportFilename(start))
	if err := fileutil.WriteAtomic(path, &buf); err != nil {
		return "", err
	}
	return path, nil
}

// ReadCSV loads a previously written report back into result records so the
// summary pass can run against historical files.
func ReadCSV(path string) ([]results.Result, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open report: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse report %s: %w", path, err)
	}
	if len(rows) < 1 {
		return nil, nil
	}

	out := make([]results.Result, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if len(row) != len(csvHeader) {
			return nil, fmt.Errorf("report row %d: expected %d columns, got %d", i+2, len(csvHeader), len(row))
		}
		status, ok := results.ParseStatus(row[1])
		if !ok {
			return nil, fmt.Errorf("report row %d: unknown status %q", i+2, row[1])
		}
		result := results.Result{
			RecID:        row[0],
			Status:       status,
			Category:     row[14],
			ErrorMessage: row[15],
		}
		floats := map[*float64]string{
			&result.DER:                  row[2],
			&result.FalseAlarm:           row[3],
			&result.MissedDetection:      row[4],
			&result.Confusion:            row[5],
			&result.AudioDuration:        row[7],
			&result.RefSpeechDuration:    row[8],
			&result.HypSpeechDuration:    row[9],
			&result.MissingSpeechSeconds: row[10],
			&result.MissingSpeechPct:     row[11],
		}
		for dst, raw := range floats {
			if *dst, err = strconv.ParseFloat(raw, 64); err != nil {
				return nil, fmt.Errorf("report row %d: parse float %q: %w", i+2, raw, err)
			}
		}
		if result.Detailed, err = strconv.ParseBool(row[6]); err != nil {
			return nil, fmt.Errorf("report row %d: parse detailed: %w", i+2, err)
		}
		if result.SpeakersDetected, err = strconv.Atoi(row[12]); err != nil {
			return nil, fmt.Errorf("report row %d: parse speakers_detected: %w", i+2, err)
		}
		if result.SpeakersExpected, err = strconv.Atoi(row[13]); err != nil {
			return nil, fmt.Errorf("report row %d: parse speakers_expected: %w", i+2, err)
		}
		out = append(out, result)
	}
	return out, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
