// Package manifest loads the recording source list that drives a batch run.
package manifest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

// Recording describes one input row: an identifier plus the locations of its
// audio and ground-truth transcript.
type Recording struct {
	ID            string
	AudioURL      string
	TranscriptURL string
}

// Load reads a manifest CSV from path. The file may carry a header row; a
// first row containing a "rec_id" cell is treated as a header, otherwise the
// columns are assumed to be rec_id, rec_url, transcript_url in that order.
func Load(path string) ([]Recording, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open manifest: %w", err)
	}
	defer file.Close()

	recordings, err := Parse(file)
	if err != nil {
		return nil, fmt.Errorf("manifest %s: %w", path, err)
	}
	return recordings, nil
}

// Parse reads manifest rows from r. See Load for the header convention.
func Parse(r io.Reader) ([]Recording, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	idCol, audioCol, transcriptCol := 0, 1, 2
	start := 0
	if header, ok := detectHeader(rows[0]); ok {
		idCol, audioCol, transcriptCol = header[0], header[1], header[2]
		start = 1
	}

	recordings := make([]Recording, 0, len(rows)-start)
	for i := start; i < len(rows); i++ {
		row := rows[i]
		if isBlankRow(row) {
			continue
		}
		maxCol := max(idCol, max(audioCol, transcriptCol))
		if len(row) <= maxCol {
			return nil, fmt.Errorf("row %d: expected at least %d columns, got %d", i+1, maxCol+1, len(row))
		}
		rec := Recording{
			ID:            strings.TrimSpace(row[idCol]),
			AudioURL:      strings.TrimSpace(row[audioCol]),
			TranscriptURL: strings.TrimSpace(row[transcriptCol]),
		}
		if rec.ID == "" {
			return nil, fmt.Errorf("row %d: empty rec_id", i+1)
		}
		recordings = append(recordings, rec)
	}
	return recordings, nil
}

// detectHeader reports whether the first row is a header and, if so, the
// column index of each expected field.
func detectHeader(row []string) ([3]int, bool) {
	indexes := [3]int{-1, -1, -1}
	for i, cell := range row {
		switch strings.ToLower(strings.TrimSpace(cell)) {
		case "rec_id":
			indexes[0] = i
		case "rec_url":
			indexes[1] = i
		case "transcript_url":
			indexes[2] = i
		}
	}
	if indexes[0] < 0 {
		return indexes, false
	}
	// Headered files missing a URL column fall back to positional order for
	// the missing fields.
	if indexes[1] < 0 {
		indexes[1] = 1
	}
	if indexes[2] < 0 {
		indexes[2] = 2
	}
	return indexes, true
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
