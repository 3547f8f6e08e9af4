package timeline

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// WriteRTTM writes the annotation as rich-transcription SPEAKER turns, one
// line per turn:
//
//	SPEAKER <rec_id> 1 <start> <duration> <NA> <NA> <speaker> <NA> <NA>
//
// Times are formatted with three decimal places, matching pyannote output.
func WriteRTTM(w io.Writer, recID string, annotation *Annotation) error {
	bw := bufio.NewWriter(w)
	for _, turn := range annotation.Turns() {
		_, err := fmt.Fprintf(bw, "SPEAKER %s 1 %.3f %.3f <NA> <NA> %s <NA> <NA>\n",
			recID, turn.Start, turn.Duration(), turn.Speaker)
		if err != nil {
			return fmt.Errorf("write rttm turn: %w", err)
		}
	}
	return bw.Flush()
}

// WriteRTTMFile writes the annotation to path, truncating any existing file.
func WriteRTTMFile(path, recID string, annotation *Annotation) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create rttm: %w", err)
	}
	if err := WriteRTTM(file, recID, annotation); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}

// ReadRTTM parses SPEAKER lines into an annotation. Non-SPEAKER lines and
// blank lines are skipped; malformed SPEAKER lines are an error.
func ReadRTTM(r io.Reader) (*Annotation, error) {
	var turns []Turn
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if fields[0] != "SPEAKER" {
			continue
		}
		if len(fields) < 8 {
			return nil, fmt.Errorf("rttm line %d: expected at least 8 fields, got %d", lineNo, len(fields))
		}
		start, err := strconv.ParseFloat(fields[3], 64)
		if err != nil {
			return nil, fmt.Errorf("rttm line %d: parse start: %w", lineNo, err)
		}
		duration, err := strconv.ParseFloat(fields[4], 64)
		if err != nil {
			return nil, fmt.Errorf("rttm line %d: parse duration: %w", lineNo, err)
		}
		turns = append(turns, Turn{
			Speaker: fields[7],
			Start:   start,
			End:     start + duration,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read rttm: %w", err)
	}
	return New(turns), nil
}

// ReadRTTMFile parses the RTTM file at path.
func ReadRTTMFile(path string) (*Annotation, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open rttm: %w", err)
	}
	defer file.Close()
	return ReadRTTM(file)
}
