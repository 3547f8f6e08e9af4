package timeline

import (
	"encoding/json"
	"fmt"
	"os"
)

type transcriptEntry struct {
	StartTime float64 `json:"start_time"`
	EndTime   float64 `json:"end_time"`
	SpeakerID string  `json:"speaker_id"`
}

type transcriptDocument struct {
	Transcriptions []transcriptEntry `json:"transcriptions"`
}

// LoadGroundTruth reads a ground-truth transcript JSON document and returns
// its timeline annotation. Entries whose end does not exceed their start are
// silently excluded; everything else is kept with its speaker label, including
// overlapping entries for the same speaker.
func LoadGroundTruth(path string) (*Annotation, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read transcript: %w", err)
	}

	var doc transcriptDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse transcript %s: %w", path, err)
	}

	turns := make([]Turn, 0, len(doc.Transcriptions))
	for _, entry := range doc.Transcriptions {
		turns = append(turns, Turn{
			Speaker: entry.SpeakerID,
			Start:   entry.StartTime,
			End:     entry.EndTime,
		})
	}
	return New(turns), nil
}
