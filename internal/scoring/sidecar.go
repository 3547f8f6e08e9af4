package scoring

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"diarbench/internal/timeline"
)

// SidecarConfig holds configuration for the metric sidecar client.
type SidecarConfig struct {
	BaseURL string
	Timeout time.Duration
}

// Sidecar scores timeline pairs via the metric sidecar's /der endpoint.
type Sidecar struct {
	cfg    SidecarConfig
	client *http.Client
}

// NewSidecar creates a metric sidecar client.
func NewSidecar(cfg SidecarConfig) *Sidecar {
	if cfg.Timeout == 0 {
		cfg.Timeout = 2 * time.Minute
	}
	return &Sidecar{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

// IsAvailable checks whether the sidecar health endpoint responds.
func (s *Sidecar) IsAvailable(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.cfg.BaseURL+"/health", nil)
	if err != nil {
		return false
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

type scoreTurn struct {
	Speaker string  `json:"speaker"`
	Start   float64 `json:"start"`
	End     float64 `json:"end"`
}

type scoreRequest struct {
	Reference  []scoreTurn `json:"reference"`
	Hypothesis []scoreTurn `json:"hypothesis"`
	Detailed   bool        `json:"detailed"`
}

type scoreResponse struct {
	DER             float64 `json:"diarization_error_rate"`
	FalseAlarm      float64 `json:"false_alarm"`
	MissedDetection float64 `json:"missed_detection"`
	Confusion       float64 `json:"confusion"`
	Error           string  `json:"error,omitempty"`
}

// Score implements Scorer. A 501 response to a detailed request maps to
// ErrDetailedUnsupported so callers can degrade to aggregate-only scoring.
func (s *Sidecar) Score(ctx context.Context, reference, hypothesis *timeline.Annotation, detailed bool) (Breakdown, error) {
	payload := scoreRequest{
		Reference:  toScoreTurns(reference),
		Hypothesis: toScoreTurns(hypothesis),
		Detailed:   detailed,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return Breakdown{}, fmt.Errorf("encode score request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.BaseURL+"/der", bytes.NewReader(body))
	if err != nil {
		return Breakdown{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return Breakdown{}, fmt.Errorf("score request: %w", err)
	}
	defer resp.Body.Close()

	if detailed && resp.StatusCode == http.StatusNotImplemented {
		return Breakdown{}, ErrDetailedUnsupported
	}
	if resp.StatusCode != http.StatusOK {
		text, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return Breakdown{}, fmt.Errorf("score error (status %d): %s", resp.StatusCode, bytes.TrimSpace(text))
	}

	var result scoreResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return Breakdown{}, fmt.Errorf("decode score response: %w", err)
	}
	if result.Error != "" {
		return Breakdown{}, fmt.Errorf("score error: %s", result.Error)
	}

	return Breakdown{
		DER:             result.DER,
		FalseAlarm:      result.FalseAlarm,
		MissedDetection: result.MissedDetection,
		Confusion:       result.Confusion,
		Detailed:        detailed,
	}, nil
}

func toScoreTurns(annotation *timeline.Annotation) []scoreTurn {
	turns := annotation.Turns()
	out := make([]scoreTurn, len(turns))
	for i, turn := range turns {
		out[i] = scoreTurn{Speaker: turn.Speaker, Start: turn.Start, End: turn.End}
	}
	return out
}
