package diarize_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"diarbench/internal/diarize"
)

func writeAudioFixture(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rec01.wav")
	if err := os.WriteFile(path, []byte("RIFFfake"), 0o644); err != nil {
		t.Fatalf("write audio fixture: %v", err)
	}
	return path
}

func TestDiarizeParsesSegments(t *testing.T) {
	t.Parallel()

	var gotAuth, gotMin, gotMax string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/diarize" {
			http.NotFound(w, r)
			return
		}
		gotAuth = r.Header.Get("Authorization")
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		gotMin = r.FormValue("min_speakers")
		gotMax = r.FormValue("max_speakers")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"segments": []map[string]any{
				{"speaker": "SPEAKER_00", "start": 0.5, "end": 2.0},
				{"speaker": "SPEAKER_01", "start": 2.5, "end": 4.0},
			},
			"num_speakers": 2,
		})
	}))
	defer server.Close()

	provider := diarize.NewPyannote(diarize.PyannoteConfig{BaseURL: server.URL, AuthToken: "hf_test"})
	ann, err := provider.Diarize(context.Background(), diarize.Request{
		AudioPath:   writeAudioFixture(t),
		MinSpeakers: 2,
		MaxSpeakers: 2,
	})
	if err != nil {
		t.Fatalf("Diarize: %v", err)
	}
	if ann.Len() != 2 || ann.SpeakerCount() != 2 {
		t.Fatalf("unexpected annotation: %d turns, %d speakers", ann.Len(), ann.SpeakerCount())
	}
	if gotAuth != "Bearer hf_test" {
		t.Fatalf("expected bearer token, got %q", gotAuth)
	}
	if gotMin != "2" || gotMax != "2" {
		t.Fatalf("speaker hints not forwarded: min=%q max=%q", gotMin, gotMax)
	}
}

func TestDiarizeSurfacesServerError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model load failed", http.StatusInternalServerError)
	}))
	defer server.Close()

	provider := diarize.NewPyannote(diarize.PyannoteConfig{BaseURL: server.URL})
	_, err := provider.Diarize(context.Background(), diarize.Request{AudioPath: writeAudioFixture(t)})
	if err == nil {
		t.Fatal("expected error from 500 response")
	}
}

func TestDiarizeSurfacesEmbeddedError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"error": "audio too short"})
	}))
	defer server.Close()

	provider := diarize.NewPyannote(diarize.PyannoteConfig{BaseURL: server.URL})
	_, err := provider.Diarize(context.Background(), diarize.Request{AudioPath: writeAudioFixture(t)})
	if err == nil {
		t.Fatal("expected embedded error to surface")
	}
}

func TestIsAvailable(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			w.WriteHeader(http.StatusOK)
			return
		}
		http.NotFound(w, r)
	}))
	defer server.Close()

	provider := diarize.NewPyannote(diarize.PyannoteConfig{BaseURL: server.URL})
	if !provider.IsAvailable(context.Background()) {
		t.Fatal("expected sidecar to be available")
	}

	server.Close()
	if provider.IsAvailable(context.Background()) {
		t.Fatal("expected closed sidecar to be unavailable")
	}
}
