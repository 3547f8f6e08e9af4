package fetch_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"diarbench/internal/fetch"
)

func TestFetchWritesFile(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("audio-bytes"))
	}))
	defer server.Close()

	dest := filepath.Join(t.TempDir(), "rec01.wav")
	d := fetch.NewDownloader(5 * time.Second)
	if err := d.Fetch(context.Background(), server.URL, dest); err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	data, err := os.ReadFile(dest)
	if err != nil || string(data) != "audio-bytes" {
		t.Fatalf("unexpected file contents %q, err %v", data, err)
	}
}

func TestFetchNonOKStatusLeavesNoFile(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer server.Close()

	dest := filepath.Join(t.TempDir(), "rec01.wav")
	d := fetch.NewDownloader(5 * time.Second)
	if err := d.Fetch(context.Background(), server.URL, dest); err == nil {
		t.Fatal("expected error for 404")
	}
	if _, err := os.Stat(dest); !os.IsNotExist(err) {
		t.Fatalf("expected no file at %s, stat err %v", dest, err)
	}
}

func TestFetchTimesOut(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	dest := filepath.Join(t.TempDir(), "rec01.wav")
	d := fetch.NewDownloader(20 * time.Millisecond)
	if err := d.Fetch(context.Background(), server.URL, dest); err == nil {
		t.Fatal("expected timeout error")
	}
}
