package preflight

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"diarbench/internal/testsupport"
)

type stubAvailability bool

func (s stubAvailability) IsAvailable(context.Context) bool { return bool(s) }

func TestRunAllPasses(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	manifestPath := filepath.Join(t.TempDir(), "manifest.csv")
	if err := os.WriteFile(manifestPath, []byte("rec_id,rec_url,transcript_url\n"), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	cfg.Manifest.Path = manifestPath
	t.Setenv("HF_TOKEN", "hf_test_token")

	results := RunAll(context.Background(), cfg, stubAvailability(true), stubAvailability(true))
	if len(results) != 7 {
		t.Fatalf("got %d results, want 7", len(results))
	}
	if !AllPassed(results) {
		for _, r := range results {
			if !r.Passed {
				t.Errorf("%s failed: %s", r.Name, r.Detail)
			}
		}
	}
}

func TestRunAllReportsMissingToken(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	t.Setenv("HF_TOKEN", "")

	results := RunAll(context.Background(), cfg, nil, nil)
	if AllPassed(results) {
		t.Fatal("expected failures with missing token and manifest")
	}

	var tokenResult *Result
	for i := range results {
		if results[i].Name == "HF_TOKEN" {
			tokenResult = &results[i]
		}
	}
	if tokenResult == nil || tokenResult.Passed {
		t.Fatalf("token check = %+v, want failure", tokenResult)
	}
}

func TestCheckSidecarUnreachable(t *testing.T) {
	result := CheckSidecar(context.Background(), "Scoring sidecar", stubAvailability(false))
	if result.Passed {
		t.Fatal("expected unreachable sidecar to fail")
	}
}

func TestCheckManifestMissing(t *testing.T) {
	t.Parallel()

	result := CheckManifest(filepath.Join(t.TempDir(), "absent.csv"))
	if result.Passed {
		t.Fatal("expected missing manifest to fail")
	}
}
