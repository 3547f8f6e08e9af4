// Package preflight validates the environment before a batch run starts:
// credentials, directories, the manifest, and sidecar reachability.
package preflight

import (
	"context"

	"diarbench/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// Availability is the reachability probe both sidecar clients expose.
type Availability interface {
	IsAvailable(ctx context.Context) bool
}

// RunAll executes every preflight check for the given config. Sidecar checks
// are skipped when the corresponding client is nil.
func RunAll(ctx context.Context, cfg *config.Config, diarizer, scorer Availability) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{
		CheckToken(cfg),
		CheckManifest(cfg.Manifest.Path),
		CheckDirectoryAccess("Data directory", cfg.Paths.DataDir),
		CheckDirectoryAccess("Log directory", cfg.Paths.LogDir),
		CheckDirectoryAccess("Report directory", cfg.Paths.ReportDir),
	}

	if diarizer != nil {
		results = append(results, CheckSidecar(ctx, "Diarization sidecar", diarizer))
	}
	if scorer != nil {
		results = append(results, CheckSidecar(ctx, "Scoring sidecar", scorer))
	}

	return results
}

// AllPassed reports whether every check succeeded.
func AllPassed(results []Result) bool {
	for _, r := range results {
		if !r.Passed {
			return false
		}
	}
	return true
}
