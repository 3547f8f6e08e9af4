// Package results defines the per-recording result model and its SQLite-backed
// persistence. Results accumulate during a batch run; the CSV report is
// exported from them once at the end.
package results
