// Command diarbench evaluates speaker diarization quality over a batch of
// recordings: it downloads each recording and its reference transcript, runs
// the diarization sidecar, scores the hypothesis against the reference, and
// writes a per-recording CSV report with an aggregate summary.
package main
