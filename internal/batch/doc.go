// Package batch runs the evaluation pipeline over every recording in a
// manifest: download, diarize, score, diagnose, classify, report. Recordings
// are processed sequentially and failures are isolated to the recording that
// raised them.
package batch
