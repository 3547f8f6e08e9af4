// Package timeline models speaker-attributed time annotations and the two
// exchange formats they travel in: ground-truth transcript JSON and RTTM
// speaker turns.
package timeline
