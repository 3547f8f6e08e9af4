// Package report exports batch results as a timestamped CSV and derives
// summary statistics and tuning recommendations from successful rows.
package report
