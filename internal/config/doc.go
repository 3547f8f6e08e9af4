// Package config loads, validates, and normalizes diarbench configuration
// from TOML, providing defaults suitable for running against a local pyannote
// sidecar.
package config
