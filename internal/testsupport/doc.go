// Package testsupport provides shared helpers for package tests: temp-dir
// backed configs and WAV fixtures.
package testsupport
