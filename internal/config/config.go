package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration for a batch run.
type Paths struct {
	DataDir   string `toml:"data_dir"`
	LogDir    string `toml:"log_dir"`
	ReportDir string `toml:"report_dir"`
}

// Manifest describes where the recording source list lives.
type Manifest struct {
	Path string `toml:"path"`
}

// Download contains settings for fetching audio and transcripts.
type Download struct {
	RequestTimeout int `toml:"request_timeout"`
}

// Diarization contains settings for the pyannote sidecar and the
// speaker-count hint passed with each request. A value of 0 leaves the
// corresponding hint unconstrained.
type Diarization struct {
	BaseURL        string `toml:"base_url"`
	NumSpeakers    int    `toml:"num_speakers"`
	MinSpeakers    int    `toml:"min_speakers"`
	MaxSpeakers    int    `toml:"max_speakers"`
	RequestTimeout int    `toml:"request_timeout"`
}

// Scoring contains settings for the DER metric sidecar.
type Scoring struct {
	BaseURL        string `toml:"base_url"`
	RequestTimeout int    `toml:"request_timeout"`
}

// Diagnostics contains settings for the per-recording diagnostic pass.
type Diagnostics struct {
	AudioQuality bool `toml:"audio_quality"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for diarbench.
//
// Configuration sections by subsystem:
//   - Paths: data, log, and report directories
//   - Manifest: recording source list location
//   - Download: audio/transcript fetch timeout
//   - Diarization: pyannote sidecar URL and speaker-count hints
//   - Scoring: DER metric sidecar URL
//   - Diagnostics: optional audio-quality analysis
//   - Logging: log format and level
type Config struct {
	Paths       Paths       `toml:"paths"`
	Manifest    Manifest    `toml:"manifest"`
	Download    Download    `toml:"download"`
	Diarization Diarization `toml:"diarization"`
	Scoring     Scoring     `toml:"scoring"`
	Diagnostics Diagnostics `toml:"diagnostics"`
	Logging     Logging     `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/diarbench/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized. The second return value
// is the resolved config path; the third reports whether the file existed.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("diarbench.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// AudioDir returns the directory downloaded audio files are stored in.
func (c *Config) AudioDir() string {
	return filepath.Join(c.Paths.DataDir, "audio")
}

// TranscriptDir returns the directory downloaded transcripts are stored in.
func (c *Config) TranscriptDir() string {
	return filepath.Join(c.Paths.DataDir, "transcripts")
}

// DiarizationDir returns the directory hypothesis RTTM files are written to.
func (c *Config) DiarizationDir() string {
	return filepath.Join(c.Paths.DataDir, "diarization")
}

// EnsureDirectories creates required directories for a batch run. Creation is
// idempotent; existing directories are left untouched.
func (c *Config) EnsureDirectories() error {
	dirs := []string{
		c.AudioDir(),
		c.TranscriptDir(),
		c.DiarizationDir(),
		c.Paths.LogDir,
		c.Paths.ReportDir,
	}
	for _, dir := range dirs {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// DatabasePath returns the location of the results database.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.Paths.DataDir, "results.db")
}

// LockPath returns the location of the batch run lock file.
func (c *Config) LockPath() string {
	return filepath.Join(c.Paths.LogDir, "diarbench.lock")
}

// HFToken returns the Hugging Face token from the environment. The token is
// never stored in the config file.
func (c *Config) HFToken() string {
	return strings.TrimSpace(os.Getenv("HF_TOKEN"))
}

// DownloadTimeout returns the per-request download timeout as a duration.
func (c *Config) DownloadTimeout() time.Duration {
	return time.Duration(c.Download.RequestTimeout) * time.Second
}

// DiarizationTimeout returns the diarization request timeout as a duration.
func (c *Config) DiarizationTimeout() time.Duration {
	return time.Duration(c.Diarization.RequestTimeout) * time.Second
}

// ScoringTimeout returns the scoring request timeout as a duration.
func (c *Config) ScoringTimeout() time.Duration {
	return time.Duration(c.Scoring.RequestTimeout) * time.Second
}

// SampleConfig returns the embedded sample configuration document.
func SampleConfig() string {
	return sampleConfig
}

// ExpandPath expands a leading ~ and resolves the value to an absolute path.
func ExpandPath(path string) (string, error) {
	return expandPath(path)
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}
