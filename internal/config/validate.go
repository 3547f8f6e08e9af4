package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateSidecars(); err != nil {
		return err
	}
	if err := c.validateDiarization(); err != nil {
		return err
	}
	if err := c.validateTimeouts(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if c.Paths.DataDir == "" {
		return errors.New("paths.data_dir must be set")
	}
	if c.Paths.LogDir == "" {
		return errors.New("paths.log_dir must be set")
	}
	if c.Manifest.Path == "" {
		return errors.New("manifest.path must be set")
	}
	return nil
}

func (c *Config) validateSidecars() error {
	if c.Diarization.BaseURL == "" {
		return errors.New("diarization.base_url must be set")
	}
	if c.Scoring.BaseURL == "" {
		return errors.New("scoring.base_url must be set")
	}
	return nil
}

func (c *Config) validateDiarization() error {
	d := c.Diarization
	if d.NumSpeakers < 0 || d.MinSpeakers < 0 || d.MaxSpeakers < 0 {
		return errors.New("diarization speaker hints must not be negative")
	}
	if d.NumSpeakers > 0 && (d.MinSpeakers > 0 || d.MaxSpeakers > 0) {
		return errors.New("diarization.num_speakers is exclusive with min_speakers/max_speakers")
	}
	if d.MinSpeakers > 0 && d.MaxSpeakers > 0 && d.MinSpeakers > d.MaxSpeakers {
		return errors.New("diarization.min_speakers must not exceed max_speakers")
	}
	return nil
}

func (c *Config) validateTimeouts() error {
	timeouts := map[string]int{
		"download.request_timeout":    c.Download.RequestTimeout,
		"diarization.request_timeout": c.Diarization.RequestTimeout,
		"scoring.request_timeout":     c.Scoring.RequestTimeout,
	}
	for name, value := range timeouts {
		if value <= 0 {
			return fmt.Errorf("%s must be positive", name)
		}
	}
	return nil
}
