package main

import (
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"diarbench/internal/config"
	"diarbench/internal/diarize"
	"diarbench/internal/scoring"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// newDiarizer builds the pyannote sidecar client from config.
func (c *commandContext) newDiarizer(cfg *config.Config) *diarize.Pyannote {
	return diarize.NewPyannote(diarize.PyannoteConfig{
		BaseURL:   cfg.Diarization.BaseURL,
		AuthToken: cfg.HFToken(),
		Timeout:   cfg.DiarizationTimeout(),
	})
}

// newScorer builds the DER sidecar client from config.
func (c *commandContext) newScorer(cfg *config.Config) *scoring.Sidecar {
	return scoring.NewSidecar(scoring.SidecarConfig{
		BaseURL: cfg.Scoring.BaseURL,
		Timeout: cfg.ScoringTimeout(),
	})
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
