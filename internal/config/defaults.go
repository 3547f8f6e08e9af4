package config

const (
	defaultDataDir              = "data"
	defaultLogDir               = "logs"
	defaultReportDir            = "."
	defaultManifestPath         = "data.csv"
	defaultDownloadTimeout      = 300
	defaultSidecarURL           = "http://localhost:8388"
	defaultDiarizationTimeout   = 600
	defaultScoringTimeout       = 120
	defaultDiarizationMinSpkrs  = 2
	defaultDiarizationMaxSpkrs  = 2
	defaultLogFormat            = "console"
	defaultLogLevel             = "info"
	defaultAudioQualityAnalysis = false
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir:   defaultDataDir,
			LogDir:    defaultLogDir,
			ReportDir: defaultReportDir,
		},
		Manifest: Manifest{
			Path: defaultManifestPath,
		},
		Download: Download{
			RequestTimeout: defaultDownloadTimeout,
		},
		Diarization: Diarization{
			BaseURL:        defaultSidecarURL,
			MinSpeakers:    defaultDiarizationMinSpkrs,
			MaxSpeakers:    defaultDiarizationMaxSpkrs,
			RequestTimeout: defaultDiarizationTimeout,
		},
		Scoring: Scoring{
			BaseURL:        defaultSidecarURL,
			RequestTimeout: defaultScoringTimeout,
		},
		Diagnostics: Diagnostics{
			AudioQuality: defaultAudioQualityAnalysis,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
