package domain

import "time"

// LogFormat selects the log handler.
type LogFormat string

const (
	// LogFormatAuto picks pretty output on terminals and JSON elsewhere.
	LogFormatAuto LogFormat = "auto"
	// LogFormatPretty forces human-readable output.
	LogFormatPretty LogFormat = "pretty"
	// LogFormatJSON forces JSON output.
	LogFormatJSON LogFormat = "json"
)

// Config is the resolved client configuration.
type Config struct {
	BaseURL string
	Timeout time.Duration
	// Session is an externally supplied session cookie value. Empty means anonymous.
	Session string
	// StaleAfter is the staleness window for reads that do not set their own.
	StaleAfter time.Duration
	LogFormat  LogFormat
	Verbose    bool
	// Path is the config file the values were read from, empty when defaults were used.
	Path string
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		BaseURL:   DefaultBaseURL,
		Timeout:   DefaultTimeout,
		LogFormat: LogFormatAuto,
	}
}
