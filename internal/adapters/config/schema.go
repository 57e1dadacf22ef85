package config

import "time"

// File represents the structure of the genie.yaml configuration file.
type File struct {
	Version string       `yaml:"version"`
	API     APISection   `yaml:"api"`
	Session string       `yaml:"session"`
	Cache   CacheSection `yaml:"cache"`
	Log     LogSection   `yaml:"log"`
}

// APISection configures the remote API.
type APISection struct {
	BaseURL string        `yaml:"baseURL"`
	Timeout time.Duration `yaml:"timeout"`
}

// CacheSection configures the query cache.
type CacheSection struct {
	StaleAfter time.Duration `yaml:"staleAfter"`
}

// LogSection configures logging.
type LogSection struct {
	Format  string `yaml:"format"`
	Verbose bool   `yaml:"verbose"`
}
