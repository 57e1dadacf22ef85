// Package config provides the configuration loader for genie.
package config

import (
	"errors"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/genie/internal/core/domain"
	"go.trai.ch/genie/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Loader implements ports.ConfigLoader using a YAML file and environment overrides.
type Loader struct {
	Logger ports.Logger
	fs     FileSystem
	getenv func(string) string
}

// NewLoader creates a new Loader reading from the OS filesystem and environment.
func NewLoader(logger ports.Logger) *Loader {
	return NewLoaderWithFS(logger, NewOSFS(), os.Getenv)
}

// NewLoaderWithFS creates a Loader with injected filesystem and environment lookups.
func NewLoaderWithFS(logger ports.Logger, fsys FileSystem, getenv func(string) string) *Loader {
	if getenv == nil {
		getenv = func(string) string { return "" }
	}
	return &Loader{Logger: logger, fs: fsys, getenv: getenv}
}

// Load resolves the configuration for cwd.
func (l *Loader) Load(cwd string) (*domain.Config, error) {
	cfg := domain.DefaultConfig()

	configPath, err := l.findConfiguration(cwd)
	if err != nil {
		return nil, err
	}

	if configPath != "" {
		var file File
		if err := l.readAndUnmarshalYAML(configPath, &file); err != nil {
			return nil, err
		}
		l.apply(cfg, &file)
		cfg.Path = configPath
	}

	l.applyEnv(cfg)

	baseURL, err := normalizeBaseURL(cfg.BaseURL)
	if err != nil {
		return nil, err
	}
	cfg.BaseURL = baseURL

	return cfg, nil
}

// findConfiguration walks up from cwd and returns the first genie.yaml found, or "" if none.
func (l *Loader) findConfiguration(cwd string) (string, error) {
	currentDir, err := filepath.Abs(cwd)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "cwd", cwd)
	}

	for {
		candidate := filepath.Join(currentDir, domain.ConfigFileName)
		info, statErr := l.fs.Stat(candidate)
		switch {
		case statErr == nil && !info.IsDir():
			return candidate, nil
		case statErr != nil && !errors.Is(statErr, fs.ErrNotExist):
			return "", zerr.With(zerr.Wrap(statErr, domain.ErrConfigReadFailed.Error()), "path", candidate)
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return "", nil
		}
		currentDir = parentDir
	}
}

func (l *Loader) readAndUnmarshalYAML(configPath string, target *File) error {
	data, err := l.fs.ReadFile(configPath)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", configPath)
	}

	if parseErr := yaml.Unmarshal(data, target); parseErr != nil {
		return zerr.With(zerr.Wrap(parseErr, domain.ErrConfigParseFailed.Error()), "path", configPath)
	}

	return nil
}

func (l *Loader) apply(cfg *domain.Config, file *File) {
	if file.API.BaseURL != "" {
		cfg.BaseURL = file.API.BaseURL
	}
	if file.API.Timeout > 0 {
		cfg.Timeout = file.API.Timeout
	}
	if file.Session != "" {
		cfg.Session = file.Session
	}
	if file.Cache.StaleAfter > 0 {
		cfg.StaleAfter = file.Cache.StaleAfter
	}
	if file.Log.Format != "" {
		cfg.LogFormat = l.parseFormat(file.Log.Format)
	}
	cfg.Verbose = file.Log.Verbose
}

func (l *Loader) applyEnv(cfg *domain.Config) {
	if v := l.getenv(domain.EnvAPIURL); v != "" {
		cfg.BaseURL = v
	}
	if v := l.getenv(domain.EnvSession); v != "" {
		cfg.Session = v
	}
	if v := l.getenv(domain.EnvLogFormat); v != "" {
		cfg.LogFormat = l.parseFormat(v)
	}
}

func (l *Loader) parseFormat(raw string) domain.LogFormat {
	switch f := domain.LogFormat(strings.ToLower(strings.TrimSpace(raw))); f {
	case domain.LogFormatAuto, domain.LogFormatPretty, domain.LogFormatJSON:
		return f
	default:
		l.Logger.Warn("unknown log format '" + raw + "', using auto")
		return domain.LogFormatAuto
	}
}

// normalizeBaseURL requires an absolute http(s) URL and strips trailing slashes.
func normalizeBaseURL(raw string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", zerr.With(zerr.Wrap(domain.ErrInvalidBaseURL, err.Error()), "base_url", raw)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", zerr.With(zerr.Wrap(domain.ErrInvalidBaseURL, "base url must be absolute http(s)"), "base_url", raw)
	}
	return strings.TrimRight(u.String(), "/"), nil
}
