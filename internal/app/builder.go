package app

import (
	"go.trai.ch/genie/internal/adapters/detector"
	"go.trai.ch/genie/internal/core/domain"
	"go.trai.ch/genie/internal/core/ports"
)

// Components contains all the initialized application components.
// This struct provides controlled access to components needed by the CLI layer.
type Components struct {
	App    *App
	Logger ports.Logger
	Config *domain.Config
}

// NewComponents creates a Components struct and applies the configured log format.
func NewComponents(app *App, logger ports.Logger, cfg *domain.Config) *Components {
	format := detector.ResolveLogFormat(detector.DetectLogFormat(), cfg.LogFormat)
	app.ConfigureLogging(format == domain.LogFormatJSON, cfg.Verbose)

	return &Components{
		App:    app,
		Logger: logger,
		Config: cfg,
	}
}
