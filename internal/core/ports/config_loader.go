package ports

import "go.trai.ch/genie/internal/core/domain"

// ConfigLoader defines the interface for loading the client configuration.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load discovers genie.yaml by walking up from cwd, applies environment overrides and
	// returns the resolved configuration. A missing file yields the defaults.
	Load(cwd string) (*domain.Config, error)
}
