// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/genie/internal/adapters/config"
	_ "go.trai.ch/genie/internal/adapters/logger"
	_ "go.trai.ch/genie/internal/adapters/navigator"
	_ "go.trai.ch/genie/internal/adapters/sse"
	_ "go.trai.ch/genie/internal/adapters/telemetry"
	_ "go.trai.ch/genie/internal/adapters/transport"
	// Register app and engine nodes.
	_ "go.trai.ch/genie/internal/app"
	_ "go.trai.ch/genie/internal/engine/query"
)
