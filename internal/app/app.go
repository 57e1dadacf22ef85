// Package app implements the application layer for genie: the user, app and generation
// operations the front end calls, expressed as cached reads and invalidating mutations.
package app

import (
	"go.trai.ch/genie/internal/core/ports"
	"go.trai.ch/genie/internal/engine/query"
)

// App represents the main application logic.
type App struct {
	transport ports.Transport
	dialer    ports.StreamDialer
	cache     *query.Coordinator
	navigator ports.Navigator
	logger    ports.Logger
}

// New creates a new App instance.
func New(
	transport ports.Transport,
	dialer ports.StreamDialer,
	cache *query.Coordinator,
	navigator ports.Navigator,
	log ports.Logger,
) *App {
	return &App{
		transport: transport,
		dialer:    dialer,
		cache:     cache,
		navigator: navigator,
		logger:    log,
	}
}

type logConfigurer interface {
	SetJSON(enable bool)
	SetVerbose(enable bool)
}

// ConfigureLogging switches the logger to JSON output and/or debug verbosity.
func (a *App) ConfigureLogging(jsonMode, verbose bool) {
	lc, ok := a.logger.(logConfigurer)
	if !ok {
		return
	}
	lc.SetJSON(jsonMode)
	lc.SetVerbose(verbose)
}

// Enter records the surface the user is on. It decides whether an Unauthorized response
// redirects to the login surface.
func (a *App) Enter(path string) {
	a.navigator.SetCurrentPath(path)
}

// Cache exposes the coordinator so front ends can inspect cached entries.
func (a *App) Cache() *query.Coordinator {
	return a.cache
}
