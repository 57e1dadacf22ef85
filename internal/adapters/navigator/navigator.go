// Package navigator implements the navigation surface of the terminal front end.
package navigator

import (
	"strings"
	"sync"

	"go.trai.ch/genie/internal/core/domain"
	"go.trai.ch/genie/internal/core/ports"
)

// Terminal tracks the surface the current command operates on. Navigating to the login
// surface tells the user to sign in.
type Terminal struct {
	mu     sync.Mutex
	path   string
	logger ports.Logger
}

// New creates a Terminal positioned at the root surface.
func New(logger ports.Logger) *Terminal {
	return &Terminal{path: "/", logger: logger}
}

// CurrentPath returns the current surface path.
func (t *Terminal) CurrentPath() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.path
}

// SetCurrentPath records path as the current surface.
func (t *Terminal) SetCurrentPath(path string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.path = path
}

// Navigate moves to path.
func (t *Terminal) Navigate(path string) {
	t.mu.Lock()
	t.path = path
	t.mu.Unlock()

	if strings.Contains(path, domain.LoginPath) {
		t.logger.Warn("not signed in or session expired, run 'genie login' to continue")
		return
	}
	t.logger.Debug("navigated to " + path)
}
