// Package detector inspects the terminal environment to pick log formats and prompt behavior.
package detector

import (
	"os"

	"go.trai.ch/genie/internal/core/domain"
	"golang.org/x/term"
)

// IsInteractive reports whether f is a terminal, which allows hidden password prompts.
func IsInteractive(f *os.File) bool {
	if f == nil {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// IsCI reports whether the CI environment variable marks a CI run.
func IsCI() bool {
	ci := os.Getenv("CI")
	return ci == "true" || ci == "1"
}

// DetectLogFormat returns the log format for the current environment: pretty on an
// interactive stderr outside CI, JSON otherwise.
func DetectLogFormat() domain.LogFormat {
	if !IsInteractive(os.Stderr) || IsCI() {
		return domain.LogFormatJSON
	}
	return domain.LogFormatPretty
}

// ResolveLogFormat applies a configured or flagged format over the detected one.
// userFormat should be one of: "auto", "pretty", "json", or empty.
func ResolveLogFormat(detected, userFormat domain.LogFormat) domain.LogFormat {
	switch userFormat {
	case domain.LogFormatPretty, domain.LogFormatJSON:
		return userFormat
	default:
		return detected
	}
}

// ReadSecret reads a line from f without echo when f is a terminal.
func ReadSecret(f *os.File) (string, error) {
	b, err := term.ReadPassword(int(f.Fd()))
	if err != nil {
		return "", err
	}
	return string(b), nil
}
