package domain

import "time"

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "genie.yaml"

	// DefaultBaseURL is the API base URL used when none is configured.
	DefaultBaseURL = "http://localhost:8123/api"

	// DefaultTimeout is the per-request timeout used when none is configured.
	DefaultTimeout = 30 * time.Second

	// LoginPath is the login surface the Unauthorized side effect navigates to.
	LoginPath = "/login"

	// SessionCookieName is the name of the session cookie issued by the API.
	SessionCookieName = "SESSION"

	// DefaultEventName is the name of stream events that carry no event field.
	DefaultEventName = "message"

	// EnvAPIURL overrides the configured API base URL.
	EnvAPIURL = "GENIE_API_URL"

	// EnvSession overrides the configured session cookie.
	EnvSession = "GENIE_SESSION"

	// EnvLogFormat overrides the configured log format.
	EnvLogFormat = "GENIE_LOG_FORMAT"
)
