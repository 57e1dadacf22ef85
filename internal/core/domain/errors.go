package domain

import "go.trai.ch/zerr"

var (
	// ErrUnauthorized is returned when the server rejects the session (HTTP 401).
	ErrUnauthorized = zerr.New("unauthorized")

	// ErrForbidden is returned when the session lacks permission for the resource (HTTP 403).
	ErrForbidden = zerr.New("forbidden")

	// ErrNotFound is returned when the requested resource does not exist (HTTP 404).
	ErrNotFound = zerr.New("resource not found")

	// ErrServerError is returned when the server fails to handle the request (HTTP 5xx).
	ErrServerError = zerr.New("server error")

	// ErrNetwork is returned when no response was received from the server.
	ErrNetwork = zerr.New("network error")

	// ErrProtocolDecode is returned when a response body or stream event cannot be decoded.
	ErrProtocolDecode = zerr.New("malformed payload")

	// ErrApplication is returned when the envelope carries a non-zero code.
	ErrApplication = zerr.New("request rejected by server")

	// ErrRequestFailed is returned for failures that fit no other classification.
	ErrRequestFailed = zerr.New("request failed")

	// ErrRequestBuildFailed is returned when an outgoing request cannot be constructed.
	ErrRequestBuildFailed = zerr.New("failed to build request")

	// ErrRequestEncodeFailed is returned when a request body cannot be encoded.
	ErrRequestEncodeFailed = zerr.New("failed to encode request body")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrInvalidBaseURL is returned when the configured API base URL is not an absolute http(s) URL.
	ErrInvalidBaseURL = zerr.New("invalid api base url")

	// ErrStreamURLMissing is returned when a stream is (re)connected without a known URL.
	ErrStreamURLMissing = zerr.New("stream url not provided")

	// ErrStreamReadFailed is returned when reading from an open stream fails.
	ErrStreamReadFailed = zerr.New("failed to read event stream")

	// ErrQueryDisabled is returned when a disabled query has nothing cached to serve.
	ErrQueryDisabled = zerr.New("query is disabled")

	// ErrInvalidQueryKey is returned when a query key has no kind.
	ErrInvalidQueryKey = zerr.New("query key requires a kind")

	// ErrCacheTypeMismatch is returned when a cached value does not have the type a typed read expects.
	ErrCacheTypeMismatch = zerr.New("cached value has unexpected type")

	// ErrInvalidAppID is returned when an app operation is given a non-positive id.
	ErrInvalidAppID = zerr.New("app id must be positive")

	// ErrMissingPrompt is returned when an app is created without an initial prompt.
	ErrMissingPrompt = zerr.New("initial prompt is required")

	// ErrInvalidCodeGenType is returned when an app is created with an unknown generation type.
	ErrInvalidCodeGenType = zerr.New("unknown code generation type")

	// ErrMissingMessage is returned when a generation is started without a message.
	ErrMissingMessage = zerr.New("generation message is required")

	// ErrMissingCredentials is returned when login or register is attempted without account or password.
	ErrMissingCredentials = zerr.New("account and password are required")

	// ErrPasswordMismatch is returned when the register confirmation does not match the password.
	ErrPasswordMismatch = zerr.New("passwords do not match")

	// ErrGenerationFailed is returned when a generation session ends with an error.
	ErrGenerationFailed = zerr.New("code generation failed")
)
