package domain

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrorKind classifies every failure surfaced by the transport, the stream manager and the query
// coordinator. The set is closed.
type ErrorKind int

const (
	// KindUnknown covers failures that fit no other kind, such as unexpected status codes.
	KindUnknown ErrorKind = iota
	// KindUnauthorized is an HTTP 401.
	KindUnauthorized
	// KindForbidden is an HTTP 403.
	KindForbidden
	// KindNotFound is an HTTP 404.
	KindNotFound
	// KindServerError is an HTTP 5xx.
	KindServerError
	// KindNetwork means no response was received.
	KindNetwork
	// KindProtocolDecode means a payload could not be decoded.
	KindProtocolDecode
	// KindApplication means the envelope carried a non-zero code.
	KindApplication
)

var kindNames = [...]string{
	KindUnknown:        "unknown",
	KindUnauthorized:   "unauthorized",
	KindForbidden:      "forbidden",
	KindNotFound:       "not_found",
	KindServerError:    "server_error",
	KindNetwork:        "network",
	KindProtocolDecode: "protocol_decode",
	KindApplication:    "application",
}

// String returns the snake_case name of the kind.
func (k ErrorKind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
	return kindNames[k]
}

// Sentinel returns the sentinel error matched by errors.Is for this kind.
func (k ErrorKind) Sentinel() error {
	switch k {
	case KindUnauthorized:
		return ErrUnauthorized
	case KindForbidden:
		return ErrForbidden
	case KindNotFound:
		return ErrNotFound
	case KindServerError:
		return ErrServerError
	case KindNetwork:
		return ErrNetwork
	case KindProtocolDecode:
		return ErrProtocolDecode
	case KindApplication:
		return ErrApplication
	default:
		return ErrRequestFailed
	}
}

// KindForStatus maps a non-2xx HTTP status code to its kind.
func KindForStatus(status int) ErrorKind {
	switch {
	case status == 401:
		return KindUnauthorized
	case status == 403:
		return KindForbidden
	case status == 404:
		return KindNotFound
	case status >= 500 && status <= 599:
		return KindServerError
	default:
		return KindUnknown
	}
}

// RequestError is the single error shape produced by the sync layer.
type RequestError struct {
	Kind       ErrorKind
	StatusCode int
	// Code is the envelope code for KindApplication errors.
	Code int
	// Reason is the server-provided message, if any.
	Reason string
	Err    error
}

// Message returns the error's own message without its cause.
func (e *RequestError) Message() string {
	msg := e.Reason
	if msg == "" {
		msg = e.Kind.Sentinel().Error()
	}
	if e.Kind == KindApplication {
		return msg
	}
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s (status %d)", msg, e.StatusCode)
	}
	return msg
}

// Error implements the error interface.
func (e *RequestError) Error() string {
	if e.Err == nil {
		return e.Message()
	}
	return e.Message() + ": " + e.Err.Error()
}

// Unwrap returns the underlying cause.
func (e *RequestError) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel for this error's kind.
func (e *RequestError) Is(target error) bool {
	return target == e.Kind.Sentinel()
}

// Metadata exposes the classification for structured logging.
func (e *RequestError) Metadata() map[string]any {
	md := map[string]any{"kind": e.Kind.String()}
	if e.StatusCode != 0 {
		md["status_code"] = e.StatusCode
	}
	if e.Kind == KindApplication {
		md["code"] = e.Code
	}
	return md
}

// KindOf extracts the kind of err. Errors that are not RequestErrors report KindUnknown.
func KindOf(err error) ErrorKind {
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return reqErr.Kind
	}
	return KindUnknown
}
