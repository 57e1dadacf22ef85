package domain

import (
	"encoding/json"
	"net/http"
	"net/url"
)

// Request describes one call against the API base URL.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	// Body is JSON-encoded when non-nil.
	Body any
}

// Get builds a GET request.
func Get(path string, query url.Values) Request {
	return Request{Method: http.MethodGet, Path: path, Query: query}
}

// Post builds a POST request with a JSON body.
func Post(path string, body any) Request {
	return Request{Method: http.MethodPost, Path: path, Body: body}
}

// Envelope is the wrapper of every API response. Code zero means success.
type Envelope struct {
	Code    int             `json:"code"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

// OK reports whether the envelope signals success.
func (e Envelope) OK() bool {
	return e.Code == 0
}
