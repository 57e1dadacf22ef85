package ports

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"go.trai.ch/genie/internal/core/domain"
)

// Transport issues calls against the API and normalizes every failure into a
// *domain.RequestError. On success it returns the envelope's data field.
//
//go:generate mockgen -source=transport.go -destination=mocks/mock_transport.go -package=mocks
type Transport interface {
	// Do executes req.
	Do(ctx context.Context, req domain.Request) (json.RawMessage, error)
	// Get issues a GET request with query parameters.
	Get(ctx context.Context, path string, query url.Values) (json.RawMessage, error)
	// Post issues a POST request with a JSON body.
	Post(ctx context.Context, path string, body any) (json.RawMessage, error)
	// URL returns the absolute URL for path and query against the base URL.
	URL(path string, query url.Values) string
	// HTTPClient returns the credentialed client shared by streaming connections.
	HTTPClient() *http.Client
}
