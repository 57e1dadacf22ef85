package ports

import (
	"context"

	"go.trai.ch/genie/internal/core/domain"
)

// StreamConnection is a single server-to-client event stream.
//
//go:generate mockgen -source=stream.go -destination=mocks/mock_stream.go -package=mocks
type StreamConnection interface {
	// Subscribe registers callbacks and returns a function that removes them.
	Subscribe(obs domain.StreamObserver) (unsubscribe func())
	// Connect closes any live connection and opens a new one to url. Cancelling ctx disconnects.
	Connect(ctx context.Context, url string) error
	// Disconnect closes the connection. It is safe to call repeatedly.
	Disconnect()
	// State returns the current connection state.
	State() domain.StreamState
	// Done is closed when the current connection reaches Closed.
	Done() <-chan struct{}
}

// StreamDialer creates connections sharing the transport's credentials.
type StreamDialer interface {
	// Dial returns a new idle connection that decodes payloads with decode, if non-nil.
	Dial(decode func(raw string) (any, error)) StreamConnection
}
