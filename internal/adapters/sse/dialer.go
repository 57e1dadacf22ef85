package sse

import (
	"net/http"

	"go.opentelemetry.io/otel/trace"
	"go.trai.ch/genie/internal/core/ports"
)

// Dialer creates Managers that share the transport's credentials.
type Dialer struct {
	client *http.Client
	logger ports.Logger
	tracer trace.Tracer
}

// NewDialer returns a Dialer using the cookie jar and round tripper of the transport's client.
// The per-request timeout is dropped since streams are long-lived.
func NewDialer(transport ports.Transport, logger ports.Logger, tracer trace.Tracer) *Dialer {
	streamClient := *transport.HTTPClient()
	streamClient.Timeout = 0

	return &Dialer{
		client: &streamClient,
		logger: logger,
		tracer: tracer,
	}
}

// Dial returns a new idle connection. A nil decode delivers raw payloads only.
func (d *Dialer) Dial(decode func(raw string) (any, error)) ports.StreamConnection {
	opts := []Option{
		WithHTTPClient(d.client),
		WithLogger(d.logger),
	}
	if d.tracer != nil {
		opts = append(opts, WithTracer(d.tracer))
	}
	if decode != nil {
		opts = append(opts, WithDecoder(decode))
	}
	return NewManager(opts...)
}
