package query

import (
	"time"

	"go.opentelemetry.io/otel/trace"
	"go.trai.ch/genie/internal/core/ports"
)

// RefreshPolicy decides what a read does with a stale cached value.
type RefreshPolicy int

const (
	// UseIfStale serves the stale value immediately and refreshes it in the background.
	UseIfStale RefreshPolicy = iota
	// MustRefresh waits for a fresh value.
	MustRefresh
)

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithDefaultStaleAfter sets the staleness window for reads that do not set their own.
func WithDefaultStaleAfter(d time.Duration) Option {
	return func(c *Coordinator) {
		c.defaultStaleAfter = d
	}
}

// WithLogger sets the logger for cache activity.
func WithLogger(logger ports.Logger) Option {
	return func(c *Coordinator) {
		c.logger = logger
	}
}

// WithTracer sets the tracer used for fetch and mutation spans.
func WithTracer(tracer trace.Tracer) Option {
	return func(c *Coordinator) {
		c.tracer = tracer
	}
}

type readOptions struct {
	staleAfter    time.Duration
	hasStaleAfter bool
	retries       int
	retryDelay    time.Duration
	policy        RefreshPolicy
	enabled       bool
}

// ReadOption configures a single read.
type ReadOption func(*readOptions)

// StaleAfter sets how long a fetched value stays fresh.
func StaleAfter(d time.Duration) ReadOption {
	return func(o *readOptions) {
		o.staleAfter = d
		o.hasStaleAfter = true
	}
}

// Retry retries a failed fetch up to n more times, waiting delay between attempts.
// Reads do not retry by default.
func Retry(n int, delay time.Duration) ReadOption {
	return func(o *readOptions) {
		o.retries = max(n, 0)
		o.retryDelay = delay
	}
}

// Policy sets the refresh policy for stale values.
func Policy(p RefreshPolicy) ReadOption {
	return func(o *readOptions) {
		o.policy = p
	}
}

// Enabled toggles fetching. A disabled read only serves what is cached.
func Enabled(enabled bool) ReadOption {
	return func(o *readOptions) {
		o.enabled = enabled
	}
}

func newReadOptions(opts []ReadOption) readOptions {
	o := readOptions{policy: UseIfStale, enabled: true}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
