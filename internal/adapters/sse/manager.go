// Package sse implements the stream connection manager over server-sent events.
package sse

import (
	"context"
	"errors"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.trai.ch/genie/internal/core/domain"
	"go.trai.ch/genie/internal/core/ports"
	"go.trai.ch/zerr"
)

const tracerName = "go.trai.ch/genie/sse"

// Decoder turns a raw payload into a structured value.
type Decoder func(raw string) (any, error)

// Manager owns at most one live event stream. It implements ports.StreamConnection.
type Manager struct {
	client *http.Client
	decode Decoder
	logger ports.Logger
	tracer trace.Tracer

	mu          sync.Mutex
	state       domain.StreamState
	url         string
	lastID      string
	lastPayload string
	retry       time.Duration
	err         error
	conn        *connection
	done        chan struct{}
	observers   []subscription
	nextObs     uint64
}

type subscription struct {
	id  uint64
	obs domain.StreamObserver
}

// connection is a single Connect cycle.
type connection struct {
	id     string
	cancel context.CancelFunc
	stop   func() bool
	closed bool
	done   chan struct{}
}

// Option configures a Manager.
type Option func(*Manager)

// WithHTTPClient sets the client used to open streams. It must not have a timeout.
func WithHTTPClient(hc *http.Client) Option {
	return func(m *Manager) {
		m.client = hc
	}
}

// WithDecoder enables structured decoding of every payload.
func WithDecoder(decode Decoder) Option {
	return func(m *Manager) {
		m.decode = decode
	}
}

// WithLogger sets the logger for lifecycle messages.
func WithLogger(logger ports.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// WithTracer sets the tracer used for connection spans.
func WithTracer(tracer trace.Tracer) Option {
	return func(m *Manager) {
		m.tracer = tracer
	}
}

// NewManager creates an idle Manager.
func NewManager(opts ...Option) *Manager {
	done := make(chan struct{})
	close(done)

	m := &Manager{
		client: &http.Client{},
		tracer: otel.Tracer(tracerName),
		state:  domain.StreamIdle,
		done:   done,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Subscribe registers obs and returns a function that removes it.
func (m *Manager) Subscribe(obs domain.StreamObserver) func() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextObs++
	id := m.nextObs
	m.observers = append(m.observers, subscription{id: id, obs: obs})

	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		for i, s := range m.observers {
			if s.id == id {
				m.observers = append(m.observers[:i:i], m.observers[i+1:]...)
				return
			}
		}
	}
}

// Connect closes any live connection and opens a new one to url. An empty url reuses the last
// one. Opening happens in the background; failures are reported through OnError. Cancelling ctx
// disconnects.
func (m *Manager) Connect(ctx context.Context, url string) error {
	m.Disconnect()

	m.mu.Lock()
	if url == "" {
		url = m.url
	}
	if url == "" {
		m.mu.Unlock()
		return domain.ErrStreamURLMissing
	}
	resume := url == m.url && m.lastID != ""
	lastID := m.lastID
	m.mu.Unlock()

	connCtx, cancel := context.WithCancel(ctx)
	req, err := http.NewRequestWithContext(connCtx, http.MethodGet, url, nil)
	if err != nil {
		cancel()
		return zerr.With(zerr.Wrap(domain.ErrRequestBuildFailed, "failed to open stream"), "url", url)
	}
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Cache-Control", "no-cache")
	if resume {
		req.Header.Set("Last-Event-ID", lastID)
	}

	conn := &connection{
		id:     uuid.NewString(),
		cancel: cancel,
		done:   make(chan struct{}),
	}

	m.mu.Lock()
	m.url = url
	m.state = domain.StreamConnecting
	m.conn = conn
	m.done = conn.done
	conn.stop = context.AfterFunc(ctx, func() {
		m.closeConn(conn)
	})
	m.mu.Unlock()

	m.debug(conn, "connecting to "+url)
	go m.run(connCtx, conn, req)

	return nil
}

// Reconnect opens a new connection to the last URL, resuming from the last event id.
func (m *Manager) Reconnect(ctx context.Context) error {
	return m.Connect(ctx, "")
}

// Disconnect closes the current connection. It is safe to call on an idle or closed Manager.
func (m *Manager) Disconnect() {
	m.mu.Lock()
	conn := m.conn
	m.mu.Unlock()

	if conn != nil {
		m.closeConn(conn)
	}
}

// State returns the current connection state.
func (m *Manager) State() domain.StreamState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// LastEventID returns the id of the most recent event that carried one.
func (m *Manager) LastEventID() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastID
}

// Retry returns the reconnection delay last requested by the server, zero if none. Reconnecting
// stays with the caller; this is only a hint.
func (m *Manager) Retry() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.retry
}

// LastPayload returns the raw payload of the most recently delivered event.
func (m *Manager) LastPayload() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastPayload
}

// Err returns the error that closed the last connection, nil after a clean close or a
// successful open.
func (m *Manager) Err() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.err
}

// Done returns a channel closed when the current connection reaches Closed.
func (m *Manager) Done() <-chan struct{} {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.done
}

func (m *Manager) run(ctx context.Context, conn *connection, req *http.Request) {
	ctx, span := m.tracer.Start(ctx, "GET "+req.URL.Path, trace.WithSpanKind(trace.SpanKindClient))
	span.SetAttributes(attribute.String("stream.id", conn.id))
	defer span.End()

	resp, err := m.client.Do(req.WithContext(ctx))
	if err != nil {
		if ctx.Err() != nil {
			m.closeConn(conn)
			return
		}
		m.fail(conn, span, &domain.RequestError{Kind: domain.KindNetwork, Err: err})
		return
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		m.fail(conn, span, &domain.RequestError{
			Kind:       domain.KindForStatus(resp.StatusCode),
			StatusCode: resp.StatusCode,
		})
		return
	}

	if !m.open(conn) {
		return
	}

	reader := NewReader(resp.Body)
	var received int
	for {
		ev, err := reader.Next()
		m.noteRetry(conn, reader.retry)
		if err != nil {
			span.SetAttributes(attribute.Int("stream.events", received))
			switch {
			case errors.Is(err, io.EOF), ctx.Err() != nil:
				m.closeConn(conn)
			default:
				m.fail(conn, span, &domain.RequestError{
					Kind:   domain.KindNetwork,
					Reason: domain.ErrStreamReadFailed.Error(),
					Err:    err,
				})
			}
			return
		}

		if m.decode != nil {
			parsed, decodeErr := m.decode(ev.Raw)
			if decodeErr != nil {
				ev.DecodeErr = &domain.RequestError{Kind: domain.KindProtocolDecode, Err: decodeErr}
			} else {
				ev.Parsed = parsed
			}
		}

		if !m.deliver(conn, ev) {
			return
		}
		received++
	}
}

// open moves conn to Open and notifies observers. It reports false if conn was closed meanwhile.
func (m *Manager) open(conn *connection) bool {
	m.mu.Lock()
	if m.conn != conn || conn.closed {
		m.mu.Unlock()
		return false
	}
	m.state = domain.StreamOpen
	m.err = nil
	observers := m.snapshot()
	m.mu.Unlock()

	m.debug(conn, "stream open")
	for _, obs := range observers {
		if obs.OnOpen != nil {
			obs.OnOpen()
		}
	}
	return true
}

// deliver passes ev to observers in arrival order. Events on a closed connection are dropped,
// including for observers still waiting their turn when an earlier one disconnects.
func (m *Manager) deliver(conn *connection, ev domain.StreamEvent) bool {
	m.mu.Lock()
	if m.conn != conn || conn.closed {
		m.mu.Unlock()
		return false
	}
	m.lastPayload = ev.Raw
	if ev.ID != "" {
		m.lastID = ev.ID
	}
	observers := m.snapshot()
	m.mu.Unlock()

	for _, obs := range observers {
		if obs.OnMessage == nil {
			continue
		}
		if !m.live(conn) {
			return false
		}
		obs.OnMessage(ev)
	}
	return true
}

func (m *Manager) live(conn *connection) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.conn == conn && !conn.closed
}

func (m *Manager) noteRetry(conn *connection, retry time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.conn == conn && retry > 0 {
		m.retry = retry
	}
}

// fail reports err, moves conn through Erroring and closes it.
func (m *Manager) fail(conn *connection, span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, domain.KindOf(err).String())

	m.mu.Lock()
	if m.conn != conn || conn.closed {
		m.mu.Unlock()
		return
	}
	m.state = domain.StreamErroring
	m.err = err
	observers := m.snapshot()
	m.mu.Unlock()

	m.debug(conn, "stream failed: "+err.Error())
	for _, obs := range observers {
		if obs.OnError != nil {
			obs.OnError(err)
		}
	}

	m.closeConn(conn)
}

// closeConn releases conn and fires OnClose once for its active-to-closed transition.
func (m *Manager) closeConn(conn *connection) {
	m.mu.Lock()
	if conn.closed {
		m.mu.Unlock()
		return
	}
	conn.closed = true
	conn.cancel()
	if conn.stop != nil {
		conn.stop()
	}
	defer close(conn.done)

	if m.conn != conn {
		m.mu.Unlock()
		return
	}
	m.state = domain.StreamClosed
	observers := m.snapshot()
	m.mu.Unlock()

	m.debug(conn, "stream closed")
	for _, obs := range observers {
		if obs.OnClose != nil {
			obs.OnClose()
		}
	}
}

func (m *Manager) snapshot() []domain.StreamObserver {
	observers := make([]domain.StreamObserver, len(m.observers))
	for i, s := range m.observers {
		observers[i] = s.obs
	}
	return observers
}

func (m *Manager) debug(conn *connection, msg string) {
	if m.logger == nil {
		return
	}
	m.logger.Debug("stream " + conn.id[:8] + ": " + msg)
}
