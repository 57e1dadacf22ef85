package domain

import "encoding/json"

// StreamState is the lifecycle state of a stream connection.
type StreamState int

const (
	// StreamIdle is the initial state.
	StreamIdle StreamState = iota
	// StreamConnecting means the request was issued and no response arrived yet.
	StreamConnecting
	// StreamOpen means events are being received.
	StreamOpen
	// StreamErroring is the transient state between a stream failure and Closed.
	StreamErroring
	// StreamClosed is terminal until the next Connect.
	StreamClosed
)

// String returns the lowercase name of the state.
func (s StreamState) String() string {
	switch s {
	case StreamIdle:
		return "idle"
	case StreamConnecting:
		return "connecting"
	case StreamOpen:
		return "open"
	case StreamErroring:
		return "erroring"
	case StreamClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Active reports whether the state holds a live connection.
func (s StreamState) Active() bool {
	return s == StreamConnecting || s == StreamOpen
}

// StreamEvent is one event received on a stream.
type StreamEvent struct {
	// Raw is the data payload, multiple data lines joined by newlines.
	Raw string
	// Name is the event name, DefaultEventName when the server sent none.
	Name string
	ID   string
	// Parsed is the decoded payload when a decoder is configured and decoding succeeded.
	Parsed any
	// DecodeErr is set when decoding failed. It never affects the connection.
	DecodeErr error
}

// StreamObserver receives connection callbacks. Nil fields are skipped.
type StreamObserver struct {
	OnOpen    func()
	OnMessage func(StreamEvent)
	OnError   func(error)
	OnClose   func()
}

// StreamMessageType is the type of a generation message.
type StreamMessageType string

const (
	// MessageAIResponse is model output text.
	MessageAIResponse StreamMessageType = "ai_response"
	// MessageToolRequest announces a tool invocation.
	MessageToolRequest StreamMessageType = "tool_request"
	// MessageToolExecuted reports a finished tool invocation.
	MessageToolExecuted StreamMessageType = "tool_executed"
)

// GenerationChunk is one increment of generation output.
type GenerationChunk struct {
	Type      StreamMessageType `json:"type"`
	Content   string            `json:"content"`
	Timestamp int64             `json:"timestamp,omitempty"`
	// Raw is the payload as received. It is the only field set when decoding failed.
	Raw string `json:"-"`
}

// UnmarshalJSON accepts both the typed message shape and the compact {"d": "..."} shape.
func (c *GenerationChunk) UnmarshalJSON(b []byte) error {
	var wire struct {
		Type      StreamMessageType `json:"type"`
		Content   *string           `json:"content"`
		Timestamp int64             `json:"timestamp"`
		D         *string           `json:"d"`
	}
	if err := json.Unmarshal(b, &wire); err != nil {
		return err
	}
	c.Type = wire.Type
	c.Timestamp = wire.Timestamp
	switch {
	case wire.Content != nil:
		c.Content = *wire.Content
	case wire.D != nil:
		c.Content = *wire.D
	}
	if c.Type == "" {
		c.Type = MessageAIResponse
	}
	return nil
}
