package sse

import (
	"bufio"
	"io"
	"strconv"
	"strings"
	"time"

	"go.trai.ch/genie/internal/core/domain"
)

const maxLineSize = 1 << 20

// Reader parses a text/event-stream body into events.
type Reader struct {
	scanner *bufio.Scanner
	lastID  string
	retry   time.Duration
}

// NewReader returns a Reader over r.
func NewReader(r io.Reader) *Reader {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), maxLineSize)
	return &Reader{scanner: scanner}
}

// Next returns the next event. Blocks without a data field dispatch nothing. It returns io.EOF once the stream ends. An event still being
// assembled when the stream ends is returned before io.EOF.
func (r *Reader) Next() (domain.StreamEvent, error) {
	var (
		data    strings.Builder
		name    string
		hasData bool
		pending bool
	)

	for r.scanner.Scan() {
		line := r.scanner.Text()

		if line == "" {
			if !pending {
				name = ""
				continue
			}
			return r.event(data.String(), name), nil
		}

		if strings.HasPrefix(line, ":") {
			continue
		}

		field, value, _ := strings.Cut(line, ":")
		value = strings.TrimPrefix(value, " ")

		switch field {
		case "data":
			if hasData {
				data.WriteByte('\n')
			}
			data.WriteString(value)
			hasData = true
			pending = true
		case "event":
			name = value
		case "id":
			if !strings.ContainsRune(value, 0) {
				r.lastID = value
			}
		case "retry":
			if ms, err := strconv.Atoi(value); err == nil && ms >= 0 {
				r.retry = time.Duration(ms) * time.Millisecond
			}
		}
	}

	if err := r.scanner.Err(); err != nil {
		return domain.StreamEvent{}, err
	}
	if pending {
		return r.event(data.String(), name), nil
	}
	return domain.StreamEvent{}, io.EOF
}

func (r *Reader) event(data, name string) domain.StreamEvent {
	if name == "" {
		name = domain.DefaultEventName
	}
	return domain.StreamEvent{Raw: data, Name: name, ID: r.lastID}
}
