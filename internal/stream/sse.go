package stream

import (
	"bufio"
	"io"
	"strings"
)

// maxLineSize bounds a single SSE line
const maxLineSize = 1 << 20

// Event is one dispatched server-sent event
type Event struct {
	ID    string
	Event string
	Data  string
}

// Reader splits a text/event-stream body into events
type Reader struct {
	scanner *bufio.Scanner
}

// NewReader wraps r
func NewReader(r io.Reader) *Reader {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	return &Reader{scanner: s}
}

// Next returns the next event that carries data. It returns io.EOF when the
// stream ends; a partially received event at EOF is discarded.
func (r *Reader) Next() (Event, error) {
	var (
		ev      Event
		data    []string
		hasData bool
	)
	for r.scanner.Scan() {
		line := r.scanner.Text()

		if line == "" {
			if hasData {
				ev.Data = strings.Join(data, "\n")
				return ev, nil
			}
			ev = Event{}
			continue
		}
		if strings.HasPrefix(line, ":") {
			continue
		}

		field, value, _ := strings.Cut(line, ":")
		value = strings.TrimPrefix(value, " ")

		switch field {
		case "data":
			data = append(data, value)
			hasData = true
		case "event":
			ev.Event = value
		case "id":
			ev.ID = value
		}
		// "retry" is ignored, the reconnect delay is fixed
	}
	if err := r.scanner.Err(); err != nil {
		return Event{}, err
	}
	return Event{}, io.EOF
}
