package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
)

// TaskID is the server's opaque task identifier. The server may send it as a
// JSON number or a JSON string; both decode to the same TaskID.
type TaskID string

// UnmarshalJSON accepts numbers and strings
func (id *TaskID) UnmarshalJSON(data []byte) error {
	s, err := decodeFlexible(data)
	if err != nil {
		return fmt.Errorf("decoding task id: %w", err)
	}
	*id = TaskID(s)
	return nil
}

// MarshalJSON writes numeric IDs as JSON numbers and everything else as strings
func (id TaskID) MarshalJSON() ([]byte, error) {
	return encodeFlexible(string(id))
}

// Text is a free-form value that the server may send as a number or a string,
// e.g. repeat_interval which is stored as integer minutes.
type Text string

// UnmarshalJSON accepts numbers and strings
func (t *Text) UnmarshalJSON(data []byte) error {
	s, err := decodeFlexible(data)
	if err != nil {
		return err
	}
	*t = Text(s)
	return nil
}

// MarshalJSON writes numeric values as JSON numbers
func (t Text) MarshalJSON() ([]byte, error) {
	return encodeFlexible(string(t))
}

func decodeFlexible(data []byte) (string, error) {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return "", nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return "", err
		}
		return s, nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return "", err
	}
	return n.String(), nil
}

func encodeFlexible(s string) ([]byte, error) {
	if s != "" && json.Valid([]byte(s)) && strings.Trim(s, "0123456789") == "" {
		return []byte(s), nil
	}
	return json.Marshal(s)
}

// AddReelRequest is the form submitted to POST /add_reel
type AddReelRequest struct {
	URL            string
	ScheduledFor   string // ISO local datetime, empty for ASAP
	RepeatInterval string // empty for no repeat
}

// Form encodes the request as application/x-www-form-urlencoded values.
// Empty optional fields are left out.
func (r AddReelRequest) Form() url.Values {
	v := url.Values{}
	v.Set("url", r.URL)
	if r.ScheduledFor != "" {
		v.Set("scheduled_for", r.ScheduledFor)
	}
	if r.RepeatInterval != "" {
		v.Set("repeat_interval", r.RepeatInterval)
	}
	return v
}

// AddReelResponse is the server echo for a created task
type AddReelResponse struct {
	TaskID         TaskID  `json:"task_id"`
	URL            string  `json:"url"`
	ScheduledFor   *string `json:"scheduled_for,omitempty"`
	RepeatInterval *Text   `json:"repeat_interval,omitempty"`
	CreatedAt      string  `json:"created_at,omitempty"`
	Message        string  `json:"message,omitempty"`
}

// DeleteResponse is returned by POST /delete_task/{id}
type DeleteResponse struct {
	OK      bool   `json:"ok"`
	Message string `json:"message,omitempty"`
}

// ClearResponse is returned by POST /clear_all_tasks
type ClearResponse struct {
	Count int `json:"count"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// LogEvent is one entry of a /stream_logs batch
type LogEvent struct {
	Timestamp string `json:"timestamp"`
	Level     string `json:"level"`
	Message   string `json:"message"`
}

// TaskUpdate is one entry of a /stream_task_updates batch
type TaskUpdate struct {
	ID     TaskID `json:"id"`
	Status string `json:"status"`
}
