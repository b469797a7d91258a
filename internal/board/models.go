package board

import (
	"strings"
	"time"
)

// Status is a task status as reported by the server
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// Badge is the styling class a status renders with
type Badge int

const (
	BadgeWarning Badge = iota
	BadgeSuccess
	BadgeFailure
)

// BadgeFor maps a status to its badge. Unknown statuses render as warnings.
func BadgeFor(s Status) Badge {
	switch s {
	case StatusCompleted:
		return BadgeSuccess
	case StatusFailed:
		return BadgeFailure
	default:
		return BadgeWarning
	}
}

// Task is one row of the task table
type Task struct {
	ID             string
	URL            string
	Status         Status
	ScheduledFor   string // as echoed by the server, empty for ASAP
	RepeatInterval string // as echoed by the server, empty for no repeat
	CreatedAt      time.Time
}

// LogEntry is one line of the log viewer
type LogEntry struct {
	Timestamp string
	Level     string
	Message   string
}

// LevelClass is the lower-cased level used to pick a style
func (e LogEntry) LevelClass() string {
	return strings.ToLower(strings.TrimSpace(e.Level))
}
