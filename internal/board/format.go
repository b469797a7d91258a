package board

import (
	"strconv"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
)

// ScheduledLayout is the ISO local datetime the server expects for scheduled_for
const ScheduledLayout = "2006-01-02T15:04"

const displayLayout = "2006-01-02 15:04:05"

var scheduledLayouts = []string{
	ScheduledLayout,
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// ParseScheduled parses a scheduled time in local time. RFC3339 values keep
// their offset.
func ParseScheduled(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	for _, layout := range scheduledLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// NormalizeScheduled converts form input to the ISO local form. Empty input
// means ASAP. Input that does not parse is returned unchanged with ok=false
// so the server can reject it.
func NormalizeScheduled(input string) (string, bool) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", true
	}
	t, ok := ParseScheduled(input)
	if !ok {
		return input, false
	}
	return t.In(time.Local).Format(ScheduledLayout), true
}

// NormalizeRepeat converts form input to whole minutes. It accepts "90",
// "1h30m" and "@every 1h30m". Empty input means no repeat. Input that does not
// parse is returned unchanged with ok=false.
func NormalizeRepeat(input string) (string, bool) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", true
	}
	if n, err := strconv.Atoi(input); err == nil {
		if n <= 0 {
			return input, false
		}
		return strconv.Itoa(n), true
	}

	spec := input
	if !strings.HasPrefix(spec, "@every ") {
		spec = "@every " + spec
	}
	sched, err := cron.ParseStandard(spec)
	if err != nil {
		return input, false
	}
	every, ok := sched.(cron.ConstantDelaySchedule)
	if !ok || every.Delay < time.Minute || every.Delay%time.Minute != 0 {
		return input, false
	}
	return strconv.Itoa(int(every.Delay / time.Minute)), true
}

// ScheduledLabel renders the scheduled column
func ScheduledLabel(s string) string {
	if strings.TrimSpace(s) == "" {
		return "ASAP"
	}
	t, ok := ParseScheduled(s)
	if !ok {
		return s
	}
	return t.In(time.Local).Format("2006-01-02 15:04")
}

// RepeatLabel renders the repeat column. Whole minutes render as a duration.
func RepeatLabel(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "No"
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return s
	}
	return "Every " + shortDuration(time.Duration(n)*time.Minute)
}

// CreatedLabel renders an instant in local time
func CreatedLabel(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.In(time.Local).Format(displayLayout)
}

func shortDuration(d time.Duration) string {
	s := d.String()
	if strings.HasSuffix(s, "m0s") {
		s = strings.TrimSuffix(s, "0s")
	}
	if strings.HasSuffix(s, "h0m") {
		s = strings.TrimSuffix(s, "0m")
	}
	return s
}
