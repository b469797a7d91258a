package board

// DefaultLogLimit is how many log lines stay visible
const DefaultLogLimit = 50

// LogWindow keeps the most recently arrived log entries, newest first.
// Eviction is by arrival order, not by timestamp.
type LogWindow struct {
	entries []LogEntry
	limit   int
}

// NewLogWindow creates a window holding at most limit entries
func NewLogWindow(limit int) *LogWindow {
	if limit <= 0 {
		limit = DefaultLogLimit
	}
	return &LogWindow{
		entries: make([]LogEntry, 0, limit+1),
		limit:   limit,
	}
}

// Push prepends each entry of batch in order, so the last entry of the batch
// ends up on top, then trims the oldest entries beyond the limit.
func (w *LogWindow) Push(batch []LogEntry) {
	for _, e := range batch {
		w.entries = append(w.entries, LogEntry{})
		copy(w.entries[1:], w.entries)
		w.entries[0] = e
		if len(w.entries) > w.limit {
			w.entries = w.entries[:w.limit]
		}
	}
}

// Entries returns a snapshot, newest first
func (w *LogWindow) Entries() []LogEntry {
	out := make([]LogEntry, len(w.entries))
	copy(out, w.entries)
	return out
}

// Len returns the number of visible entries
func (w *LogWindow) Len() int {
	return len(w.entries)
}

// Limit returns the window capacity
func (w *LogWindow) Limit() int {
	return w.limit
}
