package board

// TaskTable holds task rows keyed by ID, newest first.
// There is never more than one row per ID.
type TaskTable struct {
	order []string
	rows  map[string]Task
}

// NewTaskTable creates an empty table
func NewTaskTable() *TaskTable {
	return &TaskTable{rows: make(map[string]Task)}
}

// Prepend inserts task at the top. A row already holding the same ID is
// replaced and moved to the top.
func (t *TaskTable) Prepend(task Task) {
	if _, ok := t.rows[task.ID]; ok {
		t.removeFromOrder(task.ID)
	}
	t.rows[task.ID] = task
	t.order = append([]string{task.ID}, t.order...)
}

// SetStatus rewrites the status of the row with the given ID. It reports
// whether such a row existed; unknown IDs leave the table untouched.
func (t *TaskTable) SetStatus(id string, status Status) bool {
	task, ok := t.rows[id]
	if !ok {
		return false
	}
	task.Status = status
	t.rows[id] = task
	return true
}

// Remove deletes the row with the given ID
func (t *TaskTable) Remove(id string) bool {
	if _, ok := t.rows[id]; !ok {
		return false
	}
	delete(t.rows, id)
	t.removeFromOrder(id)
	return true
}

// Clear removes every row and returns how many were removed
func (t *TaskTable) Clear() int {
	n := len(t.order)
	t.order = nil
	t.rows = make(map[string]Task)
	return n
}

// Get returns the row with the given ID
func (t *TaskTable) Get(id string) (Task, bool) {
	task, ok := t.rows[id]
	return task, ok
}

// At returns the row at display position i
func (t *TaskTable) At(i int) (Task, bool) {
	if i < 0 || i >= len(t.order) {
		return Task{}, false
	}
	return t.rows[t.order[i]], true
}

// Len returns the number of rows
func (t *TaskTable) Len() int {
	return len(t.order)
}

// Rows returns a snapshot of all rows in display order
func (t *TaskTable) Rows() []Task {
	out := make([]Task, len(t.order))
	for i, id := range t.order {
		out[i] = t.rows[id]
	}
	return out
}

func (t *TaskTable) removeFromOrder(id string) {
	for i, v := range t.order {
		if v == id {
			t.order = append(t.order[:i], t.order[i+1:]...)
			return
		}
	}
}
