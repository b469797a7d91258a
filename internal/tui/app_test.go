package tui

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/kylemclaren/reel-tasks/internal/api"
	"github.com/kylemclaren/reel-tasks/internal/board"
	"github.com/kylemclaren/reel-tasks/internal/fakeapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestModel(t *testing.T) (Model, *fakeapi.Server) {
	t.Helper()
	fake := fakeapi.New()
	srv := httptest.NewServer(fake.Router())
	t.Cleanup(srv.Close)
	t.Cleanup(fake.Close)

	client, err := api.NewClient(srv.URL)
	require.NoError(t, err)

	m := NewModel(client, nil)
	m.now = func() time.Time { return time.Date(2025, 6, 1, 9, 0, 0, 0, time.Local) }
	m = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	return m, fake
}

// model normalizes what Update returns; sub-updates hand back *Model
func model(t *testing.T, tm tea.Model) Model {
	t.Helper()
	switch v := tm.(type) {
	case Model:
		return v
	case *Model:
		return *v
	}
	t.Fatalf("unexpected model type %T", tm)
	return Model{}
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return model(t, next)
}

func updateCmd(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return model(t, next), cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// submitForm runs the add command and feeds its result back into the model
func submitForm(t *testing.T, m Model) Model {
	t.Helper()
	m, cmd := updateCmd(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	require.NotNil(t, cmd)
	return update(t, m, cmd())
}

func addReel(t *testing.T, m Model, url string) Model {
	t.Helper()
	m = update(t, m, runes("a"))
	m = update(t, m, runes(url))
	return submitForm(t, m)
}

func TestAddReel_SuccessPrependsOneRow(t *testing.T) {
	m, fake := newTestModel(t)

	m = update(t, m, runes("a"))
	assert.Equal(t, ViewAdd, m.currentView)
	m = update(t, m, runes("https://instagram.com/reel/abc"))
	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m = update(t, m, runes("2025-06-01 09:30"))
	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m = update(t, m, runes("1h30m"))
	assert.Empty(t, m.formValidation)

	m = submitForm(t, m)

	require.Equal(t, 1, m.tasks.Len())
	task, ok := m.tasks.At(0)
	require.True(t, ok)
	assert.Equal(t, "1", task.ID)
	assert.Equal(t, "https://instagram.com/reel/abc", task.URL)
	assert.Equal(t, board.StatusPending, task.Status)
	assert.Equal(t, "2025-06-01T09:30", task.ScheduledFor)
	assert.Equal(t, "90", task.RepeatInterval)

	assert.Equal(t, ViewDashboard, m.currentView)
	assert.False(t, m.submitting)
	for i := range m.formInputs {
		assert.Empty(t, m.formInputs[i].Value())
	}

	require.Len(t, fake.Tasks(), 1)
	assert.Equal(t, 90, fake.Tasks()[0].RepeatInterval)
}

func TestAddReel_ServerErrorKeepsInputs(t *testing.T) {
	m, fake := newTestModel(t)
	fake.FailNext(http.StatusBadRequest, "Not an Instagram reel")

	m = update(t, m, runes("a"))
	m = update(t, m, runes("https://example.com/video"))
	m = submitForm(t, m)

	assert.Equal(t, 0, m.tasks.Len())
	assert.Equal(t, modalAlert, m.modal)
	assert.Equal(t, "Not an Instagram reel", m.alertText)
	assert.Equal(t, ViewAdd, m.currentView)
	assert.Equal(t, "https://example.com/video", m.formInputs[fieldURL].Value())

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, modalNone, m.modal)
	assert.Equal(t, ViewAdd, m.currentView)
}

type stubClient struct {
	addErr   error
	delErr   error
	clearErr error
}

func (s stubClient) AddReel(context.Context, api.AddReelRequest) (*api.AddReelResponse, error) {
	return nil, s.addErr
}

func (s stubClient) DeleteTask(context.Context, api.TaskID) error {
	return s.delErr
}

func (s stubClient) ClearAllTasks(context.Context) (int, error) {
	return 0, s.clearErr
}

func TestRequestFailures_UseFallbackMessages(t *testing.T) {
	transport := errors.New("connection refused")
	m := NewModel(stubClient{addErr: transport, delErr: transport, clearErr: transport}, nil)

	m = update(t, m, runes("a"))
	m = update(t, m, runes("https://instagram.com/reel/x"))
	m = submitForm(t, m)
	assert.Equal(t, msgAddFailed, m.alertText)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	require.Equal(t, ViewDashboard, m.currentView)

	m = update(t, m, reelAddedMsg{resp: &api.AddReelResponse{TaskID: "4", URL: "https://instagram.com/reel/x"}})
	m = update(t, m, runes("d"))
	require.Equal(t, modalConfirmDelete, m.modal)
	m, cmd := updateCmd(t, m, runes("y"))
	require.NotNil(t, cmd)
	m = update(t, m, cmd())
	assert.Equal(t, msgDeleteFailed, m.alertText)
	assert.Equal(t, 1, m.tasks.Len())

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = update(t, m, runes("C"))
	require.Equal(t, modalConfirmClear, m.modal)
	m, cmd = updateCmd(t, m, runes("y"))
	require.NotNil(t, cmd)
	m = update(t, m, cmd())
	assert.Equal(t, msgClearFailed, m.alertText)
	assert.Equal(t, 1, m.tasks.Len())
}

func TestSubmit_IgnoredWhileInFlight(t *testing.T) {
	m, _ := newTestModel(t)
	m = update(t, m, runes("a"))
	m = update(t, m, runes("https://instagram.com/reel/abc"))

	m, first := updateCmd(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	require.NotNil(t, first)
	_, second := updateCmd(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	assert.Nil(t, second)
}

func TestEnterOnLastFieldSubmits(t *testing.T) {
	m, _ := newTestModel(t)
	m = update(t, m, runes("a"))
	m = update(t, m, runes("https://instagram.com/reel/abc"))
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, fieldScheduled, m.formFocus)
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, fieldRepeat, m.formFocus)

	m, cmd := updateCmd(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	m = update(t, m, cmd())
	assert.Equal(t, 1, m.tasks.Len())
}

func TestFormValidationHints(t *testing.T) {
	m, _ := newTestModel(t)
	m = update(t, m, runes("a"))
	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m = update(t, m, runes("tomorrow"))
	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m = update(t, m, runes("-5"))

	assert.Contains(t, m.formValidation, fieldScheduled)
	assert.Contains(t, m.formValidation, fieldRepeat)
	assert.NotContains(t, m.formValidation, fieldURL)
}

func TestDeleteTask_Confirmed(t *testing.T) {
	m, fake := newTestModel(t)
	m = addReel(t, m, "https://instagram.com/reel/one")
	m = addReel(t, m, "https://instagram.com/reel/two")
	require.Equal(t, 2, m.tasks.Len())

	// Newest row is selected
	m = update(t, m, runes("d"))
	require.Equal(t, modalConfirmDelete, m.modal)
	assert.Equal(t, "2", m.deleteID)

	m, cmd := updateCmd(t, m, runes("y"))
	require.NotNil(t, cmd)
	m = update(t, m, cmd())

	assert.Equal(t, modalNone, m.modal)
	require.Equal(t, 1, m.tasks.Len())
	_, ok := m.tasks.Get("2")
	assert.False(t, ok)
	assert.Len(t, fake.Tasks(), 1)
	assert.Equal(t, 0, m.table.Cursor())
}

func TestDeleteTask_Cancelled(t *testing.T) {
	m, _ := newTestModel(t)
	m = addReel(t, m, "https://instagram.com/reel/one")

	m = update(t, m, runes("d"))
	require.Equal(t, modalConfirmDelete, m.modal)

	// Enter on the default "No" button closes the modal
	m, cmd := updateCmd(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.Equal(t, modalNone, m.modal)
	assert.Equal(t, 1, m.tasks.Len())
}

func TestDeleteTask_EmptyTable(t *testing.T) {
	m, _ := newTestModel(t)
	m = update(t, m, runes("d"))
	assert.Equal(t, modalNone, m.modal)
}

func TestClearAll_ReportsCount(t *testing.T) {
	m, fake := newTestModel(t)
	m = addReel(t, m, "https://instagram.com/reel/one")
	m = addReel(t, m, "https://instagram.com/reel/two")

	m = update(t, m, runes("C"))
	require.Equal(t, modalConfirmClear, m.modal)
	m = update(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	m, cmd := updateCmd(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	m = update(t, m, cmd())

	assert.Equal(t, 0, m.tasks.Len())
	assert.Equal(t, modalAlert, m.modal)
	assert.Equal(t, "Cleared 2 task(s)", m.alertText)
	assert.Empty(t, fake.Tasks())
}

func TestLogsReceived_KeepsNewestFifty(t *testing.T) {
	m, _ := newTestModel(t)
	for i := 0; i < 60; i++ {
		m = update(t, m, logsReceivedMsg{events: []api.LogEvent{{
			Timestamp: "2025-06-01 09:00:00",
			Level:     "INFO",
			Message:   fmt.Sprintf("line %d", i),
		}}})
	}

	entries := m.logs.Entries()
	require.Len(t, entries, board.DefaultLogLimit)
	assert.Equal(t, "line 59", entries[0].Message)
	assert.Equal(t, "line 10", entries[len(entries)-1].Message)
	assert.Contains(t, m.logView.View(), "line 59")
}

func TestTaskUpdates(t *testing.T) {
	m, _ := newTestModel(t)
	m = addReel(t, m, "https://instagram.com/reel/one")
	before, ok := m.tasks.Get("1")
	require.True(t, ok)

	t.Run("unknown id is ignored", func(t *testing.T) {
		next := update(t, m, taskUpdatesMsg{updates: []api.TaskUpdate{{ID: "99", Status: "completed"}}})
		assert.Equal(t, 1, next.tasks.Len())
		got, _ := next.tasks.Get("1")
		assert.Equal(t, before, got)
	})

	t.Run("known id changes status only", func(t *testing.T) {
		next := update(t, m, taskUpdatesMsg{updates: []api.TaskUpdate{{ID: "1", Status: "completed"}}})
		got, _ := next.tasks.Get("1")
		assert.Equal(t, board.StatusCompleted, got.Status)
		got.Status = before.Status
		assert.Equal(t, before, got)
		assert.Contains(t, next.table.Rows()[0][2], "completed")
	})
}

func TestTaskFromResponse(t *testing.T) {
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	scheduled := "2025-06-02T10:00"
	repeat := api.Text("30")

	task := taskFromResponse(&api.AddReelResponse{
		TaskID:         "12",
		URL:            "https://instagram.com/reel/abc",
		ScheduledFor:   &scheduled,
		RepeatInterval: &repeat,
		CreatedAt:      "2025-06-01T08:59:00Z",
	}, now)
	assert.Equal(t, "12", task.ID)
	assert.Equal(t, scheduled, task.ScheduledFor)
	assert.Equal(t, "30", task.RepeatInterval)
	assert.True(t, task.CreatedAt.Equal(time.Date(2025, 6, 1, 8, 59, 0, 0, time.UTC)))

	bare := taskFromResponse(&api.AddReelResponse{TaskID: "13", URL: "u"}, now)
	assert.Empty(t, bare.ScheduledFor)
	assert.Empty(t, bare.RepeatInterval)
	assert.Equal(t, now, bare.CreatedAt)
}

func TestHelpView(t *testing.T) {
	m, _ := newTestModel(t)
	m = update(t, m, runes("?"))
	assert.Equal(t, ViewHelp, m.currentView)
	assert.Contains(t, m.View(), "Help")

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, ViewDashboard, m.currentView)
}

func TestQuit(t *testing.T) {
	m, _ := newTestModel(t)
	_, cmd := updateCmd(t, m, runes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestClearAll_EmptyTableStillAsksServer(t *testing.T) {
	m, fake := newTestModel(t)

	// A task this session never saw
	other, err := api.NewClient(m.client.(*api.Client).URL())
	require.NoError(t, err)
	_, err = other.AddReel(context.Background(), api.AddReelRequest{URL: "https://instagram.com/reel/old"})
	require.NoError(t, err)
	require.Equal(t, 0, m.tasks.Len())

	m = update(t, m, runes("C"))
	require.Equal(t, modalConfirmClear, m.modal)
	m, cmd := updateCmd(t, m, runes("y"))
	require.NotNil(t, cmd)
	m = update(t, m, cmd())

	assert.Equal(t, modalAlert, m.modal)
	assert.Equal(t, "Cleared 1 task(s)", m.alertText)
	assert.Empty(t, fake.Tasks())
}

func TestSubmitting_IndependentOfDeleteAndClear(t *testing.T) {
	m, fake := newTestModel(t)
	m = addReel(t, m, "https://instagram.com/reel/one")

	// Start a second add and leave it in flight
	m = update(t, m, runes("a"))
	m = update(t, m, runes("https://instagram.com/reel/two"))
	m, pendingAdd := updateCmd(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	require.NotNil(t, pendingAdd)
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})

	// A delete completing meanwhile does not re-enable submit
	m = update(t, m, runes("d"))
	m, del := updateCmd(t, m, runes("y"))
	require.NotNil(t, del)
	m = update(t, m, del())
	assert.Equal(t, 0, m.tasks.Len())

	m = update(t, m, runes("a"))
	_, again := updateCmd(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	assert.Nil(t, again)

	m = update(t, m, pendingAdd())
	assert.False(t, m.submitting)
	assert.Equal(t, 1, m.tasks.Len())
	assert.Len(t, fake.Tasks(), 1)
}

func TestSubmit_AllowedWhileDeleteInFlight(t *testing.T) {
	m, _ := newTestModel(t)
	m = addReel(t, m, "https://instagram.com/reel/one")

	m = update(t, m, runes("d"))
	m, del := updateCmd(t, m, runes("y"))
	require.NotNil(t, del)
	assert.True(t, m.busy)

	m = update(t, m, runes("a"))
	m = update(t, m, runes("https://instagram.com/reel/two"))
	_, cmd := updateCmd(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	assert.NotNil(t, cmd)
}

func TestReelAdded_KeepsHelpOpen(t *testing.T) {
	m, _ := newTestModel(t)
	m = update(t, m, runes("a"))
	m = update(t, m, runes("https://instagram.com/reel/one"))
	m, cmd := updateCmd(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	require.NotNil(t, cmd)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	m = update(t, m, runes("?"))
	require.Equal(t, ViewHelp, m.currentView)

	m = update(t, m, cmd())
	assert.Equal(t, ViewHelp, m.currentView)
	assert.Equal(t, 1, m.tasks.Len())
}

func TestDashboard_SelectedRowBadge(t *testing.T) {
	m, _ := newTestModel(t)
	m = addReel(t, m, "https://instagram.com/reel/one")

	view := m.View()
	assert.Contains(t, view, "● pending")
	assert.Contains(t, m.table.Rows()[0][2], "● pending")
}
