package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/kylemclaren/reel-tasks/internal/api"
	"github.com/kylemclaren/reel-tasks/internal/board"
	"github.com/kylemclaren/reel-tasks/internal/stream"
	"go.uber.org/zap"
)

// View represents the current view
type View int

const (
	ViewDashboard View = iota
	ViewAdd
	ViewHelp
)

type modal int

const (
	modalNone modal = iota
	modalConfirmDelete
	modalConfirmClear
	modalAlert
)

// Fallback alert texts when the server gives no error message
const (
	msgAddFailed    = "Failed to add reel"
	msgDeleteFailed = "Failed to delete task"
	msgClearFailed  = "Failed to clear tasks"
)

// Client is the part of the API client the dashboard needs
type Client interface {
	AddReel(ctx context.Context, req api.AddReelRequest) (*api.AddReelResponse, error)
	DeleteTask(ctx context.Context, id api.TaskID) error
	ClearAllTasks(ctx context.Context) (int, error)
}

// KeyMap defines keybindings
type KeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Add      key.Binding
	Delete   key.Binding
	ClearAll key.Binding
	Scroll   key.Binding
	Help     key.Binding
	Quit     key.Binding
}

var keys = KeyMap{
	Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Add:      key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add reel")),
	Delete:   key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
	ClearAll: key.NewBinding(key.WithKeys("C"), key.WithHelp("C", "clear all")),
	Scroll:   key.NewBinding(key.WithKeys("pgup", "pgdown"), key.WithHelp("pgup/pgdn", "scroll logs")),
	Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Add, k.Delete, k.ClearAll, k.Scroll, k.Help, k.Quit}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Scroll},
		{k.Add, k.Delete, k.ClearAll},
		{k.Help, k.Quit},
	}
}

// Form field indices
const (
	fieldURL = iota
	fieldScheduled
	fieldRepeat
	fieldCount
)

// Layout constants
const (
	minWidth       = 60
	maxTableWidth  = 180
	headerHeight   = 3
	footerHeight   = 4
	detailHeight   = 2
	minTableHeight = 4
	minLogHeight   = 5
)

// Model is the main TUI model. All view state lives here and is only
// touched from Update.
type Model struct {
	client Client
	logger *zap.Logger
	now    func() time.Time

	// View state
	currentView View
	width       int
	height      int

	// Dashboard
	tasks   *board.TaskTable
	logs    *board.LogWindow
	table   table.Model
	logView viewport.Model
	spinner spinner.Model
	help    help.Model
	busy    bool // delete or clear in flight

	// Add form
	formInputs     []textinput.Model
	formFocus      int
	formValidation map[int]string
	submitting     bool

	// Help view
	helpView   viewport.Model
	mdRenderer *glamour.TermRenderer

	// Modals
	modal        modal
	confirmFocus int // 0 = Yes, 1 = No
	deleteID     string
	deleteURL    string
	alertText    string

	// Status
	statusMsg   string
	statusErr   bool
	statusTimer int
}

// calculateTableColumns returns column definitions sized for the given width
func calculateTableColumns(width int) []table.Column {
	availableWidth := width - 4
	if availableWidth < minWidth {
		availableWidth = minWidth
	}
	if availableWidth > maxTableWidth {
		availableWidth = maxTableWidth
	}

	idWidth := 6
	statusWidth := 13
	scheduledWidth := 16
	repeatWidth := 12
	createdWidth := 19
	urlWidth := availableWidth - idWidth - statusWidth - scheduledWidth - repeatWidth - createdWidth - 12
	if urlWidth < 20 {
		urlWidth = 20
	}

	return []table.Column{
		{Title: "ID", Width: idWidth},
		{Title: "URL", Width: urlWidth},
		{Title: "Status", Width: statusWidth},
		{Title: "Scheduled", Width: scheduledWidth},
		{Title: "Repeat", Width: repeatWidth},
		{Title: "Created", Width: createdWidth},
	}
}

// NewModel creates a new TUI model
func NewModel(client Client, logger *zap.Logger) Model {
	if logger == nil {
		logger = zap.NewNop()
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(warningColor)

	h := help.New()
	h.Styles.ShortKey = helpKeyStyle
	h.Styles.ShortDesc = helpDescStyle

	t := table.New(
		table.WithColumns(calculateTableColumns(100)),
		table.WithFocused(true),
		table.WithHeight(8),
	)
	ts := table.DefaultStyles()
	ts.Header = ts.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(dimTextColor).
		BorderBottom(true).
		Bold(true).
		Foreground(accentColor)
	ts.Selected = ts.Selected.
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(primaryColor).
		Bold(true)
	t.SetStyles(ts)

	renderer, _ := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)

	m := Model{
		client:         client,
		logger:         logger,
		now:            time.Now,
		tasks:          board.NewTaskTable(),
		logs:           board.NewLogWindow(board.DefaultLogLimit),
		table:          t,
		logView:        viewport.New(80, 10),
		spinner:        s,
		help:           h,
		helpView:       viewport.New(80, 20),
		mdRenderer:     renderer,
		formValidation: make(map[int]string),
		confirmFocus:   1,
	}
	m.initFormInputs()
	m.renderLogs()
	return m
}

func (m *Model) initFormInputs() {
	m.formInputs = make([]textinput.Model, fieldCount)
	inputWidth := m.getFormInputWidth()

	m.formInputs[fieldURL] = textinput.New()
	m.formInputs[fieldURL].Placeholder = "https://www.instagram.com/reel/..."
	m.formInputs[fieldURL].CharLimit = 500
	m.formInputs[fieldURL].Width = inputWidth

	m.formInputs[fieldScheduled] = textinput.New()
	m.formInputs[fieldScheduled].Placeholder = "2025-06-01 09:30 (empty = ASAP)"
	m.formInputs[fieldScheduled].CharLimit = 30
	m.formInputs[fieldScheduled].Width = inputWidth

	m.formInputs[fieldRepeat] = textinput.New()
	m.formInputs[fieldRepeat].Placeholder = "minutes, or 1h30m (empty = no repeat)"
	m.formInputs[fieldRepeat].CharLimit = 30
	m.formInputs[fieldRepeat].Width = inputWidth

	m.formValidation = make(map[int]string)
	m.formFocus = fieldURL
}

// getFormInputWidth calculates responsive input width
func (m *Model) getFormInputWidth() int {
	if m.width == 0 {
		return 50
	}
	width := (m.width - 8) * 80 / 100
	if width < 40 {
		width = 40
	}
	if width > 100 {
		width = 100
	}
	return width
}

func (m *Model) focusFormField(field int) {
	for i := range m.formInputs {
		m.formInputs[i].Blur()
	}
	m.formFocus = field
	m.formInputs[field].Focus()
}

// validateForm sets inline hints for optional fields. Hints never block
// submission; the server has the final say.
func (m *Model) validateForm() {
	m.formValidation = make(map[int]string)
	if _, ok := board.NormalizeScheduled(m.formInputs[fieldScheduled].Value()); !ok {
		m.formValidation[fieldScheduled] = "Expected YYYY-MM-DD HH:MM"
	}
	if _, ok := board.NormalizeRepeat(m.formInputs[fieldRepeat].Value()); !ok {
		m.formValidation[fieldRepeat] = "Expected minutes or a duration like 1h30m"
	}
}

// formRequest builds the add request from the current inputs
func (m *Model) formRequest() api.AddReelRequest {
	scheduled, _ := board.NormalizeScheduled(m.formInputs[fieldScheduled].Value())
	repeat, _ := board.NormalizeRepeat(m.formInputs[fieldRepeat].Value())
	return api.AddReelRequest{
		URL:            strings.TrimSpace(m.formInputs[fieldURL].Value()),
		ScheduledFor:   scheduled,
		RepeatInterval: repeat,
	}
}

// syncTable rebuilds table rows from the task table
func (m *Model) syncTable() {
	columns := m.table.Columns()
	urlWidth := 30
	if len(columns) >= 2 {
		urlWidth = columns[1].Width
	}

	tasks := m.tasks.Rows()
	rows := make([]table.Row, len(tasks))
	for i, task := range tasks {
		rows[i] = table.Row{
			task.ID,
			truncate(task.URL, urlWidth),
			badgeText(task.Status),
			board.ScheduledLabel(task.ScheduledFor),
			board.RepeatLabel(task.RepeatInterval),
			board.CreatedLabel(task.CreatedAt),
		}
	}
	m.table.SetRows(rows)

	if m.table.Cursor() >= len(rows) {
		m.table.SetCursor(max(len(rows)-1, 0))
	}
}

// renderLogs rebuilds the log pane content
func (m *Model) renderLogs() {
	entries := m.logs.Entries()
	if len(entries) == 0 {
		m.logView.SetContent(subtitleStyle.Render("Waiting for logs..."))
		return
	}

	lines := make([]string, len(entries))
	for i, e := range entries {
		lines[i] = fmt.Sprintf("%s %s %s",
			logTimestampStyle.Render(e.Timestamp),
			levelStyle(e.LevelClass()).Render(fmt.Sprintf("%-7s", e.Level)),
			logMessageStyle.Render(e.Message))
	}
	m.logView.SetContent(strings.Join(lines, "\n"))
}

func (m *Model) renderHelp() {
	if m.mdRenderer == nil {
		m.helpView.SetContent(helpMarkdown)
		return
	}
	out, err := m.mdRenderer.Render(helpMarkdown)
	if err != nil {
		m.helpView.SetContent(helpMarkdown)
		return
	}
	m.helpView.SetContent(out)
}

func (m *Model) selectedTask() (board.Task, bool) {
	return m.tasks.At(m.table.Cursor())
}

func truncate(s string, max int) string {
	if max <= 3 || len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}

// taskFromResponse builds a new pending row from the server echo
func taskFromResponse(resp *api.AddReelResponse, now time.Time) board.Task {
	task := board.Task{
		ID:        string(resp.TaskID),
		URL:       resp.URL,
		Status:    board.StatusPending,
		CreatedAt: now,
	}
	if resp.ScheduledFor != nil {
		task.ScheduledFor = *resp.ScheduledFor
	}
	if resp.RepeatInterval != nil {
		task.RepeatInterval = string(*resp.RepeatInterval)
	}
	if resp.CreatedAt != "" {
		if t, err := time.Parse(time.RFC3339, resp.CreatedAt); err == nil {
			task.CreatedAt = t
		} else if t, ok := board.ParseScheduled(resp.CreatedAt); ok {
			task.CreatedAt = t
		}
	}
	return task
}

// Messages
type reelAddedMsg struct{ resp *api.AddReelResponse }
type addFailedMsg struct{ message string }
type taskDeletedMsg struct{ id string }
type tasksClearedMsg struct{ count int }
type requestFailedMsg struct{ message string }
type logsReceivedMsg struct{ events []api.LogEvent }
type taskUpdatesMsg struct{ updates []api.TaskUpdate }
type streamStateMsg struct {
	name  string
	state stream.State
}
type tickMsg time.Time

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		tickCmd(),
	)
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.modal != modalNone {
			return m.updateModal(msg)
		}

		switch m.currentView {
		case ViewDashboard:
			return m.updateDashboard(msg)
		case ViewAdd:
			return m.updateForm(msg)
		case ViewHelp:
			return m.updateHelp(msg)
		}

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case tickMsg:
		if m.statusTimer > 0 {
			m.statusTimer--
			if m.statusTimer == 0 {
				m.statusMsg = ""
			}
		}
		cmds = append(cmds, tickCmd())

	case reelAddedMsg:
		m.submitting = false
		task := taskFromResponse(msg.resp, m.now())
		m.initFormInputs()
		m.tasks.Prepend(task)
		m.syncTable()
		m.table.SetCursor(0)
		if m.currentView == ViewAdd {
			m.currentView = ViewDashboard
		}
		m.setStatus("Task added: "+task.ID, false)
		m.logger.Info("task added", zap.String("task_id", task.ID), zap.String("url", task.URL))

	case addFailedMsg:
		m.submitting = false
		m.showAlert(msg.message)

	case taskDeletedMsg:
		m.busy = false
		if m.tasks.Remove(msg.id) {
			m.syncTable()
		}
		m.setStatus("Task deleted", false)
		m.logger.Info("task deleted", zap.String("task_id", msg.id))

	case tasksClearedMsg:
		m.busy = false
		m.tasks.Clear()
		m.syncTable()
		m.showAlert(fmt.Sprintf("Cleared %d task(s)", msg.count))
		m.logger.Info("tasks cleared", zap.Int("count", msg.count))

	case requestFailedMsg:
		m.busy = false
		m.showAlert(msg.message)

	case logsReceivedMsg:
		batch := make([]board.LogEntry, len(msg.events))
		for i, e := range msg.events {
			batch[i] = board.LogEntry{Timestamp: e.Timestamp, Level: e.Level, Message: e.Message}
		}
		m.logs.Push(batch)
		m.renderLogs()

	case taskUpdatesMsg:
		changed := false
		for _, u := range msg.updates {
			if m.tasks.SetStatus(string(u.ID), board.Status(u.Status)) {
				changed = true
			} else {
				m.logger.Debug("dropping update for unknown task", zap.String("task_id", string(u.ID)))
			}
		}
		if changed {
			m.syncTable()
		}

	case streamStateMsg:
		m.logger.Debug("stream state", zap.String("stream", msg.name), zap.Stringer("state", msg.state))
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height

	m.table.SetColumns(calculateTableColumns(width))
	tableWidth := width - 4
	if tableWidth > maxTableWidth {
		tableWidth = maxTableWidth
	}
	m.table.SetWidth(tableWidth)

	// Split the space below the header between the table and the log pane
	available := height - headerHeight - footerHeight - detailHeight - 4
	tableHeight := available / 2
	if tableHeight < minTableHeight {
		tableHeight = minTableHeight
	}
	logHeight := available - tableHeight
	if logHeight < minLogHeight {
		logHeight = minLogHeight
	}
	m.table.SetHeight(tableHeight)
	m.logView.Width = width - 4
	m.logView.Height = logHeight

	m.helpView.Width = width - 4
	m.helpView.Height = height - footerHeight - 2
	m.help.Width = width

	for i := range m.formInputs {
		m.formInputs[i].Width = m.getFormInputWidth()
	}

	if renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width-10),
	); err == nil {
		m.mdRenderer = renderer
	}
	m.syncTable()
	m.renderLogs()
}

func (m *Model) updateDashboard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "?":
		m.currentView = ViewHelp
		m.renderHelp()
		m.helpView.GotoTop()
		return m, nil
	case "a":
		m.currentView = ViewAdd
		m.focusFormField(m.formFocus)
		return m, textinput.Blink
	case "d":
		task, ok := m.selectedTask()
		if !ok {
			return m, nil
		}
		m.modal = modalConfirmDelete
		m.deleteID = task.ID
		m.deleteURL = task.URL
		m.confirmFocus = 1 // Default to "No" for safety
		return m, nil
	case "C":
		// The server may hold tasks this session never saw
		m.modal = modalConfirmClear
		m.confirmFocus = 1
		return m, nil
	case "pgup", "pgdown":
		m.logView, cmd = m.logView.Update(msg)
		return m, cmd
	default:
		if m.tasks.Len() > 0 {
			m.table, cmd = m.table.Update(msg)
		}
	}

	return m, cmd
}

func (m *Model) updateModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.modal == modalAlert {
		switch msg.String() {
		case "enter", "esc", " ", "q":
			m.modal = modalNone
			m.alertText = ""
		}
		return m, nil
	}

	switch msg.String() {
	case "left", "h":
		m.confirmFocus = 0
		return m, nil
	case "right", "l":
		m.confirmFocus = 1
		return m, nil
	case "tab":
		m.confirmFocus = (m.confirmFocus + 1) % 2
		return m, nil
	case "y", "Y":
		return m, m.confirm()
	case "enter":
		if m.confirmFocus == 0 {
			return m, m.confirm()
		}
		m.closeConfirm()
		return m, nil
	case "n", "N", "esc":
		m.closeConfirm()
		return m, nil
	}
	return m, nil
}

// confirm runs the action behind the open confirmation modal
func (m *Model) confirm() tea.Cmd {
	kind := m.modal
	id := m.deleteID
	m.closeConfirm()
	m.busy = true

	switch kind {
	case modalConfirmDelete:
		return m.deleteTask(id)
	case modalConfirmClear:
		return m.clearAllTasks()
	}
	m.busy = false
	return nil
}

func (m *Model) closeConfirm() {
	m.modal = modalNone
	m.deleteID = ""
	m.deleteURL = ""
	m.confirmFocus = 1
}

func (m *Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg.String() {
	case "esc":
		// Inputs keep their values until a successful submission
		m.currentView = ViewDashboard
		for i := range m.formInputs {
			m.formInputs[i].Blur()
		}
		return m, nil
	case "tab", "down":
		m.focusFormField((m.formFocus + 1) % fieldCount)
		return m, textinput.Blink
	case "shift+tab", "up":
		prev := m.formFocus - 1
		if prev < 0 {
			prev = fieldCount - 1
		}
		m.focusFormField(prev)
		return m, textinput.Blink
	case "ctrl+s":
		return m, m.submit()
	case "enter":
		if m.formFocus == fieldCount-1 {
			return m, m.submit()
		}
		m.focusFormField(m.formFocus + 1)
		return m, textinput.Blink
	}

	m.formInputs[m.formFocus], cmd = m.formInputs[m.formFocus].Update(msg)
	m.validateForm()
	return m, cmd
}

func (m *Model) updateHelp(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg.String() {
	case "esc", "q", "?":
		m.currentView = ViewDashboard
		return m, nil
	}
	m.helpView, cmd = m.helpView.Update(msg)
	return m, cmd
}

// submit sends the form once. A submission already in flight is not repeated.
func (m *Model) submit() tea.Cmd {
	if m.submitting {
		return nil
	}
	m.submitting = true
	req := m.formRequest()
	client := m.client
	logger := m.logger

	return func() tea.Msg {
		resp, err := client.AddReel(context.Background(), req)
		if err != nil {
			logger.Warn("add reel failed", zap.String("url", req.URL), zap.Error(err))
			return addFailedMsg{message: api.Message(err, msgAddFailed)}
		}
		return reelAddedMsg{resp: resp}
	}
}

func (m *Model) deleteTask(id string) tea.Cmd {
	client := m.client
	logger := m.logger
	return func() tea.Msg {
		if err := client.DeleteTask(context.Background(), api.TaskID(id)); err != nil {
			logger.Warn("delete task failed", zap.String("task_id", id), zap.Error(err))
			return requestFailedMsg{message: api.Message(err, msgDeleteFailed)}
		}
		return taskDeletedMsg{id: id}
	}
}

func (m *Model) clearAllTasks() tea.Cmd {
	client := m.client
	logger := m.logger
	return func() tea.Msg {
		count, err := client.ClearAllTasks(context.Background())
		if err != nil {
			logger.Warn("clear all tasks failed", zap.Error(err))
			return requestFailedMsg{message: api.Message(err, msgClearFailed)}
		}
		return tasksClearedMsg{count: count}
	}
}

func (m *Model) showAlert(text string) {
	m.modal = modalAlert
	m.alertText = text
}

func (m *Model) setStatus(msg string, isErr bool) {
	m.statusMsg = msg
	m.statusErr = isErr
	m.statusTimer = 5 // 5 seconds
}

func (m Model) View() string {
	var content string

	switch m.currentView {
	case ViewDashboard:
		content = m.renderDashboard()
	case ViewAdd:
		content = m.renderForm()
	case ViewHelp:
		content = m.renderHelpView()
	}

	baseView := appStyle.Render(content)

	switch m.modal {
	case modalConfirmDelete:
		return m.renderConfirmModal(fmt.Sprintf("Delete task %s?", m.deleteID), truncate(m.deleteURL, 50))
	case modalConfirmClear:
		return m.renderConfirmModal("Clear all tasks?", "Every task on the server will be removed")
	case modalAlert:
		return m.renderAlertModal()
	}
	return baseView
}

func (m Model) renderDashboard() string {
	var b strings.Builder

	b.WriteString(logoStyle.Render("▶ Reel Tasks"))
	if m.busy || m.submitting {
		b.WriteString("  ")
		b.WriteString(m.spinner.View())
	}
	b.WriteString("\n\n")

	if m.tasks.Len() == 0 {
		b.WriteString(emptyBoxStyle.Render("No tasks yet\n\nPress 'a' to add a reel"))
	} else {
		b.WriteString(m.table.View())
		b.WriteString("\n")
		// Table cells are truncated by width, which would cut through ANSI
		// sequences, so only the selected row's badge is colored
		if task, ok := m.selectedTask(); ok {
			b.WriteString(renderBadge(task.Status))
			b.WriteString("  ")
			b.WriteString(subtitleStyle.Render(task.URL))
		}
	}
	b.WriteString("\n\n")

	b.WriteString(sectionStyle.Render("Live Logs"))
	b.WriteString("\n")
	b.WriteString(dividerStyle.Render(strings.Repeat("─", max(m.logView.Width, 20))))
	b.WriteString("\n")
	b.WriteString(m.logView.View())
	b.WriteString("\n")

	if m.statusMsg != "" {
		if m.statusErr {
			b.WriteString(errorMsgStyle.Render("✗ " + m.statusMsg))
		} else {
			b.WriteString(successMsgStyle.Render("✓ " + m.statusMsg))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.help.ShortHelpView(keys.ShortHelp()))
	return b.String()
}

func (m Model) renderForm() string {
	var b strings.Builder

	b.WriteString(logoStyle.Render("▶ Add Reel"))
	if m.submitting {
		b.WriteString("  ")
		b.WriteString(m.spinner.View())
		b.WriteString(subtitleStyle.Render(" submitting..."))
	}
	b.WriteString("\n\n")

	labels := []string{"Reel URL", "Schedule For (optional)", "Repeat Interval (optional)"}
	for i, label := range labels {
		b.WriteString(inputLabelStyle.Render(label))
		if hint, ok := m.formValidation[i]; ok {
			b.WriteString("  ")
			b.WriteString(errorMsgStyle.Render("✗ " + hint))
		}
		b.WriteString("\n")
		if i == m.formFocus {
			b.WriteString(focusedInputStyle.Render(m.formInputs[i].View()))
		} else {
			b.WriteString(blurredInputStyle.Render(m.formInputs[i].View()))
		}
		b.WriteString("\n\n")
	}

	helpText := helpKeyStyle.Render("tab") + helpDescStyle.Render(" next • ") +
		helpKeyStyle.Render("ctrl+s") + helpDescStyle.Render(" submit • ") +
		helpKeyStyle.Render("esc") + helpDescStyle.Render(" back")
	b.WriteString(helpText)

	return b.String()
}

func (m Model) renderHelpView() string {
	var b strings.Builder
	b.WriteString(logoStyle.Render("▶ Help"))
	b.WriteString("\n\n")
	b.WriteString(m.helpView.View())
	b.WriteString("\n\n")
	b.WriteString(helpKeyStyle.Render("↑/↓") + helpDescStyle.Render(" scroll • ") +
		helpKeyStyle.Render("esc") + helpDescStyle.Render(" back"))
	return b.String()
}

// renderConfirmModal renders a centered yes/no modal
func (m Model) renderConfirmModal(question, detail string) string {
	activeButtonStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(primaryColor).
		Padding(0, 3).
		MarginRight(2).
		Bold(true)

	inactiveButtonStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(lipgloss.Color("#666666")).
		Padding(0, 3).
		MarginRight(2)

	var yesBtn, noBtn string
	if m.confirmFocus == 0 {
		yesBtn = activeButtonStyle.Render("Yes")
		noBtn = inactiveButtonStyle.Render("No")
	} else {
		yesBtn = inactiveButtonStyle.Render("Yes")
		noBtn = activeButtonStyle.Render("No")
	}

	content := lipgloss.JoinVertical(lipgloss.Center,
		lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFFFFF")).Render(question),
		subtitleStyle.Render(detail),
		"",
		lipgloss.JoinHorizontal(lipgloss.Center, yesBtn, noBtn),
		"",
		subtitleStyle.Render("←/→ to select • enter to confirm • esc to cancel"),
	)
	return m.place(content, lipgloss.Color("#FF6B6B"))
}

func (m Model) renderAlertModal() string {
	content := lipgloss.JoinVertical(lipgloss.Center,
		lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFFFFF")).Render(m.alertText),
		"",
		subtitleStyle.Render("enter to dismiss"),
	)
	return m.place(content, accentColor)
}

func (m Model) place(content string, border lipgloss.Color) string {
	modalStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(1, 4).
		Background(lipgloss.Color("#1a1a2e")).
		Align(lipgloss.Center)

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		modalStyle.Render(content),
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color("#333333")),
	)
}
