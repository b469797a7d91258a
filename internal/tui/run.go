package tui

import (
	"context"
	"net/http"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/kylemclaren/reel-tasks/internal/api"
	"github.com/kylemclaren/reel-tasks/internal/stream"
	"go.uber.org/zap"
)

// Run starts the dashboard and both live streams. It blocks until the user
// quits; the streams are stopped before it returns.
func Run(client *api.Client, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}

	m := NewModel(client, logger)
	p := tea.NewProgram(m, tea.WithAltScreen())

	ctx, cancel := context.WithCancel(context.Background())
	wg := startStreams(ctx, p, client, logger)

	_, err := p.Run()
	cancel()
	wg.Wait()
	return err
}

// startStreams runs one subscriber per stream. Batches are handed to the
// program as messages so all state changes happen in Update.
func startStreams(ctx context.Context, p *tea.Program, client *api.Client, logger *zap.Logger) *sync.WaitGroup {
	// No timeout, streams stay open indefinitely
	hc := &http.Client{}
	var wg sync.WaitGroup

	onState := func(name string) func(stream.State) {
		return func(s stream.State) {
			p.Send(streamStateMsg{name: name, state: s})
		}
	}

	logs := stream.New[api.LogEvent](stream.Config{
		Name:    "logs",
		URL:     client.StreamLogsURL(),
		Client:  hc,
		Logger:  logger,
		OnState: onState("logs"),
	})
	updates := stream.New[api.TaskUpdate](stream.Config{
		Name:    "task_updates",
		URL:     client.StreamTaskUpdatesURL(),
		Client:  hc,
		Logger:  logger,
		OnState: onState("task_updates"),
	})

	wg.Add(2)
	go func() {
		defer wg.Done()
		_ = logs.Run(ctx, func(batch []api.LogEvent) {
			p.Send(logsReceivedMsg{events: batch})
		})
	}()
	go func() {
		defer wg.Done()
		_ = updates.Run(ctx, func(batch []api.TaskUpdate) {
			p.Send(taskUpdatesMsg{updates: batch})
		})
	}()
	return &wg
}
