package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/kylemclaren/reel-tasks/internal/api"
	"github.com/kylemclaren/reel-tasks/internal/board"
	"github.com/kylemclaren/reel-tasks/internal/config"
	"github.com/kylemclaren/reel-tasks/internal/fakeapi"
	"github.com/kylemclaren/reel-tasks/internal/logging"
	"github.com/kylemclaren/reel-tasks/internal/tui"
	"github.com/kylemclaren/reel-tasks/internal/version"
	"go.uber.org/zap"
)

func main() {
	args := os.Args[1:]
	cmd := "dashboard"
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		cmd, args = args[0], args[1:]
	}

	var err error
	switch cmd {
	case "version", "--version", "-v":
		fmt.Println(version.Info())
		return
	case "help", "--help", "-h":
		printHelp()
		return
	case "dashboard":
		err = runDashboard(args)
	case "add":
		err = runAdd(args)
	case "delete":
		err = runDelete(args)
	case "clear":
		err = runClear(args)
	case "fake":
		err = runFake(args)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", cmd)
		printHelp()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newClient builds an API client from config, with --url taking precedence
func newClient(cfg *config.Config, url string, logger *zap.Logger) (*api.Client, error) {
	if url == "" {
		url = cfg.ServerURL
	}
	return api.NewClient(url,
		api.WithHTTPClient(&http.Client{Timeout: cfg.RequestTimeout}),
		api.WithLogger(logger),
	)
}

func runDashboard(args []string) error {
	fs := flag.NewFlagSet("dashboard", flag.ExitOnError)
	url := fs.String("url", "", "Task server base URL")
	_ = fs.Parse(args)

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// The dashboard owns the terminal, so logs go to a file
	logger, err := logging.New(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	client, err := newClient(cfg, *url, logger)
	if err != nil {
		return err
	}

	logger.Info("dashboard starting",
		zap.String("version", version.Short()),
		zap.String("server", client.URL()),
	)
	if err := tui.Run(client, logger); err != nil {
		return fmt.Errorf("running dashboard: %w", err)
	}
	return nil
}

// consoleSetup loads config and a stderr logger for one-shot commands
func consoleSetup(url string) (*api.Client, *zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}
	logger, err := logging.NewConsole(cfg.LogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("initializing logger: %w", err)
	}
	client, err := newClient(cfg, url, logger)
	if err != nil {
		return nil, nil, err
	}
	return client, logger, nil
}

func runAdd(args []string) error {
	fs := flag.NewFlagSet("add", flag.ExitOnError)
	url := fs.String("url", "", "Task server base URL")
	at := fs.String("at", "", "Schedule for YYYY-MM-DD HH:MM (default: ASAP)")
	every := fs.String("every", "", "Repeat interval in minutes or as a duration like 1h30m")
	_ = fs.Parse(args)

	if fs.NArg() != 1 {
		return errors.New("usage: reel-tasks add [--at TIME] [--every INTERVAL] REEL_URL")
	}

	scheduled, ok := board.NormalizeScheduled(*at)
	if !ok {
		return fmt.Errorf("invalid --at %q, expected YYYY-MM-DD HH:MM", *at)
	}
	repeat, ok := board.NormalizeRepeat(*every)
	if !ok {
		return fmt.Errorf("invalid --every %q, expected minutes or a duration", *every)
	}

	client, logger, err := consoleSetup(*url)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	resp, err := client.AddReel(context.Background(), api.AddReelRequest{
		URL:            fs.Arg(0),
		ScheduledFor:   scheduled,
		RepeatInterval: repeat,
	})
	if err != nil {
		return errors.New(api.Message(err, "Failed to add reel"))
	}

	fmt.Printf("Added task %s\n", resp.TaskID)
	fmt.Printf("  URL:       %s\n", resp.URL)
	if resp.ScheduledFor != nil {
		fmt.Printf("  Scheduled: %s\n", board.ScheduledLabel(*resp.ScheduledFor))
	} else {
		fmt.Printf("  Scheduled: %s\n", board.ScheduledLabel(""))
	}
	if resp.RepeatInterval != nil {
		fmt.Printf("  Repeat:    %s\n", board.RepeatLabel(string(*resp.RepeatInterval)))
	} else {
		fmt.Printf("  Repeat:    %s\n", board.RepeatLabel(""))
	}
	return nil
}

func runDelete(args []string) error {
	fs := flag.NewFlagSet("delete", flag.ExitOnError)
	url := fs.String("url", "", "Task server base URL")
	_ = fs.Parse(args)

	if fs.NArg() != 1 {
		return errors.New("usage: reel-tasks delete TASK_ID")
	}

	client, logger, err := consoleSetup(*url)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	if err := client.DeleteTask(context.Background(), api.TaskID(fs.Arg(0))); err != nil {
		return errors.New(api.Message(err, "Failed to delete task"))
	}
	fmt.Printf("Deleted task %s\n", fs.Arg(0))
	return nil
}

func runClear(args []string) error {
	fs := flag.NewFlagSet("clear", flag.ExitOnError)
	url := fs.String("url", "", "Task server base URL")
	yes := fs.Bool("yes", false, "Skip the confirmation prompt")
	_ = fs.Parse(args)

	if !*yes {
		fmt.Print("Clear all tasks? [y/N] ")
		answer, _ := bufio.NewReader(os.Stdin).ReadString('\n')
		answer = strings.ToLower(strings.TrimSpace(answer))
		if answer != "y" && answer != "yes" {
			fmt.Println("Aborted")
			return nil
		}
	}

	client, logger, err := consoleSetup(*url)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	count, err := client.ClearAllTasks(context.Background())
	if err != nil {
		return errors.New(api.Message(err, "Failed to clear tasks"))
	}
	fmt.Printf("Cleared %d task(s)\n", count)
	return nil
}

func runFake(args []string) error {
	fs := flag.NewFlagSet("fake", flag.ExitOnError)
	port := fs.Int("port", 5000, "HTTP server port")
	completeAfter := fs.Duration("complete-after", 10*time.Second, "Move new tasks out of pending after this long (0 disables)")
	_ = fs.Parse(args)

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	logger, err := logging.NewConsole(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	opts := []fakeapi.Option{fakeapi.WithLogger(logger)}
	if *completeAfter > 0 {
		opts = append(opts, fakeapi.WithAutoComplete(*completeAfter))
	}
	server := fakeapi.New(opts...)
	defer server.Close()

	addr := fmt.Sprintf(":%d", *port)
	fmt.Printf("reel-tasks fake server starting on %s\n", addr)

	srv := &http.Server{
		Addr:    addr,
		Handler: server.Router(),
	}

	go func() {
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		}
	}()
	server.Log("INFO", "Fake task server started")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	fmt.Println("\nShutting down server...")
	// Streams never finish on their own
	server.DisconnectStreams()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}

func printHelp() {
	fmt.Println(`reel-tasks - Queue Instagram reels and watch them download

Usage:
  reel-tasks [dashboard]          Launch the live dashboard
  reel-tasks add REEL_URL         Queue a reel
  reel-tasks delete TASK_ID       Delete a task
  reel-tasks clear                Delete every task
  reel-tasks fake                 Run an in-memory task server for local use
  reel-tasks version              Show version information
  reel-tasks help                 Show this help message

Options:
  --url                           Task server base URL (dashboard, add, delete, clear)
  --at                            Schedule for YYYY-MM-DD HH:MM (add)
  --every                         Repeat interval, minutes or 1h30m (add)
  --yes                           Skip confirmation (clear)
  --port                          Listen port (fake, default: 5000)
  --complete-after                Auto-complete delay (fake, default: 10s)

Environment Variables:
  REEL_TASKS_URL                  Task server base URL (default: http://localhost:5000)
  REEL_TASKS_DATA                 Data directory for config and logs (default: ~/.reel-tasks)
  REEL_TASKS_LOG_LEVEL            debug, info, warn or error (default: info)
  REEL_TASKS_TIMEOUT              Request timeout (default: 10s)`)
}
