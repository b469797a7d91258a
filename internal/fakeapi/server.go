// Package fakeapi is an in-memory implementation of the reel task-queue HTTP
// contract. It backs the client, stream and TUI tests and `reel-tasks fake`.
// It never executes jobs: statuses only change through SetStatus or the
// optional auto-complete timer.
package fakeapi

import (
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/kylemclaren/reel-tasks/internal/api"
	"go.uber.org/zap"
)

// logTimeLayout matches what the real server sends
const logTimeLayout = "2006-01-02 15:04:05"

// Task is a task held by the fake server
type Task struct {
	ID             int64
	URL            string
	Status         string
	ScheduledFor   string
	RepeatInterval int
	CreatedAt      time.Time
}

// Server represents the fake API server
type Server struct {
	tasks  map[int64]*Task
	nextID int64
	mu     sync.Mutex

	logs    *Broker[api.LogEvent]
	updates *Broker[api.TaskUpdate]

	completeAfter time.Duration
	timers        []*time.Timer
	failure       *failure

	now    func() time.Time
	logger *zap.Logger
	router chi.Router
}

type failure struct {
	status  int
	message string
}

// Option configures a Server
type Option func(*Server)

// WithLogger sets the request logger
func WithLogger(l *zap.Logger) Option {
	return func(s *Server) {
		s.logger = l
	}
}

// WithClock replaces time.Now
func WithClock(now func() time.Time) Option {
	return func(s *Server) {
		s.now = now
	}
}

// WithAutoComplete moves every new task out of pending after d. URLs
// containing "fail" end up failed, everything else completed.
func WithAutoComplete(d time.Duration) Option {
	return func(s *Server) {
		s.completeAfter = d
	}
}

// New creates a new fake server
func New(opts ...Option) *Server {
	s := &Server{
		tasks:   make(map[int64]*Task),
		nextID:  1,
		logs:    NewBroker[api.LogEvent](50),
		updates: NewBroker[api.TaskUpdate](0),
		now:     time.Now,
		logger:  zap.NewNop(),
		router:  chi.NewRouter(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	r := s.router

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Post("/"+api.PathAddReel, s.AddReel)
	r.Post("/"+api.PathDeleteTask+"/{id}", s.DeleteTask)
	r.Post("/"+api.PathClearAllTasks, s.ClearAllTasks)
	r.Get("/"+api.PathStreamLogs, s.StreamLogs)
	r.Get("/"+api.PathStreamTaskUpdates, s.StreamTaskUpdates)
}

// Router returns the chi router for use with http.Server
func (s *Server) Router() http.Handler {
	return s.router
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())))
	})
}

// SetStatus changes a task status and announces it on the update stream
func (s *Server) SetStatus(id int64, status string) error {
	s.mu.Lock()
	task, ok := s.tasks[id]
	if ok {
		task.Status = status
	}
	s.mu.Unlock()

	if !ok {
		return fmt.Errorf("task %d not found", id)
	}
	s.updates.Publish(api.TaskUpdate{ID: api.TaskID(strconv.FormatInt(id, 10)), Status: status})
	s.Log("INFO", fmt.Sprintf("Task %d %s", id, status))
	return nil
}

// Announce publishes a raw update, whether or not the task exists
func (s *Server) Announce(updates ...api.TaskUpdate) {
	s.updates.Publish(updates...)
}

// Log publishes a log line on the log stream
func (s *Server) Log(level, message string) {
	s.logs.Publish(api.LogEvent{
		Timestamp: s.now().UTC().Format(logTimeLayout),
		Level:     level,
		Message:   message,
	})
}

// FailNext makes the next add, delete or clear request fail with status and
// message. An empty message sends a body without an error field.
func (s *Server) FailNext(status int, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failure = &failure{status: status, message: message}
}

// Tasks returns all tasks, newest first
func (s *Server) Tasks() []Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out
}

// DisconnectStreams ends every open stream connection
func (s *Server) DisconnectStreams() {
	s.logs.Disconnect()
	s.updates.Disconnect()
}

// StreamClients returns the number of connected log and update clients
func (s *Server) StreamClients() (logs, updates int) {
	return s.logs.Subscribers(), s.updates.Subscribers()
}

// Close stops pending auto-complete timers
func (s *Server) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.timers {
		t.Stop()
	}
	s.timers = nil
}

func (s *Server) takeFailure() *failure {
	s.mu.Lock()
	defer s.mu.Unlock()
	f := s.failure
	s.failure = nil
	return f
}

func (s *Server) scheduleCompletion(id int64, url string) {
	if s.completeAfter <= 0 {
		return
	}
	status := "completed"
	if strings.Contains(strings.ToLower(url), "fail") {
		status = "failed"
	}
	t := time.AfterFunc(s.completeAfter, func() {
		_ = s.SetStatus(id, status)
	})

	s.mu.Lock()
	s.timers = append(s.timers, t)
	s.mu.Unlock()
}
