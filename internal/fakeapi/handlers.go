package fakeapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/kylemclaren/reel-tasks/internal/api"
	"github.com/kylemclaren/reel-tasks/internal/board"
	"go.uber.org/zap"
)

// keepAliveInterval is how often an idle stream gets a comment line
const keepAliveInterval = 15 * time.Second

// AddReel handles POST /add_reel
func (s *Server) AddReel(w http.ResponseWriter, r *http.Request) {
	if s.rejectIfFailing(w) {
		return
	}
	if err := r.ParseForm(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid form body", err)
		return
	}

	url := r.PostForm.Get("url")
	if url == "" {
		s.errorResponse(w, http.StatusBadRequest, "URL is required", nil)
		return
	}

	task := &Task{
		URL:       url,
		Status:    string(board.StatusPending),
		CreatedAt: s.now().UTC(),
	}

	if v := r.PostForm.Get("scheduled_for"); v != "" {
		if _, err := time.Parse(board.ScheduledLayout, v); err != nil {
			s.errorResponse(w, http.StatusBadRequest, "Invalid scheduled_for format (use YYYY-MM-DDTHH:MM)", err)
			return
		}
		task.ScheduledFor = v
	}

	if v := r.PostForm.Get("repeat_interval"); v != "" {
		minutes, err := strconv.Atoi(v)
		if err != nil || minutes <= 0 {
			s.errorResponse(w, http.StatusBadRequest, "Repeat interval must be a positive number of minutes", err)
			return
		}
		task.RepeatInterval = minutes
	}

	s.mu.Lock()
	task.ID = s.nextID
	s.nextID++
	s.tasks[task.ID] = task
	s.mu.Unlock()

	s.Log("INFO", fmt.Sprintf("Task %d added: %s", task.ID, task.URL))
	s.scheduleCompletion(task.ID, task.URL)

	resp := api.AddReelResponse{
		TaskID:    api.TaskID(strconv.FormatInt(task.ID, 10)),
		URL:       task.URL,
		CreatedAt: task.CreatedAt.Format(time.RFC3339),
		Message:   "Task added successfully",
	}
	if task.ScheduledFor != "" {
		resp.ScheduledFor = &task.ScheduledFor
	}
	if task.RepeatInterval > 0 {
		ri := api.Text(strconv.Itoa(task.RepeatInterval))
		resp.RepeatInterval = &ri
	}
	s.jsonResponse(w, http.StatusOK, resp)
}

// DeleteTask handles POST /delete_task/{id}
func (s *Server) DeleteTask(w http.ResponseWriter, r *http.Request) {
	if s.rejectIfFailing(w) {
		return
	}
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid task ID", err)
		return
	}

	s.mu.Lock()
	_, ok := s.tasks[id]
	delete(s.tasks, id)
	s.mu.Unlock()

	if !ok {
		s.errorResponse(w, http.StatusNotFound, "Task not found", nil)
		return
	}

	s.Log("INFO", fmt.Sprintf("Task %d deleted", id))
	s.jsonResponse(w, http.StatusOK, api.DeleteResponse{OK: true, Message: "Task deleted"})
}

// ClearAllTasks handles POST /clear_all_tasks
func (s *Server) ClearAllTasks(w http.ResponseWriter, r *http.Request) {
	if s.rejectIfFailing(w) {
		return
	}

	s.mu.Lock()
	count := len(s.tasks)
	s.tasks = make(map[int64]*Task)
	s.mu.Unlock()

	s.Log("INFO", fmt.Sprintf("Cleared %d tasks", count))
	s.jsonResponse(w, http.StatusOK, api.ClearResponse{Count: count})
}

// StreamLogs handles GET /stream_logs
func (s *Server) StreamLogs(w http.ResponseWriter, r *http.Request) {
	serveStream(w, r, s.logs, s.logger)
}

// StreamTaskUpdates handles GET /stream_task_updates
func (s *Server) StreamTaskUpdates(w http.ResponseWriter, r *http.Request) {
	serveStream(w, r, s.updates, s.logger)
}

func serveStream[T any](w http.ResponseWriter, r *http.Request, b *Broker[T], logger *zap.Logger) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	clientID := middleware.GetReqID(r.Context())
	if clientID == "" {
		clientID = fmt.Sprintf("%p", r)
	}
	sub := b.Subscribe(clientID)
	defer b.Unsubscribe(clientID)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	keepAlive := time.NewTicker(keepAliveInterval)
	defer keepAlive.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-sub.Done:
			return
		case <-keepAlive.C:
			fmt.Fprint(w, ": keep-alive\n\n")
			flusher.Flush()
		case batch := <-sub.Batches:
			data, err := json.Marshal(batch)
			if err != nil {
				logger.Error("encoding stream batch", zap.Error(err))
				continue
			}
			fmt.Fprintf(w, "data: %s\n\n", data)
			flusher.Flush()
		}
	}
}

func (s *Server) rejectIfFailing(w http.ResponseWriter) bool {
	f := s.takeFailure()
	if f == nil {
		return false
	}
	if f.message == "" {
		s.jsonResponse(w, f.status, map[string]string{})
		return true
	}
	s.errorResponse(w, f.status, f.message, nil)
	return true
}

func (s *Server) jsonResponse(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) errorResponse(w http.ResponseWriter, status int, message string, err error) {
	resp := api.ErrorResponse{
		Error: message,
	}
	if err != nil {
		resp.Details = err.Error()
	}
	s.jsonResponse(w, status, resp)
}
