package stream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/kylemclaren/reel-tasks/internal/version"
	"go.uber.org/zap"
)

// RetryDelay is the fixed wait between a stream error and the next connect
const RetryDelay = 5 * time.Second

// State of a subscriber
type State int

const (
	StateConnected State = iota
	StateRetrying
)

func (s State) String() string {
	switch s {
	case StateConnected:
		return "connected"
	case StateRetrying:
		return "retrying"
	default:
		return "unknown"
	}
}

var errStreamClosed = errors.New("stream closed by server")

// Config configures a Subscriber
type Config struct {
	Name string // used in logs
	URL  string

	// Client must not set a Timeout, streams are long-lived
	Client *http.Client
	Logger *zap.Logger

	// After replaces time.After for the retry wait. Tests use it to drive
	// reconnects without sleeping.
	After func(time.Duration) <-chan time.Time

	// OnState is called on every state transition
	OnState func(State)
}

// Subscriber consumes a server-sent event stream whose events each carry a
// JSON array of T, reconnecting forever with a fixed delay.
type Subscriber[T any] struct {
	cfg Config
}

// New creates a subscriber. Nothing happens until Run is called.
func New[T any](cfg Config) *Subscriber[T] {
	if cfg.Client == nil {
		cfg.Client = &http.Client{}
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Name == "" {
		cfg.Name = cfg.URL
	}
	return &Subscriber[T]{cfg: cfg}
}

// Run connects and calls handle with every batch until ctx is cancelled.
// Any stream error closes the connection and schedules exactly one reconnect
// after RetryDelay. Run only returns ctx.Err().
func (s *Subscriber[T]) Run(ctx context.Context, handle func([]T)) error {
	log := s.cfg.Logger.With(zap.String("stream", s.cfg.Name))
	for {
		err := s.consume(ctx, handle)
		if ctx.Err() != nil {
			return ctx.Err()
		}

		s.setState(StateRetrying)
		log.Warn("stream disconnected", zap.Error(err), zap.Duration("retry_in", RetryDelay))

		if err := s.wait(ctx); err != nil {
			return err
		}
		log.Debug("reconnecting")
	}
}

func (s *Subscriber[T]) consume(ctx context.Context, handle func([]T)) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.cfg.URL, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("User-Agent", version.UserAgent())

	resp, err := s.cfg.Client.Do(req)
	if err != nil {
		return fmt.Errorf("connecting: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	s.setState(StateConnected)
	s.cfg.Logger.Debug("stream connected", zap.String("stream", s.cfg.Name))

	reader := NewReader(resp.Body)
	for {
		ev, err := reader.Next()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if errors.Is(err, io.EOF) {
				return errStreamClosed
			}
			return fmt.Errorf("reading stream: %w", err)
		}
		if ev.Event != "" && ev.Event != "message" {
			continue
		}

		var batch []T
		if err := json.Unmarshal([]byte(ev.Data), &batch); err != nil {
			s.cfg.Logger.Warn("skipping malformed event",
				zap.String("stream", s.cfg.Name),
				zap.Error(err))
			continue
		}
		handle(batch)
	}
}

func (s *Subscriber[T]) wait(ctx context.Context) error {
	if s.cfg.After != nil {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.cfg.After(RetryDelay):
			return nil
		}
	}

	timer := time.NewTimer(RetryDelay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (s *Subscriber[T]) setState(st State) {
	if s.cfg.OnState != nil {
		s.cfg.OnState(st)
	}
}
