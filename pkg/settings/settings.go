package settings

import (
	"fmt"
	"log/slog"
	"maps"
	"sync"
)

// Trigger is the timing policy of an invalidation: act immediately or buffer
// until the request scope flushes.
type Trigger string

// Mode is the execution policy of an invalidation: hand off to the job queue
// or delete in the calling goroutine.
type Mode string

const (
	// TriggerInstant acts at dispatch time.
	TriggerInstant Trigger = "instant"
	// TriggerDeferred buffers the invalidation in the request scope.
	TriggerDeferred Trigger = "deferred"

	// ModeAsync enqueues the deletion as a background job.
	ModeAsync Mode = "async"
	// ModeInline deletes synchronously.
	ModeInline Mode = "inline"
)

// DefaultQueue is used when neither rule, group, nor global settings name a queue.
const DefaultQueue = "default"

// DefaultBatchSize is the number of keys sent per bulk-delete call.
const DefaultBatchSize = 100

// Valid reports whether t names a known trigger.
// The zero value is not valid; it means "inherit".
func (t Trigger) Valid() bool {
	return t == TriggerInstant || t == TriggerDeferred
}

// Valid reports whether m names a known mode.
// The zero value is not valid; it means "inherit".
func (m Mode) Valid() bool {
	return m == ModeAsync || m == ModeInline
}

// Overrides is a partial settings layer. The zero value of each field means
// "inherit from the layer below". The same type carries per-group settings
// and per-rule overrides, so precedence is purely positional.
type Overrides struct {
	Trigger    Trigger
	Mode       Mode
	Queue      string
	JobOptions map[string]any
}

// Snapshot is an immutable copy of the global settings. Resolution reads a
// snapshot so a concurrent Configure can never tear a single resolve.
type Snapshot struct {
	Trigger    Trigger
	Mode       Mode
	Queue      string
	JobOptions map[string]any
	BatchSize  int
	LogLevel   slog.Level
}

// Settings holds the process-wide invalidation defaults.
// It is initialized once at startup and mutable afterwards only through
// Configure; every resolution reads the current state.
//
// Environment variables read by FromEnv:
//
//	SWEEP_TRIGGER     instant | deferred
//	SWEEP_MODE        async | inline
//	SWEEP_QUEUE       queue name
//	SWEEP_BATCH_SIZE  positive integer
//	SWEEP_LOG_LEVEL   debug | info | warn | error
type Settings struct {
	mu         sync.RWMutex
	trigger    Trigger
	mode       Mode
	queue      string
	jobOptions map[string]any
	batchSize  int
	logLevel   slog.Level
}

// New creates settings initialized from built-in defaults
// (instant, inline, "default" queue, batch size 100, info level),
// then applies the given options.
func New(opts ...Option) (*Settings, error) {
	s := &Settings{
		trigger:   TriggerInstant,
		mode:      ModeInline,
		queue:     DefaultQueue,
		batchSize: DefaultBatchSize,
		logLevel:  slog.LevelInfo,
	}
	if err := s.Configure(opts...); err != nil {
		return nil, err
	}
	return s, nil
}

// MustNew is New that panics on invalid options.
// Use for static configuration known correct at compile time.
func MustNew(opts ...Option) *Settings {
	s, err := New(opts...)
	if err != nil {
		panic(err)
	}
	return s
}

// Configure applies options atomically: the first invalid option aborts the
// call and no field changes. Configuration errors are fatal at the call
// point, unlike every runtime invalidation failure.
func (s *Settings) Configure(opts ...Option) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.snapshotLocked()
	for _, opt := range opts {
		if err := opt(&next); err != nil {
			return err
		}
	}

	s.trigger = next.Trigger
	s.mode = next.Mode
	s.queue = next.Queue
	s.jobOptions = next.JobOptions
	s.batchSize = next.BatchSize
	s.logLevel = next.LogLevel
	return nil
}

// Snapshot returns a copy of the current settings.
func (s *Settings) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

// BatchSize returns the current bulk-delete chunk size.
func (s *Settings) BatchSize() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.batchSize
}

// LogLevel returns the current logging level.
func (s *Settings) LogLevel() slog.Level {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.logLevel
}

// snapshotLocked copies the current state. Caller must hold the mutex.
func (s *Settings) snapshotLocked() Snapshot {
	return Snapshot{
		Trigger:    s.trigger,
		Mode:       s.mode,
		Queue:      s.queue,
		JobOptions: maps.Clone(s.jobOptions),
		BatchSize:  s.batchSize,
		LogLevel:   s.logLevel,
	}
}

// ParseLevel converts a configuration string into a slog level.
// Accepted values: debug, info, warn, error.
func ParseLevel(name string) (slog.Level, error) {
	switch name {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidLogLevel, name)
	}
}
