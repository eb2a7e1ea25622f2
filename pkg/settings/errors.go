package settings

import "errors"

// Configuration errors. These are fatal at the point of setting, in contrast
// to runtime invalidation failures which are logged and swallowed.
var (
	// ErrInvalidTrigger is returned for a trigger outside {instant, deferred}.
	ErrInvalidTrigger = errors.New("settings: invalid trigger")

	// ErrInvalidMode is returned for a mode outside {async, inline}.
	ErrInvalidMode = errors.New("settings: invalid mode")

	// ErrInvalidLogLevel is returned for a log level outside
	// {debug, info, warn, error}.
	ErrInvalidLogLevel = errors.New("settings: invalid log level")

	// ErrInvalidBatchSize is returned for a non-positive batch size.
	ErrInvalidBatchSize = errors.New("settings: batch size must be positive")

	// ErrEmptyQueue is returned when an empty queue name is configured.
	ErrEmptyQueue = errors.New("settings: queue name must not be empty")

	// ErrLoadFile is returned when a settings file cannot be read or parsed.
	ErrLoadFile = errors.New("settings: failed to load file")
)
