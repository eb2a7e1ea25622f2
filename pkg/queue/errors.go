package queue

import "errors"

var (
	// ErrPoolRequired is returned when an enqueuer or worker is created
	// without a database pool.
	ErrPoolRequired = errors.New("queue: pool is required")

	// ErrDeleterRequired is returned when a worker is created without a
	// deleter to execute jobs with.
	ErrDeleterRequired = errors.New("queue: deleter is required")

	// ErrAlreadyStarted is returned when starting a running worker.
	ErrAlreadyStarted = errors.New("queue: already started")

	// ErrNotStarted is returned when stopping a worker that is not running.
	ErrNotStarted = errors.New("queue: not started")

	// ErrHealthcheckFailed is returned when the worker health check fails.
	ErrHealthcheckFailed = errors.New("queue: healthcheck failed")
)
