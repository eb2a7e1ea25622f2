package sweep

import "errors"

// ErrBackendRequired is returned when an engine is created without a cache
// backend.
var ErrBackendRequired = errors.New("sweep: backend is required")
