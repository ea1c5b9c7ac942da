package exec

import "errors"

// Sentinel errors for the exec package.
var (
	// ErrAlreadyRunning is returned when Start is called on a running loop.
	ErrAlreadyRunning = errors.New("loop is already running")

	// ErrNotRunning is returned when operations are attempted on a stopped loop.
	ErrNotRunning = errors.New("loop is not running")
)
