package courier

import "errors"

// Sentinel errors for the courier package.
var (
	// ErrNilReceiver is returned when a nil owner is passed to Register.
	ErrNilReceiver = errors.New("receiver cannot be nil")

	// ErrNilCallback is returned when a nil callback is passed to Register.
	ErrNilCallback = errors.New("callback cannot be nil")
)
