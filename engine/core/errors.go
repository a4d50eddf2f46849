package core

import (
	"errors"
)

var (
	// ErrNotImplemented signals that a base operation was invoked where a
	// concrete override is required. Hitting it is a programming error,
	// not a recoverable runtime condition.
	ErrNotImplemented = errors.New("not implemented")
	ErrNotFound       = errors.New("not found")
	ErrUnknown        = errors.New("unknown")
)
