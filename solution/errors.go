package solution

import "errors"

// Sentinel errors for solution configuration assembly.
var (
	ErrInvalidParams = errors.New("invalid solution parameters")
	ErrUnknownStep   = errors.New("unknown pipeline step")
)
