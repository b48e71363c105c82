package configsvc

import "errors"

// Sentinel errors for config encoding and serving.
var (
	ErrUnknownFormat = errors.New("unknown output format")
	ErrEmptyStep     = errors.New("step name is empty")
)
