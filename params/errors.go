package params

import "errors"

// Sentinel errors for parameter ingestion.
var (
	ErrMissing       = errors.New("parameter not set")
	ErrUnknownFormat = errors.New("unsupported parameter file format")
	ErrNoSources     = errors.New("no parameter sources")
)
