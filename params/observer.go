package params

import "github.com/tailored-agentic-units/dealpipe/observability"

// Parameter loading event types.
const (
	EventLoadStart    observability.EventType = "params.load.start"
	EventSource       observability.EventType = "params.source"
	EventLoadComplete observability.EventType = "params.load.complete"
	EventError        observability.EventType = "params.error"
)
