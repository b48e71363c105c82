package configsvc

import "github.com/tailored-agentic-units/dealpipe/observability"

// Service event types.
const (
	EventRequest observability.EventType = "configsvc.request"
	EventServe   observability.EventType = "configsvc.serve"
	EventError   observability.EventType = "configsvc.error"
)
