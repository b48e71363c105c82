package solution

import "github.com/tailored-agentic-units/dealpipe/observability"

// Assembly event types.
const (
	EventBuildStart    observability.EventType = "solution.build.start"
	EventBuildComplete observability.EventType = "solution.build.complete"
	EventError         observability.EventType = "solution.error"
)
