package pipeline

import "github.com/tailored-agentic-units/dealpipe/observability"

// Pipeline build event types.
const (
	EventBuildStart    observability.EventType = "pipeline.build.start"
	EventBuildComplete observability.EventType = "pipeline.build.complete"
)
