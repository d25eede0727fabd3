package kafka

import "time"

// Config holds Kafka connection parameters.
type Config struct {
	Brokers []string

	// BatchTimeout bounds how long a writer buffers messages before flushing.
	// Zero means the package default of 10ms.
	BatchTimeout time.Duration

	// Async makes writes fire-and-forget at the writer level. Publish errors
	// are then only visible through the writer's completion callback, so
	// callers that must observe delivery failures should leave this off.
	Async bool
}
