// Package metrics provides lightweight hooks for instrumentation.
package metrics

// Recorder captures metric events for the application.
// Implementations can expose these to Prometheus, StatsD, etc.
type Recorder interface {
	// API key lifecycle metrics
	IncKeyCreated()
	IncKeyRegenerated()
	IncKeyDeleted()
	IncQuotaRejection()

	// Account metrics
	IncSignup()
	IncLogin()
	IncLoginFailure()
}

// Snapshotter exposes a snapshot of current metrics.
type Snapshotter interface {
	Snapshot() Snapshot
}
