package metrics

// NoopRecorder discards all metric events.
type NoopRecorder struct{}

// NewNoop returns a Recorder that does nothing.
func NewNoop() *NoopRecorder {
	return &NoopRecorder{}
}

func (*NoopRecorder) IncKeyCreated()     {}
func (*NoopRecorder) IncKeyRegenerated() {}
func (*NoopRecorder) IncKeyDeleted()     {}
func (*NoopRecorder) IncQuotaRejection() {}
func (*NoopRecorder) IncSignup()         {}
func (*NoopRecorder) IncLogin()          {}
func (*NoopRecorder) IncLoginFailure()   {}
