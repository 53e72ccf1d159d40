package metrics

import "sync/atomic"

// Snapshot captures current in-memory counters.
type Snapshot struct {
	KeysCreated     uint64 `json:"keys_created"`
	KeysRegenerated uint64 `json:"keys_regenerated"`
	KeysDeleted     uint64 `json:"keys_deleted"`
	QuotaRejections uint64 `json:"quota_rejections"`
	Signups         uint64 `json:"signups"`
	Logins          uint64 `json:"logins"`
	LoginFailures   uint64 `json:"login_failures"`
}

// InMemoryRecorder stores metrics in memory.
type InMemoryRecorder struct {
	keysCreated     uint64
	keysRegenerated uint64
	keysDeleted     uint64
	quotaRejections uint64
	signups         uint64
	logins          uint64
	loginFailures   uint64
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	return Snapshot{
		KeysCreated:     atomic.LoadUint64(&m.keysCreated),
		KeysRegenerated: atomic.LoadUint64(&m.keysRegenerated),
		KeysDeleted:     atomic.LoadUint64(&m.keysDeleted),
		QuotaRejections: atomic.LoadUint64(&m.quotaRejections),
		Signups:         atomic.LoadUint64(&m.signups),
		Logins:          atomic.LoadUint64(&m.logins),
		LoginFailures:   atomic.LoadUint64(&m.loginFailures),
	}
}

// IncKeyCreated increments the key created counter.
func (m *InMemoryRecorder) IncKeyCreated() {
	atomic.AddUint64(&m.keysCreated, 1)
}

// IncKeyRegenerated increments the key regenerated counter.
func (m *InMemoryRecorder) IncKeyRegenerated() {
	atomic.AddUint64(&m.keysRegenerated, 1)
}

// IncKeyDeleted increments the key deleted counter.
func (m *InMemoryRecorder) IncKeyDeleted() {
	atomic.AddUint64(&m.keysDeleted, 1)
}

// IncQuotaRejection increments the quota rejection counter.
func (m *InMemoryRecorder) IncQuotaRejection() {
	atomic.AddUint64(&m.quotaRejections, 1)
}

// IncSignup increments the signup counter.
func (m *InMemoryRecorder) IncSignup() {
	atomic.AddUint64(&m.signups, 1)
}

// IncLogin increments the successful login counter.
func (m *InMemoryRecorder) IncLogin() {
	atomic.AddUint64(&m.logins, 1)
}

// IncLoginFailure increments the failed login counter.
func (m *InMemoryRecorder) IncLoginFailure() {
	atomic.AddUint64(&m.loginFailures, 1)
}
