// internal/publish/publish.go
package publish

// Publisher is the delivery-only contract for telemetry.
// It receives a finished payload and reports success; it holds no
// engine state and never retries on the engine's behalf.
type Publisher interface {
	Publish(topic string, payload []byte, retain bool) bool
	Connected() bool
}

// Nop discards every payload. Used when telemetry is disabled on the
// bench and by tests that only care about cycle mechanics.
type Nop struct{}

func (Nop) Publish(string, []byte, bool) bool { return true }
func (Nop) Connected() bool                   { return true }
