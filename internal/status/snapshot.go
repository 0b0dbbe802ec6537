// internal/status/snapshot.go
package status

// Value is one decoded metric. Invalid values carry no number at all:
// a metric either came out of a successful transaction this cycle or it
// is absent. Zero is a legitimate reading and is never used as a sentinel.
type Value struct {
	V     float64
	Valid bool
}

// Of wraps a decoded number.
func Of(v float64) Value { return Value{V: v, Valid: true} }

// Invalid is the explicit no-data sentinel.
func Invalid() Value { return Value{} }

// Live holds the metrics decoded from the live-data register block.
// The block updates as a unit: either every field is refreshed from one
// successful transaction or every field is invalid.
type Live struct {
	PanelVolts   Value
	PanelAmps    Value
	PanelWatts   Value
	BatteryVolts Value
	BatteryAmps  Value
	LoadVolts    Value
	LoadAmps     Value
	LoadWatts    Value
}

// Reset discards all live metrics.
func (l *Live) Reset() { *l = Live{} }

// Temperature is the battery temperature plus the source that supplied it.
type Temperature struct {
	Value
	Source TemperatureSource
}

// Snapshot is the complete decoded output of one poll cycle.
// Built fresh each cycle by the orchestrator; read-only to consumers.
type Snapshot struct {
	Live          Live
	ChargeWatts   Value
	BatteryTemp   Temperature
	StateOfCharge Value

	// Cycle counts completed poll cycles since boot, starting at 1.
	Cycle uint64

	// PublishOK reports whether the telemetry handoff succeeded for this
	// cycle. False both on publish failure and before the first cycle.
	PublishOK bool
}

// Health holds the per-block running counters. Counters are monotonic and
// never reset during the process lifetime: Success+Fail equals the number
// of cycles in which the block was attempted since boot.
type Health struct {
	Success uint64
	Fail    uint64
	Last    Code
}

// Record folds one terminal status into the counters.
func (h *Health) Record(c Code) {
	if c.OK() {
		h.Success++
	} else {
		h.Fail++
	}
	h.Last = c
}
