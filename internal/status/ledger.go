// internal/status/ledger.go
package status

import (
	"sync"
	"time"
)

// Ledger is the process-wide health and reading state.
//
// Exactly one writer exists (the poll orchestrator); every other component
// reads value copies through View. The lock only isolates readers from the
// writer: the write side is never concurrent with itself, so a cycle's
// read-modify-publish sequence is never interleaved with another cycle.
type Ledger struct {
	mu sync.RWMutex

	started     time.Time
	lastSuccess time.Time // zero until the first successful transaction

	snap   Snapshot
	blocks []string
	health map[string]*Health
}

// NewLedger creates a ledger tracking the given block names, in display order.
func NewLedger(blocks []string, started time.Time) *Ledger {
	h := make(map[string]*Health, len(blocks))
	for _, b := range blocks {
		h[b] = &Health{Last: CodeNotAttempted}
	}
	return &Ledger{
		started: started,
		blocks:  append([]string(nil), blocks...),
		health:  h,
	}
}

// RecordAttempt folds one terminal transaction status into the block's
// counters. A successful transaction also advances the last-success marker
// consumed by the liveness watchdog. Unknown block names are ignored.
func (l *Ledger) RecordAttempt(block string, c Code, now time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()

	h, ok := l.health[block]
	if !ok {
		return
	}
	h.Record(c)

	if c.OK() {
		l.lastSuccess = now
	}
}

// Commit replaces the current snapshot wholesale.
func (l *Ledger) Commit(s Snapshot) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.snap = s
}

// SetPublishResult records the outcome of the current snapshot's
// telemetry handoff without disturbing the rest of the snapshot.
func (l *Ledger) SetPublishResult(ok bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.snap.PublishOK = ok
}

// LastSuccess returns the last-success marker; ok is false if no
// transaction has succeeded since boot.
func (l *Ledger) LastSuccess() (time.Time, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.lastSuccess, !l.lastSuccess.IsZero()
}

// ---- READ SIDE ----

// BlockHealth pairs a block name with its counters.
type BlockHealth struct {
	Block string
	Health
}

// View is a point-in-time value copy of the ledger, safe to hold.
type View struct {
	Snapshot    Snapshot
	Health      []BlockHealth
	Started     time.Time
	LastSuccess time.Time // zero = never
}

// HealthFor looks up one block's counters inside the view.
func (v View) HealthFor(block string) (Health, bool) {
	for _, bh := range v.Health {
		if bh.Block == block {
			return bh.Health, true
		}
	}
	return Health{}, false
}

// Uptime is the time elapsed since boot at the given instant.
func (v View) Uptime(now time.Time) time.Duration {
	return now.Sub(v.Started)
}

// View copies the ledger state.
func (l *Ledger) View() View {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := View{
		Snapshot:    l.snap,
		Started:     l.started,
		LastSuccess: l.lastSuccess,
		Health:      make([]BlockHealth, 0, len(l.blocks)),
	}
	for _, b := range l.blocks {
		out.Health = append(out.Health, BlockHealth{Block: b, Health: *l.health[b]})
	}
	return out
}
