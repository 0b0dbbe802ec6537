// internal/watchdog/watchdog.go
package watchdog

import (
	"fmt"
	"time"
)

// Defaults: five silent minutes on the bus, or the scheduled uptime
// ceiling, and the process restarts. Coarse self-healing by design; the
// supervisor brings the process back.
const (
	DefaultMaxSilence = 5 * time.Minute
	DefaultMaxUptime  = 1000 * time.Hour
)

// Watchdog tracks the two fatal-by-design conditions. Each detection is
// reported exactly once: the silence latch re-arms when a transaction
// succeeds again, the uptime latch never does.
type Watchdog struct {
	started    time.Time
	maxSilence time.Duration
	maxUptime  time.Duration

	silenceFired bool
	uptimeFired  bool
}

// New creates a watchdog. Non-positive limits select the defaults.
func New(started time.Time, maxSilence, maxUptime time.Duration) *Watchdog {
	if maxSilence <= 0 {
		maxSilence = DefaultMaxSilence
	}
	if maxUptime <= 0 {
		maxUptime = DefaultMaxUptime
	}
	return &Watchdog{
		started:    started,
		maxSilence: maxSilence,
		maxUptime:  maxUptime,
	}
}

// Check evaluates both conditions at the given instant. lastSuccess is
// the most recent successful bus transaction; haveSuccess is false until
// the first one, in which case silence is measured from process start.
// Returns a human-readable reason and true when a restart is due.
func (w *Watchdog) Check(now, lastSuccess time.Time, haveSuccess bool) (string, bool) {
	if uptime := now.Sub(w.started); uptime >= w.maxUptime {
		if !w.uptimeFired {
			w.uptimeFired = true
			return fmt.Sprintf("uptime %s exceeded ceiling %s", uptime.Round(time.Second), w.maxUptime), true
		}
	}

	ref := w.started
	if haveSuccess {
		ref = lastSuccess
	}
	if silence := now.Sub(ref); silence >= w.maxSilence {
		if !w.silenceFired {
			w.silenceFired = true
			return fmt.Sprintf("no successful bus transaction for %s", silence.Round(time.Second)), true
		}
	} else {
		w.silenceFired = false
	}

	return "", false
}
