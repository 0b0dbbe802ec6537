// internal/poller/runner.go
package poller

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/tamzrod/tracer-agent/internal/status"
	"github.com/tamzrod/tracer-agent/internal/watchdog"
)

// Net is the network collaborator boundary: a single connected signal.
type Net interface {
	Connected() bool
}

// Runner drives the poller on a fixed-period clock and hosts the liveness
// checks. The interval is measured from the start of the previous cycle:
// a slow cycle absorbs its overrun instead of compounding delay, and an
// overdue cycle starts immediately on the next tick.
type Runner struct {
	poller   *Poller
	ledger   *status.Ledger
	interval time.Duration
	net      Net
	wd       *watchdog.Watchdog

	// restart escalates a watchdog detection. It is expected not to
	// return, but the loop survives if it does.
	restart func(reason string)
}

// NewRunner wires the control loop. net may be nil (assume connected).
func NewRunner(p *Poller, ledger *status.Ledger, interval time.Duration, net Net, wd *watchdog.Watchdog, restart func(string)) *Runner {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	if restart == nil {
		restart = func(string) {}
	}
	return &Runner{
		poller:   p,
		ledger:   ledger,
		interval: interval,
		net:      net,
		wd:       wd,
		restart:  restart,
	}
}

// Run polls once immediately, then on every tick, until the context ends.
func (r *Runner) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.step()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.step()
		}
	}
}

func (r *Runner) step() {
	now := time.Now()

	if r.wd != nil {
		last, have := r.ledger.LastSuccess()
		if reason, fired := r.wd.Check(now, last, have); fired {
			log.WithField("reason", reason).Error("watchdog tripped, restarting")
			r.restart(reason)
			return
		}
	}

	if r.net != nil && !r.net.Connected() {
		log.Debug("network down, skipping poll cycle")
		return
	}

	r.poller.PollOnce()
}
