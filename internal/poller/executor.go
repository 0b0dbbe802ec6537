// internal/poller/executor.go
package poller

import (
	"time"

	"github.com/tamzrod/tracer-agent/internal/bus"
	"github.com/tamzrod/tracer-agent/internal/status"
)

// Default retry timing. The budget is wall-clock from the first attempt;
// a failing block costs at most the budget before the cycle moves on.
const (
	DefaultRetryBudget  = 800 * time.Millisecond
	DefaultRetrySpacing = 50 * time.Millisecond
)

// Executor runs one register-block transaction with bounded retry.
// Between attempts it calls the yield hook so a slow or dead bus does not
// starve the rest of the process.
type Executor struct {
	client  bus.Client
	budget  time.Duration
	spacing time.Duration
	yield   func()

	// injected clocks, overridden in tests
	now   func() time.Time
	sleep func(time.Duration)
}

// NewExecutor creates an executor. budget/spacing <= 0 select the
// defaults; yield may be nil.
func NewExecutor(client bus.Client, budget, spacing time.Duration, yield func()) *Executor {
	if budget <= 0 {
		budget = DefaultRetryBudget
	}
	if spacing <= 0 {
		spacing = DefaultRetrySpacing
	}
	return &Executor{
		client:  client,
		budget:  budget,
		spacing: spacing,
		yield:   yield,
		now:     time.Now,
		sleep:   time.Sleep,
	}
}

// ReadBlock transacts one block and returns its words with a terminal
// status. All-or-nothing: on any failure the words are nil and the status
// is the last attempt's failure code. Never returns ok with nil words.
func (e *Executor) ReadBlock(b RegisterBlock) ([]uint16, status.Code) {
	deadline := e.now().Add(e.budget)

	var lastErr error
	for {
		regs, err := e.client.ReadInputRegisters(b.Address, b.Quantity)
		if err == nil {
			return regs, status.CodeOK
		}
		lastErr = err

		// Another attempt must fit inside the budget, spacing included.
		if !e.now().Add(e.spacing).Before(deadline) {
			break
		}
		if e.yield != nil {
			e.yield()
		}
		e.sleep(e.spacing)
	}

	return nil, bus.CodeOf(lastErr)
}
