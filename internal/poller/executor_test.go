// internal/poller/executor_test.go
package poller

import (
	"testing"
	"time"

	"github.com/tamzrod/tracer-agent/internal/bus"
	"github.com/tamzrod/tracer-agent/internal/status"
)

// ---- fakes ----

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time        { return c.t }
func (c *fakeClock) sleep(d time.Duration) { c.t = c.t.Add(d) }

type scriptedClient struct {
	attempts int
	failFor  int   // attempts that fail before success; negative = always
	err      error // error returned by failing attempts
	regs     []uint16
}

func (s *scriptedClient) ReadInputRegisters(addr, qty uint16) ([]uint16, error) {
	s.attempts++
	if s.failFor < 0 || s.attempts <= s.failFor {
		return nil, s.err
	}
	if s.regs != nil {
		return s.regs, nil
	}
	return make([]uint16, qty), nil
}

func (s *scriptedClient) Close() error { return nil }

func newTestExecutor(c bus.Client, clock *fakeClock, yield func()) *Executor {
	e := NewExecutor(c, 800*time.Millisecond, 50*time.Millisecond, yield)
	e.now = clock.now
	e.sleep = clock.sleep
	return e
}

// ---- tests ----

func TestReadBlock_FirstAttemptSuccess(t *testing.T) {
	client := &scriptedClient{regs: []uint16{42}}
	e := newTestExecutor(client, &fakeClock{t: time.Now()}, nil)

	regs, code := e.ReadBlock(BlockSOC)
	if code != status.CodeOK {
		t.Fatalf("code = %v, want ok", code)
	}
	if len(regs) != 1 || regs[0] != 42 {
		t.Fatalf("regs = %v", regs)
	}
	if client.attempts != 1 {
		t.Fatalf("attempts = %d, want 1", client.attempts)
	}
}

func TestReadBlock_RetriesUntilBudgetExhausted(t *testing.T) {
	client := &scriptedClient{failFor: -1, err: bus.ErrTimeout}
	clock := &fakeClock{t: time.Unix(0, 0)}

	yields := 0
	e := newTestExecutor(client, clock, func() { yields++ })

	regs, code := e.ReadBlock(BlockLive)
	if regs != nil {
		t.Fatalf("regs = %v, want nil on failure", regs)
	}
	if code != status.CodeTimeout {
		t.Fatalf("code = %v, want timeout", code)
	}

	// Attempts at t=0, 50, ..., 750ms inside the 800ms budget.
	if client.attempts != 16 {
		t.Fatalf("attempts = %d, want 16", client.attempts)
	}
	if yields != client.attempts-1 {
		t.Fatalf("yields = %d, want one per retry gap (%d)", yields, client.attempts-1)
	}
}

func TestReadBlock_RecoversWithinBudget(t *testing.T) {
	client := &scriptedClient{failFor: 3, err: bus.ErrCRCMismatch, regs: []uint16{7}}
	clock := &fakeClock{t: time.Unix(0, 0)}
	e := newTestExecutor(client, clock, nil)

	regs, code := e.ReadBlock(BlockSOC)
	if code != status.CodeOK {
		t.Fatalf("code = %v, want ok after recovery", code)
	}
	if regs[0] != 7 {
		t.Fatalf("regs = %v", regs)
	}
	if client.attempts != 4 {
		t.Fatalf("attempts = %d, want 4", client.attempts)
	}
}

func TestReadBlock_TerminalStatusIsLastError(t *testing.T) {
	client := &scriptedClient{failFor: -1, err: &bus.ExceptionError{Function: 4, Code: 0x06}}
	e := newTestExecutor(client, &fakeClock{t: time.Unix(0, 0)}, nil)

	_, code := e.ReadBlock(BlockSOC)
	if code != status.CodeDeviceBusy {
		t.Fatalf("code = %v, want device-busy", code)
	}
}
