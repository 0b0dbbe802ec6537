// internal/bus/direction_test.go
package bus

import (
	"errors"
	"testing"
)

// ---- fake line ----

type fakeLine struct {
	states  []bool
	failSet bool
}

func (f *fakeLine) Set(high bool) error {
	if f.failSet {
		return errors.New("set failed")
	}
	f.states = append(f.states, high)
	return nil
}

// ---- tests ----

func TestTransmit_BracketsSend(t *testing.T) {
	line := &fakeLine{}
	d := NewDirection(line, 1)

	sent := false
	err := d.Transmit(func() error {
		if len(line.states) != 1 || !line.states[0] {
			t.Fatalf("send ran outside transmit state: %v", line.states)
		}
		sent = true
		return nil
	})
	if err != nil {
		t.Fatalf("Transmit: %v", err)
	}
	if !sent {
		t.Fatalf("send not invoked")
	}
	if len(line.states) != 2 || line.states[1] {
		t.Fatalf("bus not returned to receive state: %v", line.states)
	}
}

func TestTransmit_ReleasesOnSendFailure(t *testing.T) {
	line := &fakeLine{}
	d := NewDirection(line, 1)

	sendErr := errors.New("write failed")
	err := d.Transmit(func() error { return sendErr })
	if !errors.Is(err, sendErr) {
		t.Fatalf("Transmit err = %v, want send error", err)
	}
	if len(line.states) != 2 || line.states[1] {
		t.Fatalf("bus left in transmit state after failed send: %v", line.states)
	}
}

func TestTransmit_ReleasesOnPanic(t *testing.T) {
	line := &fakeLine{}
	d := NewDirection(line, 1)

	func() {
		defer func() { _ = recover() }()
		_ = d.Transmit(func() error { panic("boom") })
	}()

	if len(line.states) != 2 || line.states[1] {
		t.Fatalf("bus left in transmit state after panic: %v", line.states)
	}
}

func TestTransmit_DoesNotSendWhenEnableFails(t *testing.T) {
	line := &fakeLine{failSet: true}
	d := NewDirection(line, 1)

	err := d.Transmit(func() error {
		t.Fatalf("send invoked despite enable failure")
		return nil
	})
	if err == nil {
		t.Fatalf("expected error")
	}
}
