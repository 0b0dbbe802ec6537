// internal/bus/direction.go
package bus

import (
	"fmt"
	"os"
	"time"
)

// Line drives the transceiver direction pin. High = transmit enable,
// low = receive enable.
type Line interface {
	Set(high bool) error
}

// DefaultSettle is the electrical settling delay observed on each side of
// a direction switch.
const DefaultSettle = 60 * time.Microsecond

// Direction toggles a half-duplex transceiver between transmit and receive
// around each outbound frame. The bus idles in receive state; leaving it in
// transmit state locks the bus for every device on it, so callers must go
// through Transmit, which releases on every exit path.
type Direction struct {
	line   Line
	settle time.Duration
}

// NewDirection wires a direction controller to a pin. settle <= 0 selects
// the default delay.
func NewDirection(line Line, settle time.Duration) *Direction {
	if settle <= 0 {
		settle = DefaultSettle
	}
	return &Direction{line: line, settle: settle}
}

// BeforeTransmit drives transmit-enable and waits for the transceiver to
// settle. The caller may write bytes only after it returns nil.
func (d *Direction) BeforeTransmit() error {
	if err := d.line.Set(true); err != nil {
		return err
	}
	time.Sleep(d.settle)
	return nil
}

// AfterTransmit waits out the settling delay, then returns the bus to
// receive state. Must follow every successful BeforeTransmit.
func (d *Direction) AfterTransmit() error {
	time.Sleep(d.settle)
	return d.line.Set(false)
}

// Transmit runs send inside the transmit bracket. The release runs on every
// exit path, including panic unwinds; a release failure surfaces only when
// send itself succeeded.
func (d *Direction) Transmit(send func() error) (err error) {
	if err = d.BeforeTransmit(); err != nil {
		return err
	}
	defer func() {
		if relErr := d.AfterTransmit(); err == nil {
			err = relErr
		}
	}()
	return send()
}

// ---- LINE IMPLEMENTATIONS ----

// NopLine is for transceivers with hardware auto-direction.
type NopLine struct{}

func (NopLine) Set(bool) error { return nil }

// SysfsLine drives an exported GPIO through the sysfs value file.
type SysfsLine struct {
	path string
}

// NewSysfsLine opens the value file of an already-exported GPIO configured
// as an output. It verifies the line is writable up front so a missing
// export fails at startup, not on the first transaction.
func NewSysfsLine(gpio int) (*SysfsLine, error) {
	path := fmt.Sprintf("/sys/class/gpio/gpio%d/value", gpio)
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("bus: gpio %d not exported: %w", gpio, err)
	}
	return &SysfsLine{path: path}, nil
}

func (l *SysfsLine) Set(high bool) error {
	v := []byte("0")
	if high {
		v = []byte("1")
	}
	return os.WriteFile(l.path, v, 0o644)
}
