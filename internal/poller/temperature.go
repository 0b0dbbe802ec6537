// internal/poller/temperature.go
package poller

import (
	"time"

	"github.com/tamzrod/tracer-agent/internal/status"
)

// readTemperature walks the battery-temperature fallback chain:
//
//  1. probe register, direct degrees — a successful read of exactly 0
//     means the probe is absent, not a freezing battery, and fails the
//     tier with invalid-value;
//  2. remote sensor pair, /100 scaled — same zero-is-invalid rule;
//  3. status-word bit field — any transacted value is accepted.
//
// The chain short-circuits at the first accepted tier. Every tier that
// was attempted updates its own block counters, accepted or not.
func (p *Poller) readTemperature(now time.Time) status.Temperature {
	// tier 1: probe
	regs, code := p.exec.ReadBlock(BlockTempProbe)
	if code.OK() && regs[0] == 0 {
		code = status.CodeInvalidValue
	}
	p.ledger.RecordAttempt(BlockTempProbe.Name, code, now)
	if code.OK() {
		return status.Temperature{
			Value:  status.Of(float64(regs[0])),
			Source: status.TempSourceProbe,
		}
	}

	// tier 2: remote pair
	regs, code = p.exec.ReadBlock(BlockTempRemote)
	if code.OK() && regs[0] == 0 && regs[1] == 0 {
		code = status.CodeInvalidValue
	}
	p.ledger.RecordAttempt(BlockTempRemote.Name, code, now)
	if code.OK() {
		return status.Temperature{
			Value:  status.Of(pair32(regs[0], regs[1])),
			Source: status.TempSourceRemote,
		}
	}

	// tier 3: status word bits, no zero filtering
	regs, code = p.exec.ReadBlock(BlockTempStatus)
	p.ledger.RecordAttempt(BlockTempStatus.Name, code, now)
	if code.OK() {
		return status.Temperature{
			Value:  status.Of(tempFromStatusBits(regs[0])),
			Source: status.TempSourceStatusBits,
		}
	}

	return status.Temperature{Value: status.Invalid(), Source: status.TempSourceNone}
}
