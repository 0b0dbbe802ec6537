// internal/poller/decode.go
package poller

import "github.com/tamzrod/tracer-agent/internal/status"

// Decode rules for the controller's register encodings. Pure word-to-unit
// conversion: no IO, no validity policy (that belongs to the orchestrator
// and the temperature chain).

// scaled converts a /100-scaled word (centivolt, centiamp).
func scaled(raw uint16) float64 {
	return float64(raw) / 100
}

// pair32 composes a low/high word pair and scales /100.
func pair32(low, high uint16) float64 {
	return float64(uint32(low)|uint32(high)<<16) / 100
}

// chargePair composes the charging-power pair. The controller's reference
// decode shifts the high word by 8 here, unlike every other power pair;
// reproduced as-is for behavioral parity.
func chargePair(low, high uint16) float64 {
	return float64(uint32(low)|uint32(high)<<8) / 100
}

// tempFromStatusBits extracts the degrees field (bits 4-7) from the
// battery status word.
func tempFromStatusBits(word uint16) float64 {
	return float64((word >> 4) & 0x0F)
}

// decodeLive maps the live block's 16 words onto the metric family.
// Callers pass a fully validated block: exactly BlockLive.Quantity words.
func decodeLive(regs []uint16) status.Live {
	return status.Live{
		PanelVolts:   status.Of(scaled(regs[0x0])),
		PanelAmps:    status.Of(scaled(regs[0x1])),
		PanelWatts:   status.Of(pair32(regs[0x2], regs[0x3])),
		BatteryVolts: status.Of(scaled(regs[0x4])),
		BatteryAmps:  status.Of(scaled(regs[0x5])),
		LoadVolts:    status.Of(scaled(regs[0xC])),
		LoadAmps:     status.Of(scaled(regs[0xD])),
		LoadWatts:    status.Of(pair32(regs[0xE], regs[0xF])),
	}
}
