// internal/poller/decode_test.go
package poller

import "testing"

func TestScaled_TwoImpliedDecimals(t *testing.T) {
	if got := scaled(100); got != 1.00 {
		t.Fatalf("scaled(100) = %v, want 1.00", got)
	}
	if got := scaled(250); got != 2.50 {
		t.Fatalf("scaled(250) = %v, want 2.50", got)
	}
	if got := scaled(0); got != 0 {
		t.Fatalf("scaled(0) = %v, want 0", got)
	}
}

func TestPair32_WideComposition(t *testing.T) {
	// (300 | 1<<16) / 100
	if got := pair32(300, 1); got != 658.36 {
		t.Fatalf("pair32(300, 1) = %v, want 658.36", got)
	}
	if got := pair32(12345, 0); got != 123.45 {
		t.Fatalf("pair32(12345, 0) = %v, want 123.45", got)
	}
}

func TestChargePair_NarrowComposition(t *testing.T) {
	// The charging-power pair composes the high word with an 8-bit shift.
	// (300 | 2<<8) / 100
	if got := chargePair(300, 2); got != 8.12 {
		t.Fatalf("chargePair(300, 2) = %v, want 8.12", got)
	}

	// Same inputs diverge from the wide composition; this divergence is
	// controller behavior, not an accident here.
	if chargePair(300, 1) == pair32(300, 1) {
		t.Fatalf("chargePair and pair32 must not agree with a non-zero high word")
	}
}

func TestTempFromStatusBits_FourBitField(t *testing.T) {
	if got := tempFromStatusBits(0x00B5); got != 11 {
		t.Fatalf("tempFromStatusBits(0x00B5) = %v, want 11 (bits 4-7)", got)
	}
	if got := tempFromStatusBits(0xFF0F); got != 0 {
		t.Fatalf("tempFromStatusBits(0xFF0F) = %v, want 0", got)
	}
}

func TestDecodeLive_FieldMapping(t *testing.T) {
	regs := make([]uint16, 16)
	regs[0x0] = 1234  // panel volts
	regs[0x1] = 250   // panel amps
	regs[0x2] = 30000 // panel watts low
	regs[0x3] = 0     // panel watts high
	regs[0x4] = 1280  // battery volts
	regs[0x5] = 500   // battery amps
	regs[0xC] = 1200  // load volts
	regs[0xD] = 100   // load amps
	regs[0xE] = 1500  // load watts low
	regs[0xF] = 0     // load watts high

	l := decodeLive(regs)

	checks := []struct {
		name string
		got  float64
		want float64
	}{
		{"panel volts", l.PanelVolts.V, 12.34},
		{"panel amps", l.PanelAmps.V, 2.50},
		{"panel watts", l.PanelWatts.V, 300.00},
		{"battery volts", l.BatteryVolts.V, 12.80},
		{"battery amps", l.BatteryAmps.V, 5.00},
		{"load volts", l.LoadVolts.V, 12.00},
		{"load amps", l.LoadAmps.V, 1.00},
		{"load watts", l.LoadWatts.V, 15.00},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Fatalf("%s = %v, want %v", c.name, c.got, c.want)
		}
	}
	if !l.PanelVolts.Valid || !l.LoadWatts.Valid {
		t.Fatalf("decoded fields must be valid")
	}
}
