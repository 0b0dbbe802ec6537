// internal/poller/types.go
package poller

// RegisterBlock is one contiguous input-register range read as a single
// transaction. Addresses are fixed by the controller's hardware register
// map and MUST NOT be configurable.
type RegisterBlock struct {
	Name     string
	Address  uint16
	Quantity uint16
}

// ---- CONTROLLER REGISTER MAP ----

// The live block covers the rated real-time array: panel volts/amps at
// 0x3100, panel power pair at 0x3102, battery volts/amps at 0x3104, load
// volts/amps at 0x310C and load power pair at 0x310E.
var BlockLive = RegisterBlock{Name: "live", Address: 0x3100, Quantity: 16}

// Battery charging power, word pair at 0x3106.
var BlockChargePower = RegisterBlock{Name: "charge_power", Address: 0x3106, Quantity: 2}

// Battery temperature sources, in fallback order.
var (
	// Dedicated probe register: whole degrees, no scaling.
	BlockTempProbe = RegisterBlock{Name: "temp_probe", Address: 0x311B, Quantity: 1}
	// Remote sensor word pair, /100 scaled.
	BlockTempRemote = RegisterBlock{Name: "temp_remote", Address: 0x3110, Quantity: 2}
	// Battery status word: degrees live in bits 4-7.
	BlockTempStatus = RegisterBlock{Name: "temp_status", Address: 0x3200, Quantity: 1}
)

// State of charge, whole percent.
var BlockSOC = RegisterBlock{Name: "soc", Address: 0x311A, Quantity: 1}

// BlockNames lists every block in display order. This is the ledger key
// set and the fixed key set of the telemetry last-status object.
func BlockNames() []string {
	return []string{
		BlockLive.Name,
		BlockChargePower.Name,
		BlockTempProbe.Name,
		BlockTempRemote.Name,
		BlockTempStatus.Name,
		BlockSOC.Name,
	}
}
