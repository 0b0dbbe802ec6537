// internal/status/constants.go
package status

// Code is the unified terminal status of one register-block transaction.
// It folds the bus-protocol exception codes and the transport-level failure
// modes into a single enumeration. These values are stable identifiers:
// their labels appear verbatim in telemetry and on the status page.

type Code uint8

// ---- LIFECYCLE ----

// CodeNotAttempted means the block has not been transacted this session.
const CodeNotAttempted Code = 0

// CodeOK means the transaction completed and the value was accepted.
const CodeOK Code = 1

// CodeInvalidValue means the transaction completed but the decoded value
// is implausible (a zero reading where zero means "sensor absent").
// Counted as a failure.
const CodeInvalidValue Code = 2

// ---- TRANSPORT FAILURES ----

const CodeTimeout Code = 10
const CodeCRCMismatch Code = 11
const CodeInvalidResponse Code = 12
const CodeResponseMismatch Code = 13
const CodeTransportDown Code = 14

// ---- PROTOCOL EXCEPTIONS (device-reported) ----

const CodeIllegalFunction Code = 20
const CodeIllegalAddress Code = 21
const CodeIllegalValue Code = 22
const CodeDeviceFailure Code = 23
const CodeDeviceBusy Code = 24

// CodeProtocolError covers exception codes the map above does not name.
const CodeProtocolError Code = 29

// OK reports whether the code is an accepted transaction.
func (c Code) OK() bool { return c == CodeOK }

// Attempted reports whether the block has been transacted at least once.
func (c Code) Attempted() bool { return c != CodeNotAttempted }

var codeLabels = map[Code]string{
	CodeNotAttempted:     "not-attempted",
	CodeOK:               "ok",
	CodeInvalidValue:     "invalid-value",
	CodeTimeout:          "timeout",
	CodeCRCMismatch:      "crc-mismatch",
	CodeInvalidResponse:  "invalid-response",
	CodeResponseMismatch: "response-mismatch",
	CodeTransportDown:    "transport-down",
	CodeIllegalFunction:  "illegal-function",
	CodeIllegalAddress:   "illegal-address",
	CodeIllegalValue:     "illegal-value",
	CodeDeviceFailure:    "device-failure",
	CodeDeviceBusy:       "device-busy",
	CodeProtocolError:    "protocol-error",
}

func (c Code) String() string {
	if s, ok := codeLabels[c]; ok {
		return s
	}
	return "unknown"
}

// ---- TEMPERATURE SOURCE ----

// TemperatureSource tags which register supplied the accepted battery
// temperature this cycle.
type TemperatureSource uint8

const (
	// TempSourceNone means no source yielded an accepted value.
	TempSourceNone TemperatureSource = iota
	// TempSourceProbe is the dedicated probe register (direct degrees).
	TempSourceProbe
	// TempSourceRemote is the remote sensor register pair (scaled /100).
	TempSourceRemote
	// TempSourceStatusBits is the bit field inside the battery status word.
	TempSourceStatusBits
)

var tempSourceLabels = map[TemperatureSource]string{
	TempSourceNone:       "none",
	TempSourceProbe:      "probe",
	TempSourceRemote:     "remote",
	TempSourceStatusBits: "status-bits",
}

func (s TemperatureSource) String() string {
	if l, ok := tempSourceLabels[s]; ok {
		return l
	}
	return "none"
}
