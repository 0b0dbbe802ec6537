// internal/bus/errors.go
package bus

import (
	"errors"
	"fmt"
	"net"

	"github.com/tamzrod/tracer-agent/internal/status"
)

// Transport-level failure modes. Transports outside this package translate
// their library errors into these before returning, so the status mapping
// below is the single place failure taxonomy is decided.
var (
	ErrTimeout          = errors.New("bus: response timeout")
	ErrCRCMismatch      = errors.New("bus: crc mismatch")
	ErrInvalidResponse  = errors.New("bus: invalid response frame")
	ErrResponseMismatch = errors.New("bus: response does not match request")
	ErrTransportDown    = errors.New("bus: transport down")
)

// ExceptionError is a device-reported protocol exception (function | 0x80).
type ExceptionError struct {
	Function byte
	Code     byte
}

func (e *ExceptionError) Error() string {
	return fmt.Sprintf("bus: exception fc=%d code=%d", e.Function, e.Code)
}

// ExceptionCode exposes the raw device code.
func (e *ExceptionError) ExceptionCode() byte { return e.Code }

// CodeOf maps a transaction error onto the unified status taxonomy.
// nil maps to ok; unknown errors map to transport-down.
func CodeOf(err error) status.Code {
	if err == nil {
		return status.CodeOK
	}

	var exc *ExceptionError
	if errors.As(err, &exc) {
		switch exc.Code {
		case 0x01:
			return status.CodeIllegalFunction
		case 0x02:
			return status.CodeIllegalAddress
		case 0x03:
			return status.CodeIllegalValue
		case 0x04:
			return status.CodeDeviceFailure
		case 0x06:
			return status.CodeDeviceBusy
		default:
			return status.CodeProtocolError
		}
	}

	switch {
	case errors.Is(err, ErrTimeout):
		return status.CodeTimeout
	case errors.Is(err, ErrCRCMismatch):
		return status.CodeCRCMismatch
	case errors.Is(err, ErrInvalidResponse):
		return status.CodeInvalidResponse
	case errors.Is(err, ErrResponseMismatch):
		return status.CodeResponseMismatch
	case errors.Is(err, ErrTransportDown):
		return status.CodeTransportDown
	}

	// Library errors that escaped translation: a deadline is still a timeout.
	var nerr net.Error
	if errors.As(err, &nerr) && nerr.Timeout() {
		return status.CodeTimeout
	}

	return status.CodeTransportDown
}
