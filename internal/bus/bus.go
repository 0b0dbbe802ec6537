// internal/bus/bus.go
package bus

import "io"

// Client is the geometry-only read contract every transport implements.
// The controller exposes its whole map through function 4 ("read input
// registers"), so this is the only operation the engine needs.
type Client interface {
	ReadInputRegisters(addr, qty uint16) ([]uint16, error)
	Close() error
}

// Conn is the byte transport under the RTU codec. Satisfied by a serial
// port; tests substitute an in-memory fake.
type Conn interface {
	io.ReadWriteCloser
}
