// internal/bus/rtu/client_test.go
package rtu

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"

	"github.com/sigurn/crc16"

	"github.com/tamzrod/tracer-agent/internal/bus"
	"github.com/tamzrod/tracer-agent/internal/status"
)

// ---- fake connection ----

type fakeConn struct {
	rx     bytes.Buffer // bytes the device "answers" with
	tx     bytes.Buffer // bytes the client wrote
	closed bool
}

func (f *fakeConn) Read(p []byte) (int, error)  { return f.rx.Read(p) }
func (f *fakeConn) Write(p []byte) (int, error) { return f.tx.Write(p) }
func (f *fakeConn) Close() error                { f.closed = true; return nil }

func withCRC(frame []byte) []byte {
	crc := crc16.Checksum(frame, crcTable)
	out := append(append([]byte(nil), frame...), 0, 0)
	binary.LittleEndian.PutUint16(out[len(frame):], crc)
	return out
}

func respond(unit, fc byte, regs []uint16) []byte {
	frame := []byte{unit, fc, byte(len(regs) * 2)}
	for _, r := range regs {
		frame = append(frame, byte(r>>8), byte(r))
	}
	return withCRC(frame)
}

func newTestClient(conn bus.Conn) *Client {
	return New(conn, bus.NewDirection(bus.NopLine{}, 1), 1)
}

// ---- tests ----

func TestReadInputRegisters_RequestFrame(t *testing.T) {
	conn := &fakeConn{}
	conn.rx.Write(respond(1, 0x04, []uint16{0x1234, 0x5678}))

	c := newTestClient(conn)
	regs, err := c.ReadInputRegisters(0x3100, 2)
	if err != nil {
		t.Fatalf("ReadInputRegisters: %v", err)
	}
	if len(regs) != 2 || regs[0] != 0x1234 || regs[1] != 0x5678 {
		t.Fatalf("regs = %v", regs)
	}

	want := withCRC([]byte{0x01, 0x04, 0x31, 0x00, 0x00, 0x02})
	if !bytes.Equal(conn.tx.Bytes(), want) {
		t.Fatalf("request = % x, want % x", conn.tx.Bytes(), want)
	}
}

func TestReadInputRegisters_Exception(t *testing.T) {
	conn := &fakeConn{}
	conn.rx.Write(withCRC([]byte{0x01, 0x84, 0x02})) // illegal data address

	c := newTestClient(conn)
	_, err := c.ReadInputRegisters(0x9999, 1)

	var exc *bus.ExceptionError
	if !errors.As(err, &exc) {
		t.Fatalf("err = %v, want exception", err)
	}
	if exc.Function != 0x04 || exc.Code != 0x02 {
		t.Fatalf("exception = fc %d code %d", exc.Function, exc.Code)
	}
	if bus.CodeOf(err) != status.CodeIllegalAddress {
		t.Fatalf("CodeOf = %v, want illegal-address", bus.CodeOf(err))
	}
}

func TestReadInputRegisters_CRCMismatch(t *testing.T) {
	conn := &fakeConn{}
	frame := respond(1, 0x04, []uint16{42})
	frame[len(frame)-1] ^= 0xFF
	conn.rx.Write(frame)

	c := newTestClient(conn)
	_, err := c.ReadInputRegisters(0x3100, 1)
	if !errors.Is(err, bus.ErrCRCMismatch) {
		t.Fatalf("err = %v, want crc mismatch", err)
	}
	if bus.CodeOf(err) != status.CodeCRCMismatch {
		t.Fatalf("CodeOf = %v", bus.CodeOf(err))
	}
}

func TestReadInputRegisters_WrongUnit(t *testing.T) {
	conn := &fakeConn{}
	conn.rx.Write(respond(7, 0x04, []uint16{42}))

	c := newTestClient(conn)
	_, err := c.ReadInputRegisters(0x3100, 1)
	if !errors.Is(err, bus.ErrResponseMismatch) {
		t.Fatalf("err = %v, want response mismatch", err)
	}
}

func TestReadInputRegisters_ShortByteCount(t *testing.T) {
	conn := &fakeConn{}
	conn.rx.Write(respond(1, 0x04, []uint16{42})) // one register

	c := newTestClient(conn)
	_, err := c.ReadInputRegisters(0x3100, 2) // asked for two
	if !errors.Is(err, bus.ErrInvalidResponse) {
		t.Fatalf("err = %v, want invalid response", err)
	}
}

func TestReadInputRegisters_NoResponseIsTimeout(t *testing.T) {
	conn := &fakeConn{}

	c := newTestClient(conn)
	_, err := c.ReadInputRegisters(0x3100, 1)
	if !errors.Is(err, bus.ErrTimeout) {
		t.Fatalf("err = %v, want timeout", err)
	}
	if bus.CodeOf(err) != status.CodeTimeout {
		t.Fatalf("CodeOf = %v", bus.CodeOf(err))
	}
}
