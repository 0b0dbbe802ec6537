// internal/bus/rtu/client.go
package rtu

import (
	"encoding/binary"
	"fmt"
	"io"
	"time"

	"github.com/goburrow/serial"
	"github.com/sigurn/crc16"

	"github.com/tamzrod/tracer-agent/internal/bus"
)

const fcReadInputRegisters byte = 0x04

var crcTable = crc16.MakeTable(crc16.CRC16_MODBUS)

// Client implements bus.Client over Modbus RTU on a half-duplex serial
// link. Every outbound frame runs inside the direction bracket; the codec
// itself is geometry-only.
type Client struct {
	conn   bus.Conn
	dir    *bus.Direction
	unitID uint8
}

// Config is minimal transport config for the serial link.
type Config struct {
	Device   string
	BaudRate int
	Timeout  time.Duration
	UnitID   uint8
}

// Open opens the serial port (8N1) and returns a connected client.
func Open(cfg Config, dir *bus.Direction) (*Client, error) {
	if cfg.Device == "" {
		return nil, fmt.Errorf("rtu: device required")
	}
	if cfg.BaudRate <= 0 {
		cfg.BaudRate = 115200
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 150 * time.Millisecond
	}

	port, err := serial.Open(&serial.Config{
		Address:  cfg.Device,
		BaudRate: cfg.BaudRate,
		DataBits: 8,
		StopBits: 1,
		Parity:   "N",
		Timeout:  cfg.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("rtu: open %s: %w", cfg.Device, err)
	}

	return New(port, dir, cfg.UnitID), nil
}

// New wraps an existing connection. Used by Open and by tests.
func New(conn bus.Conn, dir *bus.Direction, unitID uint8) *Client {
	return &Client{conn: conn, dir: dir, unitID: unitID}
}

// Close closes the serial connection.
func (c *Client) Close() error {
	if c == nil || c.conn == nil {
		return nil
	}
	return c.conn.Close()
}

// ---- bus.Client ----

func (c *Client) ReadInputRegisters(addr, qty uint16) ([]uint16, error) {
	if qty == 0 {
		return nil, nil
	}

	req := buildReadRequest(c.unitID, addr, qty)

	err := c.dir.Transmit(func() error {
		n, werr := c.conn.Write(req)
		if werr != nil {
			return fmt.Errorf("%w: %v", bus.ErrTransportDown, werr)
		}
		if n != len(req) {
			return fmt.Errorf("%w: short write %d/%d", bus.ErrTransportDown, n, len(req))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	payload, err := c.readResponse(qty)
	if err != nil {
		return nil, err
	}

	return unpackRegisters(payload), nil
}

// ---- internal request/response helpers ----

// buildReadRequest builds a Modbus RTU ADU:
//
//	Unit(1) FC(1) Address(2,BE) Quantity(2,BE) CRC(2,LE)
func buildReadRequest(unitID uint8, addr, qty uint16) []byte {
	adu := make([]byte, 8)
	adu[0] = unitID
	adu[1] = fcReadInputRegisters
	binary.BigEndian.PutUint16(adu[2:4], addr)
	binary.BigEndian.PutUint16(adu[4:6], qty)
	binary.LittleEndian.PutUint16(adu[6:8], crc16.Checksum(adu[:6], crcTable))
	return adu
}

// readResponse reads one complete response frame.
//
// Normal:    Unit(1) FC(1) ByteCount(1) Data(n) CRC(2)
// Exception: Unit(1) FC|0x80(1) Code(1) CRC(2)
func (c *Client) readResponse(qty uint16) ([]byte, error) {
	// Unit + FC + third byte are enough to size the rest of the frame.
	head := make([]byte, 3)
	if _, err := io.ReadFull(c.conn, head); err != nil {
		return nil, fmt.Errorf("%w: %v", bus.ErrTimeout, err)
	}

	unit, fc, third := head[0], head[1], head[2]

	if fc&0x80 != 0 {
		// Exception frame: third byte is the code, two CRC bytes follow.
		tail := make([]byte, 2)
		if _, err := io.ReadFull(c.conn, tail); err != nil {
			return nil, fmt.Errorf("%w: %v", bus.ErrTimeout, err)
		}
		if !crcOK(append(head[:3:3], tail...)) {
			return nil, bus.ErrCRCMismatch
		}
		if unit != c.unitID {
			return nil, fmt.Errorf("%w: unit %d, want %d", bus.ErrResponseMismatch, unit, c.unitID)
		}
		return nil, &bus.ExceptionError{Function: fc &^ 0x80, Code: third}
	}

	byteCount := int(third)
	rest := make([]byte, byteCount+2)
	if _, err := io.ReadFull(c.conn, rest); err != nil {
		return nil, fmt.Errorf("%w: %v", bus.ErrTimeout, err)
	}

	frame := append(head[:3:3], rest...)
	if !crcOK(frame) {
		return nil, bus.ErrCRCMismatch
	}
	if unit != c.unitID {
		return nil, fmt.Errorf("%w: unit %d, want %d", bus.ErrResponseMismatch, unit, c.unitID)
	}
	if fc != fcReadInputRegisters {
		return nil, fmt.Errorf("%w: function %d, want %d", bus.ErrResponseMismatch, fc, fcReadInputRegisters)
	}
	if byteCount%2 != 0 {
		return nil, fmt.Errorf("%w: odd byte count %d", bus.ErrInvalidResponse, byteCount)
	}
	if byteCount != int(qty)*2 {
		return nil, fmt.Errorf("%w: byte count %d, want %d", bus.ErrInvalidResponse, byteCount, qty*2)
	}

	return frame[3 : 3+byteCount], nil
}

func crcOK(frame []byte) bool {
	n := len(frame) - 2
	want := binary.LittleEndian.Uint16(frame[n:])
	return crc16.Checksum(frame[:n], crcTable) == want
}

// unpackRegisters converts big-endian payload bytes into register words.
func unpackRegisters(data []byte) []uint16 {
	out := make([]uint16, len(data)/2)
	for i := range out {
		out[i] = binary.BigEndian.Uint16(data[2*i : 2*i+2])
	}
	return out
}
