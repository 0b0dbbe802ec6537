// internal/bus/tcp/client.go
package tcp

import (
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	"github.com/goburrow/modbus"

	"github.com/tamzrod/tracer-agent/internal/bus"
)

// Client implements bus.Client over Modbus TCP. It exists for bench
// setups: serial-to-TCP bridges and the bundled simulator. Library errors
// are translated into the bus taxonomy so the engine never sees them.
type Client struct {
	handler *modbus.TCPClientHandler
	cli     modbus.Client
}

// Config is minimal transport config.
type Config struct {
	Endpoint string
	UnitID   uint8
	Timeout  time.Duration
}

// Open creates a connected Modbus TCP client.
func Open(cfg Config) (*Client, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("tcp: endpoint required")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 2 * time.Second
	}

	handler := modbus.NewTCPClientHandler(cfg.Endpoint)
	handler.Timeout = cfg.Timeout
	handler.SlaveId = cfg.UnitID

	if err := handler.Connect(); err != nil {
		return nil, fmt.Errorf("tcp: connect %s: %w", cfg.Endpoint, err)
	}

	return &Client{handler: handler, cli: modbus.NewClient(handler)}, nil
}

// Close closes the TCP connection.
func (c *Client) Close() error {
	if c == nil || c.handler == nil {
		return nil
	}
	return c.handler.Close()
}

// ---- bus.Client ----

func (c *Client) ReadInputRegisters(addr, qty uint16) ([]uint16, error) {
	if qty == 0 {
		return nil, nil
	}

	data, err := c.cli.ReadInputRegisters(addr, qty)
	if err != nil {
		return nil, translate(err)
	}
	if len(data) != int(qty)*2 {
		return nil, fmt.Errorf("%w: byte count %d, want %d", bus.ErrInvalidResponse, len(data), qty*2)
	}

	out := make([]uint16, qty)
	for i := range out {
		out[i] = binary.BigEndian.Uint16(data[2*i : 2*i+2])
	}
	return out, nil
}

// translate maps goburrow errors into the bus taxonomy.
func translate(err error) error {
	var merr *modbus.ModbusError
	if errors.As(err, &merr) {
		return &bus.ExceptionError{Function: merr.FunctionCode &^ 0x80, Code: merr.ExceptionCode}
	}
	// Deadline errors satisfy net.Error and map to timeout in bus.CodeOf;
	// everything else is a dead transport.
	return err
}
