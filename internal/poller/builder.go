// internal/poller/builder.go
package poller

import (
	"fmt"
	"runtime"
	"time"

	"github.com/tamzrod/tracer-agent/internal/bus"
	"github.com/tamzrod/tracer-agent/internal/bus/rtu"
	"github.com/tamzrod/tracer-agent/internal/bus/tcp"
	cfg "github.com/tamzrod/tracer-agent/internal/config"
	"github.com/tamzrod/tracer-agent/internal/publish"
	"github.com/tamzrod/tracer-agent/internal/status"
)

// Build constructs the transport, executor and poller from config.
// Fails fast: an unopenable bus is a startup error, not a retry loop.
func Build(a cfg.AgentConfig, ledger *status.Ledger, pub publish.Publisher, ambient func() status.Ambient) (*Poller, func() error, error) {
	client, err := buildTransport(a.Source)
	if err != nil {
		return nil, nil, err
	}

	exec := NewExecutor(
		client,
		time.Duration(a.Poll.RetryBudgetMs)*time.Millisecond,
		time.Duration(a.Poll.RetrySpacingMs)*time.Millisecond,
		runtime.Gosched,
	)

	p, err := New(exec, ledger, pub, a.MQTT.Topic, a.MQTT.Retain, ambient)
	if err != nil {
		_ = client.Close()
		return nil, nil, err
	}

	return p, client.Close, nil
}

func buildTransport(src cfg.SourceConfig) (bus.Client, error) {
	switch src.Transport {
	case "serial":
		var line bus.Line = bus.NopLine{}
		if src.DirectionGPIO != nil {
			l, err := bus.NewSysfsLine(*src.DirectionGPIO)
			if err != nil {
				return nil, err
			}
			line = l
		}
		dir := bus.NewDirection(line, time.Duration(src.SettleUs)*time.Microsecond)

		return rtu.Open(rtu.Config{
			Device:   src.Device,
			BaudRate: src.BaudRate,
			Timeout:  time.Duration(src.TimeoutMs) * time.Millisecond,
			UnitID:   src.UnitID,
		}, dir)

	case "tcp":
		return tcp.Open(tcp.Config{
			Endpoint: src.Endpoint,
			UnitID:   src.UnitID,
			Timeout:  time.Duration(src.TimeoutMs) * time.Millisecond,
		})

	default:
		return nil, fmt.Errorf("poller: unsupported transport %q", src.Transport)
	}
}
