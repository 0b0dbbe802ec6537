// internal/config/validate.go
package config

import (
	"fmt"
)

// Validate checks configuration correctness.
// It performs declarative validation only.
// It MUST NOT mutate configuration.
func Validate(cfg *Config) error {
	a := cfg.Agent

	// ------------------------------------------------------------
	// IDENTITY
	// ------------------------------------------------------------

	if a.Identity.ID == "" {
		return fmt.Errorf("identity.id is required")
	}
	for i := 0; i < len(a.Identity.ID); i++ {
		if a.Identity.ID[i] > 0x7F {
			return fmt.Errorf("identity.id must contain ASCII characters only")
		}
	}

	// ------------------------------------------------------------
	// SOURCE TRANSPORT
	// ------------------------------------------------------------

	switch a.Source.Transport {
	case "", "serial":
		if a.Source.Device == "" {
			return fmt.Errorf("source.device is required for the serial transport")
		}
		if a.Source.BaudRate < 0 {
			return fmt.Errorf("source.baud_rate must be >= 0")
		}
		if a.Source.SettleUs < 0 {
			return fmt.Errorf("source.settle_us must be >= 0")
		}
	case "tcp":
		if a.Source.Endpoint == "" {
			return fmt.Errorf("source.endpoint is required for the tcp transport")
		}
	default:
		return fmt.Errorf("source.transport %q is not one of serial, tcp", a.Source.Transport)
	}

	if a.Source.TimeoutMs < 0 {
		return fmt.Errorf("source.timeout_ms must be >= 0")
	}

	// ------------------------------------------------------------
	// POLL TIMING
	// ------------------------------------------------------------

	if a.Poll.IntervalMs < 0 {
		return fmt.Errorf("poll.interval_ms must be >= 0")
	}
	if a.Poll.RetryBudgetMs < 0 {
		return fmt.Errorf("poll.retry_budget_ms must be >= 0")
	}
	if a.Poll.RetrySpacingMs < 0 {
		return fmt.Errorf("poll.retry_spacing_ms must be >= 0")
	}
	if a.Poll.RetryBudgetMs > 0 && a.Poll.IntervalMs > 0 &&
		a.Poll.RetryBudgetMs >= a.Poll.IntervalMs {
		return fmt.Errorf("poll.retry_budget_ms must be smaller than poll.interval_ms")
	}

	// ------------------------------------------------------------
	// TELEMETRY
	// ------------------------------------------------------------

	if a.MQTT.Broker == "" {
		return fmt.Errorf("mqtt.broker is required")
	}
	if a.MQTT.Topic == "" {
		return fmt.Errorf("mqtt.topic is required")
	}
	if a.MQTT.Username == "" && a.MQTT.Password != "" {
		return fmt.Errorf("mqtt.password is set but mqtt.username is empty")
	}
	if a.MQTT.TimeoutMs < 0 {
		return fmt.Errorf("mqtt.timeout_ms must be >= 0")
	}

	// ------------------------------------------------------------
	// WATCHDOG
	// ------------------------------------------------------------

	if a.Watchdog.MaxSilenceMs < 0 {
		return fmt.Errorf("watchdog.max_silence_ms must be >= 0")
	}
	if a.Watchdog.MaxUptimeHours < 0 {
		return fmt.Errorf("watchdog.max_uptime_hours must be >= 0")
	}

	return nil
}
