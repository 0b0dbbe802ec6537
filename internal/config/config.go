// internal/config/config.go
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Agent AgentConfig `yaml:"agent"`
}

type AgentConfig struct {
	Identity IdentityConfig `yaml:"identity"`
	Source   SourceConfig   `yaml:"source"`
	Poll     PollConfig     `yaml:"poll"`
	MQTT     MQTTConfig     `yaml:"mqtt"`
	HTTP     HTTPConfig     `yaml:"http"`
	Network  NetworkConfig  `yaml:"network"`
	Watchdog WatchdogConfig `yaml:"watchdog"`
	Log      LogConfig      `yaml:"log"`
}

// ---- IDENTITY ----

type IdentityConfig struct {
	ID string `yaml:"id"`
}

// ---- SOURCE (controller bus) ----

type SourceConfig struct {
	// Transport selects "serial" (RTU on half-duplex RS-485) or "tcp"
	// (bench bridges and the simulator).
	Transport string `yaml:"transport"`

	// serial transport
	Device        string `yaml:"device"`
	BaudRate      int    `yaml:"baud_rate"`
	DirectionGPIO *int   `yaml:"direction_gpio"` // nil = auto-direction transceiver
	SettleUs      int    `yaml:"settle_us"`

	// tcp transport
	Endpoint string `yaml:"endpoint"`

	UnitID    uint8 `yaml:"unit_id"`
	TimeoutMs int   `yaml:"timeout_ms"`
}

// ---- POLL ----

type PollConfig struct {
	IntervalMs     int `yaml:"interval_ms"`
	RetryBudgetMs  int `yaml:"retry_budget_ms"`
	RetrySpacingMs int `yaml:"retry_spacing_ms"`
}

// ---- TELEMETRY ----

type MQTTConfig struct {
	Broker    string `yaml:"broker"`
	Username  string `yaml:"username"`
	Password  string `yaml:"password"`
	Topic     string `yaml:"topic"`
	ClientID  string `yaml:"client_id"`
	Retain    bool   `yaml:"retain"`
	TimeoutMs int    `yaml:"timeout_ms"`
}

// ---- ADMIN HTTP ----

type HTTPConfig struct {
	Listen       string `yaml:"listen"`
	FirmwarePath string `yaml:"firmware_path"`
}

// ---- NETWORK ----

type NetworkConfig struct {
	// Interface is the uplink watched for the connected signal and
	// signal strength. Empty means "assume connected".
	Interface string `yaml:"interface"`
}

// ---- WATCHDOG ----

type WatchdogConfig struct {
	MaxSilenceMs   int `yaml:"max_silence_ms"`
	MaxUptimeHours int `yaml:"max_uptime_hours"`
}

// ---- LOGGING ----

type LogConfig struct {
	Level string `yaml:"level"`
}

// Load reads and parses a config file. Parsing only: correctness checks
// belong to Validate, defaults to Normalize.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return &cfg, nil
}
