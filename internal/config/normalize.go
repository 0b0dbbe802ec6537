// internal/config/normalize.go
package config

// Defaults applied by Normalize. The poll timings are fixed properties of
// the controller's bus behavior; configuration can tighten them for bench
// runs but normally leaves them alone.
const (
	DefaultBaudRate       = 115200
	DefaultUnitID         = 1
	DefaultSettleUs       = 60
	DefaultTimeoutMs      = 150
	DefaultIntervalMs     = 30000
	DefaultRetryBudgetMs  = 800
	DefaultRetrySpacingMs = 50
	DefaultMQTTTimeoutMs  = 5000
	DefaultListen         = ":8080"
	DefaultLogLevel       = "info"
	DefaultMaxSilenceMs   = 300000 // 5 minutes without a successful transaction
	DefaultMaxUptimeHours = 1000   // scheduled self-restart ceiling
)

// Normalize applies post-validation defaulting.
// It is allowed to mutate configuration.
// It MUST be called only after Validate().
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}

	a := &cfg.Agent

	if a.Source.Transport == "" {
		a.Source.Transport = "serial"
	}
	if a.Source.BaudRate == 0 {
		a.Source.BaudRate = DefaultBaudRate
	}
	if a.Source.UnitID == 0 {
		a.Source.UnitID = DefaultUnitID
	}
	if a.Source.SettleUs == 0 {
		a.Source.SettleUs = DefaultSettleUs
	}
	if a.Source.TimeoutMs == 0 {
		a.Source.TimeoutMs = DefaultTimeoutMs
	}

	if a.Poll.IntervalMs == 0 {
		a.Poll.IntervalMs = DefaultIntervalMs
	}
	if a.Poll.RetryBudgetMs == 0 {
		a.Poll.RetryBudgetMs = DefaultRetryBudgetMs
	}
	if a.Poll.RetrySpacingMs == 0 {
		a.Poll.RetrySpacingMs = DefaultRetrySpacingMs
	}

	if a.MQTT.ClientID == "" {
		a.MQTT.ClientID = a.Identity.ID
	}
	if a.MQTT.TimeoutMs == 0 {
		a.MQTT.TimeoutMs = DefaultMQTTTimeoutMs
	}

	if a.HTTP.Listen == "" {
		a.HTTP.Listen = DefaultListen
	}

	if a.Watchdog.MaxSilenceMs == 0 {
		a.Watchdog.MaxSilenceMs = DefaultMaxSilenceMs
	}
	if a.Watchdog.MaxUptimeHours == 0 {
		a.Watchdog.MaxUptimeHours = DefaultMaxUptimeHours
	}

	if a.Log.Level == "" {
		a.Log.Level = DefaultLogLevel
	}
}
