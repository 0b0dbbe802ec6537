// internal/status/encode.go
package status

import (
	"encoding/json"
	"time"
)

// Ambient carries the non-register signals included in every telemetry
// payload: process identity and radio state.
type Ambient struct {
	DeviceID string
	Hardware string
	Firmware string

	// RSSI is the wireless signal strength in dBm; nil when unavailable.
	RSSI *int
}

// Telemetry is the wire form of one snapshot. The key set is fixed.
// Numeric fields are null when their source transaction did not succeed
// this cycle: never zero, never omitted.
type Telemetry struct {
	PanelVolts   *float64 `json:"panel_volts"`
	PanelAmps    *float64 `json:"panel_amps"`
	PanelWatts   *float64 `json:"panel_watts"`
	BatteryVolts *float64 `json:"battery_volts"`
	BatteryAmps  *float64 `json:"battery_amps"`
	LoadVolts    *float64 `json:"load_volts"`
	LoadAmps     *float64 `json:"load_amps"`
	LoadWatts    *float64 `json:"load_watts"`

	ChargeWatts *float64 `json:"charge_watts"`

	BatteryTemp       *float64 `json:"battery_temp"`
	BatteryTempSource string   `json:"battery_temp_source"`

	StateOfCharge *float64 `json:"state_of_charge"`

	// LastStatus maps block name to last terminal status label.
	LastStatus map[string]string `json:"last_status"`

	RSSI     *int   `json:"rssi"`
	Device   string `json:"device"`
	Hardware string `json:"hardware"`
	Firmware string `json:"firmware"`

	UptimeSeconds int64  `json:"uptime_s"`
	Cycle         uint64 `json:"cycle"`
	PublishOK     bool   `json:"publish_ok"`
}

// Build converts a ledger view into the wire form.
// Pure mapping: no IO, no side effects.
func Build(v View, amb Ambient, now time.Time) Telemetry {
	s := v.Snapshot

	t := Telemetry{
		PanelVolts:   num(s.Live.PanelVolts),
		PanelAmps:    num(s.Live.PanelAmps),
		PanelWatts:   num(s.Live.PanelWatts),
		BatteryVolts: num(s.Live.BatteryVolts),
		BatteryAmps:  num(s.Live.BatteryAmps),
		LoadVolts:    num(s.Live.LoadVolts),
		LoadAmps:     num(s.Live.LoadAmps),
		LoadWatts:    num(s.Live.LoadWatts),

		ChargeWatts: num(s.ChargeWatts),

		BatteryTemp:       num(s.BatteryTemp.Value),
		BatteryTempSource: s.BatteryTemp.Source.String(),

		StateOfCharge: num(s.StateOfCharge),

		RSSI:     amb.RSSI,
		Device:   amb.DeviceID,
		Hardware: amb.Hardware,
		Firmware: amb.Firmware,

		UptimeSeconds: int64(v.Uptime(now) / time.Second),
		Cycle:         s.Cycle,
		PublishOK:     s.PublishOK,
	}

	t.LastStatus = make(map[string]string, len(v.Health))
	for _, bh := range v.Health {
		t.LastStatus[bh.Block] = bh.Last.String()
	}

	return t
}

// Encode serializes a view into the telemetry JSON payload.
func Encode(v View, amb Ambient, now time.Time) ([]byte, error) {
	return json.Marshal(Build(v, amb, now))
}

func num(val Value) *float64 {
	if !val.Valid {
		return nil
	}
	f := val.V
	return &f
}
