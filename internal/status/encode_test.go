// internal/status/encode_test.go
package status

import (
	"encoding/json"
	"testing"
	"time"
)

func TestEncode_InvalidMetricsAreNull(t *testing.T) {
	started := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	l := NewLedger([]string{"live", "soc"}, started)

	// Valid SOC of exactly zero must survive as 0, not null.
	l.Commit(Snapshot{
		StateOfCharge: Of(0),
		BatteryTemp:   Temperature{Value: Invalid(), Source: TempSourceNone},
		Cycle:         3,
	})
	l.RecordAttempt("soc", CodeOK, started)
	l.RecordAttempt("live", CodeTimeout, started)

	raw, err := Encode(l.View(), Ambient{DeviceID: "tracer-1", Firmware: "1.2.0"}, started.Add(90*time.Second))
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		t.Fatalf("payload not valid JSON: %v", err)
	}

	if v, present := m["panel_volts"]; !present || v != nil {
		t.Fatalf("panel_volts = %v (present=%v), want explicit null", v, present)
	}
	if v, present := m["battery_temp"]; !present || v != nil {
		t.Fatalf("battery_temp = %v (present=%v), want explicit null", v, present)
	}
	if v := m["state_of_charge"]; v != float64(0) {
		t.Fatalf("state_of_charge = %v, want 0", v)
	}
	if v := m["battery_temp_source"]; v != "none" {
		t.Fatalf("battery_temp_source = %v, want none", v)
	}
	if v := m["rssi"]; v != nil {
		t.Fatalf("rssi = %v, want null when unavailable", v)
	}
	if v := m["uptime_s"]; v != float64(90) {
		t.Fatalf("uptime_s = %v, want 90", v)
	}

	ls, ok := m["last_status"].(map[string]any)
	if !ok {
		t.Fatalf("last_status missing")
	}
	if ls["live"] != "timeout" || ls["soc"] != "ok" {
		t.Fatalf("last_status = %v", ls)
	}
}

func TestBuild_CarriesSourceAndIdentity(t *testing.T) {
	started := time.Now()
	l := NewLedger([]string{"live"}, started)
	l.Commit(Snapshot{
		BatteryTemp: Temperature{Value: Of(24.5), Source: TempSourceRemote},
		Cycle:       7,
		PublishOK:   true,
	})

	rssi := -61
	tel := Build(l.View(), Ambient{
		DeviceID: "shed-tracer",
		Hardware: "gw-02",
		Firmware: "1.2.0",
		RSSI:     &rssi,
	}, started)

	if tel.BatteryTemp == nil || *tel.BatteryTemp != 24.5 {
		t.Fatalf("BatteryTemp = %v", tel.BatteryTemp)
	}
	if tel.BatteryTempSource != "remote" {
		t.Fatalf("BatteryTempSource = %q", tel.BatteryTempSource)
	}
	if tel.RSSI == nil || *tel.RSSI != -61 {
		t.Fatalf("RSSI = %v", tel.RSSI)
	}
	if tel.Device != "shed-tracer" || tel.Hardware != "gw-02" || tel.Firmware != "1.2.0" {
		t.Fatalf("identity = %q/%q/%q", tel.Device, tel.Hardware, tel.Firmware)
	}
	if tel.Cycle != 7 || !tel.PublishOK {
		t.Fatalf("cycle/publish = %d/%v", tel.Cycle, tel.PublishOK)
	}
}
