// internal/sysinfo/sysinfo_test.go
package sysinfo

import (
	"os"
	"path/filepath"
	"testing"
)

const wirelessSample = `Inter-| sta-|   Quality        |   Discarded packets               | Missed | WE
 face | tus | link level noise |  nwid  crypt   frag  retry   misc | beacon | 22
 wlan0: 0000   54.  -56.  -256        0      0      0      0      0        0
`

func TestSignalStrength_ParsesLevel(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "wireless")
	if err := os.WriteFile(path, []byte(wirelessSample), 0o644); err != nil {
		t.Fatal(err)
	}

	p := New("tracer-1", "wlan0")
	p.wirelessPath = path

	rssi := p.signalStrength()
	if rssi == nil || *rssi != -56 {
		t.Fatalf("rssi = %v, want -56", rssi)
	}
}

func TestSignalStrength_AbsentInterface(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "wireless")
	if err := os.WriteFile(path, []byte(wirelessSample), 0o644); err != nil {
		t.Fatal(err)
	}

	p := New("tracer-1", "eth0")
	p.wirelessPath = path

	if rssi := p.signalStrength(); rssi != nil {
		t.Fatalf("rssi = %v for interface without radio, want nil", rssi)
	}
}

func TestConnected_OperstateProbe(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "wlan0"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "wlan0", "operstate"), []byte("up\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	p := New("tracer-1", "wlan0")
	p.operstateDir = dir

	if !p.Connected() {
		t.Fatalf("Connected() = false for operstate up")
	}

	if err := os.WriteFile(filepath.Join(dir, "wlan0", "operstate"), []byte("down\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if p.Connected() {
		t.Fatalf("Connected() = true for operstate down")
	}
}

func TestConnected_NoInterfaceAssumesUp(t *testing.T) {
	p := New("tracer-1", "")
	if !p.Connected() {
		t.Fatalf("empty interface must assume connected")
	}
	if p.signalStrength() != nil {
		t.Fatalf("empty interface must have no rssi")
	}
}
