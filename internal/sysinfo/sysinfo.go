// internal/sysinfo/sysinfo.go
package sysinfo

import (
	"bufio"
	"bytes"
	"os"
	"strconv"
	"strings"

	"github.com/tamzrod/tracer-agent/internal/status"
)

// FirmwareVersion is stamped into every telemetry payload and shown on
// the status page.
const FirmwareVersion = "1.4.2"

// Provider reads the ambient signals that ride along with every
// telemetry payload: process identity and uplink radio state. All reads
// are best-effort; an unreadable source just yields an absent value.
type Provider struct {
	deviceID string
	iface    string

	// probe roots, overridden in tests
	wirelessPath string
	operstateDir string
}

// New creates a provider. iface may be empty: the agent then assumes a
// wired or externally managed uplink (always connected, no RSSI).
func New(deviceID, iface string) *Provider {
	return &Provider{
		deviceID:     deviceID,
		iface:        iface,
		wirelessPath: "/proc/net/wireless",
		operstateDir: "/sys/class/net",
	}
}

// Ambient assembles the identity and radio fields for one payload.
func (p *Provider) Ambient() status.Ambient {
	host, _ := os.Hostname()
	return status.Ambient{
		DeviceID: p.deviceID,
		Hardware: host,
		Firmware: FirmwareVersion,
		RSSI:     p.signalStrength(),
	}
}

// Connected reports whether the uplink interface is operationally up.
// Implements the poll runner's network gate.
func (p *Provider) Connected() bool {
	if p.iface == "" {
		return true
	}
	raw, err := os.ReadFile(p.operstateDir + "/" + p.iface + "/operstate")
	if err != nil {
		return false
	}
	state := strings.TrimSpace(string(raw))
	// "unknown" covers drivers that never report carrier, common on
	// embedded wireless uplinks.
	return state == "up" || state == "unknown"
}

// signalStrength parses the interface's signal level out of
// /proc/net/wireless. nil when the interface is absent or wired.
func (p *Provider) signalStrength() *int {
	if p.iface == "" {
		return nil
	}
	raw, err := os.ReadFile(p.wirelessPath)
	if err != nil {
		return nil
	}

	sc := bufio.NewScanner(bytes.NewReader(raw))
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) < 4 || !strings.HasPrefix(fields[0], p.iface+":") {
			continue
		}
		// Quality columns: link, level, noise; level is dBm with a
		// trailing dot, e.g. "-56."
		level := strings.TrimSuffix(fields[3], ".")
		dbm, err := strconv.Atoi(level)
		if err != nil {
			return nil
		}
		return &dbm
	}
	return nil
}
