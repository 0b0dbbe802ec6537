// internal/web/page.go
package web

import (
	"fmt"
	"html/template"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/tamzrod/tracer-agent/internal/status"
)

// Absent metrics render as a dash. Zero is a legitimate reading and is
// never used to mean "no data".
const noData = "—"

type metricRow struct {
	Name  string
	Value string
}

type blockRow struct {
	Name    string
	Success uint64
	Fail    uint64
	Last    string
}

type pageData struct {
	Device   string
	Hardware string
	Firmware string
	RSSI     string

	Metrics    []metricRow
	TempSource string
	Blocks     []blockRow

	Cycle       uint64
	Uptime      string
	LastSuccess string
	PublishOK   bool
	BrokerUp    bool
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	v := s.ledger.View()
	amb := s.ambient()
	now := time.Now()
	snap := v.Snapshot

	data := pageData{
		Device:   amb.DeviceID,
		Hardware: amb.Hardware,
		Firmware: amb.Firmware,
		RSSI:     noData,

		TempSource: snap.BatteryTemp.Source.String(),

		Cycle:       snap.Cycle,
		Uptime:      v.Uptime(now).Round(time.Second).String(),
		LastSuccess: noData,
		PublishOK:   snap.PublishOK,
	}

	if amb.RSSI != nil {
		data.RSSI = fmt.Sprintf("%d dBm", *amb.RSSI)
	}
	if !v.LastSuccess.IsZero() {
		data.LastSuccess = now.Sub(v.LastSuccess).Round(time.Second).String() + " ago"
	}
	if s.pub != nil {
		data.BrokerUp = s.pub.Connected()
	}

	data.Metrics = []metricRow{
		{"Panel voltage", unit(snap.Live.PanelVolts, "V")},
		{"Panel current", unit(snap.Live.PanelAmps, "A")},
		{"Panel power", unit(snap.Live.PanelWatts, "W")},
		{"Battery voltage", unit(snap.Live.BatteryVolts, "V")},
		{"Battery current", unit(snap.Live.BatteryAmps, "A")},
		{"Load voltage", unit(snap.Live.LoadVolts, "V")},
		{"Load current", unit(snap.Live.LoadAmps, "A")},
		{"Load power", unit(snap.Live.LoadWatts, "W")},
		{"Charge power", unit(snap.ChargeWatts, "W")},
		{"Battery temperature", unit(snap.BatteryTemp.Value, "°C")},
		{"State of charge", unit(snap.StateOfCharge, "%")},
	}

	for _, bh := range v.Health {
		data.Blocks = append(data.Blocks, blockRow{
			Name:    bh.Block,
			Success: bh.Success,
			Fail:    bh.Fail,
			Last:    bh.Last.String(),
		})
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplate.Execute(w, data); err != nil {
		log.WithError(err).Error("status page render failed")
	}
}

func unit(v status.Value, suffix string) string {
	if !v.Valid {
		return noData
	}
	return fmt.Sprintf("%.2f %s", v.V, suffix)
}

var pageTemplate = template.Must(template.New("status").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta http-equiv="refresh" content="10">
<title>{{.Device}} &middot; solar telemetry</title>
<style>
body { font-family: sans-serif; margin: 2em; color: #222; }
table { border-collapse: collapse; margin-bottom: 2em; }
th, td { border: 1px solid #ccc; padding: 0.3em 0.8em; text-align: left; }
th { background: #f0f0f0; }
.ok { color: #2a7b2a; }
.bad { color: #b03030; }
small { color: #777; }
</style>
</head>
<body>
<h1>{{.Device}}</h1>
<p><small>host {{.Hardware}} &middot; firmware {{.Firmware}} &middot; signal {{.RSSI}} &middot;
uptime {{.Uptime}} &middot; cycle {{.Cycle}}</small></p>

<table>
<tr><th>Metric</th><th>Value</th></tr>
{{range .Metrics}}<tr><td>{{.Name}}</td><td>{{.Value}}</td></tr>
{{end}}<tr><td>Temperature source</td><td>{{.TempSource}}</td></tr>
</table>

<table>
<tr><th>Register block</th><th>OK</th><th>Failed</th><th>Last status</th></tr>
{{range .Blocks}}<tr><td>{{.Name}}</td><td>{{.Success}}</td><td>{{.Fail}}</td><td>{{.Last}}</td></tr>
{{end}}</table>

<p>Last successful transaction: {{.LastSuccess}}<br>
Publish: {{if .PublishOK}}<span class="ok">ok</span>{{else}}<span class="bad">failed</span>{{end}} &middot;
Broker: {{if .BrokerUp}}<span class="ok">connected</span>{{else}}<span class="bad">down</span>{{end}}</p>

<form method="post" action="/reboot">
<button type="submit">Reboot agent</button>
</form>
</body>
</html>
`))
