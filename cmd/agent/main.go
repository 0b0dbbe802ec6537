// cmd/agent/main.go
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/tamzrod/tracer-agent/internal/config"
	"github.com/tamzrod/tracer-agent/internal/firmware"
	"github.com/tamzrod/tracer-agent/internal/poller"
	"github.com/tamzrod/tracer-agent/internal/publish/mqtt"
	"github.com/tamzrod/tracer-agent/internal/status"
	"github.com/tamzrod/tracer-agent/internal/sysinfo"
	"github.com/tamzrod/tracer-agent/internal/watchdog"
	"github.com/tamzrod/tracer-agent/internal/web"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("usage: agent <config.yaml>")
	}

	// --------------------
	// Load + validate config
	// --------------------

	cfg, err := config.Load(os.Args[1])
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}
	if err := config.Validate(cfg); err != nil {
		log.Fatalf("config validation failed: %v", err)
	}
	config.Normalize(cfg)

	agent := cfg.Agent

	if lvl, err := log.ParseLevel(agent.Log.Level); err == nil {
		log.SetLevel(lvl)
	}

	started := time.Now()

	// restart hands the process back to the service supervisor. The
	// non-zero exit makes the restart visible in the supervisor logs.
	restart := func(reason string) {
		log.WithField("reason", reason).Error("agent restarting")
		os.Exit(1)
	}

	// --------------------
	// Collaborators
	// --------------------

	sys := sysinfo.New(agent.Identity.ID, agent.Network.Interface)

	pub, err := mqtt.Connect(mqtt.Config{
		Broker:   agent.MQTT.Broker,
		ClientID: agent.MQTT.ClientID,
		Username: agent.MQTT.Username,
		Password: agent.MQTT.Password,
		Timeout:  time.Duration(agent.MQTT.TimeoutMs) * time.Millisecond,
	})
	if err != nil {
		log.Fatalf("mqtt setup failed: %v", err)
	}
	defer pub.Close()

	ledger := status.NewLedger(poller.BlockNames(), started)

	// --------------------
	// Polling engine
	// --------------------

	p, closeBus, err := poller.Build(agent, ledger, pub, sys.Ambient)
	if err != nil {
		log.Fatalf("poller build failed: %v", err)
	}
	defer func() { _ = closeBus() }()

	wd := watchdog.New(started,
		time.Duration(agent.Watchdog.MaxSilenceMs)*time.Millisecond,
		time.Duration(agent.Watchdog.MaxUptimeHours)*time.Hour)

	// --------------------
	// Admin HTTP
	// --------------------

	var updater firmware.Updater
	if agent.HTTP.FirmwarePath != "" {
		staging, err := firmware.NewStaging(agent.HTTP.FirmwarePath, restart)
		if err != nil {
			log.Fatalf("firmware staging setup failed: %v", err)
		}
		updater = staging
	}

	srv := web.NewServer(ledger, sys.Ambient, pub, updater, restart)
	srv.Start(agent.HTTP.Listen)

	// --------------------
	// Control loop
	// --------------------

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	runner := poller.NewRunner(p, ledger,
		time.Duration(agent.Poll.IntervalMs)*time.Millisecond,
		sys, wd, restart)

	log.WithField("device", agent.Identity.ID).Info("agent started")
	runner.Run(ctx)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := srv.Stop(shutdownCtx); err != nil {
		log.WithError(err).Warn("admin http shutdown error")
	}
	log.Info("agent stopped")
}
