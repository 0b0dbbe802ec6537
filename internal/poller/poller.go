// internal/poller/poller.go
package poller

import (
	"errors"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/tamzrod/tracer-agent/internal/publish"
	"github.com/tamzrod/tracer-agent/internal/status"
)

// Poller is the cycle orchestrator. It owns all snapshot mutation:
// once per cycle it transacts the fixed block sequence, folds the results
// into the ledger and hands the finished payload to the publisher.
type Poller struct {
	exec    *Executor
	ledger  *status.Ledger
	pub     publish.Publisher
	topic   string
	retain  bool
	ambient func() status.Ambient

	now func() time.Time

	cycle     uint64
	publishOK bool
}

// New creates a poller with immutable wiring.
func New(exec *Executor, ledger *status.Ledger, pub publish.Publisher, topic string, retain bool, ambient func() status.Ambient) (*Poller, error) {
	if exec == nil {
		return nil, errors.New("poller: executor required")
	}
	if ledger == nil {
		return nil, errors.New("poller: ledger required")
	}
	if pub == nil {
		return nil, errors.New("poller: publisher required")
	}
	if topic == "" {
		return nil, errors.New("poller: topic required")
	}
	if ambient == nil {
		ambient = func() status.Ambient { return status.Ambient{} }
	}
	return &Poller{
		exec:    exec,
		ledger:  ledger,
		pub:     pub,
		topic:   topic,
		retain:  retain,
		ambient: ambient,
		now:     time.Now,
	}, nil
}

// PollOnce performs exactly one poll cycle: every metric starts invalid,
// each block updates as a unit, and the publish handoff always runs, even
// for an all-invalid cycle. A failed publish is recorded and left for the
// next scheduled cycle; nothing is retried mid-interval.
func (p *Poller) PollOnce() {
	now := p.now()
	var snap status.Snapshot

	// live block
	regs, code := p.exec.ReadBlock(BlockLive)
	p.ledger.RecordAttempt(BlockLive.Name, code, now)
	if code.OK() {
		snap.Live = decodeLive(regs)
	}

	// charging power pair
	regs, code = p.exec.ReadBlock(BlockChargePower)
	p.ledger.RecordAttempt(BlockChargePower.Name, code, now)
	if code.OK() {
		snap.ChargeWatts = status.Of(chargePair(regs[0], regs[1]))
	}

	// battery temperature fallback chain
	snap.BatteryTemp = p.readTemperature(now)

	// state of charge
	regs, code = p.exec.ReadBlock(BlockSOC)
	p.ledger.RecordAttempt(BlockSOC.Name, code, now)
	if code.OK() {
		snap.StateOfCharge = status.Of(float64(regs[0]))
	}

	p.cycle++
	snap.Cycle = p.cycle
	snap.PublishOK = p.publishOK // previous outcome until this one resolves

	p.ledger.Commit(snap)

	payload, err := status.Encode(p.ledger.View(), p.ambient(), p.now())
	ok := false
	if err != nil {
		log.WithError(err).Error("telemetry encode failed")
	} else {
		ok = p.pub.Publish(p.topic, payload, p.retain)
	}
	if !ok {
		log.WithField("cycle", p.cycle).Warn("telemetry publish failed, next cycle will retry")
	}

	p.publishOK = ok
	p.ledger.SetPublishResult(ok)

	log.WithFields(log.Fields{
		"cycle":     p.cycle,
		"temp_src":  snap.BatteryTemp.Source.String(),
		"published": ok,
	}).Debug("poll cycle complete")
}
