// cmd/simulator/main.go
//
// Bench stand-in for the charge controller. Serves the agent's register
// map over Modbus TCP with slowly drifting values, so the full pipeline
// can be exercised without hardware (source.transport: tcp).
package main

import (
	"flag"
	"math"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/tbrandon/mbserver"
)

// Register addresses mirror the controller map the agent polls.
const (
	regLiveBase   = 0x3100
	regChargeLow  = 0x3106
	regChargeHigh = 0x3107
	regTempRemote = 0x3110
	regSOC        = 0x311A
	regTempProbe  = 0x311B
	regTempStatus = 0x3200
)

func main() {
	listen := flag.String("listen", ":1502", "modbus tcp listen address")
	probeZero := flag.Bool("probe-zero", false, "report 0 from the probe register (sensor absent)")
	remoteZero := flag.Bool("remote-zero", false, "report 0/0 from the remote sensor pair")
	flag.Parse()

	serv := mbserver.NewServer()
	if err := serv.ListenTCP(*listen); err != nil {
		log.Fatalf("listen failed: %v", err)
	}
	defer serv.Close()

	log.WithField("listen", *listen).Info("simulator serving")

	start := time.Now()
	tick := time.NewTicker(time.Second)
	defer tick.Stop()

	for range tick.C {
		update(serv, time.Since(start), *probeZero, *remoteZero)
	}
}

// update rewrites the input register image with values that drift on a
// slow sine so consecutive polls differ.
func update(serv *mbserver.Server, elapsed time.Duration, probeZero, remoteZero bool) {
	phase := elapsed.Seconds() / 120 * 2 * math.Pi
	drift := func(base, swing float64) uint16 {
		return uint16(base + swing*math.Sin(phase))
	}

	regs := serv.InputRegisters

	// Live block, all values scaled by 100.
	regs[regLiveBase+0x0] = drift(1850, 300)  // panel volts
	regs[regLiveBase+0x1] = drift(120, 60)    // panel amps
	regs[regLiveBase+0x4] = drift(1340, 20)   // battery volts
	regs[regLiveBase+0x5] = drift(150, 70)    // battery amps
	regs[regLiveBase+0xC] = drift(1338, 18)   // load volts
	regs[regLiveBase+0xD] = drift(80, 40)     // load amps

	// Derived powers, kept roughly consistent with V*A.
	panelW := uint32(regs[regLiveBase+0x0]) * uint32(regs[regLiveBase+0x1]) / 100
	regs[regLiveBase+0x2] = uint16(panelW)
	regs[regLiveBase+0x3] = uint16(panelW >> 16)
	loadW := uint32(regs[regLiveBase+0xC]) * uint32(regs[regLiveBase+0xD]) / 100
	regs[regLiveBase+0xE] = uint16(loadW)
	regs[regLiveBase+0xF] = uint16(loadW >> 16)

	chargeW := uint32(regs[regLiveBase+0x4]) * uint32(regs[regLiveBase+0x5]) / 100
	regs[regChargeLow] = uint16(chargeW)
	regs[regChargeHigh] = uint16(chargeW >> 16)

	regs[regSOC] = drift(75, 15)

	if probeZero {
		regs[regTempProbe] = 0
	} else {
		regs[regTempProbe] = drift(24, 4)
	}

	if remoteZero {
		regs[regTempRemote] = 0
		regs[regTempRemote+1] = 0
	} else {
		regs[regTempRemote] = drift(2450, 350)
		regs[regTempRemote+1] = 0
	}

	// Battery status word with the temperature nibble in bits 4..7.
	regs[regTempStatus] = uint16(regs[regTempProbe]&0x0F) << 4
}
