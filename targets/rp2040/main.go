//go:build rp2040

package main

import (
	"device/rp"
	"machine"
	"runtime/interrupt"
	"time"

	"ppmx/core"
)

// Board wiring (RP2040-Zero style: WS2812 on GPIO16)
const (
	servoInPin  = machine.GPIO2
	servoOutPin = machine.GPIO3
	loopbackPin = machine.GPIO4 // jumper to servoInPin for loopback builds
	statusPin   = machine.GPIO16
)

var (
	ctrl      *core.Controller
	telemetry *core.Telemetry
	status    *statusLED
	selfTest  bool
	bench     *loopback
)

func main() {
	// Disable watchdog on boot to clear any previous state
	err := machine.Watchdog.Configure(machine.WatchdogConfig{TimeoutMillis: 0})
	if err != nil {
		return
	}

	InitUSB()
	InitDebugUART()
	core.SetDebugWriter(DebugPrintln)

	status = newStatusLED(statusPin)

	servoOutPin.Configure(machine.PinConfig{Mode: machine.PinOutput})
	servoOutPin.Low()

	hw := core.Hardware{
		Clock:  newPWMTickClock(),
		Input:  newGPIOEdgeInput(servoInPin),
		Output: servoOutPin,
	}

	// No Idle hook: WFI could sleep through a latch set just before it
	cfg := core.Config{
		OnCycle: onCycle,
	}
	mode := GetMode()
	if mode.SelfTest {
		selfTest = true
		cfg.Source = core.NewSweepSource(core.DefaultThresholds)
	}

	telemetry = core.NewTelemetry(writeUSB)

	ctrl, err = core.NewController(hw, cfg)
	if err != nil {
		DebugPrintln(err.Error())
		fault()
	}
	telemetry.Attach(ctrl)

	interrupt.New(rp.IRQ_PWM_IRQ_WRAP, handlePWMWrap).Enable()

	if mode.Loopback {
		bench, err = newLoopback(loopbackPin, ctrl.Thresholds())
		if err != nil {
			DebugPrintln("loopback: " + err.Error())
			fault()
		}
	}

	// Give the host a moment to open the port before the hello
	time.Sleep(500 * time.Millisecond)
	telemetry.SendHello(ctrl.Thresholds())

	ctrl.Run()
}

func onCycle(r core.CycleReport) {
	switch {
	case selfTest:
		status.show(colorSelfTest)
	case r.Accepted:
		status.show(colorValid)
	default:
		status.show(colorRejected)
	}
	telemetry.OnCycle(r)
	if bench != nil {
		bench.feed()
	}
}

// fault shows the fault color and dumps the event ring forever
func fault() {
	status.show(colorFault)
	for {
		core.DumpEventRing()
		time.Sleep(5 * time.Second)
	}
}
