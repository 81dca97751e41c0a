//go:build attiny85

// Firmware for an ATtiny85 at 8 MHz: servo input on PB2 (INT0), extended
// servo output on PB4, Timer0 at clk/8 as the tick clock.
package main

// 0.94 is the 1.13/1.2 trim of the default calibration applied to the
// 1 tick/us of 8 MHz / 8.
//go:generate go run ../../host/cmd/ppmx-ticks -factor 0.94 -tags attiny85 -o thresholds.go

import (
	"device/avr"
	"machine"
	"runtime/interrupt"

	"ppmx/core"
)

const (
	servoInPin  = machine.PB2
	servoOutPin = machine.PB4
)

var ctrl *core.Controller

func main() {
	setup()

	var err error
	ctrl, err = core.NewController(core.Hardware{
		Clock:  timer0{},
		Input:  int0{},
		Output: servoOutPin,
	}, core.Config{
		Thresholds: thresholds,
		Source:     inputSource(),
		Idle:       idle,
	})
	if err != nil {
		// Nothing to report to; leave the output low
		for {
			idle()
		}
	}

	interrupt.New(avr.IRQ_INT0, func(interrupt.Interrupt) {
		ctrl.HandleEdge()
	})
	interrupt.New(avr.IRQ_TIMER0_OVF, func(interrupt.Interrupt) {
		ctrl.HandleOverflow()
	})
	interrupt.New(avr.IRQ_TIMER0_COMPA, func(interrupt.Interrupt) {
		ctrl.HandleCompareMatch()
	})
	avr.Asm("sei")

	ctrl.Run()
}

func setup() {
	// Run the core at the full 8 MHz regardless of the CKDIV8 fuse
	avr.CLKPR.Set(avr.CLKPR_CLKPCE)
	avr.CLKPR.Set(0)

	servoOutPin.Configure(machine.PinConfig{Mode: machine.PinOutput})
	servoOutPin.Low()
	// Input without pull-up; the receiver drives the line
	servoInPin.Configure(machine.PinConfig{Mode: machine.PinInput})

	// Timer0 normal mode, stopped
	avr.TCCR0A.Set(0)
	avr.TCCR0B.Set(0)
	avr.TIMSK.ClearBits(avr.TIMSK_TOIE0 | avr.TIMSK_OCIE0A | avr.TIMSK_OCIE0B)
}

func idle() {
	avr.Asm("nop")
}
