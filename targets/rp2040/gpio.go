//go:build rp2040

package main

import "machine"

// gpioEdgeInput watches the servo input pin for one edge direction at
// a time through the bank 0 GPIO interrupt
type gpioEdgeInput struct {
	pin     machine.Pin
	rising  bool
	enabled bool
}

func newGPIOEdgeInput(pin machine.Pin) *gpioEdgeInput {
	// The receiver drives the line; no pull
	pin.Configure(machine.PinConfig{Mode: machine.PinInput})
	return &gpioEdgeInput{pin: pin, rising: true}
}

// arm replaces the pin callback; TinyGo refuses a second callback
// until the first is cleared
func (e *gpioEdgeInput) arm() {
	_ = e.pin.SetInterrupt(machine.PinRising|machine.PinFalling, nil)
	if !e.enabled {
		return
	}
	change := machine.PinFalling
	if e.rising {
		change = machine.PinRising
	}
	_ = e.pin.SetInterrupt(change, handleEdge)
}

func (e *gpioEdgeInput) Enable() {
	e.enabled = true
	e.arm()
}

func (e *gpioEdgeInput) Disable() {
	e.enabled = false
	e.arm()
}

func (e *gpioEdgeInput) ListenRising() {
	e.rising = true
	e.arm()
}

func (e *gpioEdgeInput) ListenFalling() {
	e.rising = false
	e.arm()
}

func handleEdge(machine.Pin) {
	ctrl.HandleEdge()
}
