package core

import "errors"

// ErrNoDriver is returned when a Hardware bundle is missing a driver
var ErrNoDriver = errors.New("hardware driver not configured")

// TickClock is the abstract 8-bit timer that core code uses.
// Platform-specific implementations handle actual hardware control.
type TickClock interface {
	// Reset sets the free-running counter back to zero
	Reset()

	// Start lets the counter increment at the prescaled tick rate
	Start()

	// Stop freezes the counter at its current value
	Stop()

	// Counter returns the low-order counter value
	Counter() uint8

	// SetCompare programs the compare-match value
	SetCompare(value uint8)

	// EnableOverflowIRQ routes counter wraparound to HandleOverflow
	EnableOverflowIRQ()

	// EnableCompareIRQ routes compare-match to HandleCompareMatch
	EnableCompareIRQ()

	// DisableIRQs masks both overflow and compare-match interrupts
	DisableIRQs()
}

// EdgeInput is the abstract edge-triggered input pin.
type EdgeInput interface {
	// Enable routes the selected edge to HandleEdge
	Enable()

	// Disable stops edge interrupts
	Disable()

	// ListenRising selects the rising edge
	ListenRising()

	// ListenFalling selects the falling edge
	ListenFalling()
}

// PulsePin is the output pin the regenerated pulse is driven on.
type PulsePin interface {
	High()
	Low()
}

// Hardware bundles the drivers a Controller needs.
type Hardware struct {
	Clock  TickClock
	Input  EdgeInput
	Output PulsePin
}

// missingDriver names the absent driver and unwraps to ErrNoDriver
type missingDriver string

func (m missingDriver) Error() string { return string(m) + ": " + ErrNoDriver.Error() }

func (m missingDriver) Unwrap() error { return ErrNoDriver }

func (hw Hardware) validate() error {
	switch {
	case hw.Clock == nil:
		return missingDriver("tick clock")
	case hw.Input == nil:
		return missingDriver("edge input")
	case hw.Output == nil:
		return missingDriver("pulse pin")
	}
	return nil
}
