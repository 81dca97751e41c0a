//go:build tinygo

package core

import "runtime/interrupt"

// State is the saved global interrupt flag
type State = interrupt.State

// disableInterrupts masks every ISR (cli on AVR, PRIMASK on Cortex-M)
// and returns the previous state for restoreInterrupts
func disableInterrupts() State {
	return interrupt.Disable()
}

func restoreInterrupts(state State) {
	interrupt.Restore(state)
}
