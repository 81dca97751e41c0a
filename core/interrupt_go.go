//go:build !tinygo

package core

import "sync/atomic"

// State is a placeholder for interrupt state on regular Go
type State uintptr

// masked tracks the emulated global interrupt flag so host-side
// peripherals can hold back ISR dispatch inside critical sections.
var masked uint32

// disableInterrupts masks the emulated interrupt flag and returns the
// previous state
func disableInterrupts() State {
	return State(atomic.SwapUint32(&masked, 1))
}

// restoreInterrupts restores the emulated interrupt flag
func restoreInterrupts(state State) {
	atomic.StoreUint32(&masked, uint32(state))
}

// InterruptsEnabled reports whether ISRs may run. Only available on
// regular Go, where simulated hardware consults it before dispatching.
func InterruptsEnabled() bool {
	return atomic.LoadUint32(&masked) == 0
}
