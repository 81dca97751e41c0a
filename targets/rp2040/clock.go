//go:build rp2040

package main

import (
	"runtime/interrupt"
	"runtime/volatile"
	"unsafe"
)

// RP2040 PWM peripheral memory map
const (
	pwmBase        = 0x40050000
	pwmSliceStride = 0x14
	pwmEN          = pwmBase + 0xA0 // CSR_EN alias for all slices
	pwmINTR        = pwmBase + 0xA4 // Raw interrupts, write 1 to clear
	pwmINTE        = pwmBase + 0xA8 // Interrupt enable
	pwmINTS        = pwmBase + 0xB0 // Masked interrupt status
)

// Slice 0 counts ticks; slice 1 runs phase-shifted so that its wrap
// lands on the compare value of slice 0. Both are started and stopped
// together through the EN alias register.
const (
	counterSlice = 0
	compareSlice = 1

	counterBit = 1 << counterSlice
	compareBit = 1 << compareSlice
	sliceBits  = counterBit | compareBit
)

// 125 MHz / 110.625 gives 1.13 ticks per microsecond, the rate the
// default thresholds are calibrated for. DIV is 8.4 fixed point.
const (
	tickDivInt  = 110
	tickDivFrac = 10
)

var (
	pwmEnable    = (*volatile.Register32)(unsafe.Pointer(uintptr(pwmEN)))
	pwmRawIRQ    = (*volatile.Register32)(unsafe.Pointer(uintptr(pwmINTR)))
	pwmIRQEnable = (*volatile.Register32)(unsafe.Pointer(uintptr(pwmINTE)))
	pwmIRQStatus = (*volatile.Register32)(unsafe.Pointer(uintptr(pwmINTS)))
)

// pwmSlice overlays the five registers of one PWM slice
type pwmSlice struct {
	CSR volatile.Register32
	DIV volatile.Register32
	CTR volatile.Register32
	CC  volatile.Register32
	TOP volatile.Register32
}

func getSlice(n uintptr) *pwmSlice {
	return (*pwmSlice)(unsafe.Pointer(uintptr(pwmBase + n*pwmSliceStride)))
}

// pwmTickClock is an 8-bit up-counter with overflow and compare-match
// interrupts built from two PWM slices with TOP = 255
type pwmTickClock struct {
	counter *pwmSlice
	shadow  *pwmSlice
	compare uint8
}

func newPWMTickClock() *pwmTickClock {
	c := &pwmTickClock{
		counter: getSlice(counterSlice),
		shadow:  getSlice(compareSlice),
	}
	pwmEnable.ClearBits(sliceBits)
	for _, s := range []*pwmSlice{c.counter, c.shadow} {
		s.CSR.Set(0) // free-running, not phase-correct, disabled
		s.DIV.Set(tickDivInt<<4 | tickDivFrac)
		s.TOP.Set(0xFF)
		s.CC.Set(0)
		s.CTR.Set(0)
	}
	c.DisableIRQs()
	return c
}

// phase keeps the shadow slice wrapping exactly when the counter
// reaches the compare value
func (c *pwmTickClock) phase() {
	ctr := c.counter.CTR.Get() & 0xFF
	c.shadow.CTR.Set((ctr + 0x100 - uint32(c.compare)) & 0xFF)
}

func (c *pwmTickClock) Reset() {
	c.counter.CTR.Set(0)
	c.phase()
}

func (c *pwmTickClock) Start() {
	pwmEnable.SetBits(sliceBits)
}

func (c *pwmTickClock) Stop() {
	pwmEnable.ClearBits(sliceBits)
}

func (c *pwmTickClock) Counter() uint8 {
	return uint8(c.counter.CTR.Get())
}

func (c *pwmTickClock) SetCompare(value uint8) {
	c.compare = value
	c.phase()
}

func (c *pwmTickClock) EnableOverflowIRQ() {
	pwmRawIRQ.Set(counterBit)
	pwmIRQEnable.SetBits(counterBit)
}

func (c *pwmTickClock) EnableCompareIRQ() {
	pwmRawIRQ.Set(compareBit)
	pwmIRQEnable.SetBits(compareBit)
}

func (c *pwmTickClock) DisableIRQs() {
	pwmIRQEnable.ClearBits(sliceBits)
	pwmRawIRQ.Set(sliceBits)
}

// handlePWMWrap serves the shared PWM wrap vector: overflow first, then
// compare, the same order the AVR vector table gives
func handlePWMWrap(interrupt.Interrupt) {
	status := pwmIRQStatus.Get() & sliceBits
	pwmRawIRQ.Set(status)
	if status&counterBit != 0 {
		ctrl.HandleOverflow()
	}
	if status&compareBit != 0 {
		ctrl.HandleCompareMatch()
	}
}
