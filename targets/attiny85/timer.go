//go:build attiny85

package main

import "device/avr"

// timer0 is the 8-bit tick clock: TCNT0 counts at clk/8, TOV0 is the
// overflow interrupt and OCR0A the compare-match interrupt
type timer0 struct{}

func (timer0) Reset() {
	avr.TCNT0.Set(0)
}

func (timer0) Start() {
	avr.TCCR0B.SetBits(avr.TCCR0B_CS01)
}

func (timer0) Stop() {
	avr.TCCR0B.ClearBits(avr.TCCR0B_CS00 | avr.TCCR0B_CS01 | avr.TCCR0B_CS02)
}

func (timer0) Counter() uint8 {
	return avr.TCNT0.Get()
}

func (timer0) SetCompare(value uint8) {
	avr.OCR0A.Set(value)
}

// Pending flags are cleared by writing a one
func (timer0) EnableOverflowIRQ() {
	avr.TIFR.Set(avr.TIFR_TOV0)
	avr.TIMSK.SetBits(avr.TIMSK_TOIE0)
}

func (timer0) EnableCompareIRQ() {
	avr.TIFR.Set(avr.TIFR_OCF0A)
	avr.TIMSK.SetBits(avr.TIMSK_OCIE0A)
}

func (timer0) DisableIRQs() {
	avr.TIMSK.ClearBits(avr.TIMSK_TOIE0 | avr.TIMSK_OCIE0A)
}

// int0 is the external interrupt on PB2. ISC01:ISC00 select the edge:
// 11 rising, 10 falling.
type int0 struct{}

func (int0) Enable() {
	avr.GIFR.Set(avr.GIFR_INTF0)
	avr.GIMSK.SetBits(avr.GIMSK_INT0)
}

func (int0) Disable() {
	avr.GIMSK.ClearBits(avr.GIMSK_INT0)
}

func (int0) ListenRising() {
	avr.MCUCR.SetBits(avr.MCUCR_ISC01 | avr.MCUCR_ISC00)
	// Changing the sense bits can raise INTF0
	avr.GIFR.Set(avr.GIFR_INTF0)
}

func (int0) ListenFalling() {
	avr.MCUCR.SetBits(avr.MCUCR_ISC01)
	avr.MCUCR.ClearBits(avr.MCUCR_ISC00)
	avr.GIFR.Set(avr.GIFR_INTF0)
}
