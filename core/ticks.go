package core

import "errors"

// ErrInvalidThresholds is returned when tick thresholds are inconsistent
var ErrInvalidThresholds = errors.New("invalid tick thresholds")

// TickCount is elapsed timer ticks since a timing window began:
// the overflow count in the high byte, the hardware counter in the low byte.
type TickCount uint16

// ComposeTicks extends the 8-bit counter with the overflow count
func ComposeTicks(overflows, counter uint8) TickCount {
	return TickCount(overflows)<<8 | TickCount(counter)
}

// Split returns the expected overflow count (high byte) and the
// compare-match value (low byte) for an output target
func (t TickCount) Split() (expected uint8, compare uint8) {
	return uint8(t >> 8), uint8(t & 0xFF)
}

// Thresholds are the build-time tick bounds.
type Thresholds struct {
	InMin  TickCount // shortest accepted input pulse
	InMax  TickCount // longest accepted input pulse
	Mid    TickCount // center, maps center to center
	OutMin TickCount // shortest generated pulse
	OutMax TickCount // longest generated pulse
}

// DefaultThresholds are the tick values of the reference build:
// 1000/2000/1500 us input and 550/2650 us output bounds at a
// 1.13 ticks-per-microsecond calibration (see ppmx-ticks).
var DefaultThresholds = Thresholds{
	InMin:  1130,
	InMax:  2260,
	Mid:    1694,
	OutMin: 621,
	OutMax: 2994,
}

// thresholdError carries the offending values and unwraps to ErrInvalidThresholds
type thresholdError struct {
	reason string
	th     Thresholds
}

func (e *thresholdError) Error() string {
	return ErrInvalidThresholds.Error() + ": " + e.reason +
		" (in=" + utoa(uint32(e.th.InMin)) + ".." + utoa(uint32(e.th.InMax)) +
		" mid=" + utoa(uint32(e.th.Mid)) +
		" out=" + utoa(uint32(e.th.OutMin)) + ".." + utoa(uint32(e.th.OutMax)) + ")"
}

func (e *thresholdError) Unwrap() error { return ErrInvalidThresholds }

// Validate checks InMin < Mid < InMax, OutMin <= Mid <= OutMax and
// OutMin >= 1. A zero target has no compare value below the first
// wraparound, so it would come out as a full 256-tick pulse.
func (th Thresholds) Validate() error {
	switch {
	case th.InMin >= th.Mid || th.Mid >= th.InMax:
		return &thresholdError{reason: "input bounds must bracket mid", th: th}
	case th.OutMin > th.Mid || th.Mid > th.OutMax:
		return &thresholdError{reason: "output bounds must contain mid", th: th}
	case th.OutMin == 0:
		return &thresholdError{reason: "output minimum must be at least one tick", th: th}
	}
	return nil
}

// Accepts reports whether a measured pulse is within [InMin, InMax]
func (th Thresholds) Accepts(t TickCount) bool {
	return t >= th.InMin && t <= th.InMax
}

// IsZero reports whether no thresholds were configured
func (th Thresholds) IsZero() bool {
	return th == Thresholds{}
}
