//go:build !tinygo

// Package sim is a tick-accurate model of the peripherals the pulse
// controller runs on: an 8-bit timer with overflow and compare-match
// interrupts, an edge interrupt on the input pin and a push-pull output.
// It lets core run on a host, deterministically, one timer tick at a time.
package sim

import (
	"errors"

	"ppmx/core"
)

// ErrStalled is the panic value raised when the controller waits longer
// than StallLimit ticks without any pin activity.
var ErrStalled = errors.New("sim: controller stalled without pin activity")

// DefaultStallLimit is long enough for the widest 16-bit pulse plus gaps
const DefaultStallLimit = 1 << 20

// DefaultGap is the number of ticks between arming the edge detector and
// the next queued rising edge
const DefaultGap = 16

// ISRs are the interrupt entry points the machine dispatches to
type ISRs interface {
	HandleEdge()
	HandleOverflow()
	HandleCompareMatch()
}

type edge struct {
	at    uint64
	level bool
}

// Machine models one microcontroller running the controller
type Machine struct {
	// Gap is the delay before a queued pulse starts once capture is armed
	Gap uint64
	// StallLimit bounds consecutive idle ticks without pin activity
	StallLimit uint64

	now uint64
	isr ISRs

	// timer
	counter uint8
	running bool
	compare uint8
	ovfIE   bool
	cmpIE   bool
	ovfFlag bool
	cmpFlag bool

	// edge interrupt
	level       bool
	edgeIE      bool
	senseRising bool
	edgeFlag    bool
	edges       []edge
	queue       []uint32

	// output pin
	outHigh bool
	riseAt  uint64
	pulses  []uint32

	quiet uint64
}

// New returns an idle machine with the input low and the timer stopped
func New() *Machine {
	return &Machine{
		Gap:        DefaultGap,
		StallLimit: DefaultStallLimit,
	}
}

// Attach connects the interrupt vectors
func (m *Machine) Attach(isr ISRs) {
	m.isr = isr
}

// Hardware returns the machine's peripherals as core drivers
func (m *Machine) Hardware() core.Hardware {
	return core.Hardware{
		Clock:  timer{m},
		Input:  edgeInput{m},
		Output: outputPin{m},
	}
}

// Idle is the controller's busy-wait hook: one timer tick per call
func (m *Machine) Idle() {
	m.Tick()
	m.quiet++
	if m.StallLimit > 0 && m.quiet > m.StallLimit {
		panic(ErrStalled)
	}
}

// Tick advances time by one timer tick. Input edges due now are applied
// before the counter moves, so a pulse of width w measures as w ticks.
func (m *Machine) Tick() {
	m.now++
	m.applyEdges()
	m.dispatch()

	if m.running {
		m.counter++
		if m.counter == 0 && m.ovfIE {
			m.ovfFlag = true
		}
		if m.counter == m.compare && m.cmpIE {
			m.cmpFlag = true
		}
	}
	m.dispatch()
}

// Advance runs n ticks
func (m *Machine) Advance(n uint64) {
	for i := uint64(0); i < n; i++ {
		m.Tick()
	}
}

// dispatch runs pending ISRs in vector priority order: edge, overflow,
// compare. Nothing runs while the controller has interrupts masked.
func (m *Machine) dispatch() {
	if m.isr == nil || !core.InterruptsEnabled() {
		return
	}
	if m.edgeFlag {
		m.edgeFlag = false
		m.isr.HandleEdge()
	}
	if m.ovfFlag {
		m.ovfFlag = false
		m.isr.HandleOverflow()
	}
	if m.cmpFlag {
		m.cmpFlag = false
		m.isr.HandleCompareMatch()
	}
}

func (m *Machine) applyEdges() {
	for len(m.edges) > 0 && m.edges[0].at <= m.now {
		e := m.edges[0]
		m.edges = m.edges[1:]
		if e.level == m.level {
			continue
		}
		m.level = e.level
		m.quiet = 0
		if m.edgeIE && e.level == m.senseRising {
			m.edgeFlag = true
		}
	}
}

// ScheduleEdge drives the input pin to level at absolute tick at
func (m *Machine) ScheduleEdge(at uint64, level bool) {
	i := len(m.edges)
	for i > 0 && m.edges[i-1].at > at {
		i--
	}
	m.edges = append(m.edges, edge{})
	copy(m.edges[i+1:], m.edges[i:])
	m.edges[i] = edge{at: at, level: level}
}

// QueuePulse queues an input pulse of width ticks. It starts Gap ticks
// after the edge detector is next enabled.
func (m *Machine) QueuePulse(width uint32) {
	m.queue = append(m.queue, width)
}

// Pending reports whether input activity is still queued or scheduled
func (m *Machine) Pending() bool {
	return len(m.queue) > 0 || len(m.edges) > 0
}

// Now returns the current tick
func (m *Machine) Now() uint64 {
	return m.now
}

// Level returns the input pin level
func (m *Machine) Level() bool {
	return m.level
}

// Output returns the output pin level
func (m *Machine) Output() bool {
	return m.outHigh
}

// Counter returns the timer counter
func (m *Machine) Counter() uint8 {
	return m.counter
}

// Running reports whether the timer is counting
func (m *Machine) Running() bool {
	return m.running
}

// Pulses returns the widths of completed output pulses in ticks
func (m *Machine) Pulses() []uint32 {
	return m.pulses
}

// TakePulses returns and clears the completed output pulses
func (m *Machine) TakePulses() []uint32 {
	p := m.pulses
	m.pulses = nil
	return p
}

type timer struct{ m *Machine }

func (t timer) Reset()                 { t.m.counter = 0 }
func (t timer) Start()                 { t.m.running = true }
func (t timer) Stop()                  { t.m.running = false }
func (t timer) Counter() uint8         { return t.m.counter }
func (t timer) SetCompare(value uint8) { t.m.compare = value }
func (t timer) EnableOverflowIRQ()     { t.m.ovfIE = true }
func (t timer) EnableCompareIRQ()      { t.m.cmpIE = true }

func (t timer) DisableIRQs() {
	t.m.ovfIE, t.m.cmpIE = false, false
	t.m.ovfFlag, t.m.cmpFlag = false, false
}

type edgeInput struct{ m *Machine }

func (e edgeInput) Enable() {
	m := e.m
	m.edgeIE = true
	if len(m.edges) == 0 && len(m.queue) > 0 {
		width := m.queue[0]
		m.queue = m.queue[1:]
		start := m.now + m.Gap
		m.ScheduleEdge(start, true)
		m.ScheduleEdge(start+uint64(width), false)
	}
}

func (e edgeInput) Disable() {
	e.m.edgeIE = false
	e.m.edgeFlag = false
}

func (e edgeInput) ListenRising()  { e.m.senseRising = true }
func (e edgeInput) ListenFalling() { e.m.senseRising = false }

type outputPin struct{ m *Machine }

func (o outputPin) High() {
	m := o.m
	if !m.outHigh {
		m.outHigh = true
		m.riseAt = m.now
		m.quiet = 0
	}
}

func (o outputPin) Low() {
	m := o.m
	if m.outHigh {
		m.outHigh = false
		m.pulses = append(m.pulses, uint32(m.now-m.riseAt))
		m.quiet = 0
	}
}
