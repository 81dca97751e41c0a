//go:build rp2040

package main

import (
	"machine"

	rp2pio "github.com/tinygo-org/pio/rp2-pio"

	"ppmx/core"
)

// PIO program for loopback pulse generation, one instruction per
// microsecond. Each command word is two 16-bit counts:
//
//	Bits 0-15:  high time minus 2
//	Bits 16-31: low time minus 4
//
// The low time includes the pull and the two outs, so a queued pulse
// starts right after the previous gap.
func buildPulseProgram() []uint16 {
	asm := rp2pio.AssemblerV0{SidesetBits: 0}
	return []uint16{
		// .wrap_target
		asm.Pull(false, true).Encode(),           // 0: pull block
		asm.Out(rp2pio.OutDestX, 16).Encode(),    // 1: out x, 16 (high)
		asm.Out(rp2pio.OutDestY, 16).Encode(),    // 2: out y, 16 (low)
		asm.Set(rp2pio.SetDestPins, 1).Encode(),  // 3: set pins, 1
		asm.Jmp(4, rp2pio.JmpXNZeroDec).Encode(), // 4: jmp x--, 4
		asm.Set(rp2pio.SetDestPins, 0).Encode(),  // 5: set pins, 0
		asm.Jmp(6, rp2pio.JmpYNZeroDec).Encode(), // 6: jmp y--, 6
		// .wrap
	}
}

const (
	pulseGenOrigin = 0
	pulseGenDiv    = 125 // 125 MHz system clock down to 1 MHz

	pulseHighOverhead = 2
	pulseLowOverhead  = 4

	// Frame gap between generated pulses
	loopbackGapMicros = 19000
)

// pulseGen replays pulse widths on a spare pin for loopback runs
type pulseGen struct {
	pio *rp2pio.PIO
	sm  rp2pio.StateMachine
	pin machine.Pin
}

func newPulseGen(pin machine.Pin) (*pulseGen, error) {
	g := &pulseGen{
		pio: rp2pio.PIO0,
		sm:  rp2pio.PIO0.StateMachine(0),
		pin: pin,
	}
	g.sm.TryClaim()

	program := buildPulseProgram()
	offset, err := g.pio.AddProgram(program, pulseGenOrigin)
	if err != nil {
		return nil, err
	}

	pin.Configure(machine.PinConfig{Mode: g.pio.PinMode()})

	cfg := rp2pio.DefaultStateMachineConfig()
	cfg.SetSetPins(pin, 1)
	cfg.SetOutShift(true, false, 32)
	cfg.SetWrap(offset+uint8(len(program))-1, offset)
	cfg.SetClkDivIntFrac(pulseGenDiv, 0)

	g.sm.Init(offset, cfg)
	g.sm.SetPindirsConsecutive(pin, 1, true)
	g.sm.SetPinsConsecutive(pin, 1, false)
	g.sm.SetEnabled(true)
	return g, nil
}

// queue adds one pulse of highUS followed by lowUS. It reports false
// instead of blocking when the TX FIFO is full.
func (g *pulseGen) queue(highUS, lowUS uint16) bool {
	if g.sm.IsTxFIFOFull() {
		return false
	}
	if highUS < pulseHighOverhead {
		highUS = pulseHighOverhead
	}
	if lowUS < pulseLowOverhead {
		lowUS = pulseLowOverhead
	}
	g.sm.TxPut(uint32(highUS-pulseHighOverhead) | uint32(lowUS-pulseLowOverhead)<<16)
	return true
}

// ticksToMicros converts a tick count at the PWM tick rate
// (1.13 ticks/us) back to microseconds
func ticksToMicros(t core.TickCount) uint16 {
	return uint16((uint32(t)*1000 + 565) / 1130)
}

// loopback feeds a sweep into the pulse generator, one pulse per
// completed cycle so the FIFO never runs dry
type loopback struct {
	gen   *pulseGen
	sweep *core.SweepSource
}

func newLoopback(pin machine.Pin, th core.Thresholds) (*loopback, error) {
	gen, err := newPulseGen(pin)
	if err != nil {
		return nil, err
	}
	sweep := core.NewSweepSource(th)
	sweep.FrameGap = 0
	l := &loopback{gen: gen, sweep: sweep}
	for l.feed() {
	}
	return l, nil
}

// feed queues the next sweep pulse if there is room
func (l *loopback) feed() bool {
	if l.gen.sm.IsTxFIFOFull() {
		return false
	}
	return l.gen.queue(ticksToMicros(l.sweep.NextTicks()), loopbackGapMicros)
}
