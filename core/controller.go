package core

import "sync/atomic"

// Config selects the controller's thresholds and collaborators
type Config struct {
	// Thresholds bound input and output pulses; zero means DefaultThresholds
	Thresholds Thresholds

	// Source produces measured tick counts; nil measures the input pin
	Source InputSource

	// Idle runs on every busy-wait iteration (nop, sleep, or a simulator tick)
	Idle func()

	// OnCycle is called after each cycle, outside any critical section
	OnCycle func(CycleReport)
}

// Controller is the foreground loop alternating between an input phase
// and an output phase. It also owns the ISR entry points, which the
// platform wires to its interrupt vectors.
type Controller struct {
	sharedState

	hw      Hardware
	th      Thresholds
	source  InputSource
	idle    func()
	onCycle func(CycleReport)

	stats Stats
}

// NewController validates the hardware and thresholds and returns a
// controller in capturing mode
func NewController(hw Hardware, cfg Config) (*Controller, error) {
	if err := hw.validate(); err != nil {
		return nil, err
	}

	th := cfg.Thresholds
	if th.IsZero() {
		th = DefaultThresholds
	}
	if err := th.Validate(); err != nil {
		return nil, err
	}

	c := &Controller{
		hw:      hw,
		th:      th,
		source:  cfg.Source,
		idle:    cfg.Idle,
		onCycle: cfg.OnCycle,
	}
	if c.source == nil {
		c.source = captureSource{c}
	}
	if c.idle == nil {
		c.idle = func() {}
	}
	return c, nil
}

// Thresholds returns the active thresholds
func (c *Controller) Thresholds() Thresholds {
	return c.th
}

// Mode returns the current phase
func (c *Controller) Mode() Mode {
	return c.currentMode()
}

// Capture runs one input phase: arm the edge detector, wait until a full
// pulse has been measured and return overflows<<8 | counter.
func (c *Controller) Capture() TickCount {
	state := disableInterrupts()
	c.setMode(ModeCapturing)
	c.hw.Clock.Reset()
	c.resetForCapture()
	c.hw.Input.ListenRising()
	c.hw.Input.Enable()
	c.hw.Clock.EnableOverflowIRQ()
	restoreInterrupts(state)

	for !c.inputDone() {
		c.idle()
	}

	state = disableInterrupts()
	c.hw.Clock.DisableIRQs()
	c.hw.Input.Disable()
	ticks := ComposeTicks(c.overflowCount(), c.hw.Clock.Counter())
	c.setEdge(EdgeIdle)
	restoreInterrupts(state)

	RecordEvent(EvtCapture, ticks, 0)
	return ticks
}

// Generate runs one output phase: drive the pin high for target ticks.
// The compare register holds the low byte and the overflow ISR counts
// up to the high byte.
func (c *Controller) Generate(target TickCount) {
	expected, compare := target.Split()
	spurious := atomic.LoadUint32(&c.spuriousCompares)

	state := disableInterrupts()
	c.hw.Clock.SetCompare(compare)
	c.resetForGenerate(expected)
	c.setMode(ModeGenerating)
	c.hw.Clock.Reset()
	c.hw.Clock.EnableOverflowIRQ()
	c.hw.Clock.EnableCompareIRQ()
	c.hw.Output.High()
	c.hw.Clock.Start()
	restoreInterrupts(state)

	for !c.outputDone() {
		c.idle()
	}

	state = disableInterrupts()
	c.hw.Clock.DisableIRQs()
	c.setMode(ModeCapturing)
	restoreInterrupts(state)

	if n := atomic.LoadUint32(&c.spuriousCompares) - spurious; n != 0 {
		RecordEvent(EvtSpurious, target, n)
	}
	RecordEvent(EvtGenerate, target, uint32(expected))
}

// Cycle measures one pulse and, if it is within [InMin, InMax],
// regenerates it rescaled. Rejected pulses produce no output.
func (c *Controller) Cycle() CycleReport {
	in := c.source.NextTicks()

	c.stats.Cycles++
	c.stats.LastIn = in
	report := CycleReport{Seq: c.stats.Cycles, In: in}

	if !c.th.Accepts(in) {
		state := disableInterrupts()
		c.setMode(ModeCapturing)
		restoreInterrupts(state)

		c.stats.Rejected++
		RecordEvent(EvtReject, in, c.stats.Rejected)
		c.report(report)
		return report
	}

	out := Rescale(in, c.th)
	c.Generate(out)

	c.stats.Accepted++
	c.stats.LastOut = out
	report.Out = out
	report.Accepted = true
	c.report(report)
	return report
}

func (c *Controller) report(r CycleReport) {
	if IsDebugEnabled() {
		DebugPrintln(r.String())
	}
	if c.onCycle != nil {
		c.onCycle(r)
	}
}

// Run cycles forever
func (c *Controller) Run() {
	for {
		c.Cycle()
	}
}
