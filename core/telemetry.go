package core

import "ppmx/protocol"

// DefaultStatsEvery is how many cycles pass between stats messages
const DefaultStatsEvery = 50

// Telemetry frames controller reports as protocol blocks and hands each
// block to a sink, typically the USB CDC port. It must only be used
// from the foreground loop.
type Telemetry struct {
	// StatsEvery sends a stats message after every n-th cycle; 0 disables
	StatsEvery uint32

	sink    func([]byte)
	scratch *protocol.ScratchOutput
	enc     *protocol.Encoder
	ctrl    *Controller
}

// NewTelemetry creates a telemetry stream writing blocks to sink
func NewTelemetry(sink func([]byte)) *Telemetry {
	scratch := protocol.NewScratchOutput()
	return &Telemetry{
		StatsEvery: DefaultStatsEvery,
		sink:       sink,
		scratch:    scratch,
		enc:        protocol.NewEncoder(scratch),
	}
}

// Attach selects the controller whose stats are sent periodically
func (t *Telemetry) Attach(c *Controller) {
	t.ctrl = c
}

// SendHello announces the firmware version and thresholds
func (t *Telemetry) SendHello(th Thresholds) {
	t.send(protocol.Hello{
		Version: protocol.Version,
		InMin:   uint16(th.InMin),
		InMax:   uint16(th.InMax),
		Mid:     uint16(th.Mid),
		OutMin:  uint16(th.OutMin),
		OutMax:  uint16(th.OutMax),
	})
}

// SendStats sends a counter snapshot
func (t *Telemetry) SendStats(s Stats) {
	t.send(protocol.Stats{
		Cycles:           s.Cycles,
		Accepted:         s.Accepted,
		Rejected:         s.Rejected,
		StrayEdges:       s.StrayEdges,
		SpuriousCompares: s.SpuriousCompares,
	})
}

// OnCycle is a Config.OnCycle hook: it sends the cycle and, every
// StatsEvery cycles, the attached controller's stats
func (t *Telemetry) OnCycle(r CycleReport) {
	t.send(protocol.Cycle{
		Seq:      r.Seq,
		In:       uint16(r.In),
		Out:      uint16(r.Out),
		Accepted: r.Accepted,
	})
	if t.ctrl != nil && t.StatsEvery > 0 && r.Seq%t.StatsEvery == 0 {
		t.SendStats(t.ctrl.Stats())
	}
}

func (t *Telemetry) send(msg protocol.Message) {
	t.scratch.Reset()
	t.enc.Send(msg)
	if t.sink != nil {
		t.sink(t.scratch.Result())
	}
}
