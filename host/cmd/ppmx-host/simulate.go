package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"ppmx/core"
	"ppmx/host/scenario"
	"ppmx/sim"
)

// cycleResult is one controller cycle plus the output width the
// simulated pin actually produced
type cycleResult struct {
	core.CycleReport
	Measured uint32
}

func runSimulate(args []string) error {
	fs := flag.NewFlagSet("simulate", flag.ContinueOnError)
	path := fs.String("scenario", "scenario.yaml", "Scenario file (defaults are used if it does not exist)")
	telemetry := fs.String("telemetry", "", "Write the firmware telemetry stream to this file")
	debug := fs.Bool("debug", false, "Print firmware debug output and the event ring")
	replay := fs.Bool("replay", false, "Feed inputs to the controller directly instead of as pin edges")
	if err := fs.Parse(args); err != nil {
		return err
	}

	s, err := scenario.Load(*path)
	if err != nil {
		return err
	}
	if *telemetry != "" {
		s.Telemetry = *telemetry
	}
	if *debug {
		s.Debug = true
	}
	if *replay {
		s.Replay = true
	}

	var sink io.Writer
	if s.Telemetry != "" {
		f, err := os.Create(s.Telemetry)
		if err != nil {
			return fmt.Errorf("failed to create telemetry file: %w", err)
		}
		defer f.Close()
		sink = f
	}

	fmt.Printf("Scenario %q: %d inputs\n", s.Name, len(s.Inputs()))

	results, stats, err := simulate(s, sink)
	for _, r := range results {
		if !r.Accepted {
			fmt.Printf("%6d  in=%5d  rejected\n", r.Seq, r.In)
			continue
		}
		fmt.Printf("%6d  in=%5d  out=%5d  measured=%5d\n", r.Seq, r.In, r.Out, r.Measured)
	}
	fmt.Printf("cycles=%d accepted=%d rejected=%d stray=%d spurious=%d\n",
		stats.Cycles, stats.Accepted, stats.Rejected, stats.StrayEdges, stats.SpuriousCompares)
	return err
}

// simulate runs every scenario input through the controller on a
// simulated machine. A non-nil sink receives the telemetry stream. In
// replay mode the inputs bypass edge capture and only the output side
// runs on the machine.
func simulate(s *scenario.Scenario, sink io.Writer) (results []cycleResult, stats core.Stats, err error) {
	m := sim.New()
	m.Gap = uint64(s.GapTicks)

	var writeErr error
	var tel *core.Telemetry
	cfg := core.Config{
		Thresholds: s.Thresholds.Core(),
		Idle:       m.Idle,
	}
	var replay *core.ReplaySource
	if s.Replay {
		replay = &core.ReplaySource{Ticks: s.Inputs()}
		cfg.Source = replay
	}
	if sink != nil {
		tel = core.NewTelemetry(func(b []byte) {
			if writeErr == nil {
				_, writeErr = sink.Write(b)
			}
		})
		cfg.OnCycle = tel.OnCycle
	}

	c, err := core.NewController(m.Hardware(), cfg)
	if err != nil {
		return nil, stats, err
	}
	m.Attach(c)

	if s.Debug {
		core.SetDebugWriter(func(msg string) { fmt.Fprintln(os.Stderr, msg) })
		core.SetDebugEnabled(true)
		defer func() {
			core.DumpEventRing()
			core.SetDebugEnabled(false)
			core.SetDebugWriter(nil)
		}()
	}

	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok && e == sim.ErrStalled {
				err = fmt.Errorf("cycle %d: %w", len(results)+1, e)
				return
			}
			panic(r)
		}
	}()

	if tel != nil {
		tel.Attach(c)
		tel.SendHello(c.Thresholds())
	}

	cycle := func() {
		res := cycleResult{CycleReport: c.Cycle()}
		if pulses := m.TakePulses(); len(pulses) > 0 {
			res.Measured = pulses[0]
		}
		results = append(results, res)
	}
	if replay != nil {
		for !replay.Done() {
			cycle()
		}
	} else {
		for _, in := range s.Inputs() {
			m.QueuePulse(uint32(in))
			cycle()
		}
	}

	stats = c.Stats()
	if tel != nil {
		tel.SendStats(stats)
	}
	return results, stats, writeErr
}
