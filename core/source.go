package core

import "time"

// InputSource produces the next measured pulse width in ticks.
// NextTicks blocks until one pulse has been measured.
type InputSource interface {
	NextTicks() TickCount
}

// captureSource measures pulses on the input pin
type captureSource struct {
	c *Controller
}

func (s captureSource) NextTicks() TickCount {
	return s.c.Capture()
}

// Sweep directions
const (
	SweepUp   = 0
	SweepDown = 1
)

// Self-test defaults
const (
	DefaultSweepStep     = 2
	DefaultSweepFrameGap = 19 * time.Millisecond
)

// SweepSource is the self-test input: it walks from Mid up to InMax,
// down to InMin and back, one Step per pulse, pausing FrameGap between
// pulses the way a receiver frame would.
type SweepSource struct {
	Step     TickCount
	FrameGap time.Duration
	Sleep    func(time.Duration) // nil means time.Sleep

	th        Thresholds
	value     TickCount
	direction uint8
	started   bool
}

// NewSweepSource creates a sweep over th starting at Mid
func NewSweepSource(th Thresholds) *SweepSource {
	return &SweepSource{
		Step:     DefaultSweepStep,
		FrameGap: DefaultSweepFrameGap,
		th:       th,
		value:    th.Mid,
	}
}

// NextTicks returns the next sweep value
func (s *SweepSource) NextTicks() TickCount {
	if s.started && s.FrameGap > 0 {
		sleep := s.Sleep
		if sleep == nil {
			sleep = time.Sleep
		}
		sleep(s.FrameGap)
	}
	s.started = true

	if s.direction == SweepUp && s.value >= s.th.InMax {
		s.direction = SweepDown
	}
	if s.direction == SweepDown && s.value <= s.th.InMin {
		s.direction = SweepUp
	}

	if s.direction == SweepUp {
		s.value += s.Step
		if s.value > s.th.InMax {
			s.value = s.th.InMax
		}
	} else {
		if s.value < s.th.InMin+s.Step {
			s.value = s.th.InMin
		} else {
			s.value -= s.Step
		}
	}
	return s.value
}

// ReplaySource yields a fixed list of measurements in place of input
// capture, used by bench replays in the simulator. With Loop set it starts over at the end;
// otherwise it keeps returning the zero tick count, which is rejected.
type ReplaySource struct {
	Ticks []TickCount
	Loop  bool

	next int
}

// NextTicks returns the next recorded measurement
func (r *ReplaySource) NextTicks() TickCount {
	if r.next >= len(r.Ticks) {
		if !r.Loop || len(r.Ticks) == 0 {
			return 0
		}
		r.next = 0
	}
	t := r.Ticks[r.next]
	r.next++
	return t
}

// Done reports whether a non-looping replay is exhausted
func (r *ReplaySource) Done() bool {
	return !r.Loop && r.next >= len(r.Ticks)
}
