package core

import (
	"testing"
	"time"
)

func TestSweepSourceBounces(t *testing.T) {
	th := Thresholds{InMin: 10, Mid: 14, InMax: 18, OutMin: 1, OutMax: 40}
	var slept []time.Duration
	s := NewSweepSource(th)
	s.Sleep = func(d time.Duration) { slept = append(slept, d) }

	expected := []TickCount{16, 18, 16, 14, 12, 10, 12, 14}
	for i, want := range expected {
		if got := s.NextTicks(); got != want {
			t.Fatalf("Step %d: expected %d, got %d", i, want, got)
		}
	}

	if len(slept) != len(expected)-1 {
		t.Errorf("Expected %d frame gaps, got %d", len(expected)-1, len(slept))
	}
	for _, d := range slept {
		if d != DefaultSweepFrameGap {
			t.Errorf("Expected %v frame gap, got %v", DefaultSweepFrameGap, d)
		}
	}
}

func TestSweepSourceOddStepStaysInRange(t *testing.T) {
	th := Thresholds{InMin: 10, Mid: 14, InMax: 18, OutMin: 1, OutMax: 40}
	s := NewSweepSource(th)
	s.Step = 3
	s.FrameGap = 0

	expected := []TickCount{17, 18, 15, 12, 10, 13}
	for i, want := range expected {
		if got := s.NextTicks(); got != want {
			t.Fatalf("Step %d: expected %d, got %d", i, want, got)
		}
	}
}

func TestSweepSourceCoversDefaultRange(t *testing.T) {
	th := DefaultThresholds
	s := NewSweepSource(th)
	s.FrameGap = 0

	sawMax, sawMin := false, false
	for i := 0; i < 2000; i++ {
		v := s.NextTicks()
		if !th.Accepts(v) {
			t.Fatalf("Sweep left the input range: %d", v)
		}
		sawMax = sawMax || v == th.InMax
		sawMin = sawMin || v == th.InMin
	}
	if !sawMax || !sawMin {
		t.Errorf("Expected sweep to reach both bounds, max=%v min=%v", sawMax, sawMin)
	}
}

func TestReplaySource(t *testing.T) {
	r := &ReplaySource{Ticks: []TickCount{4500, 5000}}

	if r.NextTicks() != 4500 || r.NextTicks() != 5000 {
		t.Fatal("Unexpected replay order")
	}
	if !r.Done() {
		t.Error("Expected replay to be done")
	}
	if got := r.NextTicks(); got != 0 {
		t.Errorf("Expected exhausted replay to yield 0, got %d", got)
	}

	loop := &ReplaySource{Ticks: []TickCount{1, 2}, Loop: true}
	for i, want := range []TickCount{1, 2, 1, 2, 1} {
		if got := loop.NextTicks(); got != want {
			t.Errorf("Loop step %d: expected %d, got %d", i, want, got)
		}
	}
	if loop.Done() {
		t.Error("Looping replay reported done")
	}
}
