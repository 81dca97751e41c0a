package core

import "testing"

// benchThresholds are round numbers that keep the arithmetic readable
var benchThresholds = Thresholds{
	InMin:  3000,
	Mid:    4500,
	InMax:  6000,
	OutMin: 3500,
	OutMax: 9500,
}

func TestScale(t *testing.T) {
	testCases := []struct {
		d        uint16
		expected uint32
	}{
		{0, 0},
		{1, 2},
		{2, 4},
		{3, 8},
		{4, 10},
		{564, 1504},
		{566, 1508},
		{1500, 4000},
	}

	for _, tc := range testCases {
		if got := Scale(tc.d); got != tc.expected {
			t.Errorf("Scale(%d): expected %d, got %d", tc.d, tc.expected, got)
		}
	}
}

func TestRescaleBenchThresholds(t *testing.T) {
	testCases := []struct {
		name     string
		in       TickCount
		expected TickCount
	}{
		{"center is identity", 4500, 4500},
		{"upper bound", 6000, 8500},
		{"lower bound clamps to OutMin", 3000, 3500},
		{"above center", 5000, 5832},
		{"just above center", 4501, 4502},
		{"just below center", 4499, 4498},
		{"low byte zero target", 4541, 4608},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Rescale(tc.in, benchThresholds); got != tc.expected {
				t.Errorf("Rescale(%d): expected %d, got %d", tc.in, tc.expected, got)
			}
		})
	}
}

func TestRescaleDefaultThresholds(t *testing.T) {
	th := DefaultThresholds

	if got := Rescale(th.Mid, th); got != th.Mid {
		t.Errorf("Expected center %d to map to itself, got %d", th.Mid, got)
	}
	// Full deflection overshoots the output bounds on both sides
	if got := Rescale(th.InMin, th); got != th.OutMin {
		t.Errorf("Expected InMin to clamp to %d, got %d", th.OutMin, got)
	}
	if got := Rescale(th.InMax, th); got != th.OutMax {
		t.Errorf("Expected InMax to clamp to %d, got %d", th.OutMax, got)
	}
	if got := Expand(th.InMin, th); got != 190 {
		t.Errorf("Expected unclamped InMin to expand to 190, got %d", got)
	}
	if got := Expand(th.InMax, th); got != 3202 {
		t.Errorf("Expected unclamped InMax to expand to 3202, got %d", got)
	}
}

func TestRescaleMonotonic(t *testing.T) {
	for _, th := range []Thresholds{benchThresholds, DefaultThresholds} {
		prev := Rescale(th.InMin, th)
		for in := th.InMin + 1; in <= th.InMax; in++ {
			got := Rescale(in, th)
			if got < prev {
				t.Fatalf("Rescale not monotonic at %d: %d after %d", in, got, prev)
			}
			prev = got
		}
	}
}

func TestExpandSymmetric(t *testing.T) {
	th := benchThresholds
	for k := TickCount(0); k <= th.Mid-th.InMin; k++ {
		above := Expand(th.Mid+k, th) - th.Mid
		below := th.Mid - Expand(th.Mid-k, th)
		if above != below {
			t.Fatalf("Asymmetric at k=%d: +%d vs -%d", k, above, below)
		}
	}
}

func TestRescaleClamps(t *testing.T) {
	th := benchThresholds
	th.OutMin = 4000
	th.OutMax = 8000

	if got := Rescale(6000, th); got != 8000 {
		t.Errorf("Expected 8500 to clamp to 8000, got %d", got)
	}
	if got := Rescale(3000, th); got != 4000 {
		t.Errorf("Expected 500 to clamp to 4000, got %d", got)
	}
	if got := Rescale(4500, th); got != 4500 {
		t.Errorf("Expected center unchanged, got %d", got)
	}
}

func TestExpandSaturatesAtZero(t *testing.T) {
	// Half-span wider than the midpoint: a uint16 subtraction would wrap
	th := Thresholds{InMin: 10, Mid: 100, InMax: 200, OutMin: 1, OutMax: 1000}

	if got := Expand(10, th); got != 0 {
		t.Errorf("Expected saturation at 0, got %d", got)
	}

	prev := Rescale(th.InMin, th)
	for in := th.InMin; in <= th.InMax; in++ {
		got := Rescale(in, th)
		if got < prev {
			t.Fatalf("Rescale not monotonic at %d: %d after %d", in, got, prev)
		}
		prev = got
	}
}

func TestRescaleIdempotent(t *testing.T) {
	first := Rescale(5123, benchThresholds)
	for i := 0; i < 10; i++ {
		if got := Rescale(5123, benchThresholds); got != first {
			t.Fatalf("Iteration %d: expected %d, got %d", i, first, got)
		}
	}
}
