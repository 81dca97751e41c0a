package core

import (
	"errors"
	"strings"
	"testing"
)

func TestComposeAndSplit(t *testing.T) {
	testCases := []struct {
		overflows, counter uint8
		expected           TickCount
	}{
		{0, 0, 0},
		{0, 255, 255},
		{1, 0, 256},
		{17, 148, 4500},
		{33, 52, 8500},
		{255, 255, 65535},
	}

	for _, tc := range testCases {
		got := ComposeTicks(tc.overflows, tc.counter)
		if got != tc.expected {
			t.Errorf("ComposeTicks(%d, %d): expected %d, got %d", tc.overflows, tc.counter, tc.expected, got)
		}
		hi, lo := got.Split()
		if hi != tc.overflows || lo != tc.counter {
			t.Errorf("Split(%d): expected (%d, %d), got (%d, %d)", got, tc.overflows, tc.counter, hi, lo)
		}
	}
}

func TestThresholdsValidate(t *testing.T) {
	if err := DefaultThresholds.Validate(); err != nil {
		t.Fatalf("DefaultThresholds invalid: %v", err)
	}
	if err := benchThresholds.Validate(); err != nil {
		t.Fatalf("bench thresholds invalid: %v", err)
	}

	invalid := []Thresholds{
		{InMin: 4500, Mid: 4500, InMax: 6000, OutMin: 3500, OutMax: 9500},
		{InMin: 3000, Mid: 6000, InMax: 6000, OutMin: 3500, OutMax: 9500},
		{InMin: 3000, Mid: 4500, InMax: 6000, OutMin: 4501, OutMax: 9500},
		{InMin: 3000, Mid: 4500, InMax: 6000, OutMin: 3500, OutMax: 4499},
		{InMin: 10, Mid: 100, InMax: 200, OutMin: 0, OutMax: 1000},
	}
	for i, th := range invalid {
		err := th.Validate()
		if !errors.Is(err, ErrInvalidThresholds) {
			t.Errorf("Case %d: expected ErrInvalidThresholds, got %v", i, err)
		}
	}

	// Output bounds may touch the midpoint
	edge := Thresholds{InMin: 3000, Mid: 4500, InMax: 6000, OutMin: 4500, OutMax: 4500}
	if err := edge.Validate(); err != nil {
		t.Errorf("Expected OutMin == Mid == OutMax to be valid, got %v", err)
	}

	oneTick := Thresholds{InMin: 10, Mid: 100, InMax: 200, OutMin: 1, OutMax: 1000}
	if err := oneTick.Validate(); err != nil {
		t.Errorf("Expected OutMin of one tick to be valid, got %v", err)
	}
}

func TestThresholdsRejectZeroOutMin(t *testing.T) {
	err := Thresholds{InMin: 10, Mid: 100, InMax: 200, OutMin: 0, OutMax: 1000}.Validate()
	if !errors.Is(err, ErrInvalidThresholds) {
		t.Fatalf("Expected ErrInvalidThresholds, got %v", err)
	}
	if !strings.Contains(err.Error(), "output minimum must be at least one tick") {
		t.Errorf("Unexpected message: %q", err.Error())
	}
}

func TestThresholdsAccepts(t *testing.T) {
	th := benchThresholds
	testCases := []struct {
		in       TickCount
		expected bool
	}{
		{2999, false},
		{3000, true},
		{4500, true},
		{6000, true},
		{6001, false},
		{0, false},
	}

	for _, tc := range testCases {
		if got := th.Accepts(tc.in); got != tc.expected {
			t.Errorf("Accepts(%d): expected %v, got %v", tc.in, tc.expected, got)
		}
	}
}

func TestThresholdErrorMessage(t *testing.T) {
	err := Thresholds{InMin: 5, Mid: 5, InMax: 9, OutMin: 1, OutMax: 9}.Validate()
	want := "invalid tick thresholds: input bounds must bracket mid (in=5..9 mid=5 out=1..9)"
	if err == nil || err.Error() != want {
		t.Errorf("Expected %q, got %v", want, err)
	}
}
