// Package scenario describes simulator runs in YAML: the thresholds the
// firmware would be built with and the input pulses to feed it.
package scenario

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"ppmx/core"
	"ppmx/sim"
)

// ErrNoInput is returned by Validate when neither pulses nor a sweep are given
var ErrNoInput = errors.New("scenario has no pulses and no sweep")

// Scenario is one simulator run
type Scenario struct {
	Name       string          `yaml:"name"`
	Thresholds ThresholdConfig `yaml:"thresholds"`
	Pulses     []uint16        `yaml:"pulses"`              // Input widths in ticks
	Sweep      *SweepConfig    `yaml:"sweep,omitempty"`     // Self-test sweep instead of (or after) Pulses
	GapTicks   uint32          `yaml:"gap_ticks"`           // Idle ticks before each input pulse
	Loop       int             `yaml:"loop,omitempty"`      // Extra passes over Pulses
	Replay     bool            `yaml:"replay,omitempty"`    // Hand inputs to the controller directly, skipping edge capture
	Debug      bool            `yaml:"debug,omitempty"`     // Route firmware debug output to stderr
	Telemetry  string          `yaml:"telemetry,omitempty"` // File to write the telemetry stream to
}

// ThresholdConfig mirrors core.Thresholds with YAML names
type ThresholdConfig struct {
	InMin  uint16 `yaml:"in_min"`
	InMax  uint16 `yaml:"in_max"`
	Mid    uint16 `yaml:"mid"`
	OutMin uint16 `yaml:"out_min"`
	OutMax uint16 `yaml:"out_max"`
}

// SweepConfig runs the self-test sweep for Cycles pulses
type SweepConfig struct {
	Cycles int    `yaml:"cycles"`
	Step   uint16 `yaml:"step"`
}

// Default returns a scenario exercising the default thresholds: the
// center, both bounds, and one pulse just outside each bound.
func Default() *Scenario {
	th := core.DefaultThresholds
	return &Scenario{
		Name:       "default",
		Thresholds: FromThresholds(th),
		Pulses:     defaultPulses(th),
		GapTicks:   sim.DefaultGap,
	}
}

// defaultPulses probes both bounds and just outside each one. Widths
// that would be zero or wrap past 0xFFFF are left out.
func defaultPulses(th core.Thresholds) []uint16 {
	pulses := []uint16{uint16(th.Mid)}
	if th.InMin > 0 {
		pulses = append(pulses, uint16(th.InMin))
	}
	pulses = append(pulses, uint16(th.InMax))
	if th.InMin > 1 {
		pulses = append(pulses, uint16(th.InMin)-1)
	}
	if th.InMax < 0xFFFF {
		pulses = append(pulses, uint16(th.InMax)+1)
	}
	return pulses
}

// FromThresholds converts core thresholds to their YAML form
func FromThresholds(th core.Thresholds) ThresholdConfig {
	return ThresholdConfig{
		InMin:  uint16(th.InMin),
		InMax:  uint16(th.InMax),
		Mid:    uint16(th.Mid),
		OutMin: uint16(th.OutMin),
		OutMax: uint16(th.OutMax),
	}
}

// Core returns the thresholds in core form
func (t ThresholdConfig) Core() core.Thresholds {
	return core.Thresholds{
		InMin:  core.TickCount(t.InMin),
		InMax:  core.TickCount(t.InMax),
		Mid:    core.TickCount(t.Mid),
		OutMin: core.TickCount(t.OutMin),
		OutMax: core.TickCount(t.OutMax),
	}
}

// Load loads a scenario from a YAML file. If the file doesn't exist the
// default scenario is returned; missing fields take default values.
func Load(filename string) (*Scenario, error) {
	s := Default()

	data, err := os.ReadFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	// Pulses from the file replace the defaults rather than merge
	s.Pulses = nil
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("failed to parse scenario file: %w", err)
	}

	s.ensureDefaults()

	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return s, nil
}

// Save writes the scenario to a YAML file
func (s *Scenario) Save(filename string) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal scenario: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write scenario file: %w", err)
	}
	return nil
}

// Validate checks thresholds and input
func (s *Scenario) Validate() error {
	if err := s.Thresholds.Core().Validate(); err != nil {
		return err
	}
	if len(s.Pulses) == 0 && s.Sweep == nil {
		return ErrNoInput
	}
	for i, p := range s.Pulses {
		if p == 0 {
			return fmt.Errorf("pulse %d: zero width", i)
		}
	}
	if s.Sweep != nil {
		if s.Sweep.Cycles <= 0 {
			return fmt.Errorf("sweep: cycles must be positive, got %d", s.Sweep.Cycles)
		}
		if s.Sweep.Step == 0 {
			return errors.New("sweep: step must be positive")
		}
	}
	if s.Loop < 0 {
		return fmt.Errorf("loop must not be negative, got %d", s.Loop)
	}
	return nil
}

// Inputs expands the scenario into the sequence of input widths to
// queue on the simulator: Pulses (Loop+1 times), then the sweep.
func (s *Scenario) Inputs() []core.TickCount {
	var out []core.TickCount
	for pass := 0; pass <= s.Loop; pass++ {
		for _, p := range s.Pulses {
			out = append(out, core.TickCount(p))
		}
	}
	if s.Sweep != nil {
		src := core.NewSweepSource(s.Thresholds.Core())
		src.Step = core.TickCount(s.Sweep.Step)
		src.FrameGap = 0
		for i := 0; i < s.Sweep.Cycles; i++ {
			out = append(out, src.NextTicks())
		}
	}
	return out
}

// ensureDefaults fills fields a partial file left empty
func (s *Scenario) ensureDefaults() {
	def := Default()

	if s.Name == "" {
		s.Name = def.Name
	}
	if s.Thresholds == (ThresholdConfig{}) {
		s.Thresholds = def.Thresholds
	}
	if len(s.Pulses) == 0 && s.Sweep == nil {
		s.Pulses = defaultPulses(s.Thresholds.Core())
	}
	if s.GapTicks == 0 {
		s.GapTicks = def.GapTicks
	}
	if s.Sweep != nil && s.Sweep.Step == 0 {
		s.Sweep.Step = core.DefaultSweepStep
	}
}
