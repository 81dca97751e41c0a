package core

// Mode tells the overflow ISR how to account for counter wraparound.
// Written only by the foreground controller.
type Mode uint8

const (
	ModeCapturing  Mode = iota // measuring an input pulse
	ModeGenerating             // emitting an output pulse
)

func (m Mode) String() string {
	switch m {
	case ModeCapturing:
		return "capturing"
	case ModeGenerating:
		return "generating"
	default:
		return "mode(" + utoa(uint32(m)) + ")"
	}
}

// CanTransitionTo reports whether the controller may move from m to next.
// Capturing restarts itself when a measurement is rejected; generating
// always hands back to capturing once the output pulse is complete.
func (m Mode) CanTransitionTo(next Mode) bool {
	switch m {
	case ModeCapturing:
		return next == ModeCapturing || next == ModeGenerating
	case ModeGenerating:
		return next == ModeCapturing
	}
	return false
}

// EdgeState is the capture phase's inner state. It is kept explicitly
// instead of being derived from the edge-sensitivity configuration.
type EdgeState uint8

const (
	EdgeIdle        EdgeState = iota // not capturing, edges ignored
	EdgeWaitRising                   // armed, waiting for pulse start
	EdgeWaitFalling                  // tick clock running
	EdgeDone                         // measured, waiting for the controller
)

func (s EdgeState) String() string {
	switch s {
	case EdgeIdle:
		return "idle"
	case EdgeWaitRising:
		return "wait-rising"
	case EdgeWaitFalling:
		return "wait-falling"
	case EdgeDone:
		return "done"
	default:
		return "edge(" + utoa(uint32(s)) + ")"
	}
}

// CanTransitionTo reports whether the edge state may move from s to next.
// Any state may drop back to idle when the controller disarms capture.
func (s EdgeState) CanTransitionTo(next EdgeState) bool {
	if next == EdgeIdle {
		return s <= EdgeDone
	}
	switch s {
	case EdgeIdle:
		return next == EdgeWaitRising
	case EdgeWaitRising:
		return next == EdgeWaitFalling
	case EdgeWaitFalling:
		return next == EdgeDone
	}
	return false
}
