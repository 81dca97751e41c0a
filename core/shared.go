package core

import "sync/atomic"

// sharedState is everything the ISRs and the foreground loop both touch.
// Each field has a single writer at any time: either one ISR, or the
// foreground loop while interrupts are masked. All access is atomic.
type sharedState struct {
	mode      uint32 // Mode
	edge      uint32 // EdgeState
	overflows uint32 // timer wraparounds since the phase began
	expected  uint32 // high byte of the output target
	inLatch   uint32 // bumped by the falling edge
	outLatch  uint32 // bumped by the final compare-match

	strayEdges       uint32 // edges outside wait-rising/wait-falling
	spuriousCompares uint32 // low-byte matches before the target overflow
}

func (s *sharedState) currentMode() Mode {
	return Mode(atomic.LoadUint32(&s.mode))
}

func (s *sharedState) edgeState() EdgeState {
	return EdgeState(atomic.LoadUint32(&s.edge))
}

// setMode must run with interrupts masked
func (s *sharedState) setMode(next Mode) {
	if cur := s.currentMode(); !cur.CanTransitionTo(next) {
		panic("core: illegal mode transition " + cur.String() + " -> " + next.String())
	}
	atomic.StoreUint32(&s.mode, uint32(next))
}

// setEdge is used from both contexts; the ISR only ever takes legal steps,
// the foreground arms and disarms with interrupts masked
func (s *sharedState) setEdge(next EdgeState) {
	if cur := s.edgeState(); !cur.CanTransitionTo(next) {
		panic("core: illegal edge transition " + cur.String() + " -> " + next.String())
	}
	atomic.StoreUint32(&s.edge, uint32(next))
}

// overflowCount is the 8-bit overflow counter
func (s *sharedState) overflowCount() uint8 {
	return uint8(atomic.LoadUint32(&s.overflows))
}

func (s *sharedState) expectedOverflows() uint8 {
	return uint8(atomic.LoadUint32(&s.expected))
}

func (s *sharedState) inputDone() bool {
	return atomic.LoadUint32(&s.inLatch) != 0
}

func (s *sharedState) outputDone() bool {
	return atomic.LoadUint32(&s.outLatch) != 0
}

// resetForCapture must run with interrupts masked
func (s *sharedState) resetForCapture() {
	atomic.StoreUint32(&s.overflows, 0)
	atomic.StoreUint32(&s.inLatch, 0)
	s.setEdge(EdgeWaitRising)
}

// resetForGenerate must run with interrupts masked
func (s *sharedState) resetForGenerate(expected uint8) {
	atomic.StoreUint32(&s.expected, uint32(expected))
	atomic.StoreUint32(&s.overflows, 0)
	atomic.StoreUint32(&s.outLatch, 0)
}
