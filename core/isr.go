package core

import "sync/atomic"

// HandleEdge is the input pin ISR. A rising edge starts the tick clock
// from zero and switches to the falling edge; the falling edge stops the
// clock and latches the measurement. Edges in any other state are stray.
func (c *Controller) HandleEdge() {
	switch c.edgeState() {
	case EdgeWaitRising:
		c.hw.Clock.Reset()
		c.hw.Clock.Start()
		c.hw.Input.ListenFalling()
		c.setEdge(EdgeWaitFalling)
	case EdgeWaitFalling:
		c.hw.Clock.Stop()
		c.setEdge(EdgeDone)
		atomic.AddUint32(&c.inLatch, 1)
	default:
		atomic.AddUint32(&c.strayEdges, 1)
	}
}

// HandleOverflow is the timer overflow ISR. While capturing every
// wraparound counts (8 bits, wrapping). While generating the count
// saturates at the expected value so a late compare-match can never see
// a wrapped count.
func (c *Controller) HandleOverflow() {
	n := atomic.LoadUint32(&c.overflows)
	switch c.currentMode() {
	case ModeCapturing:
		atomic.StoreUint32(&c.overflows, (n+1)&0xFF)
	case ModeGenerating:
		if n < atomic.LoadUint32(&c.expected) {
			atomic.StoreUint32(&c.overflows, n+1)
		}
	}
}

// HandleCompareMatch is the timer compare ISR. The compare register only
// covers the low byte, so a match ends the pulse only once the overflow
// count has reached the expected high byte.
func (c *Controller) HandleCompareMatch() {
	if c.currentMode() != ModeGenerating || c.overflowCount() < c.expectedOverflows() {
		atomic.AddUint32(&c.spuriousCompares, 1)
		return
	}
	c.hw.Output.Low()
	c.hw.Clock.Stop()
	atomic.AddUint32(&c.outLatch, 1)
}
