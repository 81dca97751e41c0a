// Package monitor decodes the firmware's telemetry stream into reports
package monitor

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"ppmx/protocol"
)

// Report is one decoded telemetry message. Exactly one of Hello, Cycle
// and Stats is set.
type Report struct {
	Seq   uint8 // block sequence byte
	Hello *protocol.Hello
	Cycle *protocol.Cycle
	Stats *protocol.Stats
}

func (r Report) String() string {
	switch {
	case r.Hello != nil:
		h := r.Hello
		return fmt.Sprintf("hello version=%s in=%d..%d mid=%d out=%d..%d",
			h.Version, h.InMin, h.InMax, h.Mid, h.OutMin, h.OutMax)
	case r.Cycle != nil:
		c := r.Cycle
		if !c.Accepted {
			return fmt.Sprintf("cycle %d in=%d rejected", c.Seq, c.In)
		}
		return fmt.Sprintf("cycle %d in=%d out=%d", c.Seq, c.In, c.Out)
	case r.Stats != nil:
		s := r.Stats
		return fmt.Sprintf("stats cycles=%d accepted=%d rejected=%d stray=%d spurious=%d",
			s.Cycles, s.Accepted, s.Rejected, s.StrayEdges, s.SpuriousCompares)
	}
	return "empty report"
}

// Handler receives reports from the read loop goroutine
type Handler func(Report)

// Counters summarises stream health
type Counters struct {
	Frames    uint32 // valid blocks
	Dropped   uint32 // desynchronisations
	Lost      uint32 // blocks missing from the sequence
	Unknown   uint32 // messages with an unknown id
	Malformed uint32 // messages that failed to decode
}

// Monitor reads telemetry from a byte stream
type Monitor struct {
	port    io.Reader
	handler Handler

	input   *protocol.FifoBuffer
	decoder *protocol.Decoder

	unknown   uint32 // atomic
	malformed uint32 // atomic

	// Decoder counters are copied here after each Receive
	frames  uint32 // atomic
	dropped uint32 // atomic
	lost    uint32 // atomic

	mu  sync.Mutex
	err error

	stopChan chan struct{}
	doneChan chan struct{}
	stopOnce sync.Once
}

// New creates a monitor; call Start to begin reading or Feed to push
// bytes directly
func New(port io.Reader, handler Handler) *Monitor {
	return &Monitor{
		port:     port,
		handler:  handler,
		input:    protocol.NewFifoBuffer(512),
		decoder:  protocol.NewDecoder(),
		stopChan: make(chan struct{}),
		doneChan: make(chan struct{}),
	}
}

// Start launches the background read loop
func (m *Monitor) Start() {
	go m.readLoop()
}

// Stop asks the read loop to exit and waits for it. The loop only
// notices between reads, so the port should have a read timeout.
func (m *Monitor) Stop() {
	m.stopOnce.Do(func() { close(m.stopChan) })
	<-m.doneChan
}

// Done is closed when the read loop exits
func (m *Monitor) Done() <-chan struct{} {
	return m.doneChan
}

// Err returns the error that ended the read loop, nil after EOF or Stop
func (m *Monitor) Err() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.err
}

// Counters returns a snapshot of the stream counters
func (m *Monitor) Counters() Counters {
	return Counters{
		Frames:    atomic.LoadUint32(&m.frames),
		Dropped:   atomic.LoadUint32(&m.dropped),
		Lost:      atomic.LoadUint32(&m.lost),
		Unknown:   atomic.LoadUint32(&m.unknown),
		Malformed: atomic.LoadUint32(&m.malformed),
	}
}

// Feed decodes data synchronously; it must not be mixed with Start
func (m *Monitor) Feed(data []byte) {
	for len(data) > 0 {
		n, _ := m.input.Write(data)
		data = data[n:]
		m.process()
		if n == 0 && len(data) > 0 {
			// Buffer full of undecodable bytes
			m.input.Reset()
		}
	}
}

func (m *Monitor) readLoop() {
	defer close(m.doneChan)

	buffer := make([]byte, 256)

	for {
		select {
		case <-m.stopChan:
			return
		default:
		}

		n, err := m.port.Read(buffer)
		if n > 0 {
			m.Feed(buffer[:n])
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return
			}
			m.mu.Lock()
			m.err = err
			m.mu.Unlock()
			return
		}
		if n == 0 {
			// tarm/serial returns 0, nil on read timeout
			time.Sleep(10 * time.Millisecond)
		}
	}
}

func (m *Monitor) process() {
	m.decoder.Receive(m.input, m.handleFrame)

	atomic.StoreUint32(&m.frames, m.decoder.Frames)
	atomic.StoreUint32(&m.dropped, m.decoder.Dropped)
	atomic.StoreUint32(&m.lost, m.decoder.Lost)
}

func (m *Monitor) handleFrame(seq uint8, payload []byte) {
	for len(payload) > 0 {
		msg, err := protocol.DecodeMessage(&payload)
		if err != nil {
			if errors.Is(err, protocol.ErrUnknownMessage) {
				atomic.AddUint32(&m.unknown, 1)
			} else {
				atomic.AddUint32(&m.malformed, 1)
			}
			// The rest of the block cannot be parsed without the length
			return
		}

		r := Report{Seq: seq}
		switch v := msg.(type) {
		case protocol.Hello:
			r.Hello = &v
		case protocol.Cycle:
			r.Cycle = &v
		case protocol.Stats:
			r.Stats = &v
		}
		if m.handler != nil {
			m.handler(r)
		}
	}
}
