package monitor

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ppmx/protocol"
)

func telemetry(msgs ...protocol.Message) []byte {
	out := protocol.NewScratchOutput()
	enc := protocol.NewEncoder(out)
	for _, msg := range msgs {
		enc.Send(msg)
	}
	return append([]byte(nil), out.Result()...)
}

func TestFeedDecodesReports(t *testing.T) {
	var reports []Report
	m := New(nil, func(r Report) { reports = append(reports, r) })

	m.Feed(telemetry(
		protocol.Hello{Version: protocol.Version, InMin: 1130, InMax: 2260, Mid: 1694, OutMin: 621, OutMax: 2994},
		protocol.Cycle{Seq: 1, In: 1694, Out: 1694, Accepted: true},
		protocol.Cycle{Seq: 2, In: 3000},
		protocol.Stats{Cycles: 2, Accepted: 1, Rejected: 1},
	))

	require.Len(t, reports, 4)
	assert.Equal(t, "hello version=0.1.0 in=1130..2260 mid=1694 out=621..2994", reports[0].String())
	assert.Equal(t, "cycle 1 in=1694 out=1694", reports[1].String())
	assert.Equal(t, "cycle 2 in=3000 rejected", reports[2].String())
	assert.Equal(t, "stats cycles=2 accepted=1 rejected=1 stray=0 spurious=0", reports[3].String())
	assert.Equal(t, uint8(protocol.MessageDest+3), reports[3].Seq)

	c := m.Counters()
	assert.Equal(t, uint32(4), c.Frames)
	assert.Zero(t, c.Dropped)
	assert.Zero(t, c.Lost)
}

func TestFeedSplitAcrossReads(t *testing.T) {
	var cycles int
	m := New(nil, func(r Report) {
		if r.Cycle != nil {
			cycles++
		}
	})

	stream := telemetry(
		protocol.Cycle{Seq: 1, In: 1694, Out: 1694, Accepted: true},
		protocol.Cycle{Seq: 2, In: 1700, Out: 1718, Accepted: true},
	)
	for _, b := range stream {
		m.Feed([]byte{b})
	}

	assert.Equal(t, 2, cycles)
}

func TestFeedSkipsGarbageAndUnknown(t *testing.T) {
	var reports []Report
	m := New(nil, func(r Report) { reports = append(reports, r) })

	unknown := protocol.NewScratchOutput()
	protocol.NewEncoder(unknown).EncodeFrame(func(o protocol.OutputBuffer) {
		protocol.EncodeVLQUint(o, 42)
	})

	m.Feed([]byte{0x20, 0x21, protocol.MessageValueSync})
	m.Feed(unknown.Result())
	m.Feed(telemetry(protocol.Cycle{Seq: 9, In: 1694, Out: 1694, Accepted: true}))

	require.Len(t, reports, 1)
	assert.Equal(t, uint32(9), reports[0].Cycle.Seq)

	c := m.Counters()
	assert.Equal(t, uint32(1), c.Unknown)
	assert.Equal(t, uint32(1), c.Dropped)
}

func TestReadLoopUntilEOF(t *testing.T) {
	stream := telemetry(
		protocol.Cycle{Seq: 1, In: 1694, Out: 1694, Accepted: true},
		protocol.Stats{Cycles: 1, Accepted: 1},
	)

	var reports []Report
	m := New(bytes.NewReader(stream), func(r Report) { reports = append(reports, r) })
	m.Start()
	<-m.Done()

	assert.NoError(t, m.Err())
	require.Len(t, reports, 2)
	assert.NotNil(t, reports[1].Stats)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("device unplugged") }

func TestReadLoopError(t *testing.T) {
	m := New(failingReader{}, nil)
	m.Start()
	<-m.Done()

	assert.EqualError(t, m.Err(), "device unplugged")
}

func TestStop(t *testing.T) {
	r, w := io.Pipe()
	m := New(r, nil)
	m.Start()

	// Unblock the pending read so the loop sees the stop request
	go func() {
		w.Write(telemetry(protocol.Stats{}))
		w.Close()
	}()
	m.Stop()

	assert.NoError(t, m.Err())
}

func TestEmptyReport(t *testing.T) {
	assert.Equal(t, "empty report", Report{}.String())
}
