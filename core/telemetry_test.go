package core

import (
	"testing"

	"ppmx/protocol"
)

func decodeStream(t *testing.T, stream []byte) []protocol.Message {
	t.Helper()
	var msgs []protocol.Message
	dec := protocol.NewDecoder()
	dec.Receive(protocol.NewSliceInputBuffer(stream), func(_ uint8, payload []byte) {
		msg, err := protocol.DecodeMessage(&payload)
		if err != nil {
			t.Fatalf("DecodeMessage failed: %v", err)
		}
		msgs = append(msgs, msg)
	})
	if dec.Dropped != 0 || dec.Lost != 0 {
		t.Errorf("Expected clean stream, dropped=%d lost=%d", dec.Dropped, dec.Lost)
	}
	return msgs
}

func TestTelemetryStream(t *testing.T) {
	var stream []byte
	tel := NewTelemetry(func(b []byte) { stream = append(stream, b...) })
	tel.StatsEvery = 2

	c, _ := newFakeController(t)
	tel.Attach(c)

	tel.SendHello(DefaultThresholds)
	tel.OnCycle(CycleReport{Seq: 1, In: 1694, Out: 1694, Accepted: true})
	tel.OnCycle(CycleReport{Seq: 2, In: 3000})

	msgs := decodeStream(t, stream)
	if len(msgs) != 4 {
		t.Fatalf("Expected 4 messages, got %d: %+v", len(msgs), msgs)
	}

	hello, ok := msgs[0].(protocol.Hello)
	if !ok || hello.Mid != 1694 || hello.Version != protocol.Version {
		t.Errorf("Unexpected hello %+v", msgs[0])
	}
	if cycle, ok := msgs[1].(protocol.Cycle); !ok || !cycle.Accepted || cycle.Out != 1694 {
		t.Errorf("Unexpected first cycle %+v", msgs[1])
	}
	if cycle, ok := msgs[2].(protocol.Cycle); !ok || cycle.Accepted || cycle.In != 3000 {
		t.Errorf("Unexpected second cycle %+v", msgs[2])
	}
	if _, ok := msgs[3].(protocol.Stats); !ok {
		t.Errorf("Expected stats after the second cycle, got %+v", msgs[3])
	}
}

func TestTelemetryWithoutController(t *testing.T) {
	var blocks int
	tel := NewTelemetry(func([]byte) { blocks++ })
	tel.StatsEvery = 1

	tel.OnCycle(CycleReport{Seq: 1, In: 1694, Out: 1694, Accepted: true})
	if blocks != 1 {
		t.Errorf("Expected only the cycle block without a controller, got %d", blocks)
	}
}
