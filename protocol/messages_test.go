package protocol

import (
	"errors"
	"testing"
)

func TestMessageRoundTrip(t *testing.T) {
	testCases := []Message{
		Hello{Version: Version, InMin: 1130, InMax: 2260, Mid: 1694, OutMin: 621, OutMax: 2994},
		Cycle{Seq: 7, In: 1694, Out: 1694, Accepted: true},
		Cycle{Seq: 8, In: 3000},
		Stats{Cycles: 100000, Accepted: 99990, Rejected: 10, StrayEdges: 1, SpuriousCompares: 33},
	}

	for _, msg := range testCases {
		out := NewScratchOutput()
		EncodeVLQUint(out, uint32(msg.ID()))
		msg.Encode(out)

		data := out.Result()
		decoded, err := DecodeMessage(&data)
		if err != nil {
			t.Errorf("Failed to decode %T: %v", msg, err)
			continue
		}
		if decoded != msg {
			t.Errorf("Expected %+v, got %+v", msg, decoded)
		}
		if len(data) != 0 {
			t.Errorf("%T: %d bytes left after decode", msg, len(data))
		}
	}
}

func TestMessageThroughFrame(t *testing.T) {
	out := NewScratchOutput()
	enc := NewEncoder(out)
	enc.Send(Cycle{Seq: 1, In: 5000, Out: 5832, Accepted: true})

	var got []Message
	NewDecoder().Receive(NewSliceInputBuffer(out.Result()), func(_ uint8, payload []byte) {
		msg, err := DecodeMessage(&payload)
		if err != nil {
			t.Fatalf("DecodeMessage failed: %v", err)
		}
		got = append(got, msg)
	})

	if len(got) != 1 {
		t.Fatalf("Expected 1 message, got %d", len(got))
	}
	cycle, ok := got[0].(Cycle)
	if !ok || cycle.Out != 5832 {
		t.Errorf("Expected cycle with out=5832, got %+v", got[0])
	}
}

func TestDecodeUnknownMessage(t *testing.T) {
	data := []byte{0x09}
	_, err := DecodeMessage(&data)
	if !errors.Is(err, ErrUnknownMessage) {
		t.Errorf("Expected ErrUnknownMessage, got %v", err)
	}
}

func TestDecodeTruncatedMessage(t *testing.T) {
	data := []byte{MsgCycle, 0x01}
	_, err := DecodeMessage(&data)
	if !errors.Is(err, ErrBufferTooSmall) {
		t.Errorf("Expected ErrBufferTooSmall, got %v", err)
	}
}
