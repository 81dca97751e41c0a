package protocol

import "sync/atomic"

// FrameHandler receives the payload and sequence byte of every valid block
type FrameHandler func(seq uint8, payload []byte)

// Encoder writes telemetry blocks into an OutputBuffer. Each block gets
// the next 4-bit sequence number so the reader can detect lost blocks.
type Encoder struct {
	output       OutputBuffer
	nextSequence uint32 // atomic uint8 stored as uint32
}

// NewEncoder creates an Encoder starting at sequence MessageDest
func NewEncoder(output OutputBuffer) *Encoder {
	return &Encoder{
		output:       output,
		nextSequence: MessageDest,
	}
}

// EncodeFrame encodes one block whose payload is written by frameData
func (e *Encoder) EncodeFrame(frameData func(output OutputBuffer)) {
	cursor := e.output.CurPosition()

	seq := uint8(atomic.LoadUint32(&e.nextSequence))
	e.output.Output([]byte{0, seq})

	frameData(e.output)

	// Length covers header, payload and trailer
	changed := len(e.output.DataSince(cursor))
	e.output.Update(cursor, uint8(changed+MessageTrailerSize))

	crc := CRC16(e.output.DataSince(cursor))
	e.output.Output([]byte{
		uint8((crc & 0xFF00) >> 8),
		uint8(crc & 0xFF),
		MessageValueSync,
	})

	next := ((seq + 1) & MessageSeqMask) | MessageDest
	atomic.StoreUint32(&e.nextSequence, uint32(next))
}

// Send encodes a single message as one block
func (e *Encoder) Send(msg Message) {
	e.EncodeFrame(func(output OutputBuffer) {
		EncodeVLQUint(output, uint32(msg.ID()))
		msg.Encode(output)
	})
}

// Decoder splits a byte stream into blocks. After garbage, a bad length
// or a bad CRC it discards input up to the next sync byte.
type Decoder struct {
	synchronized bool
	started      bool
	expected     uint8

	// Frames counts valid blocks handed to the handler
	Frames uint32
	// Dropped counts desynchronisations (bad length, CRC or trailer)
	Dropped uint32
	// Lost counts blocks skipped according to the sequence numbers
	Lost uint32
}

// NewDecoder creates a Decoder that assumes the stream starts on a block
func NewDecoder() *Decoder {
	return &Decoder{synchronized: true}
}

// Receive processes all complete blocks in input and pops the consumed
// bytes. A partial block at the end stays in the buffer.
func (d *Decoder) Receive(input InputBuffer, handler FrameHandler) {
	data := input.Data()

	for len(data) > 0 {
		if !d.synchronized {
			syncPos := -1
			for i, b := range data {
				if b == MessageValueSync {
					syncPos = i
					break
				}
			}
			if syncPos < 0 {
				data = nil
				break
			}
			data = data[syncPos+1:]
			d.synchronized = true
			continue
		}

		// Skip leading sync bytes
		if data[0] == MessageValueSync {
			data = data[1:]
			continue
		}

		if len(data) < MessageLengthMin {
			break
		}

		msgLen := int(data[MessagePositionLen])
		if msgLen < MessageLengthMin || msgLen > MessageLengthMax {
			d.desync()
			continue
		}

		seq := data[MessagePositionSeq]
		if seq&^MessageSeqMask != MessageDest {
			d.desync()
			continue
		}

		if len(data) < msgLen {
			break
		}

		if data[msgLen-MessageTrailerSync] != MessageValueSync {
			d.desync()
			continue
		}

		frameCRC := uint16(data[msgLen-MessageTrailerCRC])<<8 |
			uint16(data[msgLen-MessageTrailerCRC+1])
		if frameCRC != CRC16(data[:msgLen-MessageTrailerSize]) {
			d.desync()
			continue
		}

		payload := data[MessageHeaderSize : msgLen-MessageTrailerSize]
		data = data[msgLen:]

		if d.started {
			d.Lost += uint32((seq - d.expected) & MessageSeqMask)
		}
		d.started = true
		d.expected = ((seq + 1) & MessageSeqMask) | MessageDest
		d.Frames++

		if handler != nil {
			handler(seq, payload)
		}
	}

	consumed := input.Available() - len(data)
	if consumed > 0 {
		input.Pop(consumed)
	}
}

func (d *Decoder) desync() {
	d.synchronized = false
	d.Dropped++
}
