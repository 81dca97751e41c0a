package protocol

import "errors"

// ErrUnknownMessage is returned for message ids this version does not know
var ErrUnknownMessage = errors.New("unknown message id")

// Message is one telemetry record inside a block
type Message interface {
	ID() uint8
	Encode(output OutputBuffer)
}

// Hello is sent once at startup
type Hello struct {
	Version string
	InMin   uint16
	InMax   uint16
	Mid     uint16
	OutMin  uint16
	OutMax  uint16
}

func (Hello) ID() uint8 { return MsgHello }

func (m Hello) Encode(output OutputBuffer) {
	EncodeVLQString(output, m.Version)
	EncodeVLQUint(output, uint32(m.InMin))
	EncodeVLQUint(output, uint32(m.InMax))
	EncodeVLQUint(output, uint32(m.Mid))
	EncodeVLQUint(output, uint32(m.OutMin))
	EncodeVLQUint(output, uint32(m.OutMax))
}

// Cycle reports one capture/generate cycle. Out is zero when the input
// was rejected.
type Cycle struct {
	Seq      uint32
	In       uint16
	Out      uint16
	Accepted bool
}

func (Cycle) ID() uint8 { return MsgCycle }

func (m Cycle) Encode(output OutputBuffer) {
	EncodeVLQUint(output, m.Seq)
	EncodeVLQUint(output, uint32(m.In))
	EncodeVLQUint(output, uint32(m.Out))
	var accepted uint32
	if m.Accepted {
		accepted = 1
	}
	EncodeVLQUint(output, accepted)
}

// Stats carries the controller counters
type Stats struct {
	Cycles           uint32
	Accepted         uint32
	Rejected         uint32
	StrayEdges       uint32
	SpuriousCompares uint32
}

func (Stats) ID() uint8 { return MsgStats }

func (m Stats) Encode(output OutputBuffer) {
	EncodeVLQUint(output, m.Cycles)
	EncodeVLQUint(output, m.Accepted)
	EncodeVLQUint(output, m.Rejected)
	EncodeVLQUint(output, m.StrayEdges)
	EncodeVLQUint(output, m.SpuriousCompares)
}

// DecodeMessage decodes the next message from data and advances it
func DecodeMessage(data *[]byte) (Message, error) {
	id, err := DecodeVLQUint(data)
	if err != nil {
		return nil, err
	}

	var fields [6]uint32
	switch id {
	case MsgHello:
		version, err := DecodeVLQString(data)
		if err != nil {
			return nil, err
		}
		if err := decodeFields(data, fields[:5]); err != nil {
			return nil, err
		}
		return Hello{
			Version: version,
			InMin:   uint16(fields[0]),
			InMax:   uint16(fields[1]),
			Mid:     uint16(fields[2]),
			OutMin:  uint16(fields[3]),
			OutMax:  uint16(fields[4]),
		}, nil
	case MsgCycle:
		if err := decodeFields(data, fields[:4]); err != nil {
			return nil, err
		}
		return Cycle{
			Seq:      fields[0],
			In:       uint16(fields[1]),
			Out:      uint16(fields[2]),
			Accepted: fields[3] != 0,
		}, nil
	case MsgStats:
		if err := decodeFields(data, fields[:5]); err != nil {
			return nil, err
		}
		return Stats{
			Cycles:           fields[0],
			Accepted:         fields[1],
			Rejected:         fields[2],
			StrayEdges:       fields[3],
			SpuriousCompares: fields[4],
		}, nil
	}
	return nil, ErrUnknownMessage
}

func decodeFields(data *[]byte, fields []uint32) error {
	for i := range fields {
		v, err := DecodeVLQUint(data)
		if err != nil {
			return err
		}
		fields[i] = v
	}
	return nil
}
