// Package protocol implements the telemetry stream the firmware sends to
// the host: Klipper-style blocks carrying VLQ encoded messages
package protocol

// Version represents the ppmx firmware version
const Version = "0.1.0"

// Block layout: [len][seq][payload...][crc hi][crc lo][sync]
const (
	MessageMax         = 256 // Scratch buffer size (several blocks)
	MessageHeaderSize  = 2
	MessageTrailerSize = 3
	MessageLengthMin   = MessageHeaderSize + MessageTrailerSize
	MessageLengthMax   = 64
	MessagePositionLen = 0
	MessagePositionSeq = 1
	MessageTrailerCRC  = 3
	MessageTrailerSync = 1
	MessageValueSync   = 0x7E
	MessageDest        = 0x10

	// Message sequence masks
	MessageSeqMask = 0x0F
)

// Message IDs
const (
	MsgHello = 0 // version=%s in_min=%u in_max=%u mid=%u out_min=%u out_max=%u
	MsgCycle = 1 // seq=%u in=%u out=%u accepted=%c
	MsgStats = 2 // cycles=%u accepted=%u rejected=%u stray=%u spurious=%u
)
