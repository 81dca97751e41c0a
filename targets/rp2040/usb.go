//go:build rp2040

package main

import (
	"machine"

	"ppmx/core"
)

var (
	// USB connection state tracking
	usbWasDisconnected       bool
	consecutiveWriteFailures uint32
	blocksDropped            uint32
)

// InitUSB configures machine.Serial, which is USB CDC on the RP2040
func InitUSB() {
	err := machine.Serial.Configure(machine.UARTConfig{})
	if err != nil {
		return
	}
}

// writeUSB sends one telemetry block. Nobody may be listening, so after
// repeated failures blocks are dropped until a write succeeds again.
func writeUSB(block []byte) {
	written := 0
	for written < len(block) {
		n, err := machine.Serial.Write(block[written:])
		if err != nil || n == 0 {
			consecutiveWriteFailures++
			if consecutiveWriteFailures > 10 {
				usbWasDisconnected = true
			}
			blocksDropped++
			return
		}
		written += n
	}
	if usbWasDisconnected {
		DebugPrintln("usb back, dropped=" + core.Utoa(blocksDropped))
		blocksDropped = 0
	}
	consecutiveWriteFailures = 0
	usbWasDisconnected = false
}
