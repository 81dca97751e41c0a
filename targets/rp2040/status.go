//go:build rp2040

package main

import (
	"image/color"
	"machine"

	"tinygo.org/x/drivers/ws2812"
)

var (
	colorOff      = color.RGBA{}
	colorValid    = color.RGBA{G: 0x20}
	colorRejected = color.RGBA{R: 0x20}
	colorSelfTest = color.RGBA{B: 0x20}
	colorFault    = color.RGBA{R: 0x20, G: 0x10}
)

// statusLED drives a single WS2812. The driver masks interrupts while
// it shifts bits out, so it only writes when the color changes.
type statusLED struct {
	dev    ws2812.Device
	pixel  [1]color.RGBA
	inited bool
}

func newStatusLED(pin machine.Pin) *statusLED {
	pin.Configure(machine.PinConfig{Mode: machine.PinOutput})
	s := &statusLED{dev: ws2812.NewWS2812(pin)}
	s.show(colorOff)
	return s
}

func (s *statusLED) show(c color.RGBA) {
	if s.inited && s.pixel[0] == c {
		return
	}
	s.inited = true
	s.pixel[0] = c
	_ = s.dev.WriteColors(s.pixel[:])
}
