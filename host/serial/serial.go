// Package serial opens the port the firmware streams telemetry on
package serial

import (
	"errors"
	"fmt"
	"io"
)

// ErrNoDevice is returned when no device path is configured
var ErrNoDevice = errors.New("no serial device configured")

// Port is a byte stream to the firmware. The native implementation uses
// github.com/tarm/serial; tests substitute in-memory streams.
type Port interface {
	io.ReadWriteCloser

	// Flush discards unread input and unsent output
	Flush() error
}

// Config holds serial port configuration
type Config struct {
	// Device path (e.g., "/dev/ttyACM0", "COM3")
	Device string

	// Baud rate. USB CDC ignores it; a UART bridge on the attiny85 does not.
	Baud int

	// Read timeout in milliseconds (0 = blocking)
	ReadTimeout int
}

// DefaultConfig returns the configuration for the rp2040 USB CDC port
func DefaultConfig(device string) *Config {
	return &Config{
		Device:      device,
		Baud:        115200,
		ReadTimeout: 100,
	}
}

// Validate checks the configuration before opening
func (c *Config) Validate() error {
	if c.Device == "" {
		return ErrNoDevice
	}
	if c.Baud <= 0 {
		return fmt.Errorf("invalid baud rate %d", c.Baud)
	}
	if c.ReadTimeout < 0 {
		return fmt.Errorf("invalid read timeout %dms", c.ReadTimeout)
	}
	return nil
}
