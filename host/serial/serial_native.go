//go:build !wasm

package serial

import (
	"fmt"
	"time"

	"github.com/tarm/serial"
)

// NativePort wraps the tarm/serial implementation
type NativePort struct {
	port *serial.Port
	cfg  *Config
}

// Open opens a native serial port
func Open(cfg *Config) (Port, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	port, err := serial.OpenPort(cfg.tarmConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to open serial port %s: %w", cfg.Device, err)
	}

	return &NativePort{
		port: port,
		cfg:  cfg,
	}, nil
}

func (c *Config) tarmConfig() *serial.Config {
	return &serial.Config{
		Name:        c.Device,
		Baud:        c.Baud,
		ReadTimeout: time.Duration(c.ReadTimeout) * time.Millisecond,
	}
}

func (p *NativePort) Read(b []byte) (int, error) {
	return p.port.Read(b)
}

func (p *NativePort) Write(b []byte) (int, error) {
	return p.port.Write(b)
}

// Close closes the serial port
func (p *NativePort) Close() error {
	if p.port != nil {
		return p.port.Close()
	}
	return nil
}

// Flush drops whatever the driver buffered before the monitor attached
func (p *NativePort) Flush() error {
	return p.port.Flush()
}

// String returns the device path
func (p *NativePort) String() string {
	return p.cfg.Device
}
