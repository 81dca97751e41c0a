//go:build rp2040

package main

// ModeConfig determines where input pulses come from
type ModeConfig struct {
	// SelfTest replaces the servo input with a sweep, for bench checks
	// of the output without a receiver
	SelfTest bool

	// Loopback keeps the real capture path but drives it from a PIO
	// pulse generator on loopbackPin, jumpered to the servo input
	Loopback bool
}

// GetMode returns the mode selected at build time with -tags selftest
// or -tags loopback. SelfTest wins if both are set.
func GetMode() ModeConfig {
	return ModeConfig{
		SelfTest: selfTestBuild,
		Loopback: loopbackBuild && !selfTestBuild,
	}
}
