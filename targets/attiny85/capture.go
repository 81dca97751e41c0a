//go:build attiny85 && !selftest

package main

import "ppmx/core"

// inputSource measures the servo input pin
func inputSource() core.InputSource {
	return nil
}
