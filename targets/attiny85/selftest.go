//go:build attiny85 && selftest

package main

import "ppmx/core"

// inputSource sweeps the output across its range without a receiver,
// one pulse per 19 ms frame
func inputSource() core.InputSource {
	return core.NewSweepSource(thresholds)
}
