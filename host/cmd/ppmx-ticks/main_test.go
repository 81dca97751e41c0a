package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ppmx/core"
)

func TestThresholdsForDefaultFactor(t *testing.T) {
	th, err := thresholdsFor(DefaultFactor)
	require.NoError(t, err)
	assert.Equal(t, core.DefaultThresholds, th)
}

func TestThresholdsForAttiny85(t *testing.T) {
	th, err := thresholdsFor(0.94)
	require.NoError(t, err)
	assert.Equal(t, core.Thresholds{InMin: 940, InMax: 1880, Mid: 1410, OutMin: 517, OutMax: 2491}, th)
}

func TestThresholdsForBadFactor(t *testing.T) {
	for _, f := range []float64{0, -1, 100} {
		_, err := thresholdsFor(f)
		assert.Error(t, err, "factor %g", f)
	}
}

func TestGenerate(t *testing.T) {
	var b strings.Builder
	require.NoError(t, generate(&b, options{pkg: "main", name: "thresholds"}, 1.13))

	src := b.String()
	assert.True(t, strings.HasPrefix(src, "// Code generated by ppmx-ticks -factor 1.13; DO NOT EDIT.\n\npackage main\n"))
	assert.Contains(t, src, "import \"ppmx/core\"")
	assert.Contains(t, src, "var thresholds = core.Thresholds{")
	assert.Contains(t, src, "\tMid:    1694, // 1500 us\n")
	assert.Contains(t, src, "\tOutMin: 621,  // 550 us\n")
	assert.Contains(t, src, "\tOutMax: 2994, // 2650 us\n")
}

func TestGenerateWithBuildTag(t *testing.T) {
	var b strings.Builder
	require.NoError(t, generate(&b, options{pkg: "main", name: "thresholds", tags: "attiny85"}, 0.94))

	src := b.String()
	assert.Contains(t, src, "DO NOT EDIT.\n\n//go:build attiny85\n\npackage main\n")
	assert.Contains(t, src, "\tInMin:  940,  // 1000 us\n")
	assert.Contains(t, src, "\tInMax:  1880, // 2000 us\n")
}

func TestGenerateInCore(t *testing.T) {
	var b strings.Builder
	require.NoError(t, generate(&b, options{pkg: "core", name: "calibrated"}, 1.2))

	src := b.String()
	assert.NotContains(t, src, "import")
	assert.Contains(t, src, "var calibrated = Thresholds{")
	assert.Contains(t, src, "\tInMin:  1200, // 1000 us\n")
}
