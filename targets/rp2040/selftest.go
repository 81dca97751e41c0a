//go:build rp2040 && selftest

package main

const selfTestBuild = true
