//go:build rp2040 && loopback

package main

const loopbackBuild = true
