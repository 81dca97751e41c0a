package protocol

// CRC16 is CRC-16/MCRF4XX (reflected 0x8408, init 0xFFFF, no final xor),
// the variant Klipper tooling checks block trailers with.
func CRC16(data []byte) uint16 {
	crc := uint16(0xFFFF)
	for _, b := range data {
		crc = crc16Step(crc, b)
	}
	return crc
}

// crc16Step folds one byte into crc using the nibble-shift form of the
// 0x8408 polynomial, which needs no lookup table.
func crc16Step(crc uint16, b byte) uint16 {
	x := b ^ byte(crc)
	x ^= x << 4
	w := uint16(x)
	return (crc >> 8) ^ (w << 8) ^ (w << 3) ^ (w >> 4)
}
