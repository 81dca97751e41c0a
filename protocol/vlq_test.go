package protocol

import "testing"

func TestVLQEncodeDecodeInt(t *testing.T) {
	testCases := []int32{
		0,
		1,
		-1,
		127,
		-127,
		128,
		-128,
		255,
		-255,
		1000,
		-1000,
		65535,
		-65535,
		1000000,
		-1000000,
	}

	for _, expected := range testCases {
		output := NewScratchOutput()
		EncodeVLQInt(output, expected)
		encoded := output.Result()

		data := encoded
		decoded, err := DecodeVLQInt(&data)
		if err != nil {
			t.Errorf("Failed to decode VLQ for value %d: %v", expected, err)
			continue
		}

		if decoded != expected {
			t.Errorf("VLQ mismatch: expected %d, got %d (encoded as %v)", expected, decoded, encoded)
		}

		if len(data) != 0 {
			t.Errorf("VLQ decode didn't consume all bytes for value %d: %d bytes remaining", expected, len(data))
		}
	}
}

func TestVLQEncodeDecodeUint(t *testing.T) {
	testCases := []uint32{
		0,
		1,
		127,
		128,
		255,
		1000,
		65535,
		1000000,
	}

	for _, expected := range testCases {
		output := NewScratchOutput()
		EncodeVLQUint(output, expected)
		encoded := output.Result()

		data := encoded
		decoded, err := DecodeVLQUint(&data)
		if err != nil {
			t.Errorf("Failed to decode VLQ for value %d: %v", expected, err)
			continue
		}

		if decoded != expected {
			t.Errorf("VLQ mismatch: expected %d, got %d (encoded as %v)", expected, decoded, encoded)
		}
	}
}

func TestVLQSingleByteRange(t *testing.T) {
	for _, v := range []int32{-32, 0, 95} {
		output := NewScratchOutput()
		EncodeVLQInt(output, v)
		if n := len(output.Result()); n != 1 {
			t.Errorf("Expected %d to encode in 1 byte, got %d", v, n)
		}
	}
	for _, v := range []int32{-33, 96, 2994} {
		output := NewScratchOutput()
		EncodeVLQInt(output, v)
		if n := len(output.Result()); n != 2 {
			t.Errorf("Expected %d to encode in 2 bytes, got %d", v, n)
		}
	}
}

func TestVLQString(t *testing.T) {
	testCases := []string{
		"",
		"hello",
		"Hello, World!",
		"Special chars: !@#$%^&*()",
	}

	for _, expected := range testCases {
		output := NewScratchOutput()
		EncodeVLQString(output, expected)
		encoded := output.Result()

		data := encoded
		decoded, err := DecodeVLQString(&data)
		if err != nil {
			t.Errorf("Failed to decode string '%s': %v", expected, err)
			continue
		}

		if decoded != expected {
			t.Errorf("String mismatch: expected '%s', got '%s'", expected, decoded)
		}
	}
}

func TestVLQBufferTooSmall(t *testing.T) {
	// Test decoding with insufficient data
	data := []byte{0x80} // Continuation byte but no following byte
	_, err := DecodeVLQInt(&data)
	if err != ErrBufferTooSmall {
		t.Errorf("Expected ErrBufferTooSmall, got %v", err)
	}
}

func TestVLQTooLong(t *testing.T) {
	data := []byte{0x81, 0x81, 0x81, 0x81, 0x81, 0x01}
	_, err := DecodeVLQInt(&data)
	if err != ErrInvalidVLQ {
		t.Errorf("Expected ErrInvalidVLQ, got %v", err)
	}
}
