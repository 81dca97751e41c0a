package core

// Scale multiplies a deviation by 8/3 using only integer arithmetic:
// 2*d + 2*(d/3). The truncation of d/3 is part of the calibration and
// must not be replaced by a rounded or floating point product.
func Scale(d uint16) uint32 {
	v := uint32(d)
	return 2*v + 2*(v/3)
}

// Expand maps a measured tick count onto the wider output range by
// scaling its deviation from Mid. The result is not clamped; a deviation
// larger than Mid saturates at zero instead of wrapping.
func Expand(t TickCount, th Thresholds) TickCount {
	h := int32(th.Mid) - int32(th.InMin) // nominal half-span
	p := int32(t) - int32(th.InMin)

	out := int32(th.Mid)
	switch {
	case p > h:
		out += int32(Scale(uint16(p - h)))
	case p < h:
		out -= int32(Scale(uint16(h - p)))
	}

	if out < 0 {
		return 0
	}
	if out > 0xFFFF {
		return 0xFFFF
	}
	return TickCount(out)
}

// Rescale expands t and clamps the result to [OutMin, OutMax].
// It is pure and monotonically non-decreasing in t.
func Rescale(t TickCount, th Thresholds) TickCount {
	out := Expand(t, th)
	if out < th.OutMin {
		out = th.OutMin
	}
	if out > th.OutMax {
		out = th.OutMax
	}
	return out
}
