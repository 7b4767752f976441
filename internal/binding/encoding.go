package binding

// AxisOffset separates axis bindings from button ordinals. It is larger than
// any native gamepad button ordinal.
const AxisOffset = 1 << 9

// EncodeAxis returns the binding value for a stick or trigger moved toward
// its positive or negative extreme.
func EncodeAxis(axis int, positive bool) int {
	v := axis + AxisOffset
	if !positive {
		v = -v
	}
	return v
}

// IsAxis reports whether v is an axis binding rather than a button ordinal.
func IsAxis(v int) bool {
	return v < 0 || v >= AxisOffset
}

// DecodeAxis splits an axis binding into its axis index and direction sign.
// ok is false for button ordinals.
func DecodeAxis(v int) (axis int, sign int, ok bool) {
	if !IsAxis(v) {
		return 0, 0, false
	}
	if v < 0 {
		return -v - AxisOffset, -1, true
	}
	return v - AxisOffset, 1, true
}
