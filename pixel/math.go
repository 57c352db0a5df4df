package pixel

import "math"

// Float arithmetic below is float32 on purpose: sampling results depend on
// single precision rounding and on truncation toward zero. The explicit
// float32 conversions also keep the compiler from fusing multiply-adds.

func Clampi(value, lower, upper int) int {
	switch {
	case value < lower:
		return lower
	case value > upper:
		return upper
	default:
		return value
	}
}

func Clampf(value, lower, upper float32) float32 {
	switch {
	case value < lower:
		return lower
	case value > upper:
		return upper
	default:
		return value
	}
}

// Saturatei clamps to [0, 255].
func Saturatei(value int) int {
	return Clampi(value, 0, 255)
}

// Saturatef clamps to [0, 1].
func Saturatef(value float32) float32 {
	return Clampf(value, 0, 1)
}

func Lerpf(from, to, scale float32) float32 {
	return from + float32((to-from)*scale)
}

// Lerpi interpolates in float32 and truncates toward zero.
func Lerpi(from, to int, scale float32) int {
	return int(float32(from) + float32(float32(to-from)*scale))
}

func Distance1D(x1, x2 float32) float32 {
	if x1 > x2 {
		return x1 - x2
	}
	return x2 - x1
}

func Distance2D(x1, y1, x2, y2 float32) float32 {
	dx := x2 - x1
	dy := y2 - y1
	return float32(math.Sqrt(float64(float32(dx*dx) + float32(dy*dy))))
}

func Distance3D(x1, y1, z1, x2, y2, z2 float32) float32 {
	dx := x2 - x1
	dy := y2 - y1
	dz := z2 - z1
	return float32(math.Sqrt(float64(float32(dx*dx) + float32(dy*dy) + float32(dz*dz))))
}

// Truncate converts to int toward zero after clamping into [lower, upper],
// which is equivalent to clamping the truncated value but never overflows.
// NaN maps to lower.
func Truncate(value float32, lower, upper int) int {
	if !(value >= float32(lower)) {
		return lower
	}
	if value > float32(upper) {
		return upper
	}
	return int(value)
}
