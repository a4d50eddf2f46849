package math

/** @brief A 4-element vector, also used for RGBA colours. */
type Vec4 struct {
	X float32
	Y float32
	Z float32
	W float32
}

func NewVec4(x, y, z, w float32) Vec4 {
	return Vec4{X: x, Y: y, Z: z, W: w}
}

// Elements returns the vector as a 4-element slice in XYZW order.
func (v Vec4) Elements() []float32 {
	return []float32{v.X, v.Y, v.Z, v.W}
}
