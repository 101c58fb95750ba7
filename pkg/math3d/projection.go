package math3d

import "math"

// Frustum creates a perspective projection matrix from the bounds of the
// near clipping rectangle.
//
// The camera sits at the origin looking down -Z. A camera-space point
// (x, y, z, 1) is mapped to clip space with w = -z, and the frustum maps
// onto the canonical cube -w <= x, y, z <= w. far may be +Inf, which
// yields an infinite far plane.
func Frustum(right, left, top, bottom, near, far float64) Mat4f {
	rl := 1.0 / (right - left)
	tb := 1.0 / (top - bottom)

	m := Mat4f{
		2 * near * rl, 0, (right + left) * rl, 0,
		0, 2 * near * tb, (top + bottom) * tb, 0,
		0, 0, -1, -2 * near,
		0, 0, -1, 0,
	}
	if !math.IsInf(far, 1) {
		fn := 1.0 / (far - near)
		m[10] = -(far + near) * fn
		m[11] = -2 * far * near * fn
	}
	return m
}

// Perspective creates a symmetric perspective projection matrix.
// fovy is vertical field of view in radians.
// aspect is width/height.
// near and far are clipping planes.
func Perspective(fovy, aspect, near, far float64) Mat4f {
	top := near * math.Tan(fovy/2)
	right := top * aspect
	return Frustum(right, -right, top, -top, near, far)
}

// Orthographic creates an orthographic projection matrix.
func Orthographic(right, left, top, bottom, near, far float64) Mat4f {
	rl := 1.0 / (right - left)
	tb := 1.0 / (top - bottom)
	fn := 1.0 / (far - near)

	return Mat4f{
		2 * rl, 0, 0, -(right + left) * rl,
		0, 2 * tb, 0, -(top + bottom) * tb,
		0, 0, -2 * fn, -(far + near) * fn,
		0, 0, 0, 1,
	}
}
