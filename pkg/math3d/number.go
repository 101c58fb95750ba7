// Package math3d provides the vector and matrix primitives used by the
// softpipe rendering pipeline.
//
// All types are small value types. Methods never mutate their receiver;
// every operation returns a new value.
package math3d

import "math"

// Number is the set of scalar types vectors and matrices can hold.
type Number interface {
	~int | ~int32 | ~int64 | ~float32 | ~float64
}

// Float-backed aliases used throughout the pipeline.
type (
	Vec2f = Vec2[float64]
	Vec3f = Vec3[float64]
	Vec4f = Vec4[float64]
	Mat3f = Mat3[float64]
	Mat4f = Mat4[float64]
)

// Integer-backed aliases.
type (
	Vec2i = Vec2[int]
	Vec3i = Vec3[int]
	Vec4i = Vec4[int]
	Mat3i = Mat3[int]
	Mat4i = Mat4[int]
)

// Radians converts degrees to radians.
func Radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// Degrees converts radians to degrees.
func Degrees(rad float64) float64 {
	return rad * 180 / math.Pi
}

// ApproxEqual reports whether a and b differ by at most eps.
func ApproxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

func sqrt[T Number](v T) float64 {
	return math.Sqrt(float64(v))
}
