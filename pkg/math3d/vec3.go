package math3d

import "math"

// Vec3 represents a 3D vector or an RGB color.
type Vec3[T Number] struct {
	X, Y, Z T
}

// V3 creates a new float64 Vec3.
func V3(x, y, z float64) Vec3f {
	return Vec3f{x, y, z}
}

// NewVec3 creates a Vec3 of any scalar type.
func NewVec3[T Number](x, y, z T) Vec3[T] {
	return Vec3[T]{x, y, z}
}

// Add returns the vector sum a + b.
func (a Vec3[T]) Add(b Vec3[T]) Vec3[T] {
	return Vec3[T]{a.X + b.X, a.Y + b.Y, a.Z + b.Z}
}

// Sub returns the vector difference a - b.
func (a Vec3[T]) Sub(b Vec3[T]) Vec3[T] {
	return Vec3[T]{a.X - b.X, a.Y - b.Y, a.Z - b.Z}
}

// Mul returns the component-wise product a * b.
func (a Vec3[T]) Mul(b Vec3[T]) Vec3[T] {
	return Vec3[T]{a.X * b.X, a.Y * b.Y, a.Z * b.Z}
}

// Scale returns the scalar product a * s.
func (a Vec3[T]) Scale(s T) Vec3[T] {
	return Vec3[T]{a.X * s, a.Y * s, a.Z * s}
}

// Div returns the scalar division a / s.
func (a Vec3[T]) Div(s T) Vec3[T] {
	return Vec3[T]{a.X / s, a.Y / s, a.Z / s}
}

// Dot returns the dot product a · b.
func (a Vec3[T]) Dot(b Vec3[T]) T {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z
}

// Cross returns the cross product a × b.
func (a Vec3[T]) Cross(b Vec3[T]) Vec3[T] {
	return Vec3[T]{
		a.Y*b.Z - a.Z*b.Y,
		a.Z*b.X - a.X*b.Z,
		a.X*b.Y - a.Y*b.X,
	}
}

// Len returns the length (magnitude) of the vector.
func (a Vec3[T]) Len() float64 {
	return sqrt(a.LenSq())
}

// LenSq returns the squared length (faster, no sqrt).
func (a Vec3[T]) LenSq() T {
	return a.X*a.X + a.Y*a.Y + a.Z*a.Z
}

// Normalize returns the unit vector in the same direction.
func (a Vec3[T]) Normalize() Vec3[T] {
	l := a.Len()
	if l == 0 {
		return Vec3[T]{}
	}
	return Vec3[T]{T(float64(a.X) / l), T(float64(a.Y) / l), T(float64(a.Z) / l)}
}

// Angle returns the angle in radians between a and b.
// Zero-length inputs yield 0.
func (a Vec3[T]) Angle(b Vec3[T]) float64 {
	d := a.Len() * b.Len()
	if d == 0 {
		return 0
	}
	cos := float64(a.Dot(b)) / d
	return math.Acos(math.Max(-1, math.Min(1, cos)))
}

// Negate returns the negated vector.
func (a Vec3[T]) Negate() Vec3[T] {
	return Vec3[T]{-a.X, -a.Y, -a.Z}
}

// Lerp returns the linear interpolation between a and b by t.
func (a Vec3[T]) Lerp(b Vec3[T], t float64) Vec3[T] {
	return Vec3[T]{
		a.X + T(float64(b.X-a.X)*t),
		a.Y + T(float64(b.Y-a.Y)*t),
		a.Z + T(float64(b.Z-a.Z)*t),
	}
}

// Distance returns the distance between two points.
func (a Vec3[T]) Distance(b Vec3[T]) float64 {
	return a.Sub(b).Len()
}

// Min returns the component-wise minimum.
func (a Vec3[T]) Min(b Vec3[T]) Vec3[T] {
	return Vec3[T]{min(a.X, b.X), min(a.Y, b.Y), min(a.Z, b.Z)}
}

// Max returns the component-wise maximum.
func (a Vec3[T]) Max(b Vec3[T]) Vec3[T] {
	return Vec3[T]{max(a.X, b.X), max(a.Y, b.Y), max(a.Z, b.Z)}
}

// XY drops the Z component.
func (a Vec3[T]) XY() Vec2[T] {
	return Vec2[T]{a.X, a.Y}
}
