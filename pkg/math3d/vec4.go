package math3d

// Vec4 represents a 4D vector (or homogeneous 3D point).
type Vec4[T Number] struct {
	X, Y, Z, W T
}

// V4 creates a new float64 Vec4.
func V4(x, y, z, w float64) Vec4f {
	return Vec4f{x, y, z, w}
}

// NewVec4 creates a Vec4 of any scalar type.
func NewVec4[T Number](x, y, z, w T) Vec4[T] {
	return Vec4[T]{x, y, z, w}
}

// V4FromV3 creates a Vec4 from a Vec3 with the specified W.
func V4FromV3[T Number](v Vec3[T], w T) Vec4[T] {
	return Vec4[T]{v.X, v.Y, v.Z, w}
}

// Vec3 returns the XYZ portion without dividing by W.
func (v Vec4[T]) Vec3() Vec3[T] {
	return Vec3[T]{v.X, v.Y, v.Z}
}

// XY returns the XY portion.
func (v Vec4[T]) XY() Vec2[T] {
	return Vec2[T]{v.X, v.Y}
}

// PerspectiveDivide returns XYZ divided by W.
// A zero W leaves the components undivided.
func (v Vec4[T]) PerspectiveDivide() Vec3[T] {
	if v.W == 0 {
		return Vec3[T]{v.X, v.Y, v.Z}
	}
	return Vec3[T]{v.X / v.W, v.Y / v.W, v.Z / v.W}
}

// Add returns the vector sum.
func (a Vec4[T]) Add(b Vec4[T]) Vec4[T] {
	return Vec4[T]{a.X + b.X, a.Y + b.Y, a.Z + b.Z, a.W + b.W}
}

// Sub returns the vector difference.
func (a Vec4[T]) Sub(b Vec4[T]) Vec4[T] {
	return Vec4[T]{a.X - b.X, a.Y - b.Y, a.Z - b.Z, a.W - b.W}
}

// Scale returns the scalar product.
func (v Vec4[T]) Scale(s T) Vec4[T] {
	return Vec4[T]{v.X * s, v.Y * s, v.Z * s, v.W * s}
}

// Div returns the scalar division.
func (v Vec4[T]) Div(s T) Vec4[T] {
	return Vec4[T]{v.X / s, v.Y / s, v.Z / s, v.W / s}
}

// Dot returns the dot product.
func (a Vec4[T]) Dot(b Vec4[T]) T {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z + a.W*b.W
}

// Len returns the length.
func (v Vec4[T]) Len() float64 {
	return sqrt(v.Dot(v))
}

// Normalize returns the unit vector.
func (v Vec4[T]) Normalize() Vec4[T] {
	l := v.Len()
	if l == 0 {
		return Vec4[T]{}
	}
	return Vec4[T]{
		T(float64(v.X) / l),
		T(float64(v.Y) / l),
		T(float64(v.Z) / l),
		T(float64(v.W) / l),
	}
}

// Lerp returns the linear interpolation between a and b by t.
func (a Vec4[T]) Lerp(b Vec4[T], t float64) Vec4[T] {
	return Vec4[T]{
		a.X + T(float64(b.X-a.X)*t),
		a.Y + T(float64(b.Y-a.Y)*t),
		a.Z + T(float64(b.Z-a.Z)*t),
		a.W + T(float64(b.W-a.W)*t),
	}
}
