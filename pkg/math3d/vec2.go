package math3d

// Vec2 represents a 2D vector.
type Vec2[T Number] struct {
	X, Y T
}

// V2 creates a new float64 Vec2.
func V2(x, y float64) Vec2f {
	return Vec2f{x, y}
}

// NewVec2 creates a Vec2 of any scalar type.
func NewVec2[T Number](x, y T) Vec2[T] {
	return Vec2[T]{x, y}
}

// Add returns the vector sum a + b.
func (a Vec2[T]) Add(b Vec2[T]) Vec2[T] {
	return Vec2[T]{a.X + b.X, a.Y + b.Y}
}

// Sub returns the vector difference a - b.
func (a Vec2[T]) Sub(b Vec2[T]) Vec2[T] {
	return Vec2[T]{a.X - b.X, a.Y - b.Y}
}

// Scale returns the scalar product a * s.
func (a Vec2[T]) Scale(s T) Vec2[T] {
	return Vec2[T]{a.X * s, a.Y * s}
}

// Div returns the scalar division a / s.
func (a Vec2[T]) Div(s T) Vec2[T] {
	return Vec2[T]{a.X / s, a.Y / s}
}

// Dot returns the dot product a · b.
func (a Vec2[T]) Dot(b Vec2[T]) T {
	return a.X*b.X + a.Y*b.Y
}

// Cross returns the z component of the 3D cross product of a and b
// lifted into the XY plane.
func (a Vec2[T]) Cross(b Vec2[T]) T {
	return a.X*b.Y - a.Y*b.X
}

// Len returns the length (magnitude) of the vector.
func (a Vec2[T]) Len() float64 {
	return sqrt(a.LenSq())
}

// LenSq returns the squared length.
func (a Vec2[T]) LenSq() T {
	return a.X*a.X + a.Y*a.Y
}

// Normalize returns the unit vector in the same direction.
func (a Vec2[T]) Normalize() Vec2[T] {
	l := a.Len()
	if l == 0 {
		return Vec2[T]{}
	}
	return Vec2[T]{T(float64(a.X) / l), T(float64(a.Y) / l)}
}

// Lerp returns the linear interpolation between a and b by t.
func (a Vec2[T]) Lerp(b Vec2[T], t float64) Vec2[T] {
	return Vec2[T]{
		a.X + T(float64(b.X-a.X)*t),
		a.Y + T(float64(b.Y-a.Y)*t),
	}
}

// EdgeFunction returns the signed area of the parallelogram spanned by
// (p - a) and (b - a).
//
// The result is positive when p lies to the right of the directed edge
// a→b, negative when it lies to the left and zero when the three points
// are collinear.
func EdgeFunction[T Number](a, b, p Vec2[T]) T {
	return p.Sub(a).Cross(b.Sub(a))
}
