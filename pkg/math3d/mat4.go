package math3d

import "math"

// Mat4 is a 4x4 matrix stored in row-major order and applied to column
// vectors (v' = M * v).
//
// Memory layout (indices):
// | 0  1  2  3  |
// | 4  5  6  7  |
// | 8  9  10 11 |
// | 12 13 14 15 |
//
// For a transform matrix:
// | Xx Yx Zx Tx |   X,Y,Z = basis vectors (rotation/scale)
// | Xy Yy Zy Ty |   T = translation
// | Xz Yz Zz Tz |
// | 0  0  0  1  |
type Mat4[T Number] [16]T

// Identity4 returns the 4x4 identity matrix.
func Identity4[T Number]() Mat4[T] {
	return Mat4[T]{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Identity returns the float64 identity matrix.
func Identity() Mat4f {
	return Identity4[float64]()
}

// Zero4x4 returns the 4x4 zero matrix.
func Zero4x4[T Number]() Mat4[T] {
	return Mat4[T]{}
}

// Mat4FromRows builds a matrix from four row vectors.
func Mat4FromRows[T Number](r0, r1, r2, r3 Vec4[T]) Mat4[T] {
	return Mat4[T]{
		r0.X, r0.Y, r0.Z, r0.W,
		r1.X, r1.Y, r1.Z, r1.W,
		r2.X, r2.Y, r2.Z, r2.W,
		r3.X, r3.Y, r3.Z, r3.W,
	}
}

// Translate creates a translation matrix.
func Translate(v Vec3f) Mat4f {
	return Mat4f{
		1, 0, 0, v.X,
		0, 1, 0, v.Y,
		0, 0, 1, v.Z,
		0, 0, 0, 1,
	}
}

// Scale creates a scaling matrix.
func Scale(v Vec3f) Mat4f {
	return Mat4f{
		v.X, 0, 0, 0,
		0, v.Y, 0, 0,
		0, 0, v.Z, 0,
		0, 0, 0, 1,
	}
}

// RotateX creates a rotation matrix around the X axis.
func RotateX(angle float64) Mat4f {
	c, s := math.Cos(angle), math.Sin(angle)
	return Mat4f{
		1, 0, 0, 0,
		0, c, -s, 0,
		0, s, c, 0,
		0, 0, 0, 1,
	}
}

// RotateY creates a rotation matrix around the Y axis.
func RotateY(angle float64) Mat4f {
	c, s := math.Cos(angle), math.Sin(angle)
	return Mat4f{
		c, 0, s, 0,
		0, 1, 0, 0,
		-s, 0, c, 0,
		0, 0, 0, 1,
	}
}

// RotateZ creates a rotation matrix around the Z axis.
func RotateZ(angle float64) Mat4f {
	c, s := math.Cos(angle), math.Sin(angle)
	return Mat4f{
		c, -s, 0, 0,
		s, c, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Get returns the element at (row, col).
func (m Mat4[T]) Get(row, col int) T {
	return m[row*4+col]
}

// Set returns a copy of m with (row, col) replaced by val.
func (m Mat4[T]) Set(row, col int, val T) Mat4[T] {
	m[row*4+col] = val
	return m
}

// Row returns row i, or the zero vector when i is out of range.
func (m Mat4[T]) Row(i int) Vec4[T] {
	if i < 0 || i >= 4 {
		return Vec4[T]{}
	}
	return Vec4[T]{m[i*4], m[i*4+1], m[i*4+2], m[i*4+3]}
}

// Col returns column i, or the zero vector when i is out of range.
func (m Mat4[T]) Col(i int) Vec4[T] {
	if i < 0 || i >= 4 {
		return Vec4[T]{}
	}
	return Vec4[T]{m[i], m[i+4], m[i+8], m[i+12]}
}

// Add returns the element-wise sum a + b.
func (a Mat4[T]) Add(b Mat4[T]) Mat4[T] {
	for i := range a {
		a[i] += b[i]
	}
	return a
}

// Sub returns the element-wise difference a - b.
func (a Mat4[T]) Sub(b Mat4[T]) Mat4[T] {
	for i := range a {
		a[i] -= b[i]
	}
	return a
}

// Scale returns m with every element multiplied by s.
func (m Mat4[T]) Scale(s T) Mat4[T] {
	for i := range m {
		m[i] *= s
	}
	return m
}

// Div returns m with every element divided by s.
func (m Mat4[T]) Div(s T) Mat4[T] {
	for i := range m {
		m[i] /= s
	}
	return m
}

// Mul multiplies two matrices: a * b.
//
//nolint:st1016 // a*b naming convention is clearer for matrix multiplication
func (a Mat4[T]) Mul(b Mat4[T]) Mat4[T] {
	var m Mat4[T]
	for row := range 4 {
		for col := range 4 {
			var sum T
			for k := range 4 {
				sum += a[row*4+k] * b[k*4+col]
			}
			m[row*4+col] = sum
		}
	}
	return m
}

// MulVec4 transforms a column vector: m * v.
func (m Mat4[T]) MulVec4(v Vec4[T]) Vec4[T] {
	return Vec4[T]{
		m[0]*v.X + m[1]*v.Y + m[2]*v.Z + m[3]*v.W,
		m[4]*v.X + m[5]*v.Y + m[6]*v.Z + m[7]*v.W,
		m[8]*v.X + m[9]*v.Y + m[10]*v.Z + m[11]*v.W,
		m[12]*v.X + m[13]*v.Y + m[14]*v.Z + m[15]*v.W,
	}
}

// MulPoint transforms a Vec3 as a point (w=1) and divides by the
// resulting w when it is non-zero.
func (m Mat4[T]) MulPoint(v Vec3[T]) Vec3[T] {
	return m.MulVec4(V4FromV3(v, 1)).PerspectiveDivide()
}

// Transpose returns the transposed matrix.
func (m Mat4[T]) Transpose() Mat4[T] {
	return Mat4[T]{
		m[0], m[4], m[8], m[12],
		m[1], m[5], m[9], m[13],
		m[2], m[6], m[10], m[14],
		m[3], m[7], m[11], m[15],
	}
}

// minor returns the determinant of the 3x3 matrix left after removing
// row r and column c.
func (m Mat4[T]) minor(r, c int) T {
	var sub Mat3[T]
	i := 0
	for row := range 4 {
		if row == r {
			continue
		}
		for col := range 4 {
			if col == c {
				continue
			}
			sub[i] = m[row*4+col]
			i++
		}
	}
	return sub.Determinant()
}

// Cofactor returns the matrix of signed 3x3 minors.
func (m Mat4[T]) Cofactor() Mat4[T] {
	var cof Mat4[T]
	for row := range 4 {
		for col := range 4 {
			v := m.minor(row, col)
			if (row+col)%2 == 1 {
				v = -v
			}
			cof[row*4+col] = v
		}
	}
	return cof
}

// Determinant returns the determinant of the matrix, expanded along the
// first row.
func (m Mat4[T]) Determinant() T {
	return m[0]*m.minor(0, 0) -
		m[1]*m.minor(0, 1) +
		m[2]*m.minor(0, 2) -
		m[3]*m.minor(0, 3)
}

// Adjoint returns the transpose of the cofactor matrix.
func (m Mat4[T]) Adjoint() Mat4[T] {
	return m.Cofactor().Transpose()
}

// Inverse returns the inverse of the matrix.
// Returns the zero matrix if the matrix is singular (det=0).
func (m Mat4[T]) Inverse() Mat4[T] {
	inv, _ := m.InverseOK()
	return inv
}

// InverseOK is Inverse that also reports whether m was invertible.
func (m Mat4[T]) InverseOK() (Mat4[T], bool) {
	det := m.Determinant()
	if det == 0 {
		return Zero4x4[T](), false
	}
	return m.Adjoint().Div(det), true
}

// Translation extracts the translation component.
func (m Mat4[T]) Translation() Vec3[T] {
	return Vec3[T]{m[3], m[7], m[11]}
}
