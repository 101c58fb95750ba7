package math3d

// Mat3 is a 3x3 matrix stored in row-major order.
//
// Memory layout (indices):
// | 0 1 2 |
// | 3 4 5 |
// | 6 7 8 |
type Mat3[T Number] [9]T

// Identity3 returns the 3x3 identity matrix.
func Identity3[T Number]() Mat3[T] {
	return Mat3[T]{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	}
}

// Zero3x3 returns the 3x3 zero matrix.
func Zero3x3[T Number]() Mat3[T] {
	return Mat3[T]{}
}

// Mat3FromRows builds a matrix from three row vectors.
func Mat3FromRows[T Number](r0, r1, r2 Vec3[T]) Mat3[T] {
	return Mat3[T]{
		r0.X, r0.Y, r0.Z,
		r1.X, r1.Y, r1.Z,
		r2.X, r2.Y, r2.Z,
	}
}

// Get returns the element at (row, col).
func (m Mat3[T]) Get(row, col int) T {
	return m[row*3+col]
}

// Set returns a copy of m with (row, col) replaced by val.
func (m Mat3[T]) Set(row, col int, val T) Mat3[T] {
	m[row*3+col] = val
	return m
}

// Row returns row i, or the zero vector when i is out of range.
func (m Mat3[T]) Row(i int) Vec3[T] {
	if i < 0 || i >= 3 {
		return Vec3[T]{}
	}
	return Vec3[T]{m[i*3], m[i*3+1], m[i*3+2]}
}

// Col returns column i, or the zero vector when i is out of range.
func (m Mat3[T]) Col(i int) Vec3[T] {
	if i < 0 || i >= 3 {
		return Vec3[T]{}
	}
	return Vec3[T]{m[i], m[i+3], m[i+6]}
}

// Add returns the element-wise sum a + b.
func (a Mat3[T]) Add(b Mat3[T]) Mat3[T] {
	for i := range a {
		a[i] += b[i]
	}
	return a
}

// Sub returns the element-wise difference a - b.
func (a Mat3[T]) Sub(b Mat3[T]) Mat3[T] {
	for i := range a {
		a[i] -= b[i]
	}
	return a
}

// Scale returns m with every element multiplied by s.
func (m Mat3[T]) Scale(s T) Mat3[T] {
	for i := range m {
		m[i] *= s
	}
	return m
}

// Div returns m with every element divided by s.
func (m Mat3[T]) Div(s T) Mat3[T] {
	for i := range m {
		m[i] /= s
	}
	return m
}

// Mul multiplies two matrices: a * b.
func (a Mat3[T]) Mul(b Mat3[T]) Mat3[T] {
	var m Mat3[T]
	for row := range 3 {
		r := a.Row(row)
		for col := range 3 {
			m[row*3+col] = r.Dot(b.Col(col))
		}
	}
	return m
}

// MulVec transforms a column vector: m * v.
func (m Mat3[T]) MulVec(v Vec3[T]) Vec3[T] {
	return Vec3[T]{
		m.Row(0).Dot(v),
		m.Row(1).Dot(v),
		m.Row(2).Dot(v),
	}
}

// Transpose returns the transposed matrix.
func (m Mat3[T]) Transpose() Mat3[T] {
	return Mat3[T]{
		m[0], m[3], m[6],
		m[1], m[4], m[7],
		m[2], m[5], m[8],
	}
}

// Determinant returns the determinant of the matrix.
func (m Mat3[T]) Determinant() T {
	return m[0]*(m[4]*m[8]-m[5]*m[7]) -
		m[1]*(m[3]*m[8]-m[5]*m[6]) +
		m[2]*(m[3]*m[7]-m[4]*m[6])
}

// Cofactor returns the matrix of signed 2x2 minors.
func (m Mat3[T]) Cofactor() Mat3[T] {
	return Mat3[T]{
		+(m[4]*m[8] - m[5]*m[7]),
		-(m[3]*m[8] - m[5]*m[6]),
		+(m[3]*m[7] - m[4]*m[6]),

		-(m[1]*m[8] - m[2]*m[7]),
		+(m[0]*m[8] - m[2]*m[6]),
		-(m[0]*m[7] - m[1]*m[6]),

		+(m[1]*m[5] - m[2]*m[4]),
		-(m[0]*m[5] - m[2]*m[3]),
		+(m[0]*m[4] - m[1]*m[3]),
	}
}

// Adjoint returns the transpose of the cofactor matrix.
func (m Mat3[T]) Adjoint() Mat3[T] {
	return m.Cofactor().Transpose()
}

// Inverse returns the inverse of the matrix.
// Returns the zero matrix if the matrix is singular (det=0).
func (m Mat3[T]) Inverse() Mat3[T] {
	inv, _ := m.InverseOK()
	return inv
}

// InverseOK is Inverse that also reports whether m was invertible.
func (m Mat3[T]) InverseOK() (Mat3[T], bool) {
	det := m.Determinant()
	if det == 0 {
		return Zero3x3[T](), false
	}
	return m.Adjoint().Div(det), true
}
