package math3d

import (
	"math"
	"testing"
)

func TestVec3Arithmetic(t *testing.T) {
	a := V3(1, 2, 3)
	b := V3(4, 5, 6)

	if got := a.Add(b); got != V3(5, 7, 9) {
		t.Errorf("Add = %v, want (5, 7, 9)", got)
	}
	if got := b.Sub(a); got != V3(3, 3, 3) {
		t.Errorf("Sub = %v, want (3, 3, 3)", got)
	}
	if got := a.Scale(2); got != V3(2, 4, 6) {
		t.Errorf("Scale = %v, want (2, 4, 6)", got)
	}
	if got := b.Div(2); got != V3(2, 2.5, 3) {
		t.Errorf("Div = %v, want (2, 2.5, 3)", got)
	}
	if got := a.Dot(b); got != 32 {
		t.Errorf("Dot = %v, want 32", got)
	}
}

func TestVec3Cross(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Vec3f
		expected Vec3f
	}{
		{"x cross y", V3(1, 0, 0), V3(0, 1, 0), V3(0, 0, 1)},
		{"y cross z", V3(0, 1, 0), V3(0, 0, 1), V3(1, 0, 0)},
		{"z cross x", V3(0, 0, 1), V3(1, 0, 0), V3(0, 1, 0)},
		{"general", V3(1, 2, 3), V3(4, 5, 6), V3(-3, 6, -3)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.a.Cross(tc.b)
			if got != tc.expected {
				t.Errorf("%v x %v = %v, want %v", tc.a, tc.b, got, tc.expected)
			}
			// Cross product is perpendicular to both inputs
			if got.Dot(tc.a) != 0 || got.Dot(tc.b) != 0 {
				t.Errorf("cross %v not perpendicular to inputs", got)
			}
		})
	}
}

func TestVec3Angle(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Vec3f
		expected float64
	}{
		{"parallel", V3(1, 0, 0), V3(2, 0, 0), 0},
		{"perpendicular", V3(1, 0, 0), V3(0, 3, 0), math.Pi / 2},
		{"opposite", V3(1, 0, 0), V3(-1, 0, 0), math.Pi},
		{"zero length", V3(0, 0, 0), V3(1, 0, 0), 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Angle(tc.b); math.Abs(got-tc.expected) > 1e-9 {
				t.Errorf("Angle = %v, want %v", got, tc.expected)
			}
		})
	}
}

func TestVecLenIsAlwaysCurrent(t *testing.T) {
	v := V3(3, 4, 0)
	if v.Len() != 5 {
		t.Fatalf("Len = %v, want 5", v.Len())
	}

	// Derived values never carry a stale magnitude
	w := v.Add(V3(0, 0, 12))
	if w.Len() != 13 {
		t.Errorf("Len after Add = %v, want 13", w.Len())
	}
	if n := w.Normalize().Len(); math.Abs(n-1) > 1e-12 {
		t.Errorf("normalized length = %v, want 1", n)
	}
	if (Vec3f{}).Normalize() != (Vec3f{}) {
		t.Error("normalizing the zero vector should return zero")
	}
}

func TestIntegerVectors(t *testing.T) {
	a := NewVec3(1, 2, 3)
	b := NewVec3(4, 5, 6)

	if got := a.Cross(b); got != NewVec3(-3, 6, -3) {
		t.Errorf("int Cross = %v, want (-3, 6, -3)", got)
	}
	if got := NewVec2(3, 4).Len(); got != 5 {
		t.Errorf("int Len = %v, want 5", got)
	}
	var _ Vec3i = a
}

func TestVec4(t *testing.T) {
	v := V4(2, 4, 6, 2)

	if got := v.Vec3(); got != V3(2, 4, 6) {
		t.Errorf("Vec3 = %v, want (2, 4, 6) without divide", got)
	}
	if got := v.PerspectiveDivide(); got != V3(1, 2, 3) {
		t.Errorf("PerspectiveDivide = %v, want (1, 2, 3)", got)
	}
	if got := V4(1, 1, 1, 0).PerspectiveDivide(); got != V3(1, 1, 1) {
		t.Errorf("PerspectiveDivide with w=0 = %v, want undivided", got)
	}
	if got := V4(0, 0, 0, 0).Lerp(V4(2, 4, 6, 8), 0.5); got != V4(1, 2, 3, 4) {
		t.Errorf("Lerp = %v, want (1, 2, 3, 4)", got)
	}
	if got := V4(1, 2, 3, 4).Dot(V4(1, 1, 1, 1)); got != 10 {
		t.Errorf("Dot = %v, want 10", got)
	}
}

func TestEdgeFunction(t *testing.T) {
	a := V2(0, 0)
	b := V2(10, 0)

	tests := []struct {
		name string
		p    Vec2f
		sign int
	}{
		{"below the edge", V2(5, 5), -1},
		{"above the edge", V2(5, -5), 1},
		{"on the edge", V2(5, 0), 0},
		{"on the extension", V2(20, 0), 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := EdgeFunction(a, b, tc.p)
			if sign(got) != tc.sign {
				t.Errorf("EdgeFunction(%v, %v, %v) = %v, want sign %d", a, b, tc.p, got, tc.sign)
			}
		})
	}

	// Reflecting p across the line flips the sign and keeps the magnitude.
	up := EdgeFunction(a, b, V2(3, 7))
	down := EdgeFunction(a, b, V2(3, -7))
	if up != -down {
		t.Errorf("reflected points gave %v and %v, want opposite values", up, down)
	}

	// Swapping the edge direction flips the sign as well.
	if EdgeFunction(a, b, V2(3, 7)) != -EdgeFunction(b, a, V2(3, 7)) {
		t.Error("reversing the edge should negate the edge function")
	}
}

func TestEdgeFunctionIsTwiceTriangleArea(t *testing.T) {
	got := EdgeFunction(V2(0, 0), V2(4, 0), V2(0, 3))
	if math.Abs(got) != 12 {
		t.Errorf("|EdgeFunction| = %v, want 12", math.Abs(got))
	}
}

func sign(v float64) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
