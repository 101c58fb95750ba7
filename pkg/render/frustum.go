package render

import (
	"github.com/taigrr/softpipe/pkg/math3d"
)

// HalfSpace is a plane Ax + By + Cz + D = 0 with the normal (A, B, C)
// pointing into the kept side.
type HalfSpace struct {
	Normal math3d.Vec3f
	D      float64
}

// Normalize scales the equation so the normal has unit length.
func (h *HalfSpace) Normalize() {
	l := h.Normal.Len()
	if l == 0 {
		return
	}
	h.Normal = h.Normal.Scale(1.0 / l)
	h.D /= l
}

// Distance returns the signed distance of point. Positive is inside.
func (h HalfSpace) Distance(point math3d.Vec3f) float64 {
	return h.Normal.Dot(point) + h.D
}

// Frustum is the six-plane culling volume of a view-projection matrix.
// Planes are ordered Left, Right, Bottom, Top, Near, Far.
type Frustum struct {
	Planes [6]HalfSpace
}

// Frustum plane indices.
const (
	FrustumLeft = iota
	FrustumRight
	FrustumBottom
	FrustumTop
	FrustumNear
	FrustumFar
)

// NewFrustumFromMatrix extracts the culling planes of a row-major
// view-projection matrix (Gribb/Hartmann). A plane whose row combination
// vanishes, such as the far plane of an infinite projection, keeps a zero
// normal and accepts everything.
func NewFrustumFromMatrix(m math3d.Mat4f) Frustum {
	r0, r1, r2, r3 := m.Row(0), m.Row(1), m.Row(2), m.Row(3)

	var f Frustum
	f.Planes[FrustumLeft] = planeOf(r3.Add(r0))
	f.Planes[FrustumRight] = planeOf(r3.Sub(r0))
	f.Planes[FrustumBottom] = planeOf(r3.Add(r1))
	f.Planes[FrustumTop] = planeOf(r3.Sub(r1))
	f.Planes[FrustumNear] = planeOf(r3.Add(r2))
	f.Planes[FrustumFar] = planeOf(r3.Sub(r2))

	for i := range f.Planes {
		f.Planes[i].Normalize()
	}
	return f
}

func planeOf(v math3d.Vec4f) HalfSpace {
	h := HalfSpace{Normal: v.Vec3(), D: v.W}
	if h.Normal.LenSq() == 0 {
		// Degenerate plane: accept all points.
		h.D = 1
	}
	return h
}

// AABB is an axis-aligned bounding box.
type AABB struct {
	Min math3d.Vec3f
	Max math3d.Vec3f
}

// IntersectAABB reports whether any part of box may be visible. It is
// conservative: boxes near a frustum corner can pass without being visible.
func (f Frustum) IntersectAABB(box AABB) bool {
	for _, plane := range f.Planes {
		// Corner furthest along the plane normal.
		p := math3d.V3(
			pick(plane.Normal.X >= 0, box.Max.X, box.Min.X),
			pick(plane.Normal.Y >= 0, box.Max.Y, box.Min.Y),
			pick(plane.Normal.Z >= 0, box.Max.Z, box.Min.Z),
		)
		if plane.Distance(p) < 0 {
			return false
		}
	}
	return true
}

// ContainsAABB reports whether box is entirely inside the frustum.
func (f Frustum) ContainsAABB(box AABB) bool {
	for _, plane := range f.Planes {
		n := math3d.V3(
			pick(plane.Normal.X >= 0, box.Min.X, box.Max.X),
			pick(plane.Normal.Y >= 0, box.Min.Y, box.Max.Y),
			pick(plane.Normal.Z >= 0, box.Min.Z, box.Max.Z),
		)
		if plane.Distance(n) < 0 {
			return false
		}
	}
	return true
}

func pick(cond bool, a, b float64) float64 {
	if cond {
		return a
	}
	return b
}
