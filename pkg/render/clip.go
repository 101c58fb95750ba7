package render

import (
	"math"

	"github.com/taigrr/softpipe/pkg/math3d"
)

// Plane identifies one of the seven clip-space half-spaces.
type Plane int

const (
	PlanePositiveW Plane = iota // w >= WEpsilon
	PlaneRight                  // x <= w
	PlaneLeft                   // x >= -w
	PlaneTop                    // y <= w
	PlaneBottom                 // y >= -w
	PlaneFar                    // z <= w
	PlaneNear                   // z >= -w
)

// WEpsilon is the smallest w a clipped vertex may keep, so the
// perspective divide never sees zero or a negative w.
const WEpsilon = 0x1p-23

// ClipOrder is the order ClipTriangle visits the planes in.
var ClipOrder = [7]Plane{
	PlanePositiveW,
	PlaneRight,
	PlaneLeft,
	PlaneTop,
	PlaneBottom,
	PlaneNear,
	PlaneFar,
}

func (p Plane) String() string {
	switch p {
	case PlanePositiveW:
		return "positive-w"
	case PlaneRight:
		return "right"
	case PlaneLeft:
		return "left"
	case PlaneTop:
		return "top"
	case PlaneBottom:
		return "bottom"
	case PlaneFar:
		return "far"
	case PlaneNear:
		return "near"
	default:
		return "unknown"
	}
}

// ClipStatus describes what ClipTriangle did to its input.
type ClipStatus int

const (
	ClipAccepted ClipStatus = iota // Fully inside, returned unchanged
	ClipClipped                    // Cut by at least one plane
	ClipCulled                     // Nothing left
)

func (s ClipStatus) String() string {
	switch s {
	case ClipAccepted:
		return "accepted"
	case ClipClipped:
		return "clipped"
	case ClipCulled:
		return "culled"
	default:
		return "unknown"
	}
}

// IsInsidePlane reports whether a clip-space vertex lies in the plane's
// inside half-space. Points on the boundary are inside.
func IsInsidePlane(plane Plane, v math3d.Vec4f) bool {
	switch plane {
	case PlanePositiveW:
		return v.W >= WEpsilon
	case PlaneRight:
		return v.X <= v.W
	case PlaneLeft:
		return v.X >= -v.W
	case PlaneTop:
		return v.Y <= v.W
	case PlaneBottom:
		return v.Y >= -v.W
	case PlaneFar:
		return v.Z <= v.W
	case PlaneNear:
		return v.Z >= -v.W
	default:
		return false
	}
}

// boundaryDistance is the plane equation evaluated at v: non-negative
// inside, negative outside.
func boundaryDistance(plane Plane, v math3d.Vec4f) float64 {
	switch plane {
	case PlanePositiveW:
		return v.W - WEpsilon
	case PlaneRight:
		return v.W - v.X
	case PlaneLeft:
		return v.W + v.X
	case PlaneTop:
		return v.W - v.Y
	case PlaneBottom:
		return v.W + v.Y
	case PlaneFar:
		return v.W - v.Z
	case PlaneNear:
		return v.W + v.Z
	default:
		return 0
	}
}

// IntersectionRatio returns t such that previous.Lerp(current, t) lies on
// the plane boundary. It is only meaningful when the two vertices lie on
// opposite sides of the plane.
func IntersectionRatio(plane Plane, current, previous math3d.Vec4f) float64 {
	dp := boundaryDistance(plane, previous)
	dc := boundaryDistance(plane, current)
	denom := dp - dc
	if denom == 0 {
		return 0
	}
	return dp / denom
}

// ClipAgainstPlane clips a triangle against a single plane.
//
// A triangle fully inside is returned as is and one fully outside yields
// nothing. Otherwise the inside part, a convex polygon of three or four
// corners, is fanned back into triangles.
func ClipAgainstPlane(tri Triangle, plane Plane) []Triangle {
	return clipAgainstPlane(nil, tri, plane)
}

func clipAgainstPlane(dst []Triangle, tri Triangle, plane Plane) []Triangle {
	count := 0
	for _, v := range tri.Vertices {
		if IsInsidePlane(plane, v) {
			count++
		}
	}

	switch count {
	case 3:
		return append(dst, tri)
	case 0:
		return dst
	}

	// One plane cuts a triangle into at most four corners.
	var in [3]clipVertex
	var out [4]clipVertex
	for i := range in {
		in[i] = tri.corner(i)
	}
	return fan(dst, clipPolygon(out[:0], in[:], plane))
}

// clipPolygon runs one Sutherland-Hodgman pass over the edges of a convex
// polygon, appending the kept corners to dst. Each edge is walked from the
// previous corner to the current one.
func clipPolygon(dst, poly []clipVertex, plane Plane) []clipVertex {
	n := len(poly)
	for i := range n {
		cur := poly[i]
		prev := poly[(i+n-1)%n]
		curIn := IsInsidePlane(plane, cur.pos)
		if curIn != IsInsidePlane(plane, prev.pos) {
			t := IntersectionRatio(plane, cur.pos, prev.pos)
			dst = append(dst, prev.lerp(cur, t))
		}
		if curIn {
			dst = append(dst, cur)
		}
	}
	return dst
}

// fan triangulates a convex polygon from its first corner.
func fan(dst []Triangle, poly []clipVertex) []Triangle {
	for i := 0; i+2 < len(poly); i++ {
		dst = append(dst, triangleOf(poly[0], poly[i+1], poly[i+2]))
	}
	return dst
}

// InsideFrustum reports whether v passes all seven plane tests.
func InsideFrustum(v math3d.Vec4f) bool {
	return v.W >= WEpsilon &&
		math.Abs(v.X) <= v.W &&
		math.Abs(v.Y) <= v.W &&
		math.Abs(v.Z) <= v.W
}

// ClipTriangle clips a clip-space triangle against the view frustum.
//
// Triangles entirely inside are returned unchanged with ClipAccepted.
// Otherwise the triangle is treated as a polygon and cut by every plane in
// ClipOrder, the output of one plane feeding the next, and the surviving
// convex polygon is fanned into triangles. An empty result is reported as
// ClipCulled.
//
// The fan happens once, after the last plane. Clipping a fan per plane
// instead would re-clip each intermediate triangle and multiply the output;
// here every plane adds at most one corner, so one input triangle yields at
// most len(ClipOrder)+1 triangles. ClipAgainstPlane fans after its single
// plane and is not composed by ClipTriangle.
func ClipTriangle(tri Triangle) ([]Triangle, ClipStatus) {
	if InsideFrustum(tri.Vertices[0]) &&
		InsideFrustum(tri.Vertices[1]) &&
		InsideFrustum(tri.Vertices[2]) {
		return []Triangle{tri}, ClipAccepted
	}

	// Each plane adds at most one corner.
	var bufA, bufB [3 + len(ClipOrder)]clipVertex
	current := bufA[:0]
	next := bufB[:0]
	for i := range 3 {
		current = append(current, tri.corner(i))
	}

	for _, plane := range ClipOrder {
		next = clipPolygon(next[:0], current, plane)
		current, next = next, current
		if len(current) < 3 {
			Logger().Debug("triangle culled", "plane", plane)
			return nil, ClipCulled
		}
	}

	return fan(make([]Triangle, 0, len(current)-2), current), ClipClipped
}
