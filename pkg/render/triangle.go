package render

import "github.com/taigrr/softpipe/pkg/math3d"

// Triangle is the unit of work for clipping and rasterization.
//
// Before the perspective divide Vertices hold clip-space positions. After
// viewport mapping they hold raster-space positions: X and Y in pixels, Z
// the NDC depth and W the clip-space w kept for perspective correction.
// Colors and UV are per-vertex attributes in the same order as Vertices.
type Triangle struct {
	Vertices [3]math3d.Vec4f
	Colors   [3]math3d.Vec3f // RGB in 0-1 range
	UV       [3]math3d.Vec2f // Parametric coordinates for the checkerboard
}

// DefaultUV are the parametric coordinates assigned by NewTriangle.
var DefaultUV = [3]math3d.Vec2f{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}}

// NewTriangle creates a triangle with red, green and blue vertex colors.
func NewTriangle(v0, v1, v2 math3d.Vec4f) Triangle {
	return NewColoredTriangle(v0, v1, v2,
		math3d.V3(1, 0, 0),
		math3d.V3(0, 1, 0),
		math3d.V3(0, 0, 1),
	)
}

// NewColoredTriangle creates a triangle with explicit vertex colors.
func NewColoredTriangle(v0, v1, v2 math3d.Vec4f, c0, c1, c2 math3d.Vec3f) Triangle {
	return Triangle{
		Vertices: [3]math3d.Vec4f{v0, v1, v2},
		Colors:   [3]math3d.Vec3f{c0, c1, c2},
		UV:       DefaultUV,
	}
}

// clipVertex is a polygon corner produced while clipping.
type clipVertex struct {
	pos   math3d.Vec4f
	color math3d.Vec3f
	uv    math3d.Vec2f
}

func (t Triangle) corner(i int) clipVertex {
	return clipVertex{pos: t.Vertices[i], color: t.Colors[i], uv: t.UV[i]}
}

func (a clipVertex) lerp(b clipVertex, t float64) clipVertex {
	return clipVertex{
		pos:   a.pos.Lerp(b.pos, t),
		color: a.color.Lerp(b.color, t),
		uv:    a.uv.Lerp(b.uv, t),
	}
}

func triangleOf(a, b, c clipVertex) Triangle {
	return Triangle{
		Vertices: [3]math3d.Vec4f{a.pos, b.pos, c.pos},
		Colors:   [3]math3d.Vec3f{a.color, b.color, c.color},
		UV:       [3]math3d.Vec2f{a.uv, b.uv, c.uv},
	}
}
