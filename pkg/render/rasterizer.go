// Package render provides software rasterization for softpipe.
package render

import (
	"fmt"
	"image"
	"math"

	"github.com/taigrr/softpipe/pkg/math3d"
)

// ShadeMode selects how covered pixels are colored.
type ShadeMode int

const (
	ShadeFlatColor    ShadeMode = iota // Perspective-correct vertex colors
	ShadeCheckerboard                  // Procedural checkerboard over UV
)

func (m ShadeMode) String() string {
	switch m {
	case ShadeFlatColor:
		return "flat"
	case ShadeCheckerboard:
		return "checker"
	default:
		return "unknown"
	}
}

// ParseShadeMode maps a mode name to its ShadeMode.
func ParseShadeMode(s string) (ShadeMode, error) {
	switch s {
	case "flat", "":
		return ShadeFlatColor, nil
	case "checker", "checkerboard":
		return ShadeCheckerboard, nil
	default:
		return 0, fmt.Errorf("unknown shade mode %q", s)
	}
}

// DefaultTiles is the checkerboard tile count across the 0-1 UV range.
const DefaultTiles = 10

// PixelSetter is the write interface the rasterizer draws through.
type PixelSetter interface {
	SetPixel(x, y int, c Color)
}

// Bounded is implemented by targets that know their pixel bounds. The
// rasterizer clamps its scan to them.
type Bounded interface {
	Bounds() image.Rectangle
}

// Rasterizer fills raster-space triangles.
type Rasterizer struct {
	Mode        ShadeMode
	Tiles       float64 // Checkerboard tiles per UV unit
	DoubleSided bool    // Also fill triangles with the opposite winding
}

// NewRasterizer creates a rasterizer shading vertex colors.
func NewRasterizer() *Rasterizer {
	return &Rasterizer{
		Mode:  ShadeFlatColor,
		Tiles: DefaultTiles,
	}
}

// DrawTriangle fills every pixel whose center lies inside tri and returns
// the number of pixels written.
//
// tri must already be in raster space: X and Y in pixels, W the clip-space
// w of each vertex. With the expected winding the edge functions are
// non-positive inside; pixels exactly on an edge are drawn. Zero-area
// triangles write nothing.
func (r *Rasterizer) DrawTriangle(dst PixelSetter, tri Triangle) int {
	p0 := tri.Vertices[0].XY()
	p1 := tri.Vertices[1].XY()
	p2 := tri.Vertices[2].XY()

	area := math3d.EdgeFunction(p0, p1, p2)
	if area == 0 || math.IsNaN(area) {
		Logger().Debug("skipping degenerate triangle", "v0", p0, "v1", p1, "v2", p2)
		return 0
	}

	// Opposite winding: back-facing unless double-sided.
	sign := 1.0
	if area > 0 {
		if !r.DoubleSided {
			return 0
		}
		sign = -1
	}
	area *= sign

	minX, minY, maxX, maxY, ok := scanBounds(dst, p0, p1, p2)
	if !ok {
		return 0
	}

	// Perspective-correct interpolation factors
	var invW [3]float64
	for i, v := range tri.Vertices {
		if v.W != 0 {
			invW[i] = 1.0 / v.W
		}
	}

	drawn := 0
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			p := math3d.V2(float64(x)+0.5, float64(y)+0.5)

			u := sign * math3d.EdgeFunction(p1, p2, p)
			s := sign * math3d.EdgeFunction(p2, p0, p)
			t := sign * math3d.EdgeFunction(p0, p1, p)
			if u > 0 || s > 0 || t > 0 {
				continue
			}

			// Barycentric weights
			u /= area
			s /= area
			t /= area

			c, ok := r.shade(tri, [3]float64{u * invW[0], s * invW[1], t * invW[2]})
			if !ok {
				continue
			}
			dst.SetPixel(x, y, ToRGBA(c))
			drawn++
		}
	}

	return drawn
}

// shade blends the vertex attributes with weights already divided by w
// and undoes the perspective skew.
func (r *Rasterizer) shade(tri Triangle, w [3]float64) (math3d.Vec3f, bool) {
	oneOverW := w[0] + w[1] + w[2]
	if oneOverW == 0 || math.IsNaN(oneOverW) {
		return math3d.Vec3f{}, false
	}
	z := 1 / oneOverW

	switch r.Mode {
	case ShadeCheckerboard:
		uv := tri.UV[0].Scale(w[0]).
			Add(tri.UV[1].Scale(w[1])).
			Add(tri.UV[2].Scale(w[2])).
			Scale(z)
		return checker(uv, r.tiles()), true
	default:
		c := tri.Colors[0].Scale(w[0]).
			Add(tri.Colors[1].Scale(w[1])).
			Add(tri.Colors[2].Scale(w[2])).
			Scale(z)
		return c, true
	}
}

func (r *Rasterizer) tiles() float64 {
	if r.Tiles <= 0 {
		return DefaultTiles
	}
	return r.Tiles
}

// checker returns the light or dark checkerboard gray at uv.
func checker(uv math3d.Vec2f, tiles float64) math3d.Vec3f {
	light := (frac(uv.X*tiles) > 0.5) != (frac(uv.Y*tiles) < 0.5)
	g := 0.3
	if light {
		g = 0.7
	}
	return math3d.V3(g, g, g)
}

func frac(v float64) float64 {
	return v - math.Floor(v)
}

// scanLimit bounds raster coordinates before they are converted to int, so
// far off-screen vertices cannot overflow.
const scanLimit = 1 << 24

func scanCoord(f float64) int {
	return int(math.Max(-scanLimit, math.Min(f, scanLimit)))
}

// scanBounds returns the inclusive pixel rectangle to test, clamped to the
// target when it reports its bounds.
func scanBounds(dst PixelSetter, p0, p1, p2 math3d.Vec2f) (minX, minY, maxX, maxY int, ok bool) {
	lo := math3d.V2(min(p0.X, p1.X, p2.X), min(p0.Y, p1.Y, p2.Y))
	hi := math3d.V2(max(p0.X, p1.X, p2.X), max(p0.Y, p1.Y, p2.Y))
	for _, f := range [4]float64{lo.X, lo.Y, hi.X, hi.Y} {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, 0, 0, 0, false
		}
	}

	minX = scanCoord(math.Floor(lo.X))
	minY = scanCoord(math.Floor(lo.Y))
	maxX = scanCoord(math.Ceil(hi.X))
	maxY = scanCoord(math.Ceil(hi.Y))

	if b, isBounded := dst.(Bounded); isBounded {
		rect := b.Bounds()
		minX = max(minX, rect.Min.X)
		minY = max(minY, rect.Min.Y)
		maxX = min(maxX, rect.Max.X-1)
		maxY = min(maxY, rect.Max.Y-1)
	}

	return minX, minY, maxX, maxY, minX <= maxX && minY <= maxY
}
