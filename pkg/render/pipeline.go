package render

import (
	"fmt"

	"github.com/taigrr/softpipe/pkg/math3d"
)

// MeshSource is the triangle input DrawMesh consumes.
type MeshSource interface {
	TriangleCount() int
	// Triangle returns the positions and 0-1 RGB colors of triangle i.
	Triangle(i int) (verts [3]math3d.Vec3f, colors [3]math3d.Vec3f)
	// Bounds returns the axis-aligned bounds of all positions.
	Bounds() (lo, hi math3d.Vec3f)
}

// LineDrawer is implemented by targets that can draw the outline overlay.
type LineDrawer interface {
	DrawLine(x0, y0, x1, y1 int, c Color)
}

// DrawStats counts what happened to the triangles of a draw call.
type DrawStats struct {
	Triangles    int // Input triangles
	Accepted     int // Passed the clipper untouched
	Clipped      int // Cut by at least one plane
	Culled       int // Removed by the clipper
	Emitted      int // Triangles handed to the rasterizer
	Pixels       int // Pixels written
	MeshesCulled int // Meshes rejected by the bounds test
	MeshesInside int // Meshes drawn without clipping
}

// Add accumulates o into s.
func (s *DrawStats) Add(o DrawStats) {
	s.Triangles += o.Triangles
	s.Accepted += o.Accepted
	s.Clipped += o.Clipped
	s.Culled += o.Culled
	s.Emitted += o.Emitted
	s.Pixels += o.Pixels
	s.MeshesCulled += o.MeshesCulled
	s.MeshesInside += o.MeshesInside
}

func (s DrawStats) String() string {
	return fmt.Sprintf("triangles=%d accepted=%d clipped=%d culled=%d emitted=%d pixels=%d",
		s.Triangles, s.Accepted, s.Clipped, s.Culled, s.Emitted, s.Pixels)
}

// Pipeline runs camera-space geometry through projection, clipping, the
// perspective divide, viewport mapping and rasterization.
type Pipeline struct {
	Projection math3d.Mat4f
	View       math3d.Mat4f
	Width      int
	Height     int
	Raster     Rasterizer
	Outline    *Color // Edge color of emitted triangles, nil for none
}

// NewPipeline creates a pipeline with an identity view matrix.
func NewPipeline(width, height int, proj math3d.Mat4f) *Pipeline {
	return &Pipeline{
		Projection: proj,
		View:       math3d.Identity(),
		Width:      width,
		Height:     height,
		Raster:     *NewRasterizer(),
	}
}

// NewPipelineForCamera creates a pipeline using the camera's view and
// projection. The camera's aspect ratio is set from the target size.
func NewPipelineForCamera(cam *Camera, width, height int) *Pipeline {
	cam.SetAspectRatio(float64(width) / float64(height))
	p := NewPipeline(width, height, cam.ProjectionMatrix())
	p.View = cam.ViewMatrix()
	return p
}

func (p *Pipeline) viewProjection() math3d.Mat4f {
	return p.Projection.Mul(p.View)
}

// Project maps a world-space point into clip space.
func (p *Pipeline) Project(v math3d.Vec3f) math3d.Vec4f {
	return p.viewProjection().MulVec4(math3d.V4FromV3(v, 1))
}

// ToScreen divides a clip-space vertex by w and maps it onto the target.
// X and Y are in pixels with Y down, Z is the NDC depth and W keeps the
// clip-space w.
func (p *Pipeline) ToScreen(v math3d.Vec4f) math3d.Vec4f {
	ndc := v.PerspectiveDivide()
	return math3d.V4(
		(ndc.X+1)/2*float64(p.Width),
		(1-ndc.Y)/2*float64(p.Height),
		ndc.Z,
		v.W,
	)
}

// DrawTriangle draws one world-space triangle.
func (p *Pipeline) DrawTriangle(dst PixelSetter, verts [3]math3d.Vec3f, colors [3]math3d.Vec3f) DrawStats {
	return p.drawTriangle(dst, p.viewProjection(), verts, colors, false)
}

func (p *Pipeline) drawTriangle(dst PixelSetter, mvp math3d.Mat4f, verts [3]math3d.Vec3f, colors [3]math3d.Vec3f, inside bool) DrawStats {
	tri := NewColoredTriangle(
		mvp.MulVec4(math3d.V4FromV3(verts[0], 1)),
		mvp.MulVec4(math3d.V4FromV3(verts[1], 1)),
		mvp.MulVec4(math3d.V4FromV3(verts[2], 1)),
		colors[0], colors[1], colors[2],
	)
	if inside {
		return p.rasterize(dst, []Triangle{tri}, ClipAccepted)
	}
	return p.DrawClipTriangle(dst, tri)
}

// DrawClipTriangle draws a triangle already in clip space.
func (p *Pipeline) DrawClipTriangle(dst PixelSetter, tri Triangle) DrawStats {
	clipped, status := ClipTriangle(tri)
	return p.rasterize(dst, clipped, status)
}

// rasterize maps clipper output to the target and fills it.
func (p *Pipeline) rasterize(dst PixelSetter, clipped []Triangle, status ClipStatus) DrawStats {
	stats := DrawStats{Triangles: 1}
	switch status {
	case ClipAccepted:
		stats.Accepted++
	case ClipClipped:
		stats.Clipped++
	case ClipCulled:
		stats.Culled++
		return stats
	}

	for _, t := range clipped {
		for i := range t.Vertices {
			t.Vertices[i] = p.ToScreen(t.Vertices[i])
		}
		stats.Emitted++
		stats.Pixels += p.Raster.DrawTriangle(dst, t)
		p.outline(dst, t)
	}

	Logger().Debug("triangle drawn",
		"status", status,
		"emitted", stats.Emitted,
		"pixels", stats.Pixels)
	return stats
}

func (p *Pipeline) outline(dst PixelSetter, t Triangle) {
	if p.Outline == nil {
		return
	}
	ld, ok := dst.(LineDrawer)
	if !ok {
		return
	}
	for i := range 3 {
		a := t.Vertices[i]
		b := t.Vertices[(i+1)%3]
		ld.DrawLine(int(a.X), int(a.Y), int(b.X), int(b.Y), *p.Outline)
	}
}

// DrawMesh draws every triangle of mesh. A mesh whose bounds lie wholly
// outside the view frustum is skipped, and one wholly inside skips the
// clipper.
func (p *Pipeline) DrawMesh(dst PixelSetter, mesh MeshSource) DrawStats {
	mvp := p.viewProjection()
	frustum := NewFrustumFromMatrix(mvp)

	lo, hi := mesh.Bounds()
	box := AABB{Min: lo, Max: hi}
	if !frustum.IntersectAABB(box) {
		Logger().Debug("mesh culled", "min", lo, "max", hi)
		return DrawStats{Triangles: mesh.TriangleCount(), MeshesCulled: 1}
	}

	var stats DrawStats
	inside := frustum.ContainsAABB(box)
	if inside {
		stats.MeshesInside = 1
	}
	for i := range mesh.TriangleCount() {
		verts, colors := mesh.Triangle(i)
		stats.Add(p.drawTriangle(dst, mvp, verts, colors, inside))
	}
	return stats
}
