package render

import (
	"math"
	"testing"

	"github.com/taigrr/softpipe/pkg/math3d"
)

// testMesh is a minimal MeshSource.
type testMesh struct {
	positions []math3d.Vec3f
	faces     [][3]int
}

func (m *testMesh) TriangleCount() int { return len(m.faces) }

func (m *testMesh) Triangle(i int) (verts [3]math3d.Vec3f, colors [3]math3d.Vec3f) {
	for k, idx := range m.faces[i] {
		verts[k] = m.positions[idx]
		colors[k] = math3d.V3(1, 1, 1)
	}
	return verts, colors
}

func (m *testMesh) Bounds() (lo, hi math3d.Vec3f) {
	lo, hi = m.positions[0], m.positions[0]
	for _, p := range m.positions[1:] {
		lo = lo.Min(p)
		hi = hi.Max(p)
	}
	return lo, hi
}

func quadAt(z float64) *testMesh {
	return &testMesh{
		positions: []math3d.Vec3f{
			math3d.V3(-1, -1, z), math3d.V3(1, -1, z),
			math3d.V3(1, 1, z), math3d.V3(-1, 1, z),
		},
		// Clockwise seen from +Z, which rasterizes front-facing.
		faces: [][3]int{{0, 2, 1}, {0, 3, 2}},
	}
}

func testPipeline(w, h int) *Pipeline {
	return NewPipeline(w, h, math3d.Perspective(math3d.Radians(60), float64(w)/float64(h), 1, 1000))
}

var rgb = [3]math3d.Vec3f{
	{X: 1, Y: 0, Z: 0},
	{X: 0, Y: 1, Z: 0},
	{X: 0, Y: 0, Z: 1},
}

func TestPipelineToScreen(t *testing.T) {
	p := testPipeline(1280, 720)

	s := p.ToScreen(p.Project(math3d.V3(0, 0, -10)))
	if math.Abs(s.X-640) > 1e-9 || math.Abs(s.Y-360) > 1e-9 {
		t.Errorf("axis point at (%v, %v), want (640, 360)", s.X, s.Y)
	}
	if math.Abs(s.W-10) > 1e-9 {
		t.Errorf("w = %v, want 10", s.W)
	}

	// Top-left of the near rectangle lands on pixel origin.
	top := math.Tan(math3d.Radians(30))
	s = p.ToScreen(p.Project(math3d.V3(-top*1280.0/720.0, top, -1)))
	if math.Abs(s.X) > 1e-9 || math.Abs(s.Y) > 1e-9 || math.Abs(s.Z+1) > 1e-9 {
		t.Errorf("near corner at %v, want (0, 0, -1)", s)
	}
}

// clipRect clips a convex polygon to [0,w]x[0,h].
func clipRect(poly []math3d.Vec2f, w, h float64) []math3d.Vec2f {
	edges := []func(math3d.Vec2f) float64{
		func(p math3d.Vec2f) float64 { return p.X },
		func(p math3d.Vec2f) float64 { return w - p.X },
		func(p math3d.Vec2f) float64 { return p.Y },
		func(p math3d.Vec2f) float64 { return h - p.Y },
	}
	for _, d := range edges {
		var out []math3d.Vec2f
		for i, cur := range poly {
			prev := poly[(i+len(poly)-1)%len(poly)]
			dc, dp := d(cur), d(prev)
			if (dc >= 0) != (dp >= 0) {
				out = append(out, prev.Lerp(cur, dp/(dp-dc)))
			}
			if dc >= 0 {
				out = append(out, cur)
			}
		}
		poly = out
	}
	return poly
}

// polygonCentroid returns the area centroid of a simple polygon.
func polygonCentroid(poly []math3d.Vec2f) math3d.Vec2f {
	var a, cx, cy float64
	for i, p := range poly {
		q := poly[(i+1)%len(poly)]
		cross := p.X*q.Y - q.X*p.Y
		a += cross
		cx += (p.X + q.X) * cross
		cy += (p.Y + q.Y) * cross
	}
	return math3d.V2(cx/(3*a), cy/(3*a))
}

// components counts 4-connected regions of drawn pixels.
func components(fb *Framebuffer) int {
	seen := make([]bool, len(fb.Pixels))
	count := 0
	for start := range fb.Pixels {
		if seen[start] || fb.Pixels[start].A == 0 {
			continue
		}
		count++
		stack := []int{start}
		seen[start] = true
		for len(stack) > 0 {
			i := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			x, y := i%fb.Width, i/fb.Width
			for _, n := range [4][2]int{{x - 1, y}, {x + 1, y}, {x, y - 1}, {x, y + 1}} {
				if n[0] < 0 || n[0] >= fb.Width || n[1] < 0 || n[1] >= fb.Height {
					continue
				}
				j := n[1]*fb.Width + n[0]
				if !seen[j] && fb.Pixels[j].A != 0 {
					seen[j] = true
					stack = append(stack, j)
				}
			}
		}
	}
	return count
}

func TestPipelineEndToEnd(t *testing.T) {
	const w, h = 1280, 720
	p := testPipeline(w, h)
	fb := NewFramebuffer(w, h)

	verts := [3]math3d.Vec3f{
		math3d.V3(30, 30, -40),
		math3d.V3(30, -30, -80),
		math3d.V3(-30, -10, -120),
	}
	stats := p.DrawTriangle(fb, verts, rgb)
	if stats.Pixels == 0 {
		t.Fatalf("nothing drawn: %v", stats)
	}
	if stats.Culled != 0 {
		t.Fatalf("triangle culled: %v", stats)
	}

	if n := components(fb); n != 1 {
		t.Errorf("filled region has %d components, want 1", n)
	}

	var sx, sy float64
	count := 0
	for i, c := range fb.Pixels {
		if c.A == 0 {
			continue
		}
		sx += float64(i%w) + 0.5
		sy += float64(i/w) + 0.5
		count++
	}
	if count != stats.Pixels {
		t.Errorf("framebuffer has %d pixels, stats say %d", count, stats.Pixels)
	}
	got := math3d.V2(sx/float64(count), sy/float64(count))

	// The first vertex projects above the top edge, so compare against the
	// projected triangle cut to the viewport.
	screen := make([]math3d.Vec2f, 3)
	for i, v := range verts {
		screen[i] = p.ToScreen(p.Project(v)).XY()
	}
	want := polygonCentroid(clipRect(screen, w, h))

	if got.Sub(want).Len() > 1 {
		t.Errorf("centroid = %v, want %v within 1px", got, want)
	}
}

func TestPipelineNearPlaneStraddle(t *testing.T) {
	p := testPipeline(320, 180)
	fb := NewFramebuffer(320, 180)

	verts := [3]math3d.Vec3f{
		math3d.V3(0, 0, 2), // behind the camera
		math3d.V3(-1, -0.5, -10),
		math3d.V3(1, -0.5, -10),
	}
	stats := p.DrawTriangle(fb, verts, rgb)

	if stats.Clipped != 1 {
		t.Errorf("stats = %v, want one clipped triangle", stats)
	}
	if stats.Emitted < 1 || stats.Emitted > 2 {
		t.Errorf("emitted %d triangles, want 1 or 2", stats.Emitted)
	}
}

func TestPipelineBehindCamera(t *testing.T) {
	p := testPipeline(64, 64)
	fb := NewFramebuffer(64, 64)

	verts := [3]math3d.Vec3f{math3d.V3(0, 0, 5), math3d.V3(1, 0, 5), math3d.V3(0, 1, 5)}
	stats := p.DrawTriangle(fb, verts, rgb)
	if stats.Culled != 1 || stats.Pixels != 0 {
		t.Errorf("stats = %v, want culled with no pixels", stats)
	}
}

func TestPipelineDrawMesh(t *testing.T) {
	p := testPipeline(64, 64)

	t.Run("visible", func(t *testing.T) {
		fb := NewFramebuffer(64, 64)
		stats := p.DrawMesh(fb, quadAt(-5))
		if stats.Triangles != 2 || stats.Accepted != 2 || stats.Pixels == 0 {
			t.Errorf("stats = %v", stats)
		}
	})

	t.Run("inside skips the clipper", func(t *testing.T) {
		mesh := quadAt(-5)
		fast := NewFramebuffer(64, 64)
		stats := p.DrawMesh(fast, mesh)
		if stats.MeshesInside != 1 || stats.Accepted != 2 || stats.Clipped != 0 {
			t.Errorf("stats = %v", stats)
		}

		// Same pixels as clipping every triangle.
		slow := NewFramebuffer(64, 64)
		for i := range mesh.TriangleCount() {
			verts, colors := mesh.Triangle(i)
			p.DrawTriangle(slow, verts, colors)
		}
		for i := range fast.Pixels {
			if fast.Pixels[i] != slow.Pixels[i] {
				t.Fatalf("pixel %d differs: %v vs %v", i, fast.Pixels[i], slow.Pixels[i])
			}
		}
	})

	t.Run("straddling is clipped", func(t *testing.T) {
		mesh := quadAt(-5)
		for i := range mesh.positions {
			mesh.positions[i] = mesh.positions[i].Mul(math3d.V3(10, 10, 1))
		}
		fb := NewFramebuffer(64, 64)
		stats := p.DrawMesh(fb, mesh)
		if stats.MeshesInside != 0 || stats.Clipped != 2 {
			t.Errorf("stats = %v", stats)
		}
	})

	t.Run("culled by bounds", func(t *testing.T) {
		fb := NewFramebuffer(64, 64)
		stats := p.DrawMesh(fb, quadAt(5))
		if stats.MeshesCulled != 1 || stats.Emitted != 0 {
			t.Errorf("stats = %v", stats)
		}
	})
}

func TestPipelineOutline(t *testing.T) {
	p := testPipeline(64, 64)
	white := ColorWhite
	p.Outline = &white
	p.Raster.Mode = ShadeCheckerboard

	fb := NewFramebuffer(64, 64)
	p.DrawMesh(fb, quadAt(-5))

	found := false
	for _, c := range fb.Pixels {
		if c == white {
			found = true
			break
		}
	}
	if !found {
		t.Error("no outline pixels drawn")
	}
}

func TestPipelineForCamera(t *testing.T) {
	cam := NewCamera()
	p := NewPipelineForCamera(cam, 200, 100)

	if cam.AspectRatio != 2 {
		t.Errorf("aspect = %v, want 2", cam.AspectRatio)
	}
	if p.View != math3d.Identity() {
		t.Errorf("default camera view = %v, want identity", p.View)
	}

	cam.SetPosition(math3d.V3(0, 0, 10))
	p = NewPipelineForCamera(cam, 200, 100)
	s := p.ToScreen(p.Project(math3d.V3(0, 0, 0)))
	if math.Abs(s.X-100) > 1e-9 || math.Abs(s.Y-50) > 1e-9 || math.Abs(s.W-10) > 1e-9 {
		t.Errorf("origin seen from z=10 at %v", s)
	}
}

func TestDrawStatsAdd(t *testing.T) {
	var total DrawStats
	total.Add(DrawStats{Triangles: 1, Accepted: 1, Emitted: 1, Pixels: 10})
	total.Add(DrawStats{Triangles: 2, Clipped: 1, Culled: 1, Emitted: 2, Pixels: 5, MeshesCulled: 1, MeshesInside: 1})

	want := DrawStats{Triangles: 3, Accepted: 1, Clipped: 1, Culled: 1, Emitted: 3, Pixels: 15, MeshesCulled: 1, MeshesInside: 1}
	if total != want {
		t.Errorf("total = %+v, want %+v", total, want)
	}
}

func BenchmarkPipelineEndToEnd(b *testing.B) {
	p := testPipeline(1280, 720)
	fb := NewFramebuffer(1280, 720)
	verts := [3]math3d.Vec3f{
		math3d.V3(30, 30, -40),
		math3d.V3(30, -30, -80),
		math3d.V3(-30, -10, -120),
	}

	for b.Loop() {
		p.DrawTriangle(fb, verts, rgb)
	}
}
