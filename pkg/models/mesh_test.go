package models

import (
	"math"
	"testing"

	"github.com/taigrr/softpipe/pkg/math3d"
)

func unitTriangle() *Mesh {
	m := NewMesh("test")
	m.AddTriangle(
		[3]math3d.Vec3f{math3d.V3(0, 0, 0), math3d.V3(2, 0, 0), math3d.V3(0, 4, -2)},
		[3]math3d.Vec3f{math3d.V3(1, 0, 0), math3d.V3(0, 1, 0), math3d.V3(0, 0, 1)},
	)
	m.CalculateBounds()
	return m
}

func TestMeshBounds(t *testing.T) {
	m := unitTriangle()

	if m.BoundsMin != math3d.V3(0, 0, -2) || m.BoundsMax != math3d.V3(2, 4, 0) {
		t.Errorf("bounds = %v..%v", m.BoundsMin, m.BoundsMax)
	}
	if c := m.Center(); c != math3d.V3(1, 2, -1) {
		t.Errorf("center = %v, want (1, 2, -1)", c)
	}
	if s := m.Size(); s != math3d.V3(2, 4, 2) {
		t.Errorf("size = %v, want (2, 4, 2)", s)
	}
}

func TestMeshTriangleMaterial(t *testing.T) {
	m := unitTriangle()
	m.Materials = []Material{{Name: "blue only", BaseColor: [4]float64{0, 0, 1, 1}}}
	m.Faces[0].Material = 0

	_, colors := m.Triangle(0)
	if colors[0] != math3d.V3(0, 0, 0) || colors[2] != math3d.V3(0, 0, 1) {
		t.Errorf("tinted colors = %v", colors)
	}

	if m.Material(-1) != nil || m.Material(5) != nil {
		t.Error("out of range materials should be nil")
	}
}

func TestMeshFit(t *testing.T) {
	m := unitTriangle()
	m.Fit(2)

	size := m.Size()
	if math.Abs(max(size.X, size.Y, size.Z)-2) > 1e-9 {
		t.Errorf("size after fit = %v, want largest 2", size)
	}
	if c := m.Center(); c.Len() > 1e-9 {
		t.Errorf("center after fit = %v, want origin", c)
	}
}

func TestMeshTransform(t *testing.T) {
	m := unitTriangle()
	m.Transform(math3d.Translate(math3d.V3(0, 0, -10)))

	verts, _ := m.Triangle(0)
	if verts[0] != math3d.V3(0, 0, -10) {
		t.Errorf("vertex 0 = %v, want (0, 0, -10)", verts[0])
	}
	if m.BoundsMax.Z != -10 {
		t.Errorf("bounds not refreshed: %v", m.BoundsMax)
	}
}

func TestMeshAppend(t *testing.T) {
	a := unitTriangle()
	b := unitTriangle()
	b.Materials = []Material{{Name: "m", BaseColor: [4]float64{1, 1, 1, 1}}}
	b.Faces[0].Material = 0

	a.Append(b)

	if a.TriangleCount() != 2 || a.VertexCount() != 6 {
		t.Fatalf("appended mesh has %d triangles, %d vertices", a.TriangleCount(), a.VertexCount())
	}
	if a.Faces[1].V != [3]int{3, 4, 5} || a.Faces[1].Material != 0 {
		t.Errorf("appended face = %+v", a.Faces[1])
	}
	if a.Faces[0].Material != -1 {
		t.Errorf("original face material = %d, want -1", a.Faces[0].Material)
	}

	b.Faces[0].V = [3]int{0, 0, 0}
	if a.Faces[1].V != [3]int{3, 4, 5} {
		t.Error("appended faces share storage with the source mesh")
	}
}
