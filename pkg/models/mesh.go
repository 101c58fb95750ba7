// Package models provides scene and mesh loading for softpipe.
package models

import (
	"github.com/taigrr/softpipe/pkg/math3d"
)

// Mesh is a list of colored triangles sharing a vertex pool.
//
// Faces are stored in the winding the rasterizer treats as front-facing:
// clockwise when seen from the camera with +Y up.
type Mesh struct {
	Name      string
	Vertices  []MeshVertex
	Faces     []Face
	Materials []Material

	// Bounding box (calculated on load)
	BoundsMin math3d.Vec3f
	BoundsMax math3d.Vec3f
}

// MeshVertex holds all vertex attributes.
type MeshVertex struct {
	Position math3d.Vec3f
	Color    math3d.Vec3f // RGB in 0-1 range
}

// Face is a triangle of vertex indices with an optional material.
type Face struct {
	V        [3]int // Indices into Mesh.Vertices
	Material int    // Index into Mesh.Materials (-1 for no material)
}

// Material tints the vertex colors of its faces.
type Material struct {
	Name      string
	BaseColor [4]float64 // RGBA in 0-1 range
}

// NewMesh creates an empty mesh.
func NewMesh(name string) *Mesh {
	return &Mesh{Name: name}
}

// AddTriangle appends a triangle with its own three vertices.
func (m *Mesh) AddTriangle(verts, colors [3]math3d.Vec3f) {
	base := len(m.Vertices)
	for i := range 3 {
		m.Vertices = append(m.Vertices, MeshVertex{Position: verts[i], Color: colors[i]})
	}
	m.Faces = append(m.Faces, Face{V: [3]int{base, base + 1, base + 2}, Material: -1})
}

// CalculateBounds computes the axis-aligned bounding box.
func (m *Mesh) CalculateBounds() {
	if len(m.Vertices) == 0 {
		return
	}

	m.BoundsMin = m.Vertices[0].Position
	m.BoundsMax = m.Vertices[0].Position

	for _, v := range m.Vertices[1:] {
		m.BoundsMin = m.BoundsMin.Min(v.Position)
		m.BoundsMax = m.BoundsMax.Max(v.Position)
	}
}

// Bounds returns the axis-aligned bounding box.
func (m *Mesh) Bounds() (lo, hi math3d.Vec3f) {
	return m.BoundsMin, m.BoundsMax
}

// Center returns the center of the bounding box.
func (m *Mesh) Center() math3d.Vec3f {
	return m.BoundsMin.Add(m.BoundsMax).Scale(0.5)
}

// Size returns the dimensions of the bounding box.
func (m *Mesh) Size() math3d.Vec3f {
	return m.BoundsMax.Sub(m.BoundsMin)
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Faces)
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// Triangle returns the positions and colors of face i, with the face
// material's base color multiplied in.
func (m *Mesh) Triangle(i int) (verts [3]math3d.Vec3f, colors [3]math3d.Vec3f) {
	f := m.Faces[i]
	tint := math3d.V3(1, 1, 1)
	if mat := m.Material(f.Material); mat != nil {
		tint = math3d.V3(mat.BaseColor[0], mat.BaseColor[1], mat.BaseColor[2])
	}
	for k, idx := range f.V {
		v := m.Vertices[idx]
		verts[k] = v.Position
		colors[k] = v.Color.Mul(tint)
	}
	return verts, colors
}

// Material returns the material at index i, or nil when i is out of range.
func (m *Mesh) Material(i int) *Material {
	if i < 0 || i >= len(m.Materials) {
		return nil
	}
	return &m.Materials[i]
}

// Transform applies a transformation matrix to all positions.
func (m *Mesh) Transform(mat math3d.Mat4f) {
	for i := range m.Vertices {
		m.Vertices[i].Position = mat.MulPoint(m.Vertices[i].Position)
	}
	m.CalculateBounds()
}

// Fit centers the mesh on the origin and scales it uniformly so its
// largest dimension equals extent.
func (m *Mesh) Fit(extent float64) {
	m.CalculateBounds()
	size := m.Size()
	maxDim := max(size.X, size.Y, size.Z)
	if maxDim <= 0 {
		return
	}
	s := extent / maxDim
	m.Transform(math3d.Scale(math3d.V3(s, s, s)).Mul(math3d.Translate(m.Center().Negate())))
}

// Append adds all faces of other to m, keeping materials separate.
func (m *Mesh) Append(other *Mesh) {
	baseVertex := len(m.Vertices)
	baseMaterial := len(m.Materials)

	m.Vertices = append(m.Vertices, other.Vertices...)
	m.Materials = append(m.Materials, other.Materials...)
	for _, f := range other.Faces {
		nf := Face{
			V:        [3]int{f.V[0] + baseVertex, f.V[1] + baseVertex, f.V[2] + baseVertex},
			Material: -1,
		}
		if f.Material >= 0 {
			nf.Material = f.Material + baseMaterial
		}
		m.Faces = append(m.Faces, nf)
	}
	m.CalculateBounds()
}
