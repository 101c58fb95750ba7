package models

import (
	"errors"
	"fmt"
	"math"
	"path/filepath"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"github.com/taigrr/softpipe/pkg/math3d"
)

// ErrUnsupportedAccessor is returned for accessor layouts the loader
// cannot decode.
var ErrUnsupportedAccessor = errors.New("unsupported accessor")

const attrColor = "COLOR_0"

// White is the vertex color used when a primitive has no COLOR_0.
var White = math3d.V3(1, 1, 1)

// LoadGLTF loads a .gltf or .glb file into a single mesh.
func LoadGLTF(path string) (*Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}

	mesh, err := MeshFromDocument(doc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	mesh.Name = filepath.Base(path)
	return mesh, nil
}

// MeshFromDocument merges the triangle primitives of every mesh in doc.
// Vertex colors come from COLOR_0 and default to white; material base
// colors are kept as per-face tints.
func MeshFromDocument(doc *gltf.Document) (*Mesh, error) {
	mesh := NewMesh("")

	for _, mat := range doc.Materials {
		m := Material{Name: mat.Name, BaseColor: [4]float64{1, 1, 1, 1}}
		if pbr := mat.PBRMetallicRoughness; pbr != nil && pbr.BaseColorFactor != nil {
			m.BaseColor = *pbr.BaseColorFactor
		}
		mesh.Materials = append(mesh.Materials, m)
	}

	for _, m := range doc.Meshes {
		if err := processMesh(doc, m, mesh); err != nil {
			return nil, fmt.Errorf("process mesh %q: %w", m.Name, err)
		}
	}

	mesh.CalculateBounds()
	return mesh, nil
}

// processMesh extracts geometry from a glTF mesh.
func processMesh(doc *gltf.Document, m *gltf.Mesh, mesh *Mesh) error {
	for _, prim := range m.Primitives {
		if prim.Mode != gltf.PrimitiveTriangles {
			// Skip lines, points and strips
			continue
		}

		posIdx, ok := prim.Attributes[gltf.POSITION]
		if !ok {
			continue
		}

		positions, err := readPositions(doc, posIdx)
		if err != nil {
			return fmt.Errorf("read positions: %w", err)
		}

		var colors []math3d.Vec3f
		if colIdx, ok := prim.Attributes[attrColor]; ok {
			colors, err = readColors(doc, colIdx)
			if err != nil {
				return fmt.Errorf("read colors: %w", err)
			}
		}

		material := -1
		if prim.Material != nil && *prim.Material >= 0 && *prim.Material < len(mesh.Materials) {
			material = *prim.Material
		}

		baseVertex := len(mesh.Vertices)
		for i, p := range positions {
			v := MeshVertex{Position: p, Color: White}
			if i < len(colors) {
				v.Color = colors[i]
			}
			mesh.Vertices = append(mesh.Vertices, v)
		}

		var indices []uint32
		if prim.Indices != nil {
			indices, err = readIndices(doc, *prim.Indices)
			if err != nil {
				return fmt.Errorf("read indices: %w", err)
			}
		} else {
			indices = make([]uint32, len(positions))
			for i := range indices {
				indices[i] = uint32(i)
			}
		}

		// glTF front faces are counter-clockwise; swap to clockwise.
		for i := 0; i+2 < len(indices); i += 3 {
			var f Face
			f.Material = material
			for k, j := range [3]int{i, i + 2, i + 1} {
				if int(indices[j]) >= len(positions) {
					return fmt.Errorf("index %d out of range", indices[j])
				}
				f.V[k] = baseVertex + int(indices[j])
			}
			mesh.Faces = append(mesh.Faces, f)
		}
	}

	return nil
}

// accessor returns accessor i of doc, or an error when i is out of range.
func accessor(doc *gltf.Document, i int) (*gltf.Accessor, error) {
	if i < 0 || i >= len(doc.Accessors) {
		return nil, fmt.Errorf("accessor %d out of range", i)
	}
	return doc.Accessors[i], nil
}

// readPositions reads a float VEC3 POSITION accessor.
func readPositions(doc *gltf.Document, i int) ([]math3d.Vec3f, error) {
	acc, err := accessor(doc, i)
	if err != nil {
		return nil, err
	}
	if acc.Type != gltf.AccessorVec3 || acc.ComponentType != gltf.ComponentFloat {
		return nil, fmt.Errorf("%w: positions must be float VEC3, got %v %v",
			ErrUnsupportedAccessor, acc.ComponentType, acc.Type)
	}

	raw, err := modeler.ReadPosition(doc, acc, nil)
	if err != nil {
		return nil, err
	}
	out := make([]math3d.Vec3f, len(raw))
	for k, p := range raw {
		out[k] = math3d.V3(float64(p[0]), float64(p[1]), float64(p[2]))
	}
	return out, nil
}

// readIndices reads an unsigned integer SCALAR accessor.
func readIndices(doc *gltf.Document, i int) ([]uint32, error) {
	acc, err := accessor(doc, i)
	if err != nil {
		return nil, err
	}
	if acc.Type != gltf.AccessorScalar {
		return nil, fmt.Errorf("%w: indices must be scalars, got %v", ErrUnsupportedAccessor, acc.Type)
	}
	switch acc.ComponentType {
	case gltf.ComponentUbyte, gltf.ComponentUshort, gltf.ComponentUint:
	default:
		return nil, fmt.Errorf("%w: indices must be unsigned integers, got %v",
			ErrUnsupportedAccessor, acc.ComponentType)
	}
	return modeler.ReadIndices(doc, acc, nil)
}

// readColors reads a COLOR_0 accessor as linear RGB, dropping alpha.
// modeler.ReadColor re-encodes float colors to sRGB, so the raw accessor
// data is converted here instead.
func readColors(doc *gltf.Document, i int) ([]math3d.Vec3f, error) {
	acc, err := accessor(doc, i)
	if err != nil {
		return nil, err
	}
	if acc.Type != gltf.AccessorVec3 && acc.Type != gltf.AccessorVec4 {
		return nil, fmt.Errorf("%w: colors must be VEC3 or VEC4, got %v", ErrUnsupportedAccessor, acc.Type)
	}

	data, err := modeler.ReadAccessor(doc, acc, nil)
	if err != nil {
		return nil, err
	}

	var out []math3d.Vec3f
	switch data := data.(type) {
	case [][3]float32:
		out = rgb3(data, 1)
	case [][4]float32:
		out = rgb4(data, 1)
	case [][3]uint8:
		out = rgb3(data, math.MaxUint8)
	case [][4]uint8:
		out = rgb4(data, math.MaxUint8)
	case [][3]uint16:
		out = rgb3(data, math.MaxUint16)
	case [][4]uint16:
		out = rgb4(data, math.MaxUint16)
	default:
		return nil, fmt.Errorf("%w: colors must be float, ubyte or ushort, got %v",
			ErrUnsupportedAccessor, acc.ComponentType)
	}
	return out, nil
}

type channel interface {
	float32 | uint8 | uint16
}

// rgb3 scales RGB rows into 0-1.
func rgb3[E channel](rows [][3]E, scale float64) []math3d.Vec3f {
	out := make([]math3d.Vec3f, len(rows))
	for k, r := range rows {
		out[k] = math3d.V3(float64(r[0])/scale, float64(r[1])/scale, float64(r[2])/scale)
	}
	return out
}

// rgb4 scales RGBA rows into 0-1 RGB.
func rgb4[E channel](rows [][4]E, scale float64) []math3d.Vec3f {
	out := make([]math3d.Vec3f, len(rows))
	for k, r := range rows {
		out[k] = math3d.V3(float64(r[0])/scale, float64(r[1])/scale, float64(r[2])/scale)
	}
	return out
}
