package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/taigrr/softpipe/pkg/math3d"
)

var (
	// ErrNoGeometry is returned for scenes with neither triangles nor meshes.
	ErrNoGeometry = errors.New("scene has no geometry")
	// ErrBadFrustum is returned for unusable camera parameters.
	ErrBadFrustum = errors.New("invalid camera frustum")
	// ErrBadSize is returned for non-positive image dimensions.
	ErrBadSize = errors.New("invalid image size")
)

// Scene describes one image: the camera, the target and the geometry.
type Scene struct {
	Width      int             `json:"width"`
	Height     int             `json:"height"`
	Background string          `json:"background"` // "#rrggbb"
	Mode       string          `json:"mode"`       // "flat" or "checker"
	Tiles      float64         `json:"tiles"`
	Camera     CameraConfig    `json:"camera"`
	Triangles  []SceneTriangle `json:"triangles"`
	Meshes     []string        `json:"meshes"` // glTF files, relative to the scene file

	dir string
}

// CameraConfig places the camera. Angles are in degrees.
type CameraConfig struct {
	FOV         float64     `json:"fov"`
	Near        float64     `json:"near"`
	Far         float64     `json:"far"`
	InfiniteFar bool        `json:"infiniteFar"`
	Position    [3]float64  `json:"position"`
	Target      *[3]float64 `json:"target,omitempty"`
}

// SceneTriangle is a camera-space triangle with optional vertex colors.
type SceneTriangle struct {
	Vertices [3][3]float64  `json:"vertices"`
	Colors   *[3][3]float64 `json:"colors,omitempty"`
}

// Scene defaults
const (
	DefaultWidth  = 1280
	DefaultHeight = 720
	DefaultFOV    = 60
	DefaultNear   = 1
	DefaultFar    = 1000
)

// DefaultScene returns the reference triangle seen through a 60 degree
// camera at the origin.
func DefaultScene() *Scene {
	s := &Scene{
		Triangles: []SceneTriangle{{
			Vertices: [3][3]float64{
				{30, 30, -40},
				{30, -30, -80},
				{-30, -10, -120},
			},
		}},
	}
	s.applyDefaults()
	return s
}

// LoadScene reads and validates a JSON scene file. Mesh paths are resolved
// against the file's directory.
func LoadScene(path string) (*Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open scene: %w", err)
	}
	defer f.Close()

	s, err := ParseScene(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	s.dir = filepath.Dir(path)
	return s, nil
}

// ParseScene decodes and validates a JSON scene. Omitted fields take the
// package defaults.
func ParseScene(r io.Reader) (*Scene, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	var s Scene
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("decode scene: %w", err)
	}
	s.applyDefaults()
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *Scene) applyDefaults() {
	if s.Width == 0 {
		s.Width = DefaultWidth
	}
	if s.Height == 0 {
		s.Height = DefaultHeight
	}
	if s.Background == "" {
		s.Background = "#000000"
	}
	if s.Mode == "" {
		s.Mode = "flat"
	}
	if s.Camera.FOV == 0 {
		s.Camera.FOV = DefaultFOV
	}
	if s.Camera.Near == 0 {
		s.Camera.Near = DefaultNear
	}
	if s.Camera.Far == 0 && !s.Camera.InfiniteFar {
		s.Camera.Far = DefaultFar
	}
}

// Validate reports the first problem that would prevent rendering.
func (s *Scene) Validate() error {
	if s.Width <= 0 || s.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrBadSize, s.Width, s.Height)
	}
	if len(s.Triangles) == 0 && len(s.Meshes) == 0 {
		return ErrNoGeometry
	}

	c := s.Camera
	if c.FOV <= 0 || c.FOV >= 180 {
		return fmt.Errorf("%w: fov %v must be in (0, 180)", ErrBadFrustum, c.FOV)
	}
	if c.Near <= 0 {
		return fmt.Errorf("%w: near %v must be positive", ErrBadFrustum, c.Near)
	}
	if !c.InfiniteFar && c.Far <= c.Near {
		return fmt.Errorf("%w: far %v must exceed near %v", ErrBadFrustum, c.Far, c.Near)
	}
	return nil
}

// FarPlane returns the far distance, +Inf when InfiniteFar is set.
func (c CameraConfig) FarPlane() float64 {
	if c.InfiniteFar {
		return math.Inf(1)
	}
	return c.Far
}

// Projection returns the perspective matrix for an image of the scene's
// size.
func (s *Scene) Projection() math3d.Mat4f {
	return math3d.Perspective(
		math3d.Radians(s.Camera.FOV),
		float64(s.Width)/float64(s.Height),
		s.Camera.Near,
		s.Camera.FarPlane(),
	)
}

// TriangleMesh collects the inline triangles into a mesh. Triangles
// without colors get red, green and blue corners.
func (s *Scene) TriangleMesh() *Mesh {
	mesh := NewMesh("triangles")
	rgb := [3]math3d.Vec3f{math3d.V3(1, 0, 0), math3d.V3(0, 1, 0), math3d.V3(0, 0, 1)}

	for _, t := range s.Triangles {
		var verts, colors [3]math3d.Vec3f
		for i := range 3 {
			verts[i] = vec(t.Vertices[i])
			colors[i] = rgb[i]
			if t.Colors != nil {
				colors[i] = vec(t.Colors[i])
			}
		}
		mesh.AddTriangle(verts, colors)
	}
	mesh.CalculateBounds()
	return mesh
}

// LoadMeshes loads every glTF file named by the scene.
func (s *Scene) LoadMeshes() ([]*Mesh, error) {
	meshes := make([]*Mesh, 0, len(s.Meshes))
	for _, name := range s.Meshes {
		path := name
		if !filepath.IsAbs(path) && s.dir != "" {
			path = filepath.Join(s.dir, path)
		}
		m, err := LoadGLTF(path)
		if err != nil {
			return nil, err
		}
		meshes = append(meshes, m)
	}
	return meshes, nil
}

func vec(a [3]float64) math3d.Vec3f {
	return math3d.V3(a[0], a[1], a[2])
}
