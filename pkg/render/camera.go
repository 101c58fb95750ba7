package render

import (
	"math"

	"github.com/taigrr/softpipe/pkg/math3d"
)

// Camera places the viewer in the world and owns the projection.
//
// The zero orientation looks down -Z with +Y up, so a camera at the origin
// has an identity view matrix and world space equals camera space.
type Camera struct {
	Position math3d.Vec3f

	// Orientation (Euler angles in radians)
	Pitch float64 // Around X, look up/down
	Yaw   float64 // Around Y, look left/right
	Roll  float64 // Around Z, tilt

	FOV         float64 // Vertical field of view in radians
	AspectRatio float64 // Width / Height
	Near        float64
	Far         float64 // May be +Inf

	viewMatrix math3d.Mat4f
	projMatrix math3d.Mat4f
	viewDirty  bool
	projDirty  bool
}

// NewCamera creates a camera at the origin with a 60 degree field of view.
func NewCamera() *Camera {
	return &Camera{
		FOV:         math3d.Radians(60),
		AspectRatio: 16.0 / 9.0,
		Near:        1,
		Far:         1000,
		viewDirty:   true,
		projDirty:   true,
	}
}

// SetPosition moves the camera.
func (c *Camera) SetPosition(pos math3d.Vec3f) {
	c.Position = pos
	c.markView()
}

// SetFOV sets the vertical field of view in radians.
func (c *Camera) SetFOV(fov float64) {
	c.FOV = fov
	c.markProj()
}

// SetAspectRatio sets width / height.
func (c *Camera) SetAspectRatio(aspect float64) {
	c.AspectRatio = aspect
	c.markProj()
}

// SetClipPlanes sets the near and far clipping distances.
func (c *Camera) SetClipPlanes(near, far float64) {
	c.Near = near
	c.Far = far
	c.markProj()
}

func (c *Camera) markView() { c.viewDirty = true }

func (c *Camera) markProj() { c.projDirty = true }

// ViewMatrix returns the world-to-camera transform.
func (c *Camera) ViewMatrix() math3d.Mat4f {
	if c.viewDirty {
		// Inverse of the camera orientation, then the inverse translation.
		rot := math3d.RotateZ(-c.Roll).
			Mul(math3d.RotateX(-c.Pitch)).
			Mul(math3d.RotateY(-c.Yaw))
		c.viewMatrix = rot.Mul(math3d.Translate(c.Position.Negate()))
		c.viewDirty = false
	}
	return c.viewMatrix
}

// ProjectionMatrix returns the camera-to-clip transform.
func (c *Camera) ProjectionMatrix() math3d.Mat4f {
	if c.projDirty {
		c.projMatrix = math3d.Perspective(c.FOV, c.AspectRatio, c.Near, c.Far)
		c.projDirty = false
	}
	return c.projMatrix
}

// LookAt turns the camera toward target. Roll is reset.
func (c *Camera) LookAt(target math3d.Vec3f) {
	dir := target.Sub(c.Position).Normalize()
	if dir.LenSq() == 0 {
		return
	}

	c.Pitch = math.Asin(dir.Y)
	c.Yaw = math.Atan2(-dir.X, -dir.Z)
	c.Roll = 0
	c.markView()
}

// Orbit places the camera on a circle of the given radius around target,
// at angle yaw, and points it at target.
func (c *Camera) Orbit(target math3d.Vec3f, radius, yaw float64) {
	c.Position = target.Add(math3d.V3(math.Sin(yaw)*radius, 0, math.Cos(yaw)*radius))
	c.LookAt(target)
}
