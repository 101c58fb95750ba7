package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/taigrr/softpipe/pkg/math3d"
	"github.com/taigrr/softpipe/pkg/models"
	"github.com/taigrr/softpipe/pkg/render"
)

// fitExtent is the size a --gltf model is scaled to before viewing.
const fitExtent = 2.0

// job is a resolved scene ready to draw at any target size.
type job struct {
	scene   *models.Scene
	mesh    *models.Mesh // Inline triangles and every loaded model
	bg      render.Color
	raster  render.Rasterizer
	outline *render.Color
	caption string
}

// newJob resolves the scene from the flags and loads its geometry.
func newJob(cmd *cobra.Command, opts *options) (*job, error) {
	scene, err := resolveScene(cmd, opts)
	if err != nil {
		return nil, err
	}

	j := &job{scene: scene, caption: opts.caption, mesh: scene.TriangleMesh()}

	loaded, err := scene.LoadMeshes()
	if err != nil {
		return nil, fmt.Errorf("load meshes: %w", err)
	}
	for _, m := range loaded {
		if opts.gltf != "" && opts.scene == "" {
			m.Fit(fitExtent)
		}
		slog.Info("loaded mesh", "name", m.Name, "vertices", m.VertexCount(), "triangles", m.TriangleCount())
		j.mesh.Append(m)
	}

	if j.bg, err = render.ParseColor(scene.Background); err != nil {
		return nil, err
	}
	if opts.outline != "" {
		c, err := render.ParseColor(opts.outline)
		if err != nil {
			return nil, err
		}
		j.outline = &c
	}

	mode, err := render.ParseShadeMode(scene.Mode)
	if err != nil {
		return nil, err
	}
	j.raster = render.Rasterizer{Mode: mode, Tiles: scene.Tiles, DoubleSided: opts.doubleSided}
	if j.raster.Tiles == 0 {
		j.raster.Tiles = render.DefaultTiles
	}
	return j, nil
}

// resolveScene loads --scene, wraps --gltf or falls back to the reference
// triangle, then applies explicitly set flags.
func resolveScene(cmd *cobra.Command, opts *options) (*models.Scene, error) {
	var scene *models.Scene
	switch {
	case opts.scene != "":
		s, err := models.LoadScene(opts.scene)
		if err != nil {
			return nil, err
		}
		scene = s
		if opts.gltf != "" {
			scene.Meshes = append(scene.Meshes, opts.gltf)
		}
	case opts.gltf != "":
		scene = models.DefaultScene()
		scene.Triangles = nil
		scene.Meshes = []string{opts.gltf}
		scene.Camera.Position = [3]float64{0, 0, 5}
		scene.Camera.Near = 0.1
		scene.Camera.Far = 100
	default:
		scene = models.DefaultScene()
	}

	flags := cmd.Flags()
	if flags.Changed("width") {
		scene.Width = opts.width
	}
	if flags.Changed("height") {
		scene.Height = opts.height
	}
	if flags.Changed("fov") {
		scene.Camera.FOV = opts.fov
	}
	if flags.Changed("near") {
		scene.Camera.Near = opts.near
	}
	if flags.Changed("far") {
		scene.Camera.Far = opts.far
	}
	if flags.Changed("infinite-far") {
		scene.Camera.InfiniteFar = opts.infiniteFar
	}
	if flags.Changed("mode") {
		scene.Mode = opts.mode
	}
	if flags.Changed("tiles") {
		scene.Tiles = opts.tiles
	}
	if flags.Changed("bg") {
		scene.Background = opts.bg
	}

	if err := scene.Validate(); err != nil {
		return nil, err
	}
	return scene, nil
}

// camera builds the scene camera. The aspect ratio is set per target.
func (j *job) camera() *render.Camera {
	c := j.scene.Camera
	cam := render.NewCamera()
	cam.SetFOV(math3d.Radians(c.FOV))
	cam.SetClipPlanes(c.Near, c.FarPlane())
	cam.SetPosition(math3d.V3(c.Position[0], c.Position[1], c.Position[2]))
	if c.Target != nil {
		cam.LookAt(math3d.V3(c.Target[0], c.Target[1], c.Target[2]))
	}
	return cam
}

// draw clears fb and renders the scene mesh into it.
func (j *job) draw(fb *render.Framebuffer, cam *render.Camera) render.DrawStats {
	fb.Clear(j.bg)

	p := render.NewPipelineForCamera(cam, fb.Width, fb.Height)
	p.Raster = j.raster
	p.Outline = j.outline

	stats := p.DrawMesh(fb, j.mesh)
	if j.caption != "" {
		fb.Caption(j.caption, render.ColorWhite)
	}
	return stats
}
