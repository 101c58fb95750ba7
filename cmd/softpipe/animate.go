package main

import (
	"fmt"
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"log/slog"
	"math"
	"os"

	"github.com/charmbracelet/harmonica"
	"github.com/spf13/cobra"
	"github.com/taigrr/softpipe/pkg/math3d"
	"github.com/taigrr/softpipe/pkg/render"
)

// SpinAxis eases a rotation angle toward a target with a harmonica spring.
type SpinAxis struct {
	Position float64
	Velocity float64
	spring   harmonica.Spring
}

// NewSpinAxis creates an axis stepping at fps frames per second.
func NewSpinAxis(fps int) SpinAxis {
	return SpinAxis{
		// Frequency 4.0 = moderate speed, damping 1.0 = critically damped (no overshoot)
		spring: harmonica.NewSpring(harmonica.FPS(fps), 4.0, 1.0),
	}
}

// Update advances one frame toward target.
func (a *SpinAxis) Update(target float64) {
	a.Position, a.Velocity = a.spring.Update(a.Position, a.Velocity, target)
}

// defaultOrbitRadius is used when the camera sits directly above or below
// the mesh center.
const defaultOrbitRadius = 5.0

func newAnimateCmd(opts *options) *cobra.Command {
	var (
		output string
		frames int
		fps    int
		turns  float64
	)

	cmd := &cobra.Command{
		Use:   "animate",
		Short: "Render a turntable GIF of the scene",
		Long: "Orbit the camera around the geometry and write each frame to an\n" +
			"animated GIF. The orbit eases in and settles on a spring.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if frames <= 0 || fps <= 0 {
				return fmt.Errorf("frames and fps must be positive")
			}
			if fps > 100 {
				return fmt.Errorf("fps %d exceeds the GIF limit of 100", fps)
			}
			j, err := newJob(cmd, opts)
			if err != nil {
				return err
			}

			anim, stats := j.turntable(frames, fps, turns*2*math.Pi)
			if err := saveGIF(output, anim); err != nil {
				return err
			}
			slog.Info("wrote animation", "path", output, "frames", frames)
			printSummary(os.Stderr, os.Environ(), output, stats)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "out.gif", "output GIF")
	cmd.Flags().IntVar(&frames, "frames", 60, "number of frames")
	cmd.Flags().IntVar(&fps, "fps", 30, "playback frames per second")
	cmd.Flags().Float64Var(&turns, "spin", 1, "turns about the vertical axis")
	return cmd
}

// turntable renders frames with the camera orbiting the mesh center at
// its starting height and distance, following a spring toward the final
// angle.
func (j *job) turntable(frames, fps int, angle float64) (*gif.GIF, render.DrawStats) {
	center := j.mesh.Center()
	cam := j.camera()
	fb := render.NewFramebuffer(j.scene.Width, j.scene.Height)

	offset := cam.Position.Sub(center)
	pivot := math3d.V3(center.X, cam.Position.Y, center.Z)
	radius := math.Hypot(offset.X, offset.Z)
	if radius == 0 {
		radius = defaultOrbitRadius
	}

	axis := NewSpinAxis(fps)
	axis.Position = math.Atan2(offset.X, offset.Z)
	target := axis.Position + angle

	anim := &gif.GIF{}
	var total render.DrawStats
	for i := range frames {
		cam.Orbit(pivot, radius, axis.Position)
		cam.LookAt(center)

		stats := j.draw(fb, cam)
		total.Add(stats)
		slog.Debug("frame", "index", i, "yaw", axis.Position, "pixels", stats.Pixels)

		anim.Image = append(anim.Image, quantize(fb.ToImage()))
		anim.Delay = append(anim.Delay, gifDelay(fps))
		axis.Update(target)
	}
	return anim, total
}

// gifDelay converts fps to a GIF frame delay in hundredths of a second.
// Viewers treat 0 as "as fast as possible", so the delay is at least 1.
func gifDelay(fps int) int {
	return max(1, 100/fps)
}

func quantize(img image.Image) *image.Paletted {
	dst := image.NewPaletted(img.Bounds(), palette.Plan9)
	draw.FloydSteinberg.Draw(dst, img.Bounds(), img, image.Point{})
	return dst
}

func saveGIF(path string, anim *gif.GIF) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	if err := gif.EncodeAll(f, anim); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return nil
}
