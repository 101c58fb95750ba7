// softpipe - CPU software rendering pipeline
//
// Renders camera-space triangles and glTF meshes through projection,
// homogeneous clipping and perspective-correct rasterization, writing
// image files, animated GIFs or a half-block terminal preview.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
	"github.com/taigrr/softpipe/pkg/render"
)

// options holds the flags shared by every subcommand. Flags the user sets
// explicitly override the matching scene fields.
type options struct {
	scene       string
	gltf        string
	width       int
	height      int
	fov         float64
	near        float64
	far         float64
	infiniteFar bool
	mode        string
	tiles       float64
	bg          string
	outline     string
	caption     string
	doubleSided bool
	verbose     bool
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := fang.Execute(ctx, newRootCmd()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "softpipe",
		Short: "Render triangles and glTF meshes on the CPU",
		Long: "softpipe projects, clips and rasterizes triangles in software.\n" +
			"Without --scene or --gltf it draws the built-in reference triangle.",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging(opts.verbose)
		},
	}

	f := root.PersistentFlags()
	f.StringVar(&opts.scene, "scene", "", "JSON scene file")
	f.StringVar(&opts.gltf, "gltf", "", "glTF/GLB model to fit and render")
	f.IntVar(&opts.width, "width", 0, "image width in pixels (default from scene)")
	f.IntVar(&opts.height, "height", 0, "image height in pixels (default from scene)")
	f.Float64Var(&opts.fov, "fov", 0, "vertical field of view in degrees")
	f.Float64Var(&opts.near, "near", 0, "near clip distance")
	f.Float64Var(&opts.far, "far", 0, "far clip distance")
	f.BoolVar(&opts.infiniteFar, "infinite-far", false, "push the far plane to infinity")
	f.StringVar(&opts.mode, "mode", "", "shading mode: flat or checker")
	f.Float64Var(&opts.tiles, "tiles", render.DefaultTiles, "checkerboard tiles per UV unit")
	f.StringVar(&opts.bg, "bg", "", "background color (#rrggbb)")
	f.StringVar(&opts.outline, "outline", "", "outline emitted triangles in this color (#rrggbb)")
	f.StringVar(&opts.caption, "caption", "", "text stamped in the bottom-left corner")
	f.BoolVar(&opts.doubleSided, "double-sided", false, "also fill back-facing triangles")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "log per-triangle pipeline decisions")

	root.AddCommand(
		newRenderCmd(opts),
		newViewCmd(opts),
		newAnimateCmd(opts),
	)
	return root
}

func setupLogging(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	if verbose {
		render.SetLogger(logger.With("pkg", "render"))
	}
}
