package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/taigrr/softpipe/pkg/render"
)

func newRenderCmd(opts *options) *cobra.Command {
	var output string
	var gray bool

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the scene to an image file",
		Long:  "Render the scene to PNG, JPEG, BMP or TIFF, chosen by the output extension.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			j, err := newJob(cmd, opts)
			if err != nil {
				return err
			}

			fb := render.NewFramebuffer(j.scene.Width, j.scene.Height)
			if gray {
				fb.Format = render.FormatGray
			}
			stats := j.draw(fb, j.camera())

			if err := fb.Save(output); err != nil {
				return err
			}
			slog.Info("wrote image", "path", output, "width", fb.Width, "height", fb.Height)
			printSummary(os.Stderr, os.Environ(), output, stats)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "out.png", "output image (.png, .jpg, .bmp, .tif)")
	cmd.Flags().BoolVar(&gray, "gray", false, "write a grayscale image")
	return cmd
}
