package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/colorprofile"
	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"
	"github.com/taigrr/softpipe/pkg/render"
)

func newViewCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view",
		Short: "Preview the scene in the terminal",
		Long: "Preview the scene with half-block characters. Each terminal cell\n" +
			"shows two pixels, so the image is cols x 2*rows pixels.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			j, err := newJob(cmd, opts)
			if err != nil {
				return err
			}

			cols, rows := terminalSize()
			rows-- // leave room for the summary line

			fb := render.NewFramebuffer(cols, rows*2)
			stats := j.draw(fb, j.camera())

			grid := render.NewCellGrid(cols, rows)
			fb.Draw(grid, cols, rows)

			out := colorprofile.NewWriter(os.Stdout, os.Environ())
			if _, err := fmt.Fprintln(out, grid.String()); err != nil {
				return err
			}
			printSummary(os.Stderr, os.Environ(), "view", stats)
			return nil
		},
	}
	return cmd
}

// terminalSize returns the size of stdout, or 80x24 when it is not a
// terminal.
func terminalSize() (cols, rows int) {
	cols, rows, err := term.GetSize(os.Stdout.Fd())
	if err != nil || cols <= 0 || rows <= 1 {
		return 80, 24
	}
	return cols, rows
}
