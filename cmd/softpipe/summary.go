package main

import (
	"io"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/colorprofile"
	"github.com/taigrr/softpipe/pkg/render"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	labelStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4"))
	valueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#A8A8A8"))
)

// printSummary writes a one-line report of a draw call, downsampling
// colors to what w supports.
func printSummary(w io.Writer, environ []string, label string, s render.DrawStats) {
	p := message.NewPrinter(language.English)
	line := p.Sprintf("%d triangles, %d emitted, %d clipped, %d culled, %d pixels",
		s.Triangles, s.Emitted, s.Clipped, s.Culled, s.Pixels)
	if s.MeshesCulled > 0 {
		line += p.Sprintf(", %d meshes outside the view", s.MeshesCulled)
	}

	out := colorprofile.NewWriter(w, environ)
	p.Fprintln(out, labelStyle.Render(label)+" "+valueStyle.Render(line))
}
