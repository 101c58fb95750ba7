package render

import (
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"
	uv "github.com/charmbracelet/ultraviolet"
)

// CellSetter receives terminal cells. ultraviolet screens satisfy it.
type CellSetter interface {
	SetCell(x, y int, c *uv.Cell)
}

// Draw converts the framebuffer to terminal cells, cols wide and rows
// high. Each terminal row covers two framebuffer rows using ▀ (upper half
// block) with fg=top color and bg=bottom color.
func (fb *Framebuffer) Draw(scr CellSetter, cols, rows int) {
	for row := range rows {
		topY := row * 2
		botY := topY + 1

		for col := 0; col < cols && col < fb.Width; col++ {
			cell := &uv.Cell{
				Content: "▀",
				Width:   1,
				Style: uv.Style{
					Fg: rgbaToColor(fb.GetPixel(col, topY)),
					Bg: rgbaToColor(fb.GetPixel(col, botY)),
				},
			}
			scr.SetCell(col, row, cell)
		}
	}
}

// rgbaToColor converts color.RGBA to Go's color.Color interface.
func rgbaToColor(c color.RGBA) color.Color {
	if c.A == 0 {
		return nil // Transparent = no color
	}
	return c
}

// CellGrid is an in-memory CellSetter that renders to styled text.
type CellGrid struct {
	Cols, Rows int
	cells      []*uv.Cell
}

// NewCellGrid creates an empty grid.
func NewCellGrid(cols, rows int) *CellGrid {
	return &CellGrid{
		Cols:  cols,
		Rows:  rows,
		cells: make([]*uv.Cell, cols*rows),
	}
}

// SetCell stores c at (x, y). Out-of-range cells are dropped.
func (g *CellGrid) SetCell(x, y int, c *uv.Cell) {
	if x < 0 || x >= g.Cols || y < 0 || y >= g.Rows {
		return
	}
	g.cells[y*g.Cols+x] = c
}

// Cell returns the cell at (x, y), or nil.
func (g *CellGrid) Cell(x, y int) *uv.Cell {
	if x < 0 || x >= g.Cols || y < 0 || y >= g.Rows {
		return nil
	}
	return g.cells[y*g.Cols+x]
}

// String renders the grid row by row. Empty cells become spaces.
func (g *CellGrid) String() string {
	var sb strings.Builder
	for y := range g.Rows {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := range g.Cols {
			c := g.cells[y*g.Cols+x]
			if c == nil {
				sb.WriteByte(' ')
				continue
			}
			style := lipgloss.NewStyle()
			if c.Style.Fg != nil {
				style = style.Foreground(c.Style.Fg)
			}
			if c.Style.Bg != nil {
				style = style.Background(c.Style.Bg)
			}
			sb.WriteString(style.Render(c.Content))
		}
	}
	return sb.String()
}
