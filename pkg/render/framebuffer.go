package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/tiff"
)

// ErrUnsupportedFormat is returned when no encoder matches a file extension
// or format name.
var ErrUnsupportedFormat = errors.New("unsupported image format")

// PixelFormat selects the image type produced by ToImage.
type PixelFormat int

const (
	FormatRGBA PixelFormat = iota
	FormatGray
)

// Framebuffer is a 2D array of pixels the pipeline draws into.
type Framebuffer struct {
	Width  int
	Height int
	Format PixelFormat
	Pixels []color.RGBA // Row-major pixel data
}

// NewFramebuffer creates an RGBA framebuffer with the given dimensions.
func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{
		Width:  width,
		Height: height,
		Pixels: make([]color.RGBA, width*height),
	}
}

// Clear fills the framebuffer with a solid color.
func (fb *Framebuffer) Clear(c color.RGBA) {
	for i := range fb.Pixels {
		fb.Pixels[i] = c
	}
}

// SetPixel sets a pixel at (x, y). Writes outside the buffer are ignored.
func (fb *Framebuffer) SetPixel(x, y int, c color.RGBA) {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return
	}
	fb.Pixels[y*fb.Width+x] = c
}

// GetPixel returns the color at (x, y).
// Returns transparent black if out of bounds.
func (fb *Framebuffer) GetPixel(x, y int) color.RGBA {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return color.RGBA{}
	}
	return fb.Pixels[y*fb.Width+x]
}

// Bounds returns the pixel rectangle of the framebuffer.
func (fb *Framebuffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, fb.Width, fb.Height)
}

// ColorModel, At and Set make the framebuffer a draw.Image so the
// x/image font drawer can write into it.
func (fb *Framebuffer) ColorModel() color.Model { return color.RGBAModel }

func (fb *Framebuffer) At(x, y int) color.Color { return fb.GetPixel(x, y) }

func (fb *Framebuffer) Set(x, y int, c color.Color) {
	fb.SetPixel(x, y, color.RGBAModel.Convert(c).(color.RGBA))
}

// DrawLine draws a line from (x0, y0) to (x1, y1) using Bresenham's algorithm.
func (fb *Framebuffer) DrawLine(x0, y0, x1, y1 int, c color.RGBA) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	for {
		fb.SetPixel(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Caption writes text along the bottom-left corner in a fixed 7x13 font.
func (fb *Framebuffer) Caption(text string, c color.RGBA) {
	face := basicfont.Face7x13
	d := font.Drawer{
		Dst:  fb,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(4, fb.Height-face.Descent-4),
	}
	d.DrawString(text)
}

// ToImage converts the framebuffer to a standard Go image in its Format.
func (fb *Framebuffer) ToImage() image.Image {
	switch fb.Format {
	case FormatGray:
		img := image.NewGray(fb.Bounds())
		for y := range fb.Height {
			for x := range fb.Width {
				img.Set(x, y, fb.Pixels[y*fb.Width+x])
			}
		}
		return img
	default:
		img := image.NewRGBA(fb.Bounds())
		for y := range fb.Height {
			for x := range fb.Width {
				img.SetRGBA(x, y, fb.Pixels[y*fb.Width+x])
			}
		}
		return img
	}
}

// FormatFromPath maps a file extension to an encoder name.
func FormatFromPath(path string) (string, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".png":
		return "png", nil
	case ".jpg", ".jpeg":
		return "jpeg", nil
	case ".bmp":
		return "bmp", nil
	case ".tif", ".tiff":
		return "tiff", nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// Encode writes the framebuffer to w. format is one of png, jpeg, bmp or
// tiff.
func (fb *Framebuffer) Encode(w io.Writer, format string) error {
	img := fb.ToImage()
	switch format {
	case "png":
		return png.Encode(w, img)
	case "jpeg":
		return jpeg.Encode(w, img, &jpeg.Options{Quality: 90})
	case "bmp":
		return bmp.Encode(w, img)
	case "tiff":
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// Save writes the framebuffer to path, choosing the encoder from the file
// extension.
func (fb *Framebuffer) Save(path string) (err error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	if err := fb.Encode(f, format); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return nil
}
