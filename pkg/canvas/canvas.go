package canvas

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// maxPPMLine is the longest line a PPM file may contain
const maxPPMLine = 70

// Canvas is a rectangular grid of pixels, initially black
type Canvas struct {
	Width, Height int
	pixels        []core.Color
}

// New creates a black canvas
func New(width, height int) *Canvas {
	if width < 0 || height < 0 {
		panic(fmt.Sprintf("canvas: invalid size %dx%d", width, height))
	}
	c := &Canvas{Width: width, Height: height, pixels: make([]core.Color, width*height)}
	c.Fill(core.Black)
	return c
}

func (c *Canvas) inBounds(x, y int) bool {
	return x >= 0 && x < c.Width && y >= 0 && y < c.Height
}

// SetPixel writes a color. Coordinates outside the canvas are ignored.
func (c *Canvas) SetPixel(x, y int, col core.Color) {
	if !c.inBounds(x, y) {
		return
	}
	c.pixels[y*c.Width+x] = col
}

// PixelAt reads a color. Coordinates outside the canvas read as black.
func (c *Canvas) PixelAt(x, y int) core.Color {
	if !c.inBounds(x, y) {
		return core.Black
	}
	return c.pixels[y*c.Width+x]
}

// Fill sets every pixel to col
func (c *Canvas) Fill(col core.Color) {
	for i := range c.pixels {
		c.pixels[i] = col
	}
}

// toByte scales a channel to 0-255, clamping out of range values
func toByte(v float64) uint8 {
	v = math.Max(0, math.Min(1, v))
	return uint8(math.Round(v * 255))
}

// ToRGBA converts a color to opaque 8-bit RGBA, clamping each channel
func ToRGBA(c core.Color) color.RGBA {
	return color.RGBA{R: toByte(c.R), G: toByte(c.G), B: toByte(c.B), A: 255}
}

// ToPPM returns the canvas as a plain (P3) PPM document
func (c *Canvas) ToPPM() string {
	var sb strings.Builder
	// strings.Builder writes never fail
	_ = c.WritePPM(&sb)
	return sb.String()
}

// WritePPM writes the canvas as a plain (P3) PPM. Pixel rows never produce a line
// longer than 70 characters and the output ends with a newline.
func (c *Canvas) WritePPM(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "P3\n%d %d\n255\n", c.Width, c.Height)

	for y := 0; y < c.Height; y++ {
		lineLen := 0
		for x := 0; x < c.Width; x++ {
			p := c.pixels[y*c.Width+x]
			for _, v := range [3]float64{p.R, p.G, p.B} {
				token := strconv.Itoa(int(toByte(v)))
				switch {
				case lineLen == 0:
				case lineLen+1+len(token) > maxPPMLine:
					bw.WriteByte('\n')
					lineLen = 0
				default:
					bw.WriteByte(' ')
					lineLen++
				}
				bw.WriteString(token)
				lineLen += len(token)
			}
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// ToImage converts the canvas to an 8-bit RGBA image
func (c *Canvas) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, c.Width, c.Height))
	for y := 0; y < c.Height; y++ {
		for x := 0; x < c.Width; x++ {
			img.SetRGBA(x, y, ToRGBA(c.pixels[y*c.Width+x]))
		}
	}
	return img
}

// WritePNG encodes the canvas as PNG
func (c *Canvas) WritePNG(w io.Writer) error {
	return png.Encode(w, c.ToImage())
}
