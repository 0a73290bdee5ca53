package canvas

import (
	"bytes"
	"image/png"
	"strings"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

func TestNew(t *testing.T) {
	c := New(10, 20)
	if c.Width != 10 || c.Height != 20 {
		t.Errorf("Expected 10x20, got %dx%d", c.Width, c.Height)
	}
	for y := 0; y < c.Height; y++ {
		for x := 0; x < c.Width; x++ {
			if !c.PixelAt(x, y).Equals(core.Black) {
				t.Fatalf("Expected black at (%d,%d), got %v", x, y, c.PixelAt(x, y))
			}
		}
	}
}

func TestCanvas_SetPixel(t *testing.T) {
	c := New(10, 20)
	red := core.NewColor(1, 0, 0)
	c.SetPixel(2, 3, red)

	if !c.PixelAt(2, 3).Equals(red) {
		t.Errorf("Expected %v, got %v", red, c.PixelAt(2, 3))
	}

	// Out of range writes are dropped and reads are black
	c.SetPixel(-1, 0, red)
	c.SetPixel(10, 0, red)
	if !c.PixelAt(10, 0).Equals(core.Black) {
		t.Errorf("Expected black outside the canvas, got %v", c.PixelAt(10, 0))
	}
}

func ppmLines(c *Canvas) []string {
	return strings.Split(c.ToPPM(), "\n")
}

func TestCanvas_PPMHeader(t *testing.T) {
	lines := ppmLines(New(5, 3))
	expected := []string{"P3", "5 3", "255"}
	for i, want := range expected {
		if lines[i] != want {
			t.Errorf("Line %d: expected %q, got %q", i+1, want, lines[i])
		}
	}
}

func TestCanvas_PPMPixelData(t *testing.T) {
	c := New(5, 3)
	c.SetPixel(0, 0, core.NewColor(1.5, 0, 0))
	c.SetPixel(2, 1, core.NewColor(0, 0.5, 0))
	c.SetPixel(4, 2, core.NewColor(-0.5, 0, 1))

	lines := ppmLines(c)
	expected := []string{
		"255 0 0 0 0 0 0 0 0 0 0 0 0 0 0",
		"0 0 0 0 0 0 0 128 0 0 0 0 0 0 0",
		"0 0 0 0 0 0 0 0 0 0 0 0 0 0 255",
	}
	for i, want := range expected {
		if lines[3+i] != want {
			t.Errorf("Line %d: expected %q, got %q", 4+i, want, lines[3+i])
		}
	}
}

func TestCanvas_PPMLineWrapping(t *testing.T) {
	c := New(10, 2)
	c.Fill(core.NewColor(1, 0.8, 0.6))

	lines := ppmLines(c)
	expected := []string{
		"255 204 153 255 204 153 255 204 153 255 204 153 255 204 153 255 204",
		"153 255 204 153 255 204 153 255 204 153 255 204 153",
		"255 204 153 255 204 153 255 204 153 255 204 153 255 204 153 255 204",
		"153 255 204 153 255 204 153 255 204 153 255 204 153",
	}
	for i, want := range expected {
		if lines[3+i] != want {
			t.Errorf("Line %d: expected %q, got %q", 4+i, want, lines[3+i])
		}
	}
	for i, line := range lines {
		if len(line) > 70 {
			t.Errorf("Line %d is %d characters long", i+1, len(line))
		}
	}
}

func TestCanvas_PPMEndsWithNewline(t *testing.T) {
	if ppm := New(5, 3).ToPPM(); !strings.HasSuffix(ppm, "\n") {
		t.Error("Expected PPM to end with a newline")
	}
}

func TestCanvas_PNG(t *testing.T) {
	c := New(4, 2)
	c.SetPixel(1, 1, core.NewColor(1, 0.5, 2))

	var buf bytes.Buffer
	if err := c.WritePNG(&buf); err != nil {
		t.Fatalf("WritePNG failed: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 4 || b.Dy() != 2 {
		t.Fatalf("Expected 4x2 image, got %v", b)
	}

	r, g, b, a := img.At(1, 1).RGBA()
	if r>>8 != 255 || g>>8 != 128 || b>>8 != 255 || a>>8 != 255 {
		t.Errorf("Expected (255,128,255,255), got (%d,%d,%d,%d)", r>>8, g>>8, b>>8, a>>8)
	}
}
