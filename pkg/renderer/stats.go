package renderer

import (
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/canvas"
)

// RenderStats contains statistics about a finished render
type RenderStats struct {
	TotalPixels      int           // Pixels rendered (one primary ray each)
	TotalTiles       int           // Tiles the image was split into
	Workers          int           // Goroutines used
	Duration         time.Duration // Wall-clock render time
	AverageLuminance float64       // Mean Rec. 709 luminance of the clamped image
}

// PixelsPerSecond returns the render throughput
func (s RenderStats) PixelsPerSecond() float64 {
	if s.Duration <= 0 {
		return 0
	}
	return float64(s.TotalPixels) / s.Duration.Seconds()
}

// CalculateAverageLuminance returns the mean luminance of a canvas, with each
// channel clamped to [0, 1]
func CalculateAverageLuminance(c *canvas.Canvas) float64 {
	if c.Width == 0 || c.Height == 0 {
		return 0
	}

	var total float64
	for y := 0; y < c.Height; y++ {
		for x := 0; x < c.Width; x++ {
			p := c.PixelAt(x, y).Clamp(0, 1)
			total += 0.2126*p.R + 0.7152*p.G + 0.0722*p.B
		}
	}
	return total / float64(c.Width*c.Height)
}
