package renderer

import (
	"fmt"
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/canvas"
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/world"
)

// Camera maps a canvas of hsize x vsize pixels onto a view plane one unit in
// front of the eye. The camera looks down -z in its own space; its transform
// (usually a core.ViewTransform) orients it in the world.
type Camera struct {
	hsize, vsize int
	fieldOfView  float64

	transform core.Matrix
	inverse   core.Matrix

	halfWidth  float64
	halfHeight float64
	pixelSize  float64
}

// NewCamera creates a camera with an identity transform. fieldOfView is the
// horizontal angle (radians) for landscape canvases, vertical for portrait.
func NewCamera(hsize, vsize int, fieldOfView float64) *Camera {
	if hsize <= 0 || vsize <= 0 {
		panic(fmt.Sprintf("camera: invalid size %dx%d", hsize, vsize))
	}

	c := &Camera{
		hsize:       hsize,
		vsize:       vsize,
		fieldOfView: fieldOfView,
		transform:   core.Identity4(),
		inverse:     core.Identity4(),
	}

	halfView := math.Tan(fieldOfView / 2)
	aspect := float64(hsize) / float64(vsize)
	if aspect >= 1 {
		c.halfWidth = halfView
		c.halfHeight = halfView / aspect
	} else {
		c.halfWidth = halfView * aspect
		c.halfHeight = halfView
	}
	c.pixelSize = c.halfWidth * 2 / float64(hsize)

	return c
}

// HSize returns the canvas width in pixels
func (c *Camera) HSize() int { return c.hsize }

// VSize returns the canvas height in pixels
func (c *Camera) VSize() int { return c.vsize }

// FieldOfView returns the field of view in radians
func (c *Camera) FieldOfView() float64 { return c.fieldOfView }

// HalfWidth returns half the width of the view plane
func (c *Camera) HalfWidth() float64 { return c.halfWidth }

// HalfHeight returns half the height of the view plane
func (c *Camera) HalfHeight() float64 { return c.halfHeight }

// PixelSize returns the size of one pixel on the view plane
func (c *Camera) PixelSize() float64 { return c.pixelSize }

// Transform returns the view transform set by SetTransform
func (c *Camera) Transform() core.Matrix { return c.transform }

// SetTransform orients the camera. It panics if m is singular.
func (c *Camera) SetTransform(m core.Matrix) {
	inv, err := m.Inverse()
	if err != nil {
		panic(fmt.Sprintf("camera: %v", err))
	}
	c.transform = m
	c.inverse = inv
}

// RayForPixel returns the world-space ray through the center of pixel (px, py)
func (c *Camera) RayForPixel(px, py int) core.Ray {
	xOffset := (float64(px) + 0.5) * c.pixelSize
	yOffset := (float64(py) + 0.5) * c.pixelSize

	// The camera looks toward -z, so +x is to the left
	worldX := c.halfWidth - xOffset
	worldY := c.halfHeight - yOffset

	pixel := c.inverse.MultiplyTuple(core.Point(worldX, worldY, -1))
	origin := c.inverse.MultiplyTuple(core.Point(0, 0, 0))
	direction := pixel.Subtract(origin).Normalize()

	return core.NewRay(origin, direction)
}

// Render traces one ray per pixel, sequentially, with the default recursion depth
func (c *Camera) Render(w *world.World) *canvas.Canvas {
	return c.RenderDepth(w, DefaultConfig().MaxDepth)
}

// RenderDepth is Render with an explicit reflection/refraction depth
func (c *Camera) RenderDepth(w *world.World, maxDepth int) *canvas.Canvas {
	img := canvas.New(c.hsize, c.vsize)
	for y := 0; y < c.vsize; y++ {
		for x := 0; x < c.hsize; x++ {
			img.SetPixel(x, y, w.ColorAt(c.RayForPixel(x, y), maxDepth))
		}
	}
	return img
}
