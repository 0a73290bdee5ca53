package renderer

import (
	"math"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/world"
)

func TestNewCamera(t *testing.T) {
	c := NewCamera(160, 120, math.Pi/2)

	if c.HSize() != 160 || c.VSize() != 120 || c.FieldOfView() != math.Pi/2 {
		t.Errorf("Unexpected camera %dx%d fov %f", c.HSize(), c.VSize(), c.FieldOfView())
	}
	if !c.Transform().Equals(core.Identity4()) {
		t.Errorf("Expected identity transform, got\n%v", c.Transform())
	}
}

func TestCamera_PixelSize(t *testing.T) {
	tests := []struct {
		name         string
		hsize, vsize int
	}{
		{"horizontal canvas", 200, 125},
		{"vertical canvas", 125, 200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCamera(tt.hsize, tt.vsize, math.Pi/2)
			if !core.ApproxEqual(c.PixelSize(), 0.01) {
				t.Errorf("Expected pixel size 0.01, got %f", c.PixelSize())
			}
		})
	}
}

func TestCamera_HalfExtents(t *testing.T) {
	c := NewCamera(200, 100, math.Pi/2)
	if !core.ApproxEqual(c.HalfWidth(), 1) || !core.ApproxEqual(c.HalfHeight(), 0.5) {
		t.Errorf("Expected half extents 1 x 0.5, got %f x %f", c.HalfWidth(), c.HalfHeight())
	}
}

func TestCamera_RayForPixel(t *testing.T) {
	h := math.Sqrt2 / 2

	tests := []struct {
		name      string
		transform core.Matrix
		px, py    int
		origin    core.Tuple
		direction core.Tuple
	}{
		{"center of the canvas", core.Identity4(), 100, 50, core.Point(0, 0, 0), core.Vector(0, 0, -1)},
		{"corner of the canvas", core.Identity4(), 0, 0, core.Point(0, 0, 0), core.Vector(0.66519, 0.33259, -0.66851)},
		{
			"transformed camera",
			core.RotationY(math.Pi / 4).Multiply(core.Translation(0, -2, 5)),
			100, 50,
			core.Point(0, 2, -5),
			core.Vector(h, 0, -h),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCamera(201, 101, math.Pi/2)
			c.SetTransform(tt.transform)
			r := c.RayForPixel(tt.px, tt.py)

			if !r.Origin.Equals(tt.origin) {
				t.Errorf("Expected origin %v, got %v", tt.origin, r.Origin)
			}
			if !r.Direction.Equals(tt.direction) {
				t.Errorf("Expected direction %v, got %v", tt.direction, r.Direction)
			}
		})
	}
}

func TestCamera_SetTransformSingularPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Expected panic for a singular transform")
		}
	}()
	NewCamera(10, 10, math.Pi/2).SetTransform(core.Scaling(0, 1, 1))
}

func defaultWorldCamera(size int) *Camera {
	c := NewCamera(size, size, math.Pi/2)
	c.SetTransform(core.ViewTransform(core.Point(0, 0, -5), core.Point(0, 0, 0), core.Vector(0, 1, 0)))
	return c
}

func TestCamera_Render(t *testing.T) {
	img := defaultWorldCamera(11).Render(world.Default())

	expected := core.NewColor(0.38066, 0.47583, 0.2855)
	if got := img.PixelAt(5, 5); !got.Equals(expected) {
		t.Errorf("Expected %v at (5,5), got %v", expected, got)
	}
	if img.Width != 11 || img.Height != 11 {
		t.Errorf("Expected 11x11 canvas, got %dx%d", img.Width, img.Height)
	}
}
