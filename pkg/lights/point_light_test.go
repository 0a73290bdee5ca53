package lights

import (
	"math"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

type identityObject struct{}

func (identityObject) WorldToObject(p core.Tuple) core.Tuple { return p }

func TestPointLight(t *testing.T) {
	light := NewPointLight(core.Point(0, 0, 0), core.White)
	if !light.Position.Equals(core.Point(0, 0, 0)) || !light.Intensity.Equals(core.White) {
		t.Errorf("Unexpected light %v", light)
	}

	dir, dist := light.DirectionFrom(core.Point(0, 0, -4))
	if !dir.Equals(core.Vector(0, 0, 1)) || dist != 4 {
		t.Errorf("Expected direction (0,0,1) at distance 4, got %v at %f", dir, dist)
	}
}

func TestLighting(t *testing.T) {
	h := math.Sqrt2 / 2
	position := core.Point(0, 0, 0)
	normal := core.Vector(0, 0, -1)

	tests := []struct {
		name     string
		eye      core.Tuple
		light    PointLight
		inShadow bool
		expected core.Color
	}{
		{"eye between light and surface", core.Vector(0, 0, -1),
			NewPointLight(core.Point(0, 0, -10), core.White), false, core.NewColor(1.9, 1.9, 1.9)},
		{"eye offset 45 degrees", core.Vector(0, h, -h),
			NewPointLight(core.Point(0, 0, -10), core.White), false, core.NewColor(1.0, 1.0, 1.0)},
		{"light offset 45 degrees", core.Vector(0, 0, -1),
			NewPointLight(core.Point(0, 10, -10), core.White), false, core.NewColor(0.7364, 0.7364, 0.7364)},
		{"eye in reflection path", core.Vector(0, -h, -h),
			NewPointLight(core.Point(0, 10, -10), core.White), false, core.NewColor(1.6364, 1.6364, 1.6364)},
		{"light behind surface", core.Vector(0, 0, -1),
			NewPointLight(core.Point(0, 0, 10), core.White), false, core.NewColor(0.1, 0.1, 0.1)},
		{"surface in shadow", core.Vector(0, 0, -1),
			NewPointLight(core.Point(0, 0, -10), core.White), true, core.NewColor(0.1, 0.1, 0.1)},
		{"colored light", core.Vector(0, 0, -1),
			NewPointLight(core.Point(0, 0, -10), core.NewColor(0.5, 0, 1)), false, core.NewColor(0.95, 0, 1.9)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Lighting(material.Default(), identityObject{}, tt.light, position, tt.eye, normal, tt.inShadow)
			if !got.Equals(tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestLighting_Pattern(t *testing.T) {
	m := material.Default()
	m.Pattern = material.NewStripe(core.White, core.Black)
	m.Ambient = 1
	m.Diffuse = 0
	m.Specular = 0

	eye := core.Vector(0, 0, -1)
	normal := core.Vector(0, 0, -1)
	light := NewPointLight(core.Point(0, 0, -10), core.White)

	c1 := Lighting(m, identityObject{}, light, core.Point(0.9, 0, 0), eye, normal, false)
	c2 := Lighting(m, identityObject{}, light, core.Point(1.1, 0, 0), eye, normal, false)
	if !c1.Equals(core.White) {
		t.Errorf("Expected white, got %v", c1)
	}
	if !c2.Equals(core.Black) {
		t.Errorf("Expected black, got %v", c2)
	}
}
