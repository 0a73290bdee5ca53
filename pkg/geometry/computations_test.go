package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

func TestPrepareComputations_Outside(t *testing.T) {
	ray := core.NewRay(core.Point(0, 0, -5), core.Vector(0, 0, 1))
	s := NewSphere()
	hit := NewIntersection(4, s)

	comps := PrepareComputations(hit, ray, Intersections{hit})

	if comps.T != 4 || comps.Object != s {
		t.Errorf("Expected t=4 on the sphere, got %f on %v", comps.T, comps.Object)
	}
	if !comps.Point.Equals(core.Point(0, 0, -1)) {
		t.Errorf("Expected point (0,0,-1), got %v", comps.Point)
	}
	if !comps.Eye.Equals(core.Vector(0, 0, -1)) {
		t.Errorf("Expected eye (0,0,-1), got %v", comps.Eye)
	}
	if !comps.Normal.Equals(core.Vector(0, 0, -1)) {
		t.Errorf("Expected normal (0,0,-1), got %v", comps.Normal)
	}
	if comps.Inside {
		t.Error("Expected hit on the outside")
	}
}

func TestPrepareComputations_Inside(t *testing.T) {
	ray := core.NewRay(core.Point(0, 0, 0), core.Vector(0, 0, 1))
	hit := NewIntersection(1, NewSphere())

	comps := PrepareComputations(hit, ray, Intersections{hit})

	if !comps.Point.Equals(core.Point(0, 0, 1)) {
		t.Errorf("Expected point (0,0,1), got %v", comps.Point)
	}
	if !comps.Eye.Equals(core.Vector(0, 0, -1)) {
		t.Errorf("Expected eye (0,0,-1), got %v", comps.Eye)
	}
	if !comps.Inside {
		t.Error("Expected hit on the inside")
	}
	if !comps.Normal.Equals(core.Vector(0, 0, -1)) {
		t.Errorf("Expected flipped normal (0,0,-1), got %v", comps.Normal)
	}
}

func TestPrepareComputations_OffsetPoints(t *testing.T) {
	ray := core.NewRay(core.Point(0, 0, -5), core.Vector(0, 0, 1))

	s := NewSphere()
	s.SetTransform(core.Translation(0, 0, 1))
	hit := NewIntersection(5, s)
	comps := PrepareComputations(hit, ray, Intersections{hit})

	if comps.OverPoint.Z >= -core.Epsilon/2 || comps.Point.Z <= comps.OverPoint.Z {
		t.Errorf("Expected over point above the surface, got %v (point %v)", comps.OverPoint, comps.Point)
	}

	glass := NewGlassSphere()
	glass.SetTransform(core.Translation(0, 0, 1))
	hit = NewIntersection(5, glass)
	comps = PrepareComputations(hit, ray, Intersections{hit})

	if comps.UnderPoint.Z <= core.Epsilon/2 || comps.Point.Z >= comps.UnderPoint.Z {
		t.Errorf("Expected under point below the surface, got %v (point %v)", comps.UnderPoint, comps.Point)
	}
}

func TestPrepareComputations_Reflect(t *testing.T) {
	h := math.Sqrt2 / 2
	p := NewPlane()
	ray := core.NewRay(core.Point(0, 1, -1), core.Vector(0, -h, h))
	hit := NewIntersection(math.Sqrt2, p)

	comps := PrepareComputations(hit, ray, Intersections{hit})
	if !comps.Reflect.Equals(core.Vector(0, h, h)) {
		t.Errorf("Expected reflect (0,%f,%f), got %v", h, h, comps.Reflect)
	}
}

func TestPrepareComputations_RefractiveIndices(t *testing.T) {
	a := NewGlassSphere()
	a.SetTransform(core.Scaling(2, 2, 2))
	a.Material().RefractiveIndex = 1.5

	b := NewGlassSphere()
	b.SetTransform(core.Translation(0, 0, -0.25))
	b.Material().RefractiveIndex = 2.0

	c := NewGlassSphere()
	c.SetTransform(core.Translation(0, 0, 0.25))
	c.Material().RefractiveIndex = 2.5

	ray := core.NewRay(core.Point(0, 0, -4), core.Vector(0, 0, 1))
	xs := Intersections{
		NewIntersection(2, a),
		NewIntersection(2.75, b),
		NewIntersection(3.25, c),
		NewIntersection(4.75, b),
		NewIntersection(5.25, c),
		NewIntersection(6, a),
	}

	expected := []struct{ n1, n2 float64 }{
		{1.0, 1.5},
		{1.5, 2.0},
		{2.0, 2.5},
		{2.5, 2.5},
		{2.5, 1.5},
		{1.5, 1.0},
	}

	for i, want := range expected {
		comps := PrepareComputations(xs[i], ray, xs)
		if comps.N1 != want.n1 || comps.N2 != want.n2 {
			t.Errorf("Intersection %d: expected n1=%.1f n2=%.1f, got n1=%.1f n2=%.1f", i, want.n1, want.n2, comps.N1, comps.N2)
		}
	}
}

func TestSchlick(t *testing.T) {
	h := math.Sqrt2 / 2

	t.Run("total internal reflection", func(t *testing.T) {
		s := NewGlassSphere()
		ray := core.NewRay(core.Point(0, 0, h), core.Vector(0, 1, 0))
		xs := Intersections{NewIntersection(-h, s), NewIntersection(h, s)}
		comps := PrepareComputations(xs[1], ray, xs)
		if got := comps.Schlick(); got != 1.0 {
			t.Errorf("Expected reflectance 1.0, got %f", got)
		}
	})

	t.Run("perpendicular", func(t *testing.T) {
		s := NewGlassSphere()
		ray := core.NewRay(core.Point(0, 0, 0), core.Vector(0, 1, 0))
		xs := Intersections{NewIntersection(-1, s), NewIntersection(1, s)}
		comps := PrepareComputations(xs[1], ray, xs)
		if got := comps.Schlick(); !core.ApproxEqual(got, 0.04) {
			t.Errorf("Expected reflectance 0.04, got %f", got)
		}
	})

	t.Run("small angle, n2 > n1", func(t *testing.T) {
		s := NewGlassSphere()
		ray := core.NewRay(core.Point(0, 0.99, -2), core.Vector(0, 0, 1))
		xs := Intersections{NewIntersection(1.8589, s)}
		comps := PrepareComputations(xs[0], ray, xs)
		if got := comps.Schlick(); !core.ApproxEqual(got, 0.48873) {
			t.Errorf("Expected reflectance 0.48873, got %f", got)
		}
	})
}
