package world

import (
	"errors"
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// ErrNoLight is returned when rendering a world that has no light source
var ErrNoLight = errors.New("world has no light source")

// World is a scene: the top-level shapes and a single point light. It is built
// up front and only read while rendering, so concurrent ColorAt calls are safe.
type World struct {
	objects    []*geometry.Shape
	light      lights.PointLight
	hasLight   bool
	fresnel    bool
	background core.Color
}

// New creates an empty world with no light and a black background
func New() *World {
	return &World{background: core.Black}
}

// Default creates the two-sphere fixture: a green unit sphere enclosing a
// half-size sphere, lit from (-10, 10, -10)
func Default() *World {
	w := New()
	w.SetLight(lights.NewPointLight(core.Point(-10, 10, -10), core.White))

	s1 := geometry.NewSphere()
	m := material.WithColor(core.NewColor(0.8, 1.0, 0.6))
	m.Diffuse = 0.7
	m.Specular = 0.2
	s1.SetMaterial(m)

	s2 := geometry.NewSphere()
	s2.SetTransform(core.Scaling(0.5, 0.5, 0.5))

	w.AddObject(s1, s2)
	return w
}

// AddObject appends top-level shapes
func (w *World) AddObject(shapes ...*geometry.Shape) {
	w.objects = append(w.objects, shapes...)
}

// Objects returns the top-level shapes. The slice must not be modified.
func (w *World) Objects() []*geometry.Shape {
	return w.objects
}

// Contains reports whether s is part of the world, directly or inside a group
func (w *World) Contains(s *geometry.Shape) bool {
	for _, obj := range w.objects {
		if obj.Includes(s) {
			return true
		}
	}
	return false
}

// SetLight replaces the world's light
func (w *World) SetLight(l lights.PointLight) {
	w.light = l
	w.hasLight = true
}

// RemoveLight leaves the world unlit
func (w *World) RemoveLight() {
	w.light = lights.PointLight{}
	w.hasLight = false
}

// Light returns the world's light and whether one is set
func (w *World) Light() (lights.PointLight, bool) {
	return w.light, w.hasLight
}

// SetFresnel chooses how surfaces that both reflect and refract are shaded. When
// off, reflected and refracted colors are added in full; when on, they are
// weighted by the Schlick reflectance.
func (w *World) SetFresnel(enabled bool) {
	w.fresnel = enabled
}

// Fresnel reports whether Schlick weighting is enabled
func (w *World) Fresnel() bool {
	return w.fresnel
}

// SetBackground sets the color returned for rays that hit nothing
func (w *World) SetBackground(c core.Color) {
	w.background = c
}

// Background returns the color of rays that hit nothing
func (w *World) Background() core.Color {
	return w.background
}

// Validate reports whether the world can be rendered
func (w *World) Validate() error {
	if !w.hasLight {
		return ErrNoLight
	}
	return nil
}

// Intersect returns every intersection of the ray with the world, sorted by t
func (w *World) Intersect(ray core.Ray) geometry.Intersections {
	var xs geometry.Intersections
	for _, obj := range w.objects {
		xs = append(xs, obj.Intersect(ray)...)
	}
	xs.Sort()
	return xs
}

// IsShadowed reports whether something lies between point and the light. Without
// a light every point is in shadow.
func (w *World) IsShadowed(point core.Tuple) bool {
	if !w.hasLight {
		return true
	}

	direction, distance := w.light.DirectionFrom(point)
	hit := w.Intersect(core.NewRay(point, direction)).Hit()
	return hit.Ok() && hit.T < distance
}

// ShadeHit returns the color at a prepared intersection, following reflections
// and refractions until remaining reaches zero
func (w *World) ShadeHit(comps geometry.Computations, remaining int) core.Color {
	surface := core.Black
	if w.hasLight {
		shadowed := w.IsShadowed(comps.OverPoint)
		surface = lights.Lighting(comps.Object.Material(), comps.Object, w.light,
			comps.OverPoint, comps.Eye, comps.Normal, shadowed)
	}

	reflected := w.ReflectedColor(comps, remaining)
	refracted := w.RefractedColor(comps, remaining)

	m := comps.Object.Material()
	if w.fresnel && m.IsReflective() && m.IsTransparent() {
		reflectance := comps.Schlick()
		return surface.Add(reflected.Multiply(reflectance)).Add(refracted.Multiply(1 - reflectance))
	}
	return surface.Add(reflected).Add(refracted)
}

// ColorAt traces a ray into the world and returns the color it sees
func (w *World) ColorAt(ray core.Ray, remaining int) core.Color {
	xs := w.Intersect(ray)
	hit := xs.Hit()
	if !hit.Ok() {
		return w.background
	}
	return w.ShadeHit(geometry.PrepareComputations(hit, ray, xs), remaining)
}

// ReflectedColor returns the light arriving along the reflection vector, scaled
// by the surface's reflectivity
func (w *World) ReflectedColor(comps geometry.Computations, remaining int) core.Color {
	m := comps.Object.Material()
	if remaining <= 0 || !m.IsReflective() {
		return core.Black
	}

	reflectRay := core.NewRay(comps.OverPoint, comps.Reflect)
	return w.ColorAt(reflectRay, remaining-1).Multiply(m.Reflective)
}

// RefractedColor returns the light transmitted through the surface, scaled by its
// transparency. Total internal reflection transmits nothing.
func (w *World) RefractedColor(comps geometry.Computations, remaining int) core.Color {
	m := comps.Object.Material()
	if remaining <= 0 || !m.IsTransparent() {
		return core.Black
	}

	// Snell's law
	nRatio := comps.N1 / comps.N2
	cosI := comps.Eye.Dot(comps.Normal)
	sin2T := nRatio * nRatio * (1 - cosI*cosI)
	if sin2T > 1 {
		return core.Black
	}

	cosT := math.Sqrt(1 - sin2T)
	direction := comps.Normal.Multiply(nRatio*cosI - cosT).Subtract(comps.Eye.Multiply(nRatio))
	refractRay := core.NewRay(comps.UnderPoint, direction)
	return w.ColorAt(refractRay, remaining-1).Multiply(m.Transparency)
}
