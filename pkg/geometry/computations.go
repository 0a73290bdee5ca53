package geometry

import (
	"math"
	"slices"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Computations is the shading state precomputed for one intersection
type Computations struct {
	T      float64
	Object *Shape

	Point      core.Tuple
	OverPoint  core.Tuple // Point nudged along the normal, origin for shadow and reflection rays
	UnderPoint core.Tuple // Point nudged against the normal, origin for refraction rays
	Eye        core.Tuple
	Normal     core.Tuple
	Reflect    core.Tuple
	Inside     bool // The ray hit the inside of the surface; Normal has been flipped

	N1 float64 // Refractive index of the medium being exited
	N2 float64 // Refractive index of the medium being entered
}

// PrepareComputations derives the shading state for hit, one of xs, along ray. xs
// must be sorted and is walked to find the media on either side of the hit.
func PrepareComputations(hit Intersection, ray core.Ray, xs Intersections) Computations {
	comps := Computations{
		T:      hit.T,
		Object: hit.Object,
	}

	comps.Point = ray.Position(hit.T)
	comps.Eye = ray.Direction.Negate()
	comps.Normal = hit.Object.NormalAt(comps.Point)

	if comps.Normal.Dot(comps.Eye) < 0 {
		comps.Inside = true
		comps.Normal = comps.Normal.Negate()
	}

	offset := comps.Normal.Multiply(core.Epsilon)
	comps.OverPoint = comps.Point.Add(offset)
	comps.UnderPoint = comps.Point.Subtract(offset)
	comps.Reflect = ray.Direction.Reflect(comps.Normal)

	comps.N1, comps.N2 = refractiveIndices(hit, xs)
	return comps
}

// refractiveIndices tracks which objects the ray is inside of as it passes each
// intersection, and reports the media on either side of hit
func refractiveIndices(hit Intersection, xs Intersections) (n1, n2 float64) {
	n1, n2 = material.Vacuum, material.Vacuum
	var containers []*Shape

	current := func() float64 {
		if len(containers) == 0 {
			return material.Vacuum
		}
		return containers[len(containers)-1].Material().RefractiveIndex
	}

	for _, x := range xs {
		if x == hit {
			n1 = current()
		}

		if i := slices.Index(containers, x.Object); i >= 0 {
			containers = slices.Delete(containers, i, i+1)
		} else {
			containers = append(containers, x.Object)
		}

		if x == hit {
			n2 = current()
			break
		}
	}
	return n1, n2
}

// Schlick approximates the fraction of light reflected at the surface
func (c Computations) Schlick() float64 {
	cos := c.Eye.Dot(c.Normal)

	// Total internal reflection is only possible leaving a denser medium
	if c.N1 > c.N2 {
		n := c.N1 / c.N2
		sin2t := n * n * (1 - cos*cos)
		if sin2t > 1 {
			return 1
		}
		cos = math.Sqrt(1 - sin2t)
	}

	r0 := math.Pow((c.N1-c.N2)/(c.N1+c.N2), 2)
	return r0 + (1-r0)*math.Pow(1-cos, 5)
}
