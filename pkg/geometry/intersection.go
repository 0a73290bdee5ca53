package geometry

import (
	"fmt"
	"math"
	"slices"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Intersection records where along a ray a shape was hit
type Intersection struct {
	T      float64
	Object *Shape
}

// NoHit is returned by Hit when no intersection lies in front of the ray
var NoHit = Intersection{T: math.Inf(1)}

// NewIntersection creates an intersection at t with object
func NewIntersection(t float64, object *Shape) Intersection {
	return Intersection{T: t, Object: object}
}

// Ok reports whether the intersection refers to a shape, i.e. it is not NoHit
func (i Intersection) Ok() bool {
	return i.Object != nil
}

// Equals compares times approximately and shapes by identity
func (i Intersection) Equals(other Intersection) bool {
	return i.Object == other.Object && (i.T == other.T || core.ApproxEqual(i.T, other.T))
}

func (i Intersection) String() string {
	if !i.Ok() {
		return "NoHit"
	}
	return fmt.Sprintf("Intersection{%.5f, %v}", i.T, i.Object)
}

// Intersections is a list of intersections, usually sorted by ascending t
type Intersections []Intersection

// NewIntersections collects intersections sorted by t
func NewIntersections(xs ...Intersection) Intersections {
	out := Intersections(slices.Clone(xs))
	out.Sort()
	return out
}

// Sort orders the list by ascending t; ties keep their relative order
func (xs Intersections) Sort() {
	slices.SortStableFunc(xs, func(a, b Intersection) int {
		switch {
		case a.T < b.T:
			return -1
		case a.T > b.T:
			return 1
		default:
			return 0
		}
	})
}

// Hit returns the intersection with the lowest non-negative t, or NoHit
func (xs Intersections) Hit() Intersection {
	hit := NoHit
	for _, x := range xs {
		if x.T >= 0 && x.T < hit.T {
			hit = x
		}
	}
	return hit
}
