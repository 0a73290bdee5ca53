package core

import "math"

// AABB represents an axis-aligned bounding box. Extents may be infinite for
// unbounded shapes such as planes and open cylinders.
type AABB struct {
	Min Tuple // Minimum corner
	Max Tuple // Maximum corner
}

// NewAABB creates a new AABB from min and max points
func NewAABB(min, max Tuple) AABB {
	return AABB{Min: min, Max: max}
}

// EmptyAABB returns a box that contains nothing; adding any point makes it valid
func EmptyAABB() AABB {
	inf := math.Inf(1)
	return AABB{Min: Point(inf, inf, inf), Max: Point(-inf, -inf, -inf)}
}

// NewAABBFromPoints creates an AABB that bounds all given points
func NewAABBFromPoints(points ...Tuple) AABB {
	box := EmptyAABB()
	for _, point := range points {
		box = box.AddPoint(point)
	}
	return box
}

// AddPoint grows the box to include the point
func (aabb AABB) AddPoint(p Tuple) AABB {
	return AABB{
		Min: Point(math.Min(aabb.Min.X, p.X), math.Min(aabb.Min.Y, p.Y), math.Min(aabb.Min.Z, p.Z)),
		Max: Point(math.Max(aabb.Max.X, p.X), math.Max(aabb.Max.Y, p.Y), math.Max(aabb.Max.Z, p.Z)),
	}
}

// Union returns an AABB that bounds both this AABB and another
func (aabb AABB) Union(other AABB) AABB {
	if !other.IsValid() {
		return aabb
	}
	return aabb.AddPoint(other.Min).AddPoint(other.Max)
}

// IsValid returns true if this is a valid AABB (min <= max for all axes)
func (aabb AABB) IsValid() bool {
	return aabb.Min.X <= aabb.Max.X &&
		aabb.Min.Y <= aabb.Max.Y &&
		aabb.Min.Z <= aabb.Max.Z
}

// Contains reports whether the point lies inside or on the box
func (aabb AABB) Contains(p Tuple) bool {
	return aabb.Min.X <= p.X && p.X <= aabb.Max.X &&
		aabb.Min.Y <= p.Y && p.Y <= aabb.Max.Y &&
		aabb.Min.Z <= p.Z && p.Z <= aabb.Max.Z
}

// ContainsAABB reports whether other lies entirely inside this box
func (aabb AABB) ContainsAABB(other AABB) bool {
	return aabb.Contains(other.Min) && aabb.Contains(other.Max)
}

// Corners returns the eight corners of the box
func (aabb AABB) Corners() [8]Tuple {
	lo, hi := aabb.Min, aabb.Max
	return [8]Tuple{
		Point(lo.X, lo.Y, lo.Z),
		Point(lo.X, lo.Y, hi.Z),
		Point(lo.X, hi.Y, lo.Z),
		Point(lo.X, hi.Y, hi.Z),
		Point(hi.X, lo.Y, lo.Z),
		Point(hi.X, lo.Y, hi.Z),
		Point(hi.X, hi.Y, lo.Z),
		Point(hi.X, hi.Y, hi.Z),
	}
}

// Transform returns the box that bounds all eight corners after applying m
func (aabb AABB) Transform(m Matrix) AABB {
	if !aabb.IsValid() {
		return aabb
	}
	result := EmptyAABB()
	unbounded := [3]bool{}
	for _, corner := range aabb.Corners() {
		p := transformCorner(m, corner)
		for axis := 0; axis < 3; axis++ {
			if math.IsNaN(p.Get(axis)) {
				unbounded[axis] = true
			}
		}
		result = result.AddPoint(p)
	}

	// Opposite infinities mixed by a rotation leave that axis unbounded both ways
	inf := math.Inf(1)
	if unbounded[0] {
		result.Min.X, result.Max.X = -inf, inf
	}
	if unbounded[1] {
		result.Min.Y, result.Max.Y = -inf, inf
	}
	if unbounded[2] {
		result.Min.Z, result.Max.Z = -inf, inf
	}
	return result
}

// transformCorner multiplies a point by m, skipping zero terms so an infinite
// coordinate does not produce NaN through 0*Inf
func transformCorner(m Matrix, p Tuple) Tuple {
	var out [3]float64
	for r := 0; r < 3; r++ {
		sum := 0.0
		for c := 0; c < 4; c++ {
			if e := m.At(r, c); e != 0 {
				sum += e * p.Get(c)
			}
		}
		out[r] = sum
	}
	return Point(out[0], out[1], out[2])
}

// Intersects tests whether the infinite line through the ray crosses the box,
// using the slab method. Hits behind the origin count.
func (aabb AABB) Intersects(ray Ray) bool {
	if !aabb.IsValid() {
		return false
	}
	tMin := math.Inf(-1)
	tMax := math.Inf(1)

	for axis := 0; axis < 3; axis++ {
		min := aabb.Min.Get(axis)
		max := aabb.Max.Get(axis)
		origin := ray.Origin.Get(axis)
		direction := ray.Direction.Get(axis)

		// Handle rays parallel to this slab
		if direction == 0 {
			if origin < min || origin > max {
				return false // Ray origin outside slab
			}
			continue
		}

		invDirection := 1.0 / direction
		t1 := (min - origin) * invDirection
		t2 := (max - origin) * invDirection
		if t1 > t2 {
			t1, t2 = t2, t1
		}

		tMin = math.Max(tMin, t1)
		tMax = math.Min(tMax, t2)
		if tMin > tMax {
			return false
		}
	}

	return true
}

// Center returns the center point of the AABB
func (aabb AABB) Center() Tuple {
	return Point(
		(aabb.Min.X+aabb.Max.X)*0.5,
		(aabb.Min.Y+aabb.Max.Y)*0.5,
		(aabb.Min.Z+aabb.Max.Z)*0.5,
	)
}

// Size returns the size (extent) of the AABB along each axis
func (aabb AABB) Size() Tuple {
	return aabb.Max.Subtract(aabb.Min)
}

// LongestAxis returns the axis (0=X, 1=Y, 2=Z) with the largest extent
func (aabb AABB) LongestAxis() int {
	size := aabb.Size()
	if size.X >= size.Y && size.X >= size.Z {
		return 0
	}
	if size.Y >= size.Z {
		return 1
	}
	return 2
}
