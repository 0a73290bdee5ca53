package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// DefaultLeafThreshold is the group size Divide stops splitting at when callers
// have no better estimate
const DefaultLeafThreshold = 8

// Divide turns a group into a bounding volume hierarchy. Children are split at the
// midpoint of the longest axis of their bounds into two subgroups, recursively,
// until no group holds more than threshold children. Unbounded children such as
// planes stay where they are. Divide on a non-group does nothing.
func (s *Shape) Divide(threshold int) {
	if s.kind != KindGroup {
		return
	}

	if len(s.children) > threshold {
		left, right := partitionChildren(s.children)

		// A split that leaves one side empty would recurse forever
		if len(left) > 0 && len(right) > 0 {
			var unbounded []*Shape
			for _, child := range s.children {
				if !isFinite(child.ParentSpaceBounds()) {
					unbounded = append(unbounded, child)
				}
			}
			s.children = unbounded
			s.addSubgroup(left)
			s.addSubgroup(right)
		}
	}

	for _, child := range s.children {
		child.Divide(threshold)
	}
}

// partitionChildren splits bounded shapes by which side of the midpoint their
// center falls on
func partitionChildren(children []*Shape) (left, right []*Shape) {
	bounds := core.EmptyAABB()
	for _, child := range children {
		if b := child.ParentSpaceBounds(); isFinite(b) {
			bounds = bounds.Union(b)
		}
	}
	if !bounds.IsValid() {
		return nil, nil
	}

	axis := bounds.LongestAxis()
	split := bounds.Center().Get(axis)
	for _, child := range children {
		b := child.ParentSpaceBounds()
		if !isFinite(b) {
			continue
		}
		if b.Center().Get(axis) < split {
			left = append(left, child)
		} else {
			right = append(right, child)
		}
	}
	return left, right
}

// addSubgroup moves children, already detached from s.children, into a new group under s
func (s *Shape) addSubgroup(children []*Shape) {
	sub := NewGroup(s.name)
	for _, child := range children {
		child.parent = nil
		sub.AddChild(child)
	}
	s.AddChild(sub)
}

func isFinite(b core.AABB) bool {
	if !b.IsValid() {
		return false
	}
	for axis := 0; axis < 3; axis++ {
		if math.IsInf(b.Min.Get(axis), 0) || math.IsInf(b.Max.Get(axis), 0) {
			return false
		}
	}
	return true
}
