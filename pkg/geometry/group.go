package geometry

import (
	"fmt"
	"slices"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// NewGroup creates an empty group. The name is informational.
func NewGroup(name string) *Shape {
	s := newShape(KindGroup)
	s.name = name
	s.bounds = core.EmptyAABB()
	return s
}

func (s *Shape) mustGroup() {
	if s.kind != KindGroup {
		panic(fmt.Sprintf("geometry: %v is not a group", s))
	}
}

// Name returns the group's name
func (s *Shape) Name() string {
	return s.name
}

// Children returns the group's children. The slice must not be modified.
func (s *Shape) Children() []*Shape {
	return s.children
}

// AddChild makes child a member of the group, detaching it from any previous
// parent. Adding a child that is already present does nothing.
func (s *Shape) AddChild(child *Shape) {
	s.mustGroup()
	if child == s || child.Includes(s) {
		panic(fmt.Sprintf("geometry: adding %v to %v would create a cycle", child, s))
	}
	if child.parent == s {
		return
	}
	if child.parent != nil {
		child.parent.RemoveChild(child)
	}

	s.children = append(s.children, child)
	child.parent = s

	// Bounds only grow here, so ancestors can be extended instead of recomputed
	s.bounds = s.bounds.Union(child.ParentSpaceBounds())
	for g := s; g.parent != nil; g = g.parent {
		g.parent.bounds = g.parent.bounds.Union(g.ParentSpaceBounds())
	}
}

// RemoveChild detaches child from the group. It reports whether child was a member.
func (s *Shape) RemoveChild(child *Shape) bool {
	s.mustGroup()
	i := slices.Index(s.children, child)
	if i < 0 {
		return false
	}
	s.children = slices.Delete(s.children, i, i+1)
	child.parent = nil
	s.recomputeBounds()
	s.boundsChanged()
	return true
}

// recomputeBounds rebuilds a group's bounds from its children
func (s *Shape) recomputeBounds() {
	bounds := core.EmptyAABB()
	for _, child := range s.children {
		bounds = bounds.Union(child.ParentSpaceBounds())
	}
	s.bounds = bounds
}

func intersectGroup(s *Shape, ray core.Ray) Intersections {
	if !s.bounds.Intersects(ray) {
		return nil
	}

	var xs Intersections
	for _, child := range s.children {
		xs = append(xs, child.Intersect(ray)...)
	}
	xs.Sort()
	return xs
}
