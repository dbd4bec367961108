package bvh

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// IShape is the geometry behind a Shape.
type IShape interface {
	// CacheData returns the tight bounds of the geometry placed at position.
	CacheData(position mgl64.Vec3) AABB
	// Raycast fills info with the nearest hit within maxDistance and reports whether there was one.
	Raycast(position mgl64.Vec3, ray Ray, maxDistance float64, info *RaycastHit) bool
}

// Shape is the stock Collider: a geometry class placed in the world.
type Shape struct {
	Class    IShape
	UserData any
	// Static shapes never move. Pairs between two static shapes are never reported.
	Static bool
	// Margin is how far the fat bounds reach past the tight bounds.
	// Larger margins mean fewer reinsertions and more false pairs.
	Margin float64

	position mgl64.Vec3
	bb       AABB
}

var _ Collider = (*Shape)(nil)

func NewShape(class IShape, position mgl64.Vec3) *Shape {
	s := &Shape{
		Class:    class,
		Margin:   DefaultFatMargin,
		position: position,
	}
	s.CacheBB()
	return s
}

func (s *Shape) String() string {
	return fmt.Sprintf("%T@%v", s.Class, s.position)
}

// CacheBB recomputes the tight bounds from the current position.
func (s *Shape) CacheBB() AABB {
	s.bb = s.Class.CacheData(s.position)
	return s.bb
}

func (s *Shape) Position() mgl64.Vec3 {
	return s.position
}

// SetPosition moves the shape. The tree notices on its next Update.
func (s *Shape) SetPosition(p mgl64.Vec3) {
	s.position = p
	s.CacheBB()
}

// Translate moves the shape by delta.
func (s *Shape) Translate(delta mgl64.Vec3) {
	s.SetPosition(s.position.Add(delta))
}

// SetStatic sets Shape.Static. Changing it while the shape is in a tree only
// affects pair enumeration from the next CollisionPairs call.
func (s *Shape) SetStatic(static bool) {
	s.Static = static
}

func (s *Shape) AABB() AABB {
	return s.bb
}

func (s *Shape) FatAABB() AABB {
	return s.bb.Expand(s.Margin)
}

func (s *Shape) WorldCenter() mgl64.Vec3 {
	return s.bb.Center()
}

func (s *Shape) IsStatic() bool {
	return s.Static
}

func (s *Shape) Raycast(ray Ray, maxDistance float64) (RaycastHit, bool) {
	info := NoHit()
	if !s.Class.Raycast(s.position, ray, maxDistance, &info) {
		return NoHit(), false
	}
	info.Collider = s
	return info, true
}
