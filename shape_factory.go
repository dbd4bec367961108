package bvh

import "github.com/go-gl/mathgl/mgl64"

// NewSphereShape returns a new Sphere shape centered at 'position'
// with radius 'r'.
//
// Parameters:
//   - position: The world-space center of the sphere.
//   - r: The radius of the sphere.
func NewSphereShape(position mgl64.Vec3, r float64) *Shape {
	return NewShape(&Sphere{radius: r}, position)
}

// NewBoxShape returns a Box shape with specified width 'w' (X),
// height 'h' (Y) and depth 'd' (Z), centered at 'position'.
//
// Parameters:
//   - position: The world-space center of the box.
//   - w: The size of the box along X.
//   - h: The size of the box along Y.
//   - d: The size of the box along Z.
func NewBoxShape(position mgl64.Vec3, w, h, d float64) *Shape {
	return NewShape(&Box{halfExtents: mgl64.Vec3{w / 2, h / 2, d / 2}}, position)
}

// NewBoxShapeFromAABB returns a Box shape occupying exactly 'bb'.
func NewBoxShapeFromAABB(bb AABB) *Shape {
	size := bb.Size()
	return NewBoxShape(bb.Center(), size[0], size[1], size[2])
}

// NewStaticBoxShape returns a static Box shape occupying exactly 'bb'.
// Static shapes are only ever paired with moving ones.
func NewStaticBoxShape(bb AABB) *Shape {
	s := NewBoxShapeFromAABB(bb)
	s.Static = true
	return s
}
