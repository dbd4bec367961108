package bvh

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Ray is a half-line starting at Origin. Direction is kept unit length.
type Ray struct {
	Origin    mgl64.Vec3
	Direction mgl64.Vec3
}

// NewRay returns a ray with a normalized direction.
func NewRay(origin, direction mgl64.Vec3) Ray {
	return Ray{Origin: origin, Direction: direction.Normalize()}
}

// Valid reports whether the direction is finite and not zero.
func (r Ray) Valid() bool {
	l := r.Direction.Len()
	return l > 0 && !math.IsInf(l, 0) && !math.IsNaN(l)
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float64) mgl64.Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// RaycastHit is ray query info struct.
type RaycastHit struct {
	// The collider that was hit, or nil if no collision occurred.
	Collider Collider
	// The point of impact in world space.
	Point mgl64.Vec3
	// The surface normal at the point of impact.
	Normal mgl64.Vec3
	// Distance from the ray origin to Point.
	Distance float64
}

// NoHit returns the "nothing hit yet" value. Its distance is infinite.
func NoHit() RaycastHit {
	return RaycastHit{Distance: math.Inf(1)}
}

// Hit reports whether h refers to a collider.
func (h RaycastHit) Hit() bool {
	return h.Collider != nil
}
