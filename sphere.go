package bvh

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

type Sphere struct {
	radius float64
}

func (sphere *Sphere) CacheData(position mgl64.Vec3) AABB {
	return NewAABBForSphere(position, sphere.radius)
}

func (sphere *Sphere) Raycast(position mgl64.Vec3, ray Ray, maxDistance float64, info *RaycastHit) bool {
	return SphereRaycast(position, sphere.radius, ray, maxDistance, info)
}

func (sphere *Sphere) Radius() float64 {
	return sphere.radius
}

// SetRadius changes the radius. Call Shape.CacheBB afterwards.
func (sphere *Sphere) SetRadius(r float64) {
	sphere.radius = r
}

// SphereRaycast intersects ray with the sphere (center, r).
// A ray starting inside the sphere hits at distance 0 with a normal facing the ray.
func SphereRaycast(center mgl64.Vec3, r float64, ray Ray, maxDistance float64, info *RaycastHit) bool {
	m := ray.Origin.Sub(center)
	b := m.Dot(ray.Direction)
	c := m.Dot(m) - r*r

	// origin outside and pointing away
	if c > 0 && b > 0 {
		return false
	}

	det := b*b - c
	if det < 0 {
		return false
	}

	t := -b - math.Sqrt(det)
	if t < 0 {
		t = 0
	}
	if !(t <= maxDistance) {
		return false
	}

	info.Distance = t
	info.Point = ray.At(t)
	if t == 0 {
		info.Normal = ray.Direction.Mul(-1)
	} else {
		info.Normal = info.Point.Sub(center).Mul(1 / r)
	}
	return true
}
