package bvh

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Box is an axis-aligned box given by its half extents.
type Box struct {
	halfExtents mgl64.Vec3
}

func (box *Box) CacheData(position mgl64.Vec3) AABB {
	return NewAABBForExtents(position, box.halfExtents)
}

func (box *Box) Raycast(position mgl64.Vec3, ray Ray, maxDistance float64, info *RaycastHit) bool {
	return BoxRaycast(NewAABBForExtents(position, box.halfExtents), ray, maxDistance, info)
}

func (box *Box) HalfExtents() mgl64.Vec3 {
	return box.halfExtents
}

// SetHalfExtents resizes the box. Call Shape.CacheBB afterwards.
func (box *Box) SetHalfExtents(h mgl64.Vec3) {
	box.halfExtents = h
}

// BoxRaycast intersects ray with the solid box bb and reports the face normal at entry.
func BoxRaycast(bb AABB, ray Ray, maxDistance float64, info *RaycastHit) bool {
	tmin := 0.0
	tmax := maxDistance
	entryAxis := -1
	entrySign := 0.0

	for axis := 0; axis < 3; axis++ {
		o := ray.Origin[axis]
		d := ray.Direction[axis]

		if math.Abs(d) < magicEpsilon {
			if o < bb.Min[axis] || o > bb.Max[axis] {
				return false
			}
			continue
		}

		inv := 1 / d
		t1 := (bb.Min[axis] - o) * inv
		t2 := (bb.Max[axis] - o) * inv
		sign := -1.0
		if t1 > t2 {
			t1, t2 = t2, t1
			sign = 1
		}

		if t1 > tmin {
			tmin = t1
			entryAxis = axis
			entrySign = sign
		}
		tmax = math.Min(tmax, t2)
		if !(tmin <= tmax) {
			return false
		}
	}

	info.Distance = tmin
	info.Point = ray.At(tmin)
	if entryAxis < 0 {
		// started inside
		info.Normal = ray.Direction.Mul(-1)
	} else {
		var n mgl64.Vec3
		n[entryAxis] = entrySign
		info.Normal = n
	}
	return true
}
