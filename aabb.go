package bvh

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// AABB is an axis-aligned 3D bounding box given by its minimum and maximum corners.
type AABB struct {
	Min, Max mgl64.Vec3
}

// NewAABB is convenience constructor for AABB structs.
func NewAABB(min, max mgl64.Vec3) AABB {
	return AABB{Min: min, Max: max}
}

// NewAABBForExtents constructs an AABB centered on a point with the given extents (half sizes).
func NewAABBForExtents(c, halfExtents mgl64.Vec3) AABB {
	return AABB{
		Min: c.Sub(halfExtents),
		Max: c.Add(halfExtents),
	}
}

// NewAABBForSphere constructs an AABB for a sphere with the given center and radius.
func NewAABBForSphere(c mgl64.Vec3, r float64) AABB {
	return NewAABBForExtents(c, mgl64.Vec3{r, r, r})
}

func (bb AABB) String() string {
	return fmt.Sprintf("[%v %v %v] [%v %v %v]", bb.Min[0], bb.Min[1], bb.Min[2], bb.Max[0], bb.Max[1], bb.Max[2])
}

// Valid reports whether Min <= Max on every axis.
func (bb AABB) Valid() bool {
	return bb.Min[0] <= bb.Max[0] && bb.Min[1] <= bb.Max[1] && bb.Min[2] <= bb.Max[2]
}

// Intersects returns true if a and b intersect. Touching boxes intersect.
func (bb AABB) Intersects(b AABB) bool {
	return bb.Min[0] <= b.Max[0] && b.Min[0] <= bb.Max[0] &&
		bb.Min[1] <= b.Max[1] && b.Min[1] <= bb.Max[1] &&
		bb.Min[2] <= b.Max[2] && b.Min[2] <= bb.Max[2]
}

// Contains returns true if other lies completely within bb.
func (bb AABB) Contains(other AABB) bool {
	return bb.Min[0] <= other.Min[0] && bb.Max[0] >= other.Max[0] &&
		bb.Min[1] <= other.Min[1] && bb.Max[1] >= other.Max[1] &&
		bb.Min[2] <= other.Min[2] && bb.Max[2] >= other.Max[2]
}

// ContainsPoint returns true if bb contains p.
func (bb AABB) ContainsPoint(p mgl64.Vec3) bool {
	return bb.Min[0] <= p[0] && bb.Max[0] >= p[0] &&
		bb.Min[1] <= p[1] && bb.Max[1] >= p[1] &&
		bb.Min[2] <= p[2] && bb.Max[2] >= p[2]
}

// Encapsulate returns the smallest box holding both a and b.
func Encapsulate(a, b AABB) AABB {
	return AABB{
		Min: mgl64.Vec3{math.Min(a.Min[0], b.Min[0]), math.Min(a.Min[1], b.Min[1]), math.Min(a.Min[2], b.Min[2])},
		Max: mgl64.Vec3{math.Max(a.Max[0], b.Max[0]), math.Max(a.Max[1], b.Max[1]), math.Max(a.Max[2], b.Max[2])},
	}
}

// Merge returns a bounding box that holds both bounding boxes.
func (bb AABB) Merge(b AABB) AABB {
	return Encapsulate(bb, b)
}

// Expand returns bb grown by margin on every side.
func (bb AABB) Expand(margin float64) AABB {
	m := mgl64.Vec3{margin, margin, margin}
	return AABB{Min: bb.Min.Sub(m), Max: bb.Max.Add(m)}
}

// Offset returns a bounding box offseted by v.
func (bb AABB) Offset(v mgl64.Vec3) AABB {
	return AABB{Min: bb.Min.Add(v), Max: bb.Max.Add(v)}
}

// Center returns the center of a bounding box.
func (bb AABB) Center() mgl64.Vec3 {
	return bb.Min.Add(bb.Max).Mul(0.5)
}

// Size returns the edge lengths of the box.
func (bb AABB) Size() mgl64.Vec3 {
	return bb.Max.Sub(bb.Min)
}

// SurfaceArea returns the total area of the six faces.
func (bb AABB) SurfaceArea() float64 {
	d := bb.Size()
	return 2 * (d[0]*d[1] + d[1]*d[2] + d[2]*d[0])
}

// MergedSurfaceArea merges a and b and returns the surface area of the merged bounding box.
func (bb AABB) MergedSurfaceArea(b AABB) float64 {
	return Encapsulate(bb, b).SurfaceArea()
}

// Proximity is the Manhattan distance between the doubled centers of a and b.
func (bb AABB) Proximity(b AABB) float64 {
	return math.Abs(bb.Min[0]+bb.Max[0]-b.Min[0]-b.Max[0]) +
		math.Abs(bb.Min[1]+bb.Max[1]-b.Min[1]-b.Max[1]) +
		math.Abs(bb.Min[2]+bb.Max[2]-b.Min[2]-b.Max[2])
}

// Raycast returns the distance along the ray at which it enters bb.
// A ray starting inside the box hits at distance 0.
// ok is false when the ray misses or the entry point is farther than maxDistance.
func (bb AABB) Raycast(ray Ray, maxDistance float64) (t float64, ok bool) {
	tmin := 0.0
	tmax := maxDistance

	for axis := 0; axis < 3; axis++ {
		o := ray.Origin[axis]
		d := ray.Direction[axis]

		if math.Abs(d) < magicEpsilon {
			if o < bb.Min[axis] || o > bb.Max[axis] {
				return infinity, false
			}
			continue
		}

		inv := 1 / d
		t1 := (bb.Min[axis] - o) * inv
		t2 := (bb.Max[axis] - o) * inv
		if t1 > t2 {
			t1, t2 = t2, t1
		}

		tmin = math.Max(tmin, t1)
		tmax = math.Min(tmax, t2)
		// NaN from a degenerate ray fails here too
		if !(tmin <= tmax) {
			return infinity, false
		}
	}

	return tmin, true
}
