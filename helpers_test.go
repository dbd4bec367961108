package bvh_test

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/setanarut/bvh"
)

// stubCollider has fixed bounds and a scripted exact raycast.
type stubCollider struct {
	name   string
	bb     bvh.AABB
	margin float64
	static bool

	// hitAt is the distance reported by Raycast; NaN means always miss.
	hitAt    float64
	rayCalls int
}

func newStub(name string, min, max mgl64.Vec3) *stubCollider {
	return &stubCollider{name: name, bb: bvh.NewAABB(min, max), hitAt: math.NaN()}
}

// span returns a unit-section box covering [x0, x1] along X.
func span(name string, x0, x1 float64) *stubCollider {
	return newStub(name, mgl64.Vec3{x0, 0, 0}, mgl64.Vec3{x1, 1, 1})
}

func (s *stubCollider) String() string { return s.name }
func (s *stubCollider) AABB() bvh.AABB { return s.bb }
func (s *stubCollider) FatAABB() bvh.AABB { return s.bb.Expand(s.margin) }
func (s *stubCollider) WorldCenter() mgl64.Vec3 { return s.bb.Center() }
func (s *stubCollider) IsStatic() bool { return s.static }
func (s *stubCollider) move(delta mgl64.Vec3) { s.bb = s.bb.Offset(delta) }

func (s *stubCollider) Raycast(ray bvh.Ray, maxDistance float64) (bvh.RaycastHit, bool) {
	s.rayCalls++
	if math.IsNaN(s.hitAt) || s.hitAt > maxDistance {
		return bvh.NoHit(), false
	}
	return bvh.RaycastHit{Collider: s, Point: ray.At(s.hitAt), Distance: s.hitAt}, true
}

// storedBoxes returns the leaf boxes currently held by the tree.
func storedBoxes(tree *bvh.Tree) map[bvh.Collider]bvh.AABB {
	out := make(map[bvh.Collider]bvh.AABB)
	tree.Walk(func(info bvh.NodeInfo) bool {
		if info.Leaf {
			out[info.Collider] = info.AABB
		}
		return true
	})
	return out
}

// leafDepths returns each collider's depth in the tree.
func leafDepths(tree *bvh.Tree) map[bvh.Collider]int {
	out := make(map[bvh.Collider]int)
	tree.Walk(func(info bvh.NodeInfo) bool {
		if info.Leaf {
			out[info.Collider] = info.Depth
		}
		return true
	})
	return out
}
