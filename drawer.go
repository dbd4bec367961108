package bvh

import "github.com/go-gl/mathgl/mgl64"

// 16 bytes
type FColor struct {
	R, G, B, A float32
}

var (
	ColorRed   = FColor{1, 0, 0, 1}
	ColorGreen = FColor{0, 1, 0, 1}
	ColorBlue  = FColor{0, 0, 1, 1}
	ColorWhite = FColor{1, 1, 1, 1}
	ColorBlack = FColor{0, 0, 0, 1}
)

// Lerp blends from a to b. t is clamped to [0, 1].
func (a FColor) Lerp(b FColor, t float32) FColor {
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return FColor{
		a.R + (b.R-a.R)*t,
		a.G + (b.G-a.G)*t,
		a.B + (b.B-a.B)*t,
		a.A + (b.A-a.A)*t,
	}
}

// Drawer receives the tree's debug overlay. It is an observer only;
// nothing it does can reach back into the tree.
type Drawer interface {
	// DrawWireCube draws the unit cube centered at the origin, transformed by transform.
	DrawWireCube(transform mgl64.Mat4, color FColor)
	DrawLine(a, b mgl64.Vec3, color FColor)
}

// NodeInfo is the read-only view of a node handed out by Tree.Walk.
type NodeInfo struct {
	Depth int
	AABB  AABB
	Leaf  bool
	// Collider is nil for branches.
	Collider Collider
	// Overlapping is set for leaves that took part in the last CollisionPairs result.
	Overlapping bool
}

// BoxTransform maps the unit cube onto bb.
func BoxTransform(bb AABB) mgl64.Mat4 {
	c := bb.Center()
	s := bb.Size()
	return mgl64.Translate3D(c[0], c[1], c[2]).Mul4(mgl64.Scale3D(s[0], s[1], s[2]))
}

// NodeColor is the overlay color of a node: leaves are red while overlapping
// and green otherwise, branches fade from white to black with depth.
func NodeColor(info NodeInfo) FColor {
	if info.Leaf {
		if info.Overlapping {
			return ColorRed
		}
		return ColorGreen
	}
	return ColorWhite.Lerp(ColorBlack, float32(info.Depth)/depthShades)
}

// DrawTree draws every node of tree with the drawer implementation
func DrawTree(tree *Tree, drawer Drawer) {
	tree.Walk(func(info NodeInfo) bool {
		drawer.DrawWireCube(BoxTransform(info.AABB), NodeColor(info))
		return true
	})
}
