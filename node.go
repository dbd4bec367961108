package bvh

type nodeID int32

const nullNode nodeID = -1

type nodeKind uint8

const (
	kindFree nodeKind = iota
	kindLeaf
	kindBranch
)

// node is a slot in the pool. Which fields are meaningful depends on kind:
// a leaf has a collider and no children, a branch has two children and no
// collider, a free slot only uses next.
type node struct {
	kind   nodeKind
	aabb   AABB
	parent nodeID

	// branch
	left, right nodeID

	// leaf
	collider Collider
	serial   uint64

	// free list link
	next nodeID
}

func (n *node) IsLeaf() bool {
	return n.kind == kindLeaf
}

func (n *node) IsBranch() bool {
	return n.kind == kindBranch
}

func (n *node) setLeaf(c Collider, serial uint64, bb AABB) {
	*n = node{
		kind:     kindLeaf,
		aabb:     bb,
		parent:   nullNode,
		left:     nullNode,
		right:    nullNode,
		collider: c,
		serial:   serial,
		next:     nullNode,
	}
}

func (n *node) setBranch(left, right nodeID, bb AABB) {
	*n = node{
		kind:   kindBranch,
		aabb:   bb,
		parent: nullNode,
		left:   left,
		right:  right,
		next:   nullNode,
	}
}

// Other returns the child that is not 'child'.
func (n *node) Other(child nodeID) nodeID {
	if n.left == child {
		return n.right
	}
	return n.left
}
