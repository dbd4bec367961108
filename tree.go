package bvh

import (
	"fmt"
	"math"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Tree is a dynamic bounding volume tree over colliders' fat AABBs.
//
// Leaves hold one collider each, branches hold exactly two children and the
// union of their boxes. The tree is not safe for concurrent use: mutate it,
// query it and draw it from one goroutine, in that order, once per tick.
type Tree struct {
	cfg    Config
	logger *zap.Logger
	drawer Drawer

	pool *nodePool
	root nodeID

	// leaves is the collider index: collider -> its leaf.
	leaves      map[Collider]nodeID
	pairs       *PairSet
	overlapping map[Collider]struct{}
	serial      uint64

	// scratch buffers reused between calls
	queue    []walkItem
	reinsert []nodeID
}

type walkItem struct {
	id    nodeID
	depth int
}

// Option configures a Tree.
type Option func(*Tree)

// WithConfig replaces DefaultConfig.
func WithConfig(cfg Config) Option {
	return func(t *Tree) {
		t.cfg = cfg
	}
}

// WithLogger sets the logger. The tree logs at debug level only.
func WithLogger(logger *zap.Logger) Option {
	return func(t *Tree) {
		if logger == nil {
			logger = zap.NewNop()
		}
		t.logger = logger.Named("bvh")
	}
}

// WithDrawer installs the debug overlay.
func WithDrawer(drawer Drawer) Option {
	return func(t *Tree) {
		t.drawer = drawer
	}
}

var _ SpatialIndexer = (*Tree)(nil)

// NewTree returns an empty tree. It panics on an invalid config.
func NewTree(opts ...Option) *Tree {
	t := &Tree{
		cfg:         DefaultConfig(),
		logger:      zap.NewNop(),
		root:        nullNode,
		leaves:      make(map[Collider]nodeID),
		overlapping: make(map[Collider]struct{}),
	}
	for _, opt := range opts {
		opt(t)
	}
	if err := t.cfg.Validate(); err != nil {
		panic(err)
	}
	t.pool = newNodePool(t.cfg.PoolPrewarm, t.cfg.PoolChunk, t.cfg.PoolCapacity)
	t.pairs = newPairSet()
	return t
}

// SetDrawer installs or, with nil, removes the debug overlay.
func (t *Tree) SetDrawer(drawer Drawer) {
	t.drawer = drawer
}

func (t *Tree) Config() Config {
	return t.cfg
}

func (t *Tree) Count() int {
	return len(t.leaves)
}

func (t *Tree) Each(f func(Collider)) {
	for c := range t.leaves {
		f(c)
	}
}

func (t *Tree) Contains(c Collider) bool {
	_, ok := t.leaves[c]
	return ok
}

// AddCollider inserts c with its current fat bounds.
// Nothing is changed when an error is returned.
func (t *Tree) AddCollider(c Collider) error {
	if c == nil {
		return ErrNilCollider
	}
	if _, ok := t.leaves[c]; ok {
		return errors.Wrapf(ErrColliderExists, "%v", c)
	}

	// a leaf, plus the branch that pairs it with an existing node
	need := 1
	if t.root != nullNode {
		need = 2
	}
	if t.pool.available() < need {
		return errors.Wrapf(ErrPoolExhausted, "adding %v needs %d nodes, %d left", c, need, t.pool.available())
	}

	leaf := t.allocate()
	t.serial++
	t.pool.get(leaf).setLeaf(c, t.serial, c.FatAABB())
	t.leaves[c] = leaf
	t.insertLeaf(leaf)
	return nil
}

// RemoveCollider removes c and releases its leaf.
func (t *Tree) RemoveCollider(c Collider) error {
	leaf, ok := t.leaves[c]
	if !ok {
		return errors.Wrapf(ErrColliderNotFound, "%v", c)
	}
	t.removeLeaf(leaf, true)
	delete(t.leaves, c)
	delete(t.overlapping, c)
	return nil
}

// allocate takes a node from the pool. Callers check availability beforehand,
// so failure here means the accounting is broken.
func (t *Tree) allocate() nodeID {
	size := t.pool.size()
	id, err := t.pool.allocate()
	if err != nil {
		panic(err)
	}
	if grown := t.pool.size(); grown != size {
		t.logger.Debug("node pool grew", zap.Int("from", size), zap.Int("to", grown))
	}
	return id
}

// insertLeaf hangs leaf into the tree, descending toward the child whose
// surface area grows the least.
func (t *Tree) insertLeaf(leaf nodeID) {
	newAABB := t.pool.get(leaf).aabb

	if t.root == nullNode {
		t.root = leaf
		t.pool.get(leaf).parent = nullNode
		return
	}

	cur := t.root
	for {
		n := t.pool.get(cur)
		if !n.IsBranch() {
			break
		}
		l := t.pool.get(n.left).aabb
		r := t.pool.get(n.right).aabb

		leftIncrease := Encapsulate(l, newAABB).SurfaceArea() - l.SurfaceArea()
		rightIncrease := Encapsulate(r, newAABB).SurfaceArea() - r.SurfaceArea()

		// ties go left
		if leftIncrease > rightIncrease {
			cur = n.right
		} else {
			cur = n.left
		}
	}

	// allocate may grow the slab, so node pointers are taken afterwards
	branch := t.allocate()
	old := t.pool.get(cur)
	oldParent := old.parent

	b := t.pool.get(branch)
	b.setBranch(cur, leaf, Encapsulate(old.aabb, newAABB))
	b.parent = oldParent
	old.parent = branch
	t.pool.get(leaf).parent = branch

	if cur == t.root {
		t.root = branch
		return
	}

	t.swapOutChild(oldParent, cur, branch)
	t.refitFrom(oldParent)
}

// removeLeaf unhooks leaf and collapses its parent branch. The leaf slot is
// kept when deleteNode is false so the caller can reinsert it.
func (t *Tree) removeLeaf(leaf nodeID, deleteNode bool) {
	n := t.pool.get(leaf)
	if !n.IsLeaf() {
		panic(fmt.Sprintf("bvh: removeLeaf called on non-leaf node %d", leaf))
	}

	if leaf == t.root {
		t.root = nullNode
	} else {
		parent := n.parent
		p := t.pool.get(parent)
		if p.left != leaf && p.right != leaf {
			panic(fmt.Sprintf("bvh: node %d is not a child of its parent %d", leaf, parent))
		}
		sibling := p.Other(leaf)

		if parent == t.root {
			t.root = sibling
			t.pool.get(sibling).parent = nullNode
			t.pool.release(parent)
		} else {
			grandParent := p.parent
			t.swapOutChild(grandParent, parent, sibling)
			t.pool.release(parent)
			t.refitFrom(grandParent)
		}
	}

	if deleteNode {
		t.pool.release(leaf)
	} else {
		t.pool.get(leaf).parent = nullNode
	}
}

func (t *Tree) swapOutChild(parent, oldChild, newChild nodeID) {
	p := t.pool.get(parent)
	switch oldChild {
	case p.left:
		p.left = newChild
	case p.right:
		p.right = newChild
	default:
		panic(fmt.Sprintf("bvh: node %d is not a child of %d", oldChild, parent))
	}
	t.pool.get(newChild).parent = parent
}

// refitFrom recomputes branch boxes from id up to the root.
func (t *Tree) refitFrom(id nodeID) {
	for id != nullNode {
		n := t.pool.get(id)
		if !n.IsBranch() {
			panic(fmt.Sprintf("bvh: refit reached non-branch node %d", id))
		}
		n.aabb = Encapsulate(t.pool.get(n.left).aabb, t.pool.get(n.right).aabb)
		id = n.parent
	}
}

// Update reinserts every leaf whose collider's tight bounds escaped the fat
// bounds stored in the tree. It returns how many leaves were reinserted.
func (t *Tree) Update() int {
	t.reinsert = t.reinsert[:0]

	if t.root != nullNode {
		queue := append(t.queue[:0], walkItem{id: t.root})
		for i := 0; i < len(queue); i++ {
			id := queue[i].id
			n := t.pool.get(id)
			if n.IsBranch() {
				queue = append(queue, walkItem{id: n.left}, walkItem{id: n.right})
				continue
			}
			if !n.aabb.Contains(n.collider.AABB()) {
				t.reinsert = append(t.reinsert, id)
			}
		}
		t.queue = queue[:0]
	}

	// all removals first so a reinserted leaf is not looked at again this pass
	for _, id := range t.reinsert {
		t.removeLeaf(id, false)
	}
	for _, id := range t.reinsert {
		n := t.pool.get(id)
		n.aabb = n.collider.FatAABB()
		t.insertLeaf(id)
	}

	if len(t.reinsert) > 0 {
		t.logger.Debug("reinserted leaves", zap.Int("count", len(t.reinsert)), zap.Int("leaves", len(t.leaves)))
	}

	if t.cfg.DebugDraw {
		t.DebugDraw()
	}
	return len(t.reinsert)
}

// CollisionPairs returns every pair of colliders whose fat bounds overlap and
// of which at least one is not static. The returned set is reused by the next call.
func (t *Tree) CollisionPairs() *PairSet {
	t.pairs.reset()
	clear(t.overlapping)

	if t.root == nullNode {
		return t.pairs
	}

	for c, leaf := range t.leaves {
		if c.IsStatic() {
			continue
		}
		serial := t.pool.get(leaf).serial
		aabb := c.FatAABB()

		queue := append(t.queue[:0], walkItem{id: t.root})
		for i := 0; i < len(queue); i++ {
			n := t.pool.get(queue[i].id)

			if n.IsLeaf() {
				if n.collider != c {
					t.addPair(c, serial, n.collider, n.serial)
				}
				continue
			}
			if t.pool.get(n.left).aabb.Intersects(aabb) {
				queue = append(queue, walkItem{id: n.left})
			}
			if t.pool.get(n.right).aabb.Intersects(aabb) {
				queue = append(queue, walkItem{id: n.right})
			}
		}
		t.queue = queue[:0]
	}

	return t.pairs
}

func (t *Tree) addPair(a Collider, sa uint64, b Collider, sb uint64) {
	if !t.pairs.insert(a, sa, b, sb) {
		return
	}
	t.overlapping[a] = struct{}{}
	t.overlapping[b] = struct{}{}
	if t.drawer != nil && t.cfg.DebugDraw {
		t.drawer.DrawLine(a.WorldCenter(), b.WorldCenter(), ColorBlue)
	}
}

// Raycast returns the nearest hit among colliders whose boxes the ray reaches
// within maxDistance. A ray without a usable direction or a NaN maxDistance hits nothing.
func (t *Tree) Raycast(ray Ray, maxDistance float64) (RaycastHit, bool) {
	if !ray.Valid() || math.IsNaN(maxDistance) {
		return NoHit(), false
	}
	best := NoHit()
	if !t.raycast(t.root, ray, maxDistance, &best) {
		return NoHit(), false
	}
	return best, true
}

func (t *Tree) raycast(id nodeID, ray Ray, maxDistance float64, best *RaycastHit) bool {
	if id == nullNode {
		return false
	}
	n := t.pool.get(id)
	if _, ok := n.aabb.Raycast(ray, maxDistance); !ok {
		return false
	}

	if n.IsLeaf() {
		hit, ok := n.collider.Raycast(ray, maxDistance)
		if !ok || !(hit.Distance < best.Distance) {
			return false
		}
		if hit.Collider == nil {
			hit.Collider = n.collider
		}
		*best = hit
		return true
	}

	left, right := n.left, n.right
	hitLeft := t.raycast(left, ray, maxDistance, best)
	hitRight := t.raycast(right, ray, maxDistance, best)
	return hitLeft || hitRight
}

// Query calls f for every collider whose fat box intersects bb until f returns false.
func (t *Tree) Query(bb AABB, f func(Collider) bool) {
	if t.root != nullNode {
		t.subtreeQuery(t.root, bb, f)
	}
}

func (t *Tree) subtreeQuery(id nodeID, bb AABB, f func(Collider) bool) bool {
	n := t.pool.get(id)
	if !n.aabb.Intersects(bb) {
		return true
	}
	if n.IsLeaf() {
		return f(n.collider)
	}
	left, right := n.left, n.right
	return t.subtreeQuery(left, bb, f) && t.subtreeQuery(right, bb, f)
}

// Walk visits the nodes breadth-first until f returns false.
func (t *Tree) Walk(f func(NodeInfo) bool) {
	if t.root == nullNode {
		return
	}
	queue := []walkItem{{id: t.root}}
	for len(queue) > 0 {
		item := queue[0]
		queue = queue[1:]

		n := t.pool.get(item.id)
		info := NodeInfo{
			Depth: item.depth,
			AABB:  n.aabb,
			Leaf:  n.IsLeaf(),
		}
		if n.IsLeaf() {
			info.Collider = n.collider
			_, info.Overlapping = t.overlapping[n.collider]
		} else {
			queue = append(queue, walkItem{n.left, item.depth + 1}, walkItem{n.right, item.depth + 1})
		}
		if !f(info) {
			return
		}
	}
}

// DebugDraw renders the tree with the installed drawer, if any.
func (t *Tree) DebugDraw() {
	if t.drawer != nil {
		DrawTree(t, t.drawer)
	}
}

// Height is the number of nodes on the longest root-to-leaf path.
func (t *Tree) Height() int {
	return t.height(t.root)
}

func (t *Tree) height(id nodeID) int {
	if id == nullNode {
		return 0
	}
	n := t.pool.get(id)
	if n.IsLeaf() {
		return 1
	}
	return 1 + max(t.height(n.left), t.height(n.right))
}

// Root returns the bounds of the whole tree. ok is false for an empty tree.
func (t *Tree) Root() (bb AABB, ok bool) {
	if t.root == nullNode {
		return AABB{}, false
	}
	return t.pool.get(t.root).aabb, true
}

func (t *Tree) Stats() Stats {
	leaves := len(t.leaves)
	branches := 0
	if leaves > 1 {
		branches = leaves - 1
	}
	return Stats{
		Leaves:       leaves,
		Branches:     branches,
		Height:       t.Height(),
		Pairs:        t.pairs.Len(),
		PoolInUse:    t.pool.inUse,
		PoolCapacity: t.pool.size(),
	}
}

// Clear releases every node and forgets every collider.
func (t *Tree) Clear() {
	if t.root != nullNode {
		queue := []nodeID{t.root}
		for len(queue) > 0 {
			id := queue[0]
			queue = queue[1:]
			n := t.pool.get(id)
			if n.IsBranch() {
				queue = append(queue, n.left, n.right)
			}
			t.pool.release(id)
		}
	}
	t.root = nullNode
	clear(t.leaves)
	clear(t.overlapping)
	t.pairs.reset()
}
