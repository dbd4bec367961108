package bvh

import (
	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

// Validate checks the tree's structural invariants and returns every
// violation it finds. A nil result means:
//   - every branch box is exactly the union of its children's boxes,
//   - a node is a leaf iff it has a collider iff it has no children,
//   - child and parent links agree,
//   - every indexed collider maps to a reachable leaf holding that collider,
//   - every node taken from the pool is reachable from the root.
func (t *Tree) Validate() error {
	var err error
	reachable := 0
	leaves := 0

	if t.root != nullNode && t.pool.get(t.root).parent != nullNode {
		err = multierr.Append(err, errors.Errorf("root %d has parent %d", t.root, t.pool.get(t.root).parent))
	}

	seen := make(map[nodeID]bool)
	var visit func(id, parent nodeID)
	visit = func(id, parent nodeID) {
		if seen[id] {
			err = multierr.Append(err, errors.Errorf("node %d reached twice", id))
			return
		}
		seen[id] = true
		reachable++

		n := t.pool.get(id)
		if n.parent != parent {
			err = multierr.Append(err, errors.Errorf("node %d: parent %d, want %d", id, n.parent, parent))
		}

		switch n.kind {
		case kindLeaf:
			leaves++
			if n.collider == nil {
				err = multierr.Append(err, errors.Errorf("leaf %d has no collider", id))
			}
			if n.left != nullNode || n.right != nullNode {
				err = multierr.Append(err, errors.Errorf("leaf %d has children", id))
			}
			if n.collider != nil && t.leaves[n.collider] != id {
				err = multierr.Append(err, errors.Errorf("leaf %d is not indexed for %v", id, n.collider))
			}
		case kindBranch:
			if n.collider != nil {
				err = multierr.Append(err, errors.Errorf("branch %d has a collider", id))
			}
			if n.left == nullNode || n.right == nullNode {
				err = multierr.Append(err, errors.Errorf("branch %d has a missing child", id))
				return
			}
			visit(n.left, id)
			visit(n.right, id)
			want := Encapsulate(t.pool.get(n.left).aabb, t.pool.get(n.right).aabb)
			if n.aabb != want {
				err = multierr.Append(err, errors.Errorf("branch %d box %v, want %v", id, n.aabb, want))
			}
		default:
			err = multierr.Append(err, errors.Errorf("node %d is free but linked into the tree", id))
		}
	}
	if t.root != nullNode {
		visit(t.root, nullNode)
	}

	for c, id := range t.leaves {
		if !seen[id] {
			err = multierr.Append(err, errors.Errorf("collider %v maps to unreachable node %d", c, id))
			continue
		}
		if n := t.pool.get(id); !n.IsLeaf() || n.collider != c {
			err = multierr.Append(err, errors.Errorf("collider %v maps to node %d which does not hold it", c, id))
		}
	}
	if leaves != len(t.leaves) {
		err = multierr.Append(err, errors.Errorf("%d reachable leaves, %d indexed colliders", leaves, len(t.leaves)))
	}
	if reachable != t.pool.inUse {
		err = multierr.Append(err, errors.Errorf("%d reachable nodes, %d taken from the pool", reachable, t.pool.inUse))
	}
	return err
}
