package bvh

import (
	"fmt"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

// threeBoxes builds root(a, inner(b, c)): c lands next to b, its nearest neighbour.
func threeBoxes(t *testing.T) (tree *Tree, a, b, c, inner nodeID) {
	t.Helper()
	tree = NewTree()
	shapes := []*Shape{
		NewBoxShape(mgl64.Vec3{0, 0, 0}, 1, 1, 1),
		NewBoxShape(mgl64.Vec3{3, 0, 0}, 1, 1, 1),
		NewBoxShape(mgl64.Vec3{20, 0, 0}, 1, 1, 1),
	}
	for _, s := range shapes {
		require.NoError(t, tree.AddCollider(s))
	}
	a, b, c = tree.leaves[shapes[0]], tree.leaves[shapes[1]], tree.leaves[shapes[2]]
	inner = tree.pool.get(c).parent

	require.Equal(t, tree.root, tree.pool.get(a).parent)
	require.Equal(t, inner, tree.pool.get(b).parent)
	require.NotEqual(t, tree.root, inner)
	return tree, a, b, c, inner
}

func TestRemoveLeafPanicsOnBranch(t *testing.T) {
	tree, _, _, _, inner := threeBoxes(t)

	assert.PanicsWithValue(t, fmt.Sprintf("bvh: removeLeaf called on non-leaf node %d", inner), func() {
		tree.removeLeaf(inner, true)
	})
	assert.Panics(t, func() { tree.removeLeaf(tree.root, false) })
}

func TestRemoveLeafPanicsOnForeignParent(t *testing.T) {
	tree, a, _, _, inner := threeBoxes(t)

	// a claims a parent that does not hold it
	tree.pool.get(a).parent = inner
	assert.PanicsWithValue(t, fmt.Sprintf("bvh: node %d is not a child of its parent %d", a, inner), func() {
		tree.removeLeaf(a, true)
	})
}

func TestSwapOutChildPanicsOnStranger(t *testing.T) {
	tree, _, b, c, inner := threeBoxes(t)
	root := tree.root

	assert.PanicsWithValue(t, fmt.Sprintf("bvh: node %d is not a child of %d", b, root), func() {
		tree.swapOutChild(root, b, c)
	})

	assert.NotPanics(t, func() { tree.swapOutChild(inner, b, b) })
	assert.NoError(t, tree.Validate())
}

func TestValidateReportsEveryViolation(t *testing.T) {
	tree, a, _, _, inner := threeBoxes(t)
	require.NoError(t, tree.Validate())

	tree.pool.get(tree.root).aabb = AABB{}
	tree.pool.get(a).parent = inner

	err := tree.Validate()
	require.Error(t, err)
	errs := multierr.Errors(err)
	assert.Len(t, errs, 2)
	assert.Contains(t, err.Error(), fmt.Sprintf("node %d: parent %d, want %d", a, inner, tree.root))
	assert.Contains(t, err.Error(), fmt.Sprintf("branch %d box", tree.root))
}
