package bvh_test

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/setanarut/bvh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cube struct {
	transform mgl64.Mat4
	color     bvh.FColor
}

type line struct {
	a, b  mgl64.Vec3
	color bvh.FColor
}

type recordingDrawer struct {
	cubes []cube
	lines []line
}

func (d *recordingDrawer) DrawWireCube(transform mgl64.Mat4, color bvh.FColor) {
	d.cubes = append(d.cubes, cube{transform, color})
}

func (d *recordingDrawer) DrawLine(a, b mgl64.Vec3, color bvh.FColor) {
	d.lines = append(d.lines, line{a, b, color})
}

func TestBoxTransformMapsUnitCube(t *testing.T) {
	bb := bvh.NewAABB(mgl64.Vec3{1, 2, 3}, mgl64.Vec3{3, 6, 11})
	m := bvh.BoxTransform(bb)

	corner := m.Mul4x1(mgl64.Vec4{0.5, 0.5, 0.5, 1})
	assert.True(t, corner.Vec3().ApproxEqual(bb.Max))
	corner = m.Mul4x1(mgl64.Vec4{-0.5, -0.5, -0.5, 1})
	assert.True(t, corner.Vec3().ApproxEqual(bb.Min))
}

func TestNodeColor(t *testing.T) {
	assert.Equal(t, bvh.ColorRed, bvh.NodeColor(bvh.NodeInfo{Leaf: true, Overlapping: true}))
	assert.Equal(t, bvh.ColorGreen, bvh.NodeColor(bvh.NodeInfo{Leaf: true}))
	assert.Equal(t, bvh.ColorWhite, bvh.NodeColor(bvh.NodeInfo{Depth: 0}))
	assert.Equal(t, bvh.ColorBlack, bvh.NodeColor(bvh.NodeInfo{Depth: 25}))

	mid := bvh.NodeColor(bvh.NodeInfo{Depth: 5})
	assert.InDelta(t, 0.5, mid.R, 1e-6)
	assert.Equal(t, float32(1), mid.A)
}

func TestCollisionPairsDrawsLines(t *testing.T) {
	d := &recordingDrawer{}
	tree := bvh.NewTree(bvh.WithDrawer(d))

	a := span("a", 0, 2)
	b := span("b", 1, 3)
	c := span("c", 10, 11)
	for _, col := range []*stubCollider{a, b, c} {
		require.NoError(t, tree.AddCollider(col))
	}

	pairs := tree.CollisionPairs()
	assert.Equal(t, 1, pairs.Len())
	require.Len(t, d.lines, 1)
	assert.Equal(t, bvh.ColorBlue, d.lines[0].color)
	assert.ElementsMatch(t, []mgl64.Vec3{a.WorldCenter(), b.WorldCenter()}, []mgl64.Vec3{d.lines[0].a, d.lines[0].b})

	tree.DebugDraw()
	require.Len(t, d.cubes, 5)
	assert.Equal(t, bvh.ColorWhite, d.cubes[0].color)

	colors := map[bvh.FColor]int{}
	for _, c := range d.cubes {
		colors[c.color]++
	}
	assert.Equal(t, 2, colors[bvh.ColorRed])
	assert.Equal(t, 1, colors[bvh.ColorGreen])
}

func TestUpdateDrawsOnlyWhenEnabled(t *testing.T) {
	d := &recordingDrawer{}
	tree := bvh.NewTree(bvh.WithDrawer(d))
	require.NoError(t, tree.AddCollider(span("a", 0, 1)))
	require.NoError(t, tree.AddCollider(span("b", 5, 6)))

	tree.Update()
	assert.Len(t, d.cubes, 3)

	cfg := bvh.DefaultConfig()
	cfg.DebugDraw = false
	quiet := &recordingDrawer{}
	tree = bvh.NewTree(bvh.WithConfig(cfg), bvh.WithDrawer(quiet))
	require.NoError(t, tree.AddCollider(span("a", 0, 1)))
	require.NoError(t, tree.AddCollider(span("b", 0.5, 6)))
	tree.Update()
	tree.CollisionPairs()
	assert.Empty(t, quiet.cubes)
	assert.Empty(t, quiet.lines)

	// DebugDraw still works on demand
	tree.DebugDraw()
	assert.Len(t, quiet.cubes, 3)
}

func TestDebugDrawWithoutDrawer(t *testing.T) {
	tree := bvh.NewTree()
	require.NoError(t, tree.AddCollider(span("a", 0, 1)))
	assert.NotPanics(t, func() {
		tree.Update()
		tree.DebugDraw()
	})
}
