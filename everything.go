package bvh

import (
	"fmt"
	"math"
)

const (
	pooledBufferSize int     = 256
	infinity         float64 = math.MaxFloat64
	magicEpsilon     float64 = 1e-12
	// DefaultFatMargin is the margin added around a shape's tight bounds.
	DefaultFatMargin float64 = 0.1
	// depthShades is the depth at which branch boxes reach black in DebugDraw.
	depthShades = 10
)

// Stats is a snapshot of the tree's size and pool usage.
type Stats struct {
	Leaves       int
	Branches     int
	Height       int
	Pairs        int
	PoolInUse    int
	PoolCapacity int
}

// Nodes returns the number of live tree nodes.
func (s Stats) Nodes() int {
	return s.Leaves + s.Branches
}

// DebugInfo returns info of tree
func DebugInfo(tree *Tree) string {
	s := tree.Stats()
	balance := 0.0
	if s.Leaves > 1 {
		balance = float64(s.Height) / math.Log2(float64(s.Leaves))
	}
	return fmt.Sprintf(`Leaves: %d - Branches: %d - Height: %d (%.2fx log2)
Pairs: %d - Pool: %d/%d`,
		s.Leaves, s.Branches, s.Height, balance,
		s.Pairs, s.PoolInUse, s.PoolCapacity)
}
