package bvh

import (
	"fmt"

	"github.com/pkg/errors"
)

// nodePool is a slab of nodes addressed by index. Released slots are threaded
// into a free list through node.next and handed out again before the slab grows.
type nodePool struct {
	nodes    []node
	free     nodeID
	inUse    int
	chunk    int
	capacity int // 0 means unbounded
}

func newNodePool(prewarm, chunk, capacity int) *nodePool {
	if chunk <= 0 {
		chunk = pooledBufferSize
	}
	p := &nodePool{
		free:     nullNode,
		chunk:    chunk,
		capacity: capacity,
	}
	if capacity > 0 && prewarm > capacity {
		prewarm = capacity
	}
	p.grow(prewarm)
	return p
}

// grow appends n free slots and pushes them on the free list so that the
// lowest new index is handed out first.
func (p *nodePool) grow(n int) int {
	if p.capacity > 0 && len(p.nodes)+n > p.capacity {
		n = p.capacity - len(p.nodes)
	}
	if n <= 0 {
		return 0
	}
	start := len(p.nodes)
	p.nodes = append(p.nodes, make([]node, n)...)
	for i := len(p.nodes) - 1; i >= start; i-- {
		p.nodes[i] = node{kind: kindFree, parent: nullNode, left: nullNode, right: nullNode, next: p.free}
		p.free = nodeID(i)
	}
	return n
}

// allocate hands out a free slot. The slot's contents are undefined until the
// caller sets it up with setLeaf or setBranch.
func (p *nodePool) allocate() (nodeID, error) {
	if p.free == nullNode && p.grow(p.chunk) == 0 {
		return nullNode, errors.Wrapf(ErrPoolExhausted, "capacity %d", p.capacity)
	}
	id := p.free
	p.free = p.nodes[id].next
	p.nodes[id].next = nullNode
	p.inUse++
	return id, nil
}

// available reports how many nodes can still be allocated.
func (p *nodePool) available() int {
	if p.capacity == 0 {
		return int(^uint(0) >> 1)
	}
	return p.capacity - p.inUse
}

func (p *nodePool) release(id nodeID) {
	n := &p.nodes[id]
	if n.kind == kindFree {
		panic(fmt.Sprintf("bvh: node %d released twice", id))
	}
	*n = node{kind: kindFree, parent: nullNode, left: nullNode, right: nullNode, next: p.free}
	p.free = id
	p.inUse--
}

func (p *nodePool) get(id nodeID) *node {
	return &p.nodes[id]
}

func (p *nodePool) size() int {
	return len(p.nodes)
}
