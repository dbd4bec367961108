package bvh

import "sort"

// Pair is an unordered pair of colliders whose fat bounds overlap.
// A is always the collider that was added to the tree first.
type Pair struct {
	A, B Collider

	lo, hi uint64
}

type pairKey struct {
	lo, hi uint64
}

// PairSet is the result of Tree.CollisionPairs. The tree reuses it, so its
// contents are only valid until the next CollisionPairs call.
type PairSet struct {
	pairs map[pairKey]Pair
	// serials of the paired colliders as they were when paired
	serials map[Collider]uint64
}

func newPairSet() *PairSet {
	return &PairSet{
		pairs:   make(map[pairKey]Pair),
		serials: make(map[Collider]uint64),
	}
}

func (s *PairSet) reset() {
	clear(s.pairs)
	clear(s.serials)
}

// insert adds the pair and reports whether it was new.
func (s *PairSet) insert(a Collider, sa uint64, b Collider, sb uint64) bool {
	if sa > sb {
		a, b = b, a
		sa, sb = sb, sa
	}
	key := pairKey{sa, sb}
	if _, ok := s.pairs[key]; ok {
		return false
	}
	s.pairs[key] = Pair{A: a, B: b, lo: sa, hi: sb}
	s.serials[a] = sa
	s.serials[b] = sb
	return true
}

// Len returns the number of pairs.
func (s *PairSet) Len() int {
	return len(s.pairs)
}

// Contains reports whether a and b were paired, in either order. It agrees
// with Each and Pairs even after one of them left the tree.
func (s *PairSet) Contains(a, b Collider) bool {
	sa, ok := s.serials[a]
	if !ok {
		return false
	}
	sb, ok := s.serials[b]
	if !ok {
		return false
	}
	if sa > sb {
		sa, sb = sb, sa
	}
	_, ok = s.pairs[pairKey{sa, sb}]
	return ok
}

// Each calls f for every pair in unspecified order.
func (s *PairSet) Each(f func(Pair)) {
	for _, p := range s.pairs {
		f(p)
	}
}

// Pairs returns the pairs ordered by insertion order of their colliders.
func (s *PairSet) Pairs() []Pair {
	out := make([]Pair, 0, len(s.pairs))
	for _, p := range s.pairs {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].lo != out[j].lo {
			return out[i].lo < out[j].lo
		}
		return out[i].hi < out[j].hi
	})
	return out
}
