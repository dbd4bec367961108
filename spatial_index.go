package bvh

// SpatialIndexer is the broad phase contract a simulation loop needs.
// It is implemented by Tree.
type SpatialIndexer interface {
	// Count returns the number of colliders currently stored in the index.
	Count() int

	// Each iterates over all colliders in the index, applying the
	// provided function `f` to each one.
	Each(f func(Collider))

	// Contains checks if the collider is stored in the index.
	Contains(c Collider) bool

	// AddCollider adds a new collider to the index.
	AddCollider(c Collider) error

	// RemoveCollider deletes the collider from the index.
	RemoveCollider(c Collider) error

	// Update refits the index after colliders moved and reports how many
	// of them had to be reinserted.
	Update() int

	// CollisionPairs enumerates the pairs of colliders whose fat bounds
	// overlap, skipping pairs where both are static.
	CollisionPairs() *PairSet

	// Raycast returns the nearest collider hit by the ray within maxDistance.
	Raycast(ray Ray, maxDistance float64) (RaycastHit, bool)

	// Query calls `f` for every collider whose bounds intersect `bb`
	// until `f` returns false.
	Query(bb AABB, f func(Collider) bool)
}
