package bvh

import "github.com/go-gl/mathgl/mgl64"

// Collider is what the tree indexes. The interface value is the collider's
// identity, so implementations must be comparable (pointer types in practice).
type Collider interface {
	// AABB returns the tight world-space bounds.
	AABB() AABB
	// FatAABB returns the tight bounds expanded by the collider's margin.
	FatAABB() AABB
	// WorldCenter returns the world-space center of the collider.
	WorldCenter() mgl64.Vec3
	// Raycast runs the exact ray test against the collider's geometry.
	Raycast(ray Ray, maxDistance float64) (RaycastHit, bool)
	// IsStatic reports whether the collider never moves.
	IsStatic() bool
}
