package bvh

import "github.com/pkg/errors"

// Caller errors. None of them is transient; a caller that receives one has a bug.
var (
	ErrNilCollider      = errors.New("bvh: nil collider")
	ErrColliderExists   = errors.New("bvh: collider already in tree")
	ErrColliderNotFound = errors.New("bvh: collider not in tree")
	ErrPoolExhausted    = errors.New("bvh: node pool exhausted")
)
