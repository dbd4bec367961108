package sim

import (
	"context"
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
	"github.com/setanarut/bvh"
	"go.uber.org/zap"
)

// Body is a shape moving at a constant velocity.
type Body struct {
	Shape    *bvh.Shape
	Velocity mgl64.Vec3
}

// TickResult summarizes one Step.
type TickResult struct {
	Tick       int
	Reinserted int
	Pairs      int
	Stats      bvh.Stats
}

// World owns the bodies and the tree indexing them. It is not safe for concurrent use.
type World struct {
	scene  Scene
	tree   *bvh.Tree
	bodies []*Body
	tick   int
	logger *zap.Logger
}

// NewWorld builds the scene's bodies and adds them to a fresh tree.
// opts are applied after the scene's tree config.
func NewWorld(scene Scene, logger *zap.Logger, opts ...bvh.Option) (*World, error) {
	if err := scene.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	w := &World{
		scene:  scene,
		logger: logger.Named("sim"),
	}
	w.tree = bvh.NewTree(append([]bvh.Option{bvh.WithConfig(scene.Tree), bvh.WithLogger(logger)}, opts...)...)

	rng := rand.New(rand.NewSource(scene.Seed))
	for _, def := range scene.Bodies {
		n := def.Count
		if n == 0 {
			n = 1
		}
		for i := 0; i < n; i++ {
			body := w.newBody(def, rng)
			if err := w.AddBody(body); err != nil {
				return nil, err
			}
		}
	}

	w.logger.Info("world ready",
		zap.String("scene", scene.Name),
		zap.Int("bodies", len(w.bodies)),
		zap.Int64("seed", scene.Seed))
	return w, nil
}

func (w *World) newBody(def BodySpec, rng *rand.Rand) *Body {
	pos := def.Position
	vel := def.Velocity
	if def.Count > 0 {
		bb := w.scene.Bounds.AABB()
		size := bb.Size()
		for i := range pos {
			pos[i] = bb.Min[i] + rng.Float64()*size[i]
		}
		dir := mgl64.Vec3{rng.NormFloat64(), rng.NormFloat64(), rng.NormFloat64()}
		if dir.Len() > 0 {
			vel = dir.Normalize().Mul(def.Speed)
		}
	}

	var shape *bvh.Shape
	switch def.Kind {
	case KindSphere:
		shape = bvh.NewSphereShape(pos, def.Size[0])
	default:
		shape = bvh.NewBoxShape(pos, def.Size[0], def.Size[1], def.Size[2])
	}
	shape.Margin = w.scene.Tree.FatMargin
	shape.Static = def.Static
	if def.Static {
		vel = mgl64.Vec3{}
	}
	return &Body{Shape: shape, Velocity: vel}
}

func (w *World) Scene() Scene { return w.scene }
func (w *World) Tree() *bvh.Tree { return w.tree }
func (w *World) Bodies() []*Body { return w.bodies }
func (w *World) Tick() int { return w.tick }

// AddBody adds a body and its shape to the tree.
func (w *World) AddBody(body *Body) error {
	if err := w.tree.AddCollider(body.Shape); err != nil {
		return errors.Wrap(err, "sim: add body")
	}
	w.bodies = append(w.bodies, body)
	return nil
}

// RemoveBody removes body from the world and the tree.
func (w *World) RemoveBody(body *Body) error {
	if err := w.tree.RemoveCollider(body.Shape); err != nil {
		return errors.Wrap(err, "sim: remove body")
	}
	for i, b := range w.bodies {
		if b == body {
			w.bodies = append(w.bodies[:i], w.bodies[i+1:]...)
			break
		}
	}
	return nil
}

// Step moves every moving body by its velocity, bounces it off the bounds,
// then refits the tree and collects the tick's pairs.
func (w *World) Step(dt float64) TickResult {
	bounds := w.scene.Bounds.AABB()
	for _, b := range w.bodies {
		if b.Shape.IsStatic() {
			continue
		}
		b.Shape.Translate(b.Velocity.Mul(dt))

		bb := b.Shape.AABB()
		for axis := 0; axis < 3; axis++ {
			if (bb.Min[axis] < bounds.Min[axis] && b.Velocity[axis] < 0) ||
				(bb.Max[axis] > bounds.Max[axis] && b.Velocity[axis] > 0) {
				b.Velocity[axis] = -b.Velocity[axis]
			}
		}
	}

	reinserted := w.tree.Update()
	pairs := w.tree.CollisionPairs()
	w.tick++

	return TickResult{
		Tick:       w.tick,
		Reinserted: reinserted,
		Pairs:      pairs.Len(),
		Stats:      w.tree.Stats(),
	}
}

// Run steps the world ticks times with the scene's dt, calling f after each
// step. It stops early when ctx is done or f returns an error.
func (w *World) Run(ctx context.Context, ticks int, f func(TickResult) error) error {
	for i := 0; i < ticks; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		res := w.Step(w.scene.DT)
		if f != nil {
			if err := f(res); err != nil {
				return err
			}
		}
	}
	return nil
}

// Raycast casts ray into the world.
func (w *World) Raycast(ray bvh.Ray, maxDistance float64) (bvh.RaycastHit, bool) {
	return w.tree.Raycast(ray, maxDistance)
}

// BodyOf returns the body owning collider c.
func (w *World) BodyOf(c bvh.Collider) (*Body, bool) {
	for _, b := range w.bodies {
		if b.Shape == c {
			return b, true
		}
	}
	return nil, false
}
