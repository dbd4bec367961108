// Package overlay captures the tree's debug drawing as frames and streams them to viewers.
package overlay

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/setanarut/bvh"
)

// Box is a drawn wire cube, recovered as world bounds.
type Box struct {
	Min   mgl64.Vec3 `json:"min"`
	Max   mgl64.Vec3 `json:"max"`
	Color bvh.FColor `json:"color"`
}

// Line is a drawn segment.
type Line struct {
	A     mgl64.Vec3 `json:"a"`
	B     mgl64.Vec3 `json:"b"`
	Color bvh.FColor `json:"color"`
}

// Frame is everything drawn during one tick.
type Frame struct {
	Tick  int    `json:"tick"`
	Pairs int    `json:"pairs"`
	Boxes []Box  `json:"boxes"`
	Lines []Line `json:"lines"`
}

// Recorder is a bvh.Drawer that collects draw calls into a Frame.
type Recorder struct {
	frame Frame
}

var _ bvh.Drawer = (*Recorder)(nil)

func NewRecorder() *Recorder {
	return &Recorder{}
}

// Begin drops everything recorded so far and starts the frame for tick.
func (r *Recorder) Begin(tick int) {
	r.frame = Frame{
		Tick:  tick,
		Boxes: r.frame.Boxes[:0],
		Lines: r.frame.Lines[:0],
	}
}

func (r *Recorder) DrawWireCube(transform mgl64.Mat4, color bvh.FColor) {
	center := transform.Col(3).Vec3()
	half := mgl64.Vec3{transform.At(0, 0) / 2, transform.At(1, 1) / 2, transform.At(2, 2) / 2}
	r.frame.Boxes = append(r.frame.Boxes, Box{
		Min:   center.Sub(half),
		Max:   center.Add(half),
		Color: color,
	})
}

func (r *Recorder) DrawLine(a, b mgl64.Vec3, color bvh.FColor) {
	r.frame.Lines = append(r.frame.Lines, Line{A: a, B: b, Color: color})
}

// Frame returns a copy of the current frame that stays valid after the next Begin.
func (r *Recorder) Frame() Frame {
	f := r.frame
	f.Boxes = append([]Box(nil), r.frame.Boxes...)
	f.Lines = append([]Line(nil), r.frame.Lines...)
	return f
}
