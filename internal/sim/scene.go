// Package sim moves bodies around a bounded box and drives a bvh.Tree once per tick.
package sim

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
	"github.com/setanarut/bvh"
	"gopkg.in/yaml.v3"
)

const (
	KindSphere = "sphere"
	KindBox    = "box"
)

// Scene describes a simulation: the tree settings, the world bounds and the bodies.
type Scene struct {
	Name   string     `yaml:"name"`
	Seed   int64      `yaml:"seed"`
	Ticks  int        `yaml:"ticks"`
	DT     float64    `yaml:"dt"`
	Bounds Bounds     `yaml:"bounds"`
	Tree   bvh.Config `yaml:"tree"`
	Bodies []BodySpec `yaml:"bodies"`
}

// Bounds is the box bodies bounce around in.
type Bounds struct {
	Min mgl64.Vec3 `yaml:"min"`
	Max mgl64.Vec3 `yaml:"max"`
}

func (b Bounds) AABB() bvh.AABB {
	return bvh.NewAABB(b.Min, b.Max)
}

// BodySpec is one body, or Count bodies when Count > 0.
//
// Size is the box's full extents, or the sphere's radius in Size[0].
// Spawned bodies get a random position inside the bounds and a random
// direction at Speed; Position and Velocity are ignored for them.
type BodySpec struct {
	Kind     string     `yaml:"kind"`
	Position mgl64.Vec3 `yaml:"position"`
	Velocity mgl64.Vec3 `yaml:"velocity"`
	Size     mgl64.Vec3 `yaml:"size"`
	Static   bool       `yaml:"static"`
	Count    int        `yaml:"count"`
	Speed    float64    `yaml:"speed"`
}

// DefaultScene is an empty 100 unit cube stepped at 60Hz for ten seconds.
func DefaultScene() Scene {
	return Scene{
		Name:  "default",
		Seed:  1,
		Ticks: 600,
		DT:    1.0 / 60,
		Bounds: Bounds{
			Min: mgl64.Vec3{-50, -50, -50},
			Max: mgl64.Vec3{50, 50, 50},
		},
		Tree: bvh.DefaultConfig(),
	}
}

func (s Scene) Validate() error {
	if !s.Bounds.AABB().Valid() {
		return errors.Errorf("sim: bounds min %v exceeds max %v", s.Bounds.Min, s.Bounds.Max)
	}
	if s.DT <= 0 {
		return errors.Errorf("sim: dt must be positive, got %v", s.DT)
	}
	if s.Ticks < 0 {
		return errors.Errorf("sim: ticks must not be negative, got %d", s.Ticks)
	}
	if err := s.Tree.Validate(); err != nil {
		return errors.Wrap(err, "sim: tree")
	}
	for i, b := range s.Bodies {
		if err := b.validate(); err != nil {
			return errors.Wrapf(err, "sim: body %d", i)
		}
	}
	return nil
}

func (b BodySpec) validate() error {
	switch b.Kind {
	case KindSphere:
		if b.Size[0] <= 0 {
			return errors.Errorf("sphere radius must be positive, got %v", b.Size[0])
		}
	case KindBox:
		if b.Size[0] <= 0 || b.Size[1] <= 0 || b.Size[2] <= 0 {
			return errors.Errorf("box size must be positive, got %v", b.Size)
		}
	default:
		return errors.Errorf("unknown kind %q", b.Kind)
	}
	if b.Count < 0 {
		return errors.Errorf("count must not be negative, got %d", b.Count)
	}
	return nil
}

// ParseScene decodes YAML on top of DefaultScene.
func ParseScene(data []byte) (Scene, error) {
	scene := DefaultScene()
	if err := yaml.Unmarshal(data, &scene); err != nil {
		return scene, errors.Wrap(err, "sim: parse scene")
	}
	return scene, scene.Validate()
}

// LoadScene reads a scene file. A scene without a name is named after the file.
func LoadScene(path string) (Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Scene{}, errors.Wrapf(err, "sim: read scene %s", path)
	}
	scene, err := ParseScene(data)
	if err != nil {
		return scene, errors.Wrapf(err, "sim: load %s", path)
	}
	if scene.Name == DefaultScene().Name {
		base := filepath.Base(path)
		scene.Name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return scene, nil
}
