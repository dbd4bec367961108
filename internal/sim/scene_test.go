package sim

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/setanarut/bvh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sceneYAML = `
seed: 42
ticks: 120
dt: 0.05
bounds:
  min: [-20, -20, -20]
  max: [20, 20, 20]
tree:
  fat_margin: 0.5
  pool_capacity: 1024
bodies:
  - kind: box
    position: [0, -19, 0]
    size: [40, 1, 40]
    static: true
  - kind: sphere
    size: [1, 0, 0]
    count: 30
    speed: 4
`

func TestParseScene(t *testing.T) {
	scene, err := ParseScene([]byte(sceneYAML))
	require.NoError(t, err)

	assert.Equal(t, int64(42), scene.Seed)
	assert.Equal(t, 120, scene.Ticks)
	assert.Equal(t, 0.05, scene.DT)
	assert.Equal(t, mgl64.Vec3{-20, -20, -20}, scene.Bounds.Min)
	assert.Equal(t, 0.5, scene.Tree.FatMargin)
	assert.Equal(t, 1024, scene.Tree.PoolCapacity)
	// unset tree fields keep their defaults
	assert.Equal(t, bvh.DefaultConfig().PoolChunk, scene.Tree.PoolChunk)

	require.Len(t, scene.Bodies, 2)
	assert.True(t, scene.Bodies[0].Static)
	assert.Equal(t, KindSphere, scene.Bodies[1].Kind)
	assert.Equal(t, 30, scene.Bodies[1].Count)
}

func TestParseSceneRejects(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"inverted bounds", "bounds: {min: [1, 1, 1], max: [0, 0, 0]}"},
		{"zero dt", "dt: 0"},
		{"unknown kind", "bodies: [{kind: cone, size: [1, 1, 1]}]"},
		{"zero radius", "bodies: [{kind: sphere}]"},
		{"flat box", "bodies: [{kind: box, size: [1, 0, 1]}]"},
		{"negative count", "bodies: [{kind: box, size: [1, 1, 1], count: -1}]"},
		{"bad tree", "tree: {fat_margin: -1}"},
		{"short vector", "bounds: {min: [1, 1]}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScene([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestLoadSceneNamesAfterFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rain.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sceneYAML), 0o644))

	scene, err := LoadScene(path)
	require.NoError(t, err)
	assert.Equal(t, "rain", scene.Name)

	named := filepath.Join(dir, "other.yaml")
	require.NoError(t, os.WriteFile(named, []byte("name: storm\n"), 0o644))
	scene, err = LoadScene(named)
	require.NoError(t, err)
	assert.Equal(t, "storm", scene.Name)

	_, err = LoadScene(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}
