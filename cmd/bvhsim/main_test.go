package main

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testScene = `
name: smoke
seed: 3
ticks: 20
dt: 0.1
bounds:
  min: [-10, -10, -10]
  max: [10, 10, 10]
bodies:
  - kind: sphere
    size: [1, 0, 0]
    count: 12
    speed: 5
  - kind: box
    position: [0, -9, 0]
    size: [20, 1, 20]
    static: true
`

func execute(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.Execute())
	return out.String()
}

func TestRunRecordAndStats(t *testing.T) {
	dir := t.TempDir()
	scene := filepath.Join(dir, "smoke.yaml")
	require.NoError(t, os.WriteFile(scene, []byte(testScene), 0o644))
	db := filepath.Join(dir, "runs.db")

	out := execute(t, "run", scene, "--record", db, "--validate")
	assert.Contains(t, out, "smoke: 13 bodies, 20 ticks")
	assert.Contains(t, out, "Leaves: 13")

	m := regexp.MustCompile(`recorded as (\S+)`).FindStringSubmatch(out)
	require.Len(t, m, 2)

	out = execute(t, "stats", db)
	assert.Contains(t, out, m[1])

	out = execute(t, "stats", db, m[1])
	assert.Contains(t, out, "Ticks:       20")
}

func TestDrawPlain(t *testing.T) {
	dir := t.TempDir()
	scene := filepath.Join(dir, "smoke.yaml")
	require.NoError(t, os.WriteFile(scene, []byte(testScene), 0o644))

	out := execute(t, "draw", scene, "--plain", "--width", "30", "--height", "12", "--ticks", "5")
	assert.Contains(t, out, "+")
	assert.Contains(t, out, "Leaves: 13")
}
