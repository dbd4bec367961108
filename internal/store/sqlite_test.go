package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/setanarut/bvh"
	"github.com/setanarut/bvh/internal/sim"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTemp(t *testing.T) (*Recorder, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nested", "runs.db")
	r, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { r.Close() })
	return r, path
}

func TestRecorderOpenCreatesFile(t *testing.T) {
	_, path := openTemp(t)
	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestRecorderSummary(t *testing.T) {
	r, _ := openTemp(t)

	id, err := r.BeginRun("rain")
	require.NoError(t, err)
	require.NotEmpty(t, id)

	ticks := []sim.TickResult{
		{Tick: 1, Reinserted: 4, Pairs: 2, Stats: bvh.Stats{Leaves: 10, Height: 5, PoolInUse: 19}},
		{Tick: 2, Reinserted: 1, Pairs: 6, Stats: bvh.Stats{Leaves: 10, Height: 6, PoolInUse: 19}},
		{Tick: 3, Reinserted: 0, Pairs: 4, Stats: bvh.Stats{Leaves: 10, Height: 5, PoolInUse: 19}},
	}
	for _, res := range ticks {
		require.NoError(t, r.RecordTick(id, res))
	}
	// ticks are unique per run
	assert.Error(t, r.RecordTick(id, ticks[0]))

	s, err := r.Summary(id)
	require.NoError(t, err)
	assert.Equal(t, id, s.ID)
	assert.Equal(t, "rain", s.Scene)
	assert.False(t, s.StartedAt.IsZero())
	assert.Equal(t, 3, s.Ticks)
	assert.Equal(t, 5, s.TotalReinserted)
	assert.Equal(t, 6, s.MaxPairs)
	assert.InDelta(t, 4.0, s.AvgPairs, 1e-9)
	assert.Equal(t, 6, s.MaxHeight)
	assert.Equal(t, 19, s.MaxPoolInUse)
}

func TestRecorderEmptyRun(t *testing.T) {
	r, _ := openTemp(t)
	id, err := r.BeginRun("empty")
	require.NoError(t, err)

	s, err := r.Summary(id)
	require.NoError(t, err)
	assert.Equal(t, 0, s.Ticks)
	assert.Equal(t, 0, s.MaxPairs)
}

func TestRecorderUnknownRun(t *testing.T) {
	r, _ := openTemp(t)
	_, err := r.Summary("nope")
	assert.True(t, errors.Is(err, ErrRunNotFound))
}

func TestRecorderRunsPersist(t *testing.T) {
	r, path := openTemp(t)
	a, err := r.BeginRun("a")
	require.NoError(t, err)
	b, err := r.BeginRun("b")
	require.NoError(t, err)
	require.NoError(t, r.Close())

	r2, err := Open(path)
	require.NoError(t, err)
	defer r2.Close()

	runs, err := r2.Runs()
	require.NoError(t, err)
	require.Len(t, runs, 2)
	ids := []string{runs[0].ID, runs[1].ID}
	assert.ElementsMatch(t, []string{a, b}, ids)
}
