package store

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestAtomicCommitsAcrossTables(t *testing.T) {
	dir := t.TempDir()
	first := NewTable[fixture]("first", 1, filepath.Join(dir, "first.csv"), fixtureCodec{}, zerolog.Nop())
	second := NewTable[fixture]("second", 2, filepath.Join(dir, "second.csv"), fixtureCodec{}, zerolog.Nop())
	require.NoError(t, first.Load())
	require.NoError(t, second.Load())

	err := Atomic(func() error {
		first.Stage(fixture{ID: "a", Score: 1})
		second.Stage(fixture{ID: "b", Score: 2})
		return nil
	}, second, first)
	require.NoError(t, err)

	require.True(t, first.Exists("a"))
	require.True(t, second.Exists("b"))

	// Both files were flushed before the workflow returned.
	require.NoError(t, first.Load())
	require.NoError(t, second.Load())
	require.True(t, first.Exists("a"))
	require.True(t, second.Exists("b"))
}

func TestAtomicRollsBackOnError(t *testing.T) {
	table := newFixtureTable(t)
	require.NoError(t, table.Load())
	require.NoError(t, table.Put(fixture{ID: "keep", Score: 1}))

	boom := errors.New("rule rejected")
	err := Atomic(func() error {
		table.Stage(fixture{ID: "discard"})
		table.StageDelete("keep")
		return boom
	}, table)
	require.ErrorIs(t, err, boom)

	require.True(t, table.Exists("keep"))
	require.False(t, table.Exists("discard"))
}

func TestAtomicPeekSeesStagedMutations(t *testing.T) {
	table := newFixtureTable(t)
	require.NoError(t, table.Load())
	require.NoError(t, table.Put(fixture{ID: "a", Score: 1}))

	err := Atomic(func() error {
		staged, ok := table.Peek("a")
		require.True(t, ok)
		staged.Score = 10
		table.Stage(staged)

		again, ok := table.Peek("a")
		require.True(t, ok)
		require.Equal(t, 10, again.Score)

		table.StageDelete("a")
		_, ok = table.Peek("a")
		require.False(t, ok)

		// Keep the delete out of the committed state.
		table.Stage(staged)
		return nil
	}, table)
	require.NoError(t, err)

	final, ok := table.Get("a")
	require.True(t, ok)
	require.Equal(t, 10, final.Score)
}

func TestAtomicScanMergesStagedState(t *testing.T) {
	table := newFixtureTable(t)
	require.NoError(t, table.Load())
	require.NoError(t, table.Put(fixture{ID: "a", Score: 1}))
	require.NoError(t, table.Put(fixture{ID: "b", Score: 2}))

	err := Atomic(func() error {
		table.StageDelete("a")
		table.Stage(fixture{ID: "c", Score: 3})

		all := table.Scan(func(fixture) bool { return true })
		require.Len(t, all, 2)
		require.Equal(t, "b", all[0].ID)
		require.Equal(t, "c", all[1].ID)
		return nil
	}, table)
	require.NoError(t, err)
}

func TestAtomicReportsPartialFlush(t *testing.T) {
	dir := t.TempDir()
	healthy := NewTable[fixture]("healthy", 1, filepath.Join(dir, "healthy.csv"), fixtureCodec{}, zerolog.Nop())
	// The broken table's directory does not exist, so its flush must fail.
	broken := NewTable[fixture]("broken", 2, filepath.Join(dir, "missing", "broken.csv"), fixtureCodec{}, zerolog.Nop())
	require.NoError(t, healthy.Load())
	require.NoError(t, broken.Load())

	err := Atomic(func() error {
		healthy.Stage(fixture{ID: "a"})
		broken.Stage(fixture{ID: "b"})
		return nil
	}, healthy, broken)

	var partial *PartialFlushError
	require.ErrorAs(t, err, &partial)
	require.Equal(t, []string{"healthy"}, partial.Persisted)
	require.Equal(t, []string{"broken"}, partial.Failed)

	// Caches are updated on both sides regardless of the flush outcome.
	require.True(t, healthy.Exists("a"))
	require.True(t, broken.Exists("b"))
}

func TestStageOutsideAtomicPanics(t *testing.T) {
	table := newFixtureTable(t)
	require.NoError(t, table.Load())
	require.Panics(t, func() {
		table.Stage(fixture{ID: "a"})
	})
}
