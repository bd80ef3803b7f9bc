package solver

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cardroom/holdem-engine/pkg/cards"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := OpenStore(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreSaveLoadRun(t *testing.T) {
	store := openTestStore(t)
	board, _ := cards.ParseCards("Kh7s2c")
	res := sampleResult()

	id, err := store.SaveRun(board, res)
	require.NoError(t, err)
	require.Positive(t, id)

	got, err := store.LoadRun(id)
	require.NoError(t, err)
	require.Equal(t, res.Strategies, got.Strategies)
	require.Equal(t, res.Iterations, got.Iterations)
}

func TestStoreListRuns(t *testing.T) {
	store := openTestStore(t)
	flop, _ := cards.ParseCards("Kh7s2c")
	other, _ := cards.ParseCards("2h7d9c")
	res := sampleResult()

	_, err := store.SaveRun(flop, res)
	require.NoError(t, err)
	_, err = store.SaveRun(flop, res)
	require.NoError(t, err)
	_, err = store.SaveRun(other, res)
	require.NoError(t, err)

	all, err := store.ListRuns("")
	require.NoError(t, err)
	require.Len(t, all, 3)

	flopOnly, err := store.ListRuns("Kh7s2c")
	require.NoError(t, err)
	require.Len(t, flopOnly, 2)
	for _, r := range flopOnly {
		require.Equal(t, "Kh7s2c", r.Board)
		require.Equal(t, res.Iterations, r.Iterations)
	}
}

func TestStoreLoadMissingRun(t *testing.T) {
	store := openTestStore(t)
	_, err := store.LoadRun(999)
	require.Error(t, err)
}
