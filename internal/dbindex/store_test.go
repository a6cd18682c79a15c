package dbindex

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/kyleboon/chessdb/internal/reader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleGames = `[Event "Club Championship"]
[White "alice"]
[Black "bob"]
[Result "1-0"]

1. e4 e5 2. Nf3 Nc6 3. Bb5 1-0

[Event "Club Championship"]
[White "carol"]
[Black "alice"]
[Result "1-0"]

1. d4 d5 2. c4 e6 1-0
`

func openTestStore(t *testing.T) *Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "index.db")
	store, err := Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func writeSampleFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "games.pgn")
	require.NoError(t, os.WriteFile(path, []byte(sampleGames), 0o644))
	return path
}

func TestOpenCreatesSchema(t *testing.T) {
	store := openTestStore(t)
	n, err := store.GameCount()
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestIndexPathImportsGames(t *testing.T) {
	store := openTestStore(t)
	path := writeSampleFile(t)

	result, err := IndexPath(store, path, reader.CompressionNone, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Imported)
	assert.Equal(t, 0, result.Skipped)
	assert.Empty(t, result.Errors)

	n, err := store.GameCount()
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestIndexPathIsIdempotentOnPositionHash(t *testing.T) {
	store := openTestStore(t)
	path := writeSampleFile(t)

	_, err := IndexPath(store, path, reader.CompressionNone, nil)
	require.NoError(t, err)

	result, err := IndexPath(store, path, reader.CompressionNone, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Imported)
	assert.Equal(t, 2, result.Skipped)

	n, err := store.GameCount()
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestPlayerStatsAll(t *testing.T) {
	store := openTestStore(t)
	path := writeSampleFile(t)

	_, err := IndexPath(store, path, reader.CompressionNone, nil)
	require.NoError(t, err)

	stats, err := store.PlayerStatsAll()
	require.NoError(t, err)

	byName := make(map[string]PlayerStats)
	for _, s := range stats {
		byName[s.Name] = s
	}

	alice := byName["alice"]
	assert.Equal(t, 2, alice.Games)
	assert.Equal(t, 1, alice.Wins)
	assert.Equal(t, 1, alice.Losses)
	assert.Equal(t, 1, alice.WhiteGames)
	assert.Equal(t, 1, alice.BlackGames)

	bob := byName["bob"]
	assert.Equal(t, 1, bob.Games)
	assert.Equal(t, 1, bob.Losses)

	carol := byName["carol"]
	assert.Equal(t, 1, carol.Games)
	assert.Equal(t, 1, carol.Wins)
}

func TestAddColumnIfNotExistsIsIdempotent(t *testing.T) {
	store := openTestStore(t)
	err := store.addColumnIfNotExists("games", "position_hash TEXT")
	require.NoError(t, err)
}
