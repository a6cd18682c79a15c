package reader

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zstd"
	"github.com/kyleboon/chessdb/internal/diag"
	"github.com/kyleboon/chessdb/internal/hostio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const twoGamePGN = `[Event "A"]
[White "alice"]
[Black "bob"]

1. e4 e5 2. Nf3 Nc6 1-0

[Event "B"]
[White "carol"]
[Black "dave"]

1. d4 d5 1/2-1/2
`

func TestParseCompression(t *testing.T) {
	c, err := ParseCompression(nil)
	require.NoError(t, err)
	assert.Equal(t, CompressionNone, c)

	zstdStr := "ZSTD"
	c, err = ParseCompression(&zstdStr)
	require.NoError(t, err)
	assert.Equal(t, CompressionZstd, c)

	empty := ""
	_, err = ParseCompression(&empty)
	assert.Error(t, err)

	bogus := "gzip"
	_, err = ParseCompression(&bogus)
	assert.Error(t, err)
}

func TestExpandPathsSingle(t *testing.T) {
	paths, isGlob, err := ExpandPaths("/tmp/foo.pgn")
	require.NoError(t, err)
	assert.False(t, isGlob)
	assert.Equal(t, []string{"/tmp/foo.pgn"}, paths)
}

func TestExpandPathsGlob(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.pgn"), []byte(twoGamePGN), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.pgn"), []byte(twoGamePGN), 0o644))

	paths, isGlob, err := ExpandPaths(filepath.Join(dir, "*.pgn"))
	require.NoError(t, err)
	assert.True(t, isGlob)
	assert.Len(t, paths, 2)
}

func TestFillChunkSinglePlainFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "games.pgn")
	require.NoError(t, os.WriteFile(path, []byte(twoGamePGN), 0o644))

	pool := NewPool([]string{path}, CompressionNone)
	chunk := hostio.NewMemChunk()
	logger := diag.NewLogger(&bytes.Buffer{}, "test")

	err := FillChunk(pool, chunk, false, logger)
	require.NoError(t, err)
	assert.Equal(t, 2, chunk.Len())

	v, null := chunk.Get(0, "White")
	assert.False(t, null)
	assert.Equal(t, "alice", v)

	v, null = chunk.Get(1, "White")
	assert.False(t, null)
	assert.Equal(t, "carol", v)
}

func TestFillChunkSinglePathOpenFailureIsFatal(t *testing.T) {
	pool := NewPool([]string{"/nonexistent/path/games.pgn"}, CompressionNone)
	chunk := hostio.NewMemChunk()
	logger := diag.NewLogger(&bytes.Buffer{}, "test")

	err := FillChunk(pool, chunk, false, logger)
	assert.Error(t, err)
}

func TestFillChunkGlobOpenFailureIsSkipped(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.pgn")
	require.NoError(t, os.WriteFile(good, []byte(twoGamePGN), 0o644))

	pool := NewPool([]string{"/nonexistent/path/bad.pgn", good}, CompressionNone)
	chunk := hostio.NewMemChunk()
	logger := diag.NewLogger(&bytes.Buffer{}, "test")

	err := FillChunk(pool, chunk, true, logger)
	require.NoError(t, err)
	assert.Equal(t, 2, chunk.Len())
}

func TestFillChunkZstdCompressed(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "games.pgn.zst")

	var buf bytes.Buffer
	enc, err := zstd.NewWriter(&buf)
	require.NoError(t, err)
	_, err = enc.Write([]byte(twoGamePGN))
	require.NoError(t, err)
	require.NoError(t, enc.Close())
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	pool := NewPool([]string{path}, CompressionZstd)
	chunk := hostio.NewMemChunk()
	logger := diag.NewLogger(&bytes.Buffer{}, "test")

	err = FillChunk(pool, chunk, false, logger)
	require.NoError(t, err)
	assert.Equal(t, 2, chunk.Len())
}

func TestFillChunkMidStreamIllegalMoveStillEmitsRowWithContext(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.pgn")
	pgnText := "[Event \"Test\"]\n\n1. e4 e5 2. Qh5 g6 3. Qxh8 Nf6\n\n"
	require.NoError(t, os.WriteFile(path, []byte(pgnText), 0o644))

	pool := NewPool([]string{path}, CompressionNone)
	chunk := hostio.NewMemChunk()
	logger := diag.NewLogger(&bytes.Buffer{}, "test")

	err := FillChunk(pool, chunk, false, logger)
	require.NoError(t, err)
	require.Equal(t, 1, chunk.Len())

	v, null := chunk.Get(0, "parse_error")
	assert.False(t, null)
	assert.Contains(t, v.(string), "Illegal move")
	assert.Contains(t, v.(string), path)
}
