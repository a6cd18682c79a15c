package hostio

import (
	"testing"

	"github.com/kyleboon/chessdb/internal/pgn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchemaColumnCountAndOrder(t *testing.T) {
	require.Len(t, Schema, 18)
	assert.Equal(t, "Event", Schema[0].Name)
	assert.Equal(t, "movetext", Schema[15].Name)
	assert.Equal(t, "parse_error", Schema[16].Name)
	assert.Equal(t, "Source", Schema[17].Name)
}

func TestWriteRowRoundTrip(t *testing.T) {
	white := "kyle_b81"
	elo := uint32(1472)
	source := "fixtures/sample.pgn"
	rec := &pgn.GameRecord{
		White:    &white,
		WhiteElo: &elo,
		Movetext: "1. e4 e5",
	}

	chunk := NewMemChunk()
	chunk.StartRow()
	WriteRow(chunk, rec, &source)

	v, null := chunk.Get(0, "White")
	assert.False(t, null)
	assert.Equal(t, white, v)

	v, null = chunk.Get(0, "WhiteElo")
	assert.False(t, null)
	assert.Equal(t, elo, v)

	v, null = chunk.Get(0, "Black")
	assert.True(t, null)
	assert.Nil(t, v)

	v, null = chunk.Get(0, "movetext")
	assert.False(t, null)
	assert.Equal(t, "1. e4 e5", v)

	v, null = chunk.Get(0, "Source")
	assert.False(t, null)
	assert.Equal(t, source, v)
}

func TestMultipleRowsAdvanceIndependently(t *testing.T) {
	chunk := NewMemChunk()
	for i := 0; i < 3; i++ {
		white := "player"
		rec := &pgn.GameRecord{White: &white, Movetext: "1. e4"}
		chunk.StartRow()
		WriteRow(chunk, rec, nil)
	}
	assert.Equal(t, 3, chunk.Len())
	for i := 0; i < 3; i++ {
		v, null := chunk.Get(i, "White")
		assert.False(t, null)
		assert.Equal(t, "player", v)
	}
}

func TestInteriorNULSanitized(t *testing.T) {
	chunk := NewMemChunk()
	chunk.StartRow()
	rec := &pgn.GameRecord{Movetext: "1. e4 e5\x00 2. Nf3"}
	WriteRow(chunk, rec, nil)

	v, null := chunk.Get(0, "movetext")
	assert.False(t, null)
	assert.NotContains(t, v.(string), "\x00")
	// WriteRow sanitizes before calling SetText, so the diagnostic lands in
	// parse_error and the setter-level counter is left untouched.
	assert.Equal(t, 0, chunk.NULSanitized)
	pe, null := chunk.Get(0, "parse_error")
	assert.False(t, null)
	assert.Equal(t, "movetext contained an interior NUL byte; sanitized", pe)
}
