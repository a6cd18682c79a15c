package chesscore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBoardStartFEN(t *testing.T) {
	b := NewBoard()
	assert.Equal(t, StartFEN, b.FEN())
}

func TestFENRoundTrip(t *testing.T) {
	cases := []string{
		StartFEN,
		"r1bqkbnr/pppp1ppp/2n5/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R w KQkq - 2 3",
		"4k3/8/8/8/8/8/8/4K2R w K - 0 1",
	}
	for _, fen := range cases {
		b, err := NewBoardFromFEN(fen)
		require.NoError(t, err)
		assert.Equal(t, fen, b.FEN())
	}
}

func TestEPD(t *testing.T) {
	epd, err := EPD("rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1")
	require.NoError(t, err)
	assert.Equal(t, "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3", epd)
}

func TestApplySANBasicOpening(t *testing.T) {
	b := NewBoard()
	_, err := b.ApplySAN("e4")
	require.NoError(t, err)
	assert.Equal(t, "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1", b.FEN())

	_, err = b.ApplySAN("e5")
	require.NoError(t, err)
	_, err = b.ApplySAN("Nf3")
	require.NoError(t, err)
	assert.Equal(t, "rnbqkbnr/pppp1ppp/8/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R b KQkq - 1 2", b.FEN())
}

func TestApplySANIllegalMove(t *testing.T) {
	b := NewBoard()
	_, err := b.ApplySAN("e5")
	require.Error(t, err)
	var illegal *IllegalMoveError
	require.ErrorAs(t, err, &illegal)
}

func TestApplySANCastlingKingside(t *testing.T) {
	b, err := NewBoardFromFEN("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	require.NoError(t, err)
	_, err = b.ApplySAN("O-O")
	require.NoError(t, err)
	assert.Equal(t, "r3k2r/8/8/8/8/8/8/R4RK1 b kq - 1 1", b.FEN())
}

func TestApplySANCastlingBlockedByCheck(t *testing.T) {
	b, err := NewBoardFromFEN("4k3/8/8/8/8/8/4r3/4K2R w K - 0 1")
	require.NoError(t, err)
	_, err = b.ApplySAN("O-O")
	require.Error(t, err)
}

func TestEnPassantCaptureAndRollbackSafety(t *testing.T) {
	b, err := NewBoardFromFEN("rnbqkbnr/ppp1pppp/8/3pP3/8/8/PPPP1PPP/RNBQKBNR w KQkq d6 0 3")
	require.NoError(t, err)
	mv, err := b.ApplySAN("exd6")
	require.NoError(t, err)
	assert.True(t, mv.IsEnPassant)
	assert.True(t, b.Get(SquareFromString("d5")).IsEmpty(), "captured pawn must be removed")
	assert.Equal(t, "rnbqkbnr/ppp1pppp/3P4/8/8/8/PPPP1PPP/RNBQKBNR b KQkq - 0 3", b.FEN())
}

func TestPromotion(t *testing.T) {
	b, err := NewBoardFromFEN("8/P6k/8/8/8/8/7K/8 w - - 0 1")
	require.NoError(t, err)
	mv, err := b.ApplySAN("a8=Q")
	require.NoError(t, err)
	assert.Equal(t, Queen, mv.Promotion)
	assert.Equal(t, Queen, b.Get(SquareFromString("a8")).Type())
}

func TestTranspositionHashEquality(t *testing.T) {
	a := NewBoard()
	for _, san := range []string{"Nf3", "d5", "g3"} {
		_, err := a.ApplySAN(san)
		require.NoError(t, err)
	}
	b := NewBoard()
	for _, san := range []string{"g3", "d5", "Nf3"} {
		_, err := b.ApplySAN(san)
		require.NoError(t, err)
	}
	assert.Equal(t, a.Hash(), b.Hash())
}

func TestDisambiguationByFile(t *testing.T) {
	b, err := NewBoardFromFEN("4k3/8/8/R6R/8/8/8/4K3 w - - 0 1")
	require.NoError(t, err)
	_, err = b.ApplySAN("Rad5")
	require.NoError(t, err)
	assert.True(t, b.Get(SquareFromString("a5")).IsEmpty())
	assert.Equal(t, Rook, b.Get(SquareFromString("d5")).Type())
	assert.False(t, b.Get(SquareFromString("h5")).IsEmpty())
}
