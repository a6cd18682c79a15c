package chesscore

import "math/rand"

// Zobrist key tables. No pack example implements Zobrist hashing; the
// table shape (one 64-bit key per piece-color-square triple, plus side,
// castling, and en-passant keys) mirrors how brighamskarda-chess sizes its
// per-piece-per-color bitboard planes (12 planes of 64 squares), adapted
// here to random XOR keys instead of bitboards since the mailbox board has
// no native per-piece bit planes to hash directly.
//
// Seeded deterministically (not time-seeded) so the same binary always
// produces the same hash for the same position, which is the only
// correctness requirement Zobrist hashing has within one process lifetime.
const zobristSeed = 0xC453A11DE5EED

var (
	zobristPieceSquare [2][7][64]uint64 // [color][pieceType][square]
	zobristSideToMove  uint64
	zobristCastle      [4]uint64
	zobristEnPassant   [8]uint64 // indexed by file
)

func init() {
	r := rand.New(rand.NewSource(zobristSeed))
	for c := 0; c < 2; c++ {
		for t := 1; t < 7; t++ { // skip NoPieceType=0
			for sq := 0; sq < 64; sq++ {
				zobristPieceSquare[c][t][sq] = r.Uint64()
			}
		}
	}
	zobristSideToMove = r.Uint64()
	for i := range zobristCastle {
		zobristCastle[i] = r.Uint64()
	}
	for i := range zobristEnPassant {
		zobristEnPassant[i] = r.Uint64()
	}
}

// Hash computes the 64-bit Zobrist key of the position. Equal under any
// transposition-equivalent move ordering, and unaffected by anything not
// captured in piece placement, side to move, castling rights, and the
// en-passant file (spec.md §4.4 chess_moves_hash, §8 transposition property).
func (b *Board) Hash() uint64 {
	var h uint64
	for rank := 0; rank < 8; rank++ {
		for file := 0; file < 8; file++ {
			p := b.Get(NewSquare(file, rank))
			if p.IsEmpty() {
				continue
			}
			h ^= zobristPieceSquare[p.Color()][p.Type()][rank*8+file]
		}
	}
	if b.sideToMove == Black {
		h ^= zobristSideToMove
	}
	for i, right := range b.castle {
		if right {
			h ^= zobristCastle[i]
		}
	}
	if b.epSquare != NoSquare {
		h ^= zobristEnPassant[b.epSquare.File()]
	}
	return h
}
