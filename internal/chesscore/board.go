package chesscore

import "strings"

// castling rights bit positions, one per rook.
const (
	castleWK = iota // white kingside (h1 rook)
	castleWQ        // white queenside (a1 rook)
	castleBK        // black kingside (h8 rook)
	castleBQ        // black queenside (a8 rook)
)

// Board is a mailbox-represented chess position: a 10x12 padded array (the
// outer ring is a sentinel used to stop ray-walks without bounds checks,
// the pattern anastasop-gochess/board.go uses for attackersOf/piecesMovableTo).
// Unlike that source, Board carries no pointers or slices aliasing its own
// storage, so trying a candidate move is a cheap struct copy rather than a
// deferred-closure rollback -- which sidesteps the en-passant rollback bug
// that source leaves as a TODO.
type Board struct {
	mailbox    [120]Piece
	sideToMove Color
	castle     [4]bool
	epSquare   Square
	halfmove   int
	fullmove   int
	kingSq     [2]Square
}

// mailboxIndex maps a 0-63 Square to its slot in the padded 120-square array.
func mailboxIndex(sq Square) int {
	return 21 + sq.Rank()*10 + sq.File()
}

func squareFromMailbox(idx int) Square {
	rank := (idx - 21) / 10
	file := (idx - 21) % 10
	return NewSquare(file, rank)
}

var (
	knightDeltas   = [8]int{21, 19, 12, 8, -8, -12, -19, -21}
	kingDeltas     = [8]int{1, -1, 10, -10, 9, 11, -9, -11}
	diagonalDeltas = [4]int{9, 11, -9, -11}
	straightDeltas = [4]int{1, -1, 10, -10}
)

// NewBoard returns the standard chess starting position.
func NewBoard() *Board {
	b, err := NewBoardFromFEN(StartFEN)
	if err != nil {
		panic("chesscore: invalid built-in starting FEN: " + err.Error())
	}
	return b
}

func newEmptyBoard() *Board {
	b := &Board{epSquare: NoSquare}
	for i := range b.mailbox {
		b.mailbox[i] = offBoard
	}
	for r := 0; r < 8; r++ {
		for f := 0; f < 8; f++ {
			b.mailbox[mailboxIndex(NewSquare(f, r))] = empty
		}
	}
	return b
}

func (b *Board) at(mbIdx int) Piece { return b.mailbox[mbIdx] }

// Get returns the piece occupying sq, or the empty Piece if vacant.
func (b *Board) Get(sq Square) Piece {
	return b.mailbox[mailboxIndex(sq)]
}

func (b *Board) set(sq Square, p Piece) {
	b.mailbox[mailboxIndex(sq)] = p
	if p.Type() == King {
		b.kingSq[p.Color()] = sq
	}
}

// SideToMove returns the color to move next.
func (b *Board) SideToMove() Color { return b.sideToMove }

// EnPassant returns the current en-passant target square, or NoSquare.
func (b *Board) EnPassant() Square { return b.epSquare }

// Clone returns an independent copy of the board.
func (b *Board) Clone() *Board {
	cp := *b
	return &cp
}

// attackersOf returns the mailbox indices of every piece of color `by` that
// attacks mailbox square `at`.
func (b *Board) attackersOf(at int, by Color) []int {
	var out []int
	for _, d := range knightDeltas {
		from := at + d
		if p := b.at(from); p != offBoard && !p.IsEmpty() && p.Color() == by && p.Type() == Knight {
			out = append(out, from)
		}
	}
	for _, d := range kingDeltas {
		from := at + d
		if p := b.at(from); p != offBoard && !p.IsEmpty() && p.Color() == by && p.Type() == King {
			out = append(out, from)
		}
	}
	for _, d := range diagonalDeltas {
		for from := at + d; b.at(from) != offBoard; from += d {
			if p := b.at(from); !p.IsEmpty() {
				if p.Color() == by && (p.Type() == Queen || p.Type() == Bishop) {
					out = append(out, from)
				}
				break
			}
		}
	}
	for _, d := range straightDeltas {
		for from := at + d; b.at(from) != offBoard; from += d {
			if p := b.at(from); !p.IsEmpty() {
				if p.Color() == by && (p.Type() == Queen || p.Type() == Rook) {
					out = append(out, from)
				}
				break
			}
		}
	}
	// pawn attacks: a white pawn on a diagonal-behind square attacks `at`.
	pawnDeltas := diagonalDeltas[2:4] // -9,-11: squares below-ish in mailbox space
	if by == Black {
		pawnDeltas = diagonalDeltas[0:2]
	}
	for _, d := range pawnDeltas {
		from := at + d
		if p := b.at(from); p != offBoard && !p.IsEmpty() && p.Color() == by && p.Type() == Pawn {
			out = append(out, from)
		}
	}
	return out
}

func (b *Board) isAttacked(sq Square, by Color) bool {
	return len(b.attackersOf(mailboxIndex(sq), by)) > 0
}

// InCheck reports whether the side to move's king is currently attacked.
func (b *Board) InCheck() bool {
	return b.isAttacked(b.kingSq[b.sideToMove], b.sideToMove.Opposite())
}

// candidatesMovableTo returns mailbox indices of pieces of color `by` that
// could reach mailbox square `at` by a normal (non-castling) move, including
// pawn single/double advances and the capture-only pawn diagonals already
// found by attackersOf.
func (b *Board) candidatesMovableTo(at int, by Color) []int {
	out := b.attackersOf(at, by)
	step := -10
	if by == Black {
		step = 10
	}
	one := at + step
	if b.at(one) == offBoard {
		return out
	}
	if b.at(one).IsEmpty() {
		two := one + step
		if b.at(two) != offBoard {
			if p := b.at(two); !p.IsEmpty() && p.Color() == by && p.Type() == Pawn {
				sq := squareFromMailbox(two)
				startRank := 1
				if by == Black {
					startRank = 6
				}
				if sq.Rank() == startRank {
					out = append(out, two)
				}
			}
		}
	} else if p := b.at(one); p.Color() == by && p.Type() == Pawn {
		out = append(out, one)
	}
	return out
}

func rookHomeSquares() (whiteK, whiteQ, blackK, blackQ Square) {
	return NewSquare(7, 0), NewSquare(0, 0), NewSquare(7, 7), NewSquare(0, 7)
}

// clearCastlingOnTouch clears the castling right tied to a rook home square
// when that square is vacated or captured on. King moves clear both of that
// side's rights separately, in rawApply and applyCastle.
func (b *Board) clearCastlingOnTouch(sq Square) {
	wk, wq, bk, bq := rookHomeSquares()
	switch sq {
	case wk:
		b.castle[castleWK] = false
	case wq:
		b.castle[castleWQ] = false
	case bk:
		b.castle[castleBK] = false
	case bq:
		b.castle[castleBQ] = false
	}
}

// rawApply applies a fully-resolved move to the board with no legality
// check. Used both for the trial copy and for the real application once a
// candidate has been confirmed unique and legal.
func (b *Board) rawApply(from, to Square, promotion PieceType) Move {
	mover := b.Get(from)
	captured := b.Get(to)
	mv := Move{From: from, To: to, Piece: mover, Captured: captured}

	wasPawnMove := mover.Type() == Pawn
	isCapture := !captured.IsEmpty()

	if mover.Type() == Pawn && to == b.epSquare && captured.IsEmpty() {
		mv.IsEnPassant = true
		isCapture = true
		capSq := NewSquare(to.File(), from.Rank())
		mv.Captured = b.Get(capSq)
		b.set(capSq, empty)
	}

	b.epSquare = NoSquare
	if mover.Type() == Pawn {
		dr := to.Rank() - from.Rank()
		if dr == 2 || dr == -2 {
			b.epSquare = NewSquare(from.File(), (from.Rank()+to.Rank())/2)
		}
	}

	placed := mover
	if mover.Type() == Pawn && promotion != NoPieceType && (to.Rank() == 0 || to.Rank() == 7) {
		placed = makePiece(mover.Color(), promotion)
		mv.Promotion = promotion
	}

	b.set(from, empty)
	b.set(to, placed)

	b.clearCastlingOnTouch(from)
	b.clearCastlingOnTouch(to)
	if mover.Type() == King {
		if mover.Color() == White {
			b.castle[castleWK] = false
			b.castle[castleWQ] = false
		} else {
			b.castle[castleBK] = false
			b.castle[castleBQ] = false
		}
	}

	if wasPawnMove || isCapture {
		b.halfmove = 0
	} else {
		b.halfmove++
	}
	return mv
}

func (b *Board) applyCastle(kingside bool) Move {
	color := b.sideToMove
	rank := 0
	if color == Black {
		rank = 7
	}
	kingFrom := NewSquare(4, rank)
	var kingTo, rookFrom, rookTo Square
	if kingside {
		kingTo = NewSquare(6, rank)
		rookFrom = NewSquare(7, rank)
		rookTo = NewSquare(5, rank)
	} else {
		kingTo = NewSquare(2, rank)
		rookFrom = NewSquare(0, rank)
		rookTo = NewSquare(3, rank)
	}
	king := b.Get(kingFrom)
	rook := b.Get(rookFrom)
	b.set(kingFrom, empty)
	b.set(rookFrom, empty)
	b.set(kingTo, king)
	b.set(rookTo, rook)
	b.epSquare = NoSquare
	b.halfmove++
	if color == White {
		b.castle[castleWK] = false
		b.castle[castleWQ] = false
	} else {
		b.castle[castleBK] = false
		b.castle[castleBQ] = false
	}
	return Move{From: kingFrom, To: kingTo, Piece: king, IsCastleOO: kingside, IsCastleOOO: !kingside}
}

func (b *Board) advanceMoveCounters() {
	if b.sideToMove == Black {
		b.fullmove++
	}
	b.sideToMove = b.sideToMove.Opposite()
}

// sanResultSuffix strips a trailing check/mate/NAG decoration from a SAN
// token, returning the bare move text and whether it gives check/mate.
func sanResultSuffix(san string) (bare string, check, mate bool) {
	bare = san
	for strings.HasSuffix(bare, "!") || strings.HasSuffix(bare, "?") {
		bare = bare[:len(bare)-1]
	}
	if strings.HasSuffix(bare, "#") {
		mate = true
		check = true
		bare = bare[:len(bare)-1]
	} else if strings.HasSuffix(bare, "+") {
		check = true
		bare = bare[:len(bare)-1]
	}
	return bare, check, mate
}
